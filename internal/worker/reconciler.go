package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/dukahub/storefront/internal/domain/errors"
	"github.com/dukahub/storefront/internal/domain/model"
)

// StorefrontFacade exposes the subset of application functionality required
// by the reconciler.
type StorefrontFacade interface {
	OrdersForReconciliation(ctx context.Context, limit int) ([]model.Order, error)
	SyncPaymentStatus(ctx context.Context, trackingID string) (*model.ProcessorStatus, error)
}

// Reconciler sweeps tracked orders that are still pending and re-reads
// their settlement from the processor. It converges orders whose payment
// notification was lost and ones the client never polled to completion.
type Reconciler struct {
	facade       StorefrontFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconciler constructs the reconciliation worker pool.
func NewReconciler(facade StorefrontFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Reconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background reconciliation.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	orders, err := r.facade.OrdersForReconciliation(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("fetch orders for reconciliation failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- order:
		}
	}
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-r.jobs:
			if !ok {
				return
			}
			r.reconcile(ctx, order)
		}
	}
}

func (r *Reconciler) reconcile(ctx context.Context, order model.Order) {
	if order.TrackingID == "" {
		return
	}

	status, err := r.facade.SyncPaymentStatus(ctx, order.TrackingID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			r.logger.Warn("tracked order vanished during reconciliation",
				slog.String("order", order.Number),
				slog.String("tracking_id", order.TrackingID),
			)
			return
		}
		r.logger.Error("reconciliation status query failed",
			slog.String("order", order.Number),
			slog.String("error", err.Error()),
		)
		return
	}

	if mapped, terminal := status.PaymentStatus(); terminal {
		r.logger.Info("order reconciled",
			slog.String("order", order.Number),
			slog.String("payment_status", string(mapped)),
		)
	}
}
