package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dukahub/storefront/internal/adapter/pesapal"
	domainErrors "github.com/dukahub/storefront/internal/domain/errors"
	"github.com/dukahub/storefront/internal/domain/model"
	"github.com/dukahub/storefront/internal/domain/repository"
)

// OrderUseCase encapsulates order queries and settlement application. All
// payment-status transitions go through SyncStatus, which treats the
// processor's own record as the only source of truth.
type OrderUseCase struct {
	orders    repository.OrderRepository
	processor pesapal.Client
	logger    *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, processor pesapal.Client, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, processor: processor, logger: logger}
}

// GetForUser fetches a single order with an ownership check. An order that
// belongs to another user is reported as missing, not forbidden.
func (u *OrderUseCase) GetForUser(ctx context.Context, userID int64, id uuid.UUID) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// ListByUser returns the user's orders, newest first. With onlyTracked set,
// records that never reached the processor are excluded.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64, onlyTracked bool) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID, onlyTracked)
}

// SyncStatus queries the processor's authoritative settlement record for a
// tracking id and applies it to the local order. Notification payloads and
// client polls both funnel here, so a spoofed or stale caller can at worst
// trigger a redundant read. The repository's terminal-priority rule makes
// the apply idempotent and monotonic.
func (u *OrderUseCase) SyncStatus(ctx context.Context, trackingID string) (*model.ProcessorStatus, error) {
	status, err := u.processor.TransactionStatus(ctx, trackingID)
	if err != nil {
		return nil, err
	}

	mapped, terminal := status.PaymentStatus()
	if err := u.orders.UpdatePaymentStatusByTracking(ctx, trackingID, mapped); err != nil {
		return nil, err
	}
	if terminal {
		u.logger.Info("settlement applied",
			slog.String("tracking_id", trackingID),
			slog.String("payment_status", string(mapped)),
		)
	}

	return status, nil
}

// AdvanceFulfillment moves an order's fulfillment status forward. The
// transition itself is checked inside the repository under a row lock.
func (u *OrderUseCase) AdvanceFulfillment(ctx context.Context, id uuid.UUID, next model.FulfillmentStatus) error {
	switch next {
	case model.FulfillmentConfirmed, model.FulfillmentShipped, model.FulfillmentDelivered, model.FulfillmentCancelled:
	default:
		return fmt.Errorf("%w: unknown fulfillment status %q", domainErrors.ErrValidation, next)
	}
	return u.orders.UpdateFulfillment(ctx, id, next)
}

// SelectBatchForReconciliation returns tracked orders still awaiting
// settlement, for the background reconciler.
func (u *OrderUseCase) SelectBatchForReconciliation(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.SelectBatchForReconciliation(ctx, limit)
}
