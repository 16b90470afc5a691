package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainErrors "github.com/dukahub/storefront/internal/domain/errors"
	"github.com/dukahub/storefront/internal/domain/model"
)

// StatusSyncer reads the processor's settlement record and applies it to
// the local order.
type StatusSyncer interface {
	SyncStatus(ctx context.Context, trackingID string) (*model.ProcessorStatus, error)
}

// StatusPoller repeatedly syncs a payment's status until it turns terminal,
// the attempt budget runs out, or the context is cancelled. Exhausting the
// budget while the payment is still pending is a timeout, not a failure.
type StatusPoller struct {
	syncer   StatusSyncer
	attempts int
	interval time.Duration
	logger   *slog.Logger
}

// NewStatusPoller constructs StatusPoller with a fixed attempt budget and
// inter-attempt interval.
func NewStatusPoller(syncer StatusSyncer, attempts int, interval time.Duration, logger *slog.Logger) *StatusPoller {
	if attempts < 1 {
		attempts = 1
	}
	return &StatusPoller{syncer: syncer, attempts: attempts, interval: interval, logger: logger}
}

// Wait polls until the payment settles. It returns the last observed status
// and whether the attempt budget was exhausted while still pending. An
// unknown tracking id fails immediately; transient query errors consume an
// attempt and the poll continues.
func (p *StatusPoller) Wait(ctx context.Context, trackingID string) (*model.ProcessorStatus, bool, error) {
	var (
		last    *model.ProcessorStatus
		lastErr error
	)

	for attempt := 1; attempt <= p.attempts; attempt++ {
		status, err := p.syncer.SyncStatus(ctx, trackingID)
		switch {
		case err == nil:
			last, lastErr = status, nil
			if _, terminal := status.PaymentStatus(); terminal {
				return status, false, nil
			}
		case errors.Is(err, domainErrors.ErrNotFound):
			return nil, false, err
		case ctx.Err() != nil:
			return last, false, ctx.Err()
		default:
			lastErr = err
			p.logger.Warn("status poll attempt failed",
				slog.String("tracking_id", trackingID),
				slog.Int("attempt", attempt),
				slog.Any("error", err),
			)
		}

		if attempt == p.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return last, false, ctx.Err()
		case <-time.After(p.interval):
		}
	}

	if last == nil {
		return nil, false, lastErr
	}
	return last, true, nil
}
