package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dukahub/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations for orders. All writes
// are single-record; UpdatePaymentStatusByTracking must apply the
// terminal-priority rule (a settled order is never reverted to pending,
// reapplying the same terminal status is a no-op).
type OrderRepository interface {
	CreatePending(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	GetByTrackingID(ctx context.Context, trackingID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64, onlyTracked bool) ([]model.Order, error)
	AttachTrackingID(ctx context.Context, id uuid.UUID, trackingID string) error
	UpdatePaymentStatusByTracking(ctx context.Context, trackingID string, status model.PaymentStatus) error
	UpdateFulfillment(ctx context.Context, id uuid.UUID, status model.FulfillmentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	SelectBatchForReconciliation(ctx context.Context, limit int) ([]model.Order, error)
}
