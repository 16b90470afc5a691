package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/dukahub/storefront/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// CheckoutFacade runs the checkout flow: validate, price, persist, submit.
type CheckoutFacade interface {
	Checkout(ctx context.Context, userID int64, items []model.LineItem, customer model.CustomerInfo, delivery model.DeliveryInfo, clientTotal float64) (*model.Order, string, error)
}

// OrderFacade encapsulates order queries and fulfillment management.
type OrderFacade interface {
	Orders(ctx context.Context, userID int64, includeUntracked bool) ([]model.Order, error)
	Order(ctx context.Context, userID int64, orderID uuid.UUID) (*model.Order, error)
	AdvanceFulfillment(ctx context.Context, orderID uuid.UUID, status model.FulfillmentStatus) error
}

// PaymentFacade exposes settlement queries against the processor.
type PaymentFacade interface {
	SyncPaymentStatus(ctx context.Context, trackingID string) (*model.ProcessorStatus, error)
	AwaitPaymentStatus(ctx context.Context, trackingID string) (*model.ProcessorStatus, bool, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	CheckoutFacade
	OrderFacade
	PaymentFacade
}
