package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/dukahub/storefront/internal/domain/model"
	"github.com/dukahub/storefront/internal/usecase"
)

// StorefrontFacade is the application surface consumed by the HTTP layer
// and the background reconciler.
type StorefrontFacade struct {
	auth     *usecase.AuthUseCase
	checkout *usecase.CheckoutUseCase
	orders   *usecase.OrderUseCase
	poller   *usecase.StatusPoller
}

// NewStorefrontFacade constructs StorefrontFacade.
func NewStorefrontFacade(auth *usecase.AuthUseCase, checkout *usecase.CheckoutUseCase, orders *usecase.OrderUseCase, poller *usecase.StatusPoller) *StorefrontFacade {
	return &StorefrontFacade{auth: auth, checkout: checkout, orders: orders, poller: poller}
}

func (f *StorefrontFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *StorefrontFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *StorefrontFacade) Checkout(ctx context.Context, userID int64, items []model.LineItem, customer model.CustomerInfo, delivery model.DeliveryInfo, clientTotal float64) (*model.Order, string, error) {
	result, err := f.checkout.Checkout(ctx, userID, &usecase.CheckoutInput{
		Items:       items,
		Customer:    customer,
		Delivery:    delivery,
		ClientTotal: clientTotal,
	})
	if err != nil {
		return nil, "", err
	}
	return result.Order, result.RedirectURL, nil
}

func (f *StorefrontFacade) Orders(ctx context.Context, userID int64, includeUntracked bool) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID, !includeUntracked)
}

func (f *StorefrontFacade) Order(ctx context.Context, userID int64, orderID uuid.UUID) (*model.Order, error) {
	return f.orders.GetForUser(ctx, userID, orderID)
}

func (f *StorefrontFacade) AdvanceFulfillment(ctx context.Context, orderID uuid.UUID, status model.FulfillmentStatus) error {
	return f.orders.AdvanceFulfillment(ctx, orderID, status)
}

func (f *StorefrontFacade) SyncPaymentStatus(ctx context.Context, trackingID string) (*model.ProcessorStatus, error) {
	return f.orders.SyncStatus(ctx, trackingID)
}

func (f *StorefrontFacade) AwaitPaymentStatus(ctx context.Context, trackingID string) (*model.ProcessorStatus, bool, error) {
	return f.poller.Wait(ctx, trackingID)
}

func (f *StorefrontFacade) OrdersForReconciliation(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.SelectBatchForReconciliation(ctx, limit)
}
