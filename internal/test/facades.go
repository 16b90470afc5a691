package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dukahub/storefront/internal/domain/model"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (int64, error)
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, login, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

// ParseToken returns stored identifier for authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// CheckoutFacadeStub provides controllable checkout behaviour.
type CheckoutFacadeStub struct {
	CheckoutFn func(context.Context, int64, []model.LineItem, model.CustomerInfo, model.DeliveryInfo, float64) (*model.Order, string, error)
}

// Checkout delegates to the override or returns a default submitted order.
func (s CheckoutFacadeStub) Checkout(ctx context.Context, userID int64, items []model.LineItem, customer model.CustomerInfo, delivery model.DeliveryInfo, clientTotal float64) (*model.Order, string, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, userID, items, customer, delivery, clientTotal)
	}
	return &model.Order{
		ID:          uuid.New(),
		UserID:      userID,
		Number:      "ORD-1-abc",
		TrackingID:  "trk-stub",
		Payment:     model.PaymentStatusPending,
		Fulfillment: model.FulfillmentProcessing,
	}, "https://pay.example/redirect", nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	OrdersFn  func(context.Context, int64, bool) ([]model.Order, error)
	OrderFn   func(context.Context, int64, uuid.UUID) (*model.Order, error)
	AdvanceFn func(context.Context, uuid.UUID, model.FulfillmentStatus) error
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64, includeUntracked bool) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID, includeUntracked)
	}
	return []model.Order{{Number: "ORD-1-abc", UserID: userID}}, nil
}

// Order returns a single order.
func (s OrderFacadeStub) Order(ctx context.Context, userID int64, orderID uuid.UUID) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, orderID)
	}
	return &model.Order{ID: orderID, UserID: userID, Number: "ORD-1-abc"}, nil
}

// AdvanceFulfillment executes the configured override.
func (s OrderFacadeStub) AdvanceFulfillment(ctx context.Context, orderID uuid.UUID, status model.FulfillmentStatus) error {
	if s.AdvanceFn != nil {
		return s.AdvanceFn(ctx, orderID, status)
	}
	return nil
}

// PaymentFacadeStub simulates settlement queries.
type PaymentFacadeStub struct {
	SyncFn  func(context.Context, string) (*model.ProcessorStatus, error)
	AwaitFn func(context.Context, string) (*model.ProcessorStatus, bool, error)
}

// SyncPaymentStatus returns a completed settlement unless overridden.
func (s PaymentFacadeStub) SyncPaymentStatus(ctx context.Context, trackingID string) (*model.ProcessorStatus, error) {
	if s.SyncFn != nil {
		return s.SyncFn(ctx, trackingID)
	}
	return &model.ProcessorStatus{TrackingID: trackingID, Description: model.ProcessorStatusCompleted, Amount: 100}, nil
}

// AwaitPaymentStatus returns a completed settlement unless overridden.
func (s PaymentFacadeStub) AwaitPaymentStatus(ctx context.Context, trackingID string) (*model.ProcessorStatus, bool, error) {
	if s.AwaitFn != nil {
		return s.AwaitFn(ctx, trackingID)
	}
	return &model.ProcessorStatus{TrackingID: trackingID, Description: model.ProcessorStatusCompleted, Amount: 100}, false, nil
}

// StorefrontFacadeStub aggregates facade dependencies for HTTP layer tests.
type StorefrontFacadeStub struct {
	AuthFacadeStub
	CheckoutFacadeStub
	OrderFacadeStub
	PaymentFacadeStub
}

// WorkerFacadeStub mimics reconciler interactions with the app facade.
type WorkerFacadeStub struct {
	Batches  [][]model.Order
	OrdersFn func(context.Context, int) ([]model.Order, error)
	SyncFn   func(context.Context, string) (*model.ProcessorStatus, error)

	mu              sync.Mutex
	Synced          []string
	ordersCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// OrdersForReconciliation returns batches from configured queue.
func (s *WorkerFacadeStub) OrdersForReconciliation(ctx context.Context, limit int) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.ordersCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// SyncPaymentStatus records queried tracking ids.
func (s *WorkerFacadeStub) SyncPaymentStatus(ctx context.Context, trackingID string) (*model.ProcessorStatus, error) {
	if s.SyncFn != nil {
		return s.SyncFn(ctx, trackingID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Synced = append(s.Synced, trackingID)
	return &model.ProcessorStatus{TrackingID: trackingID, Description: model.ProcessorStatusCompleted}, nil
}
