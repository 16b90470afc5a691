package test

import (
	"context"

	"github.com/google/uuid"

	domainErrors "github.com/dukahub/storefront/internal/domain/errors"
	"github.com/dukahub/storefront/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// PaymentStatusUpdate records one settlement write against the stub.
type PaymentStatusUpdate struct {
	TrackingID string
	Status     model.PaymentStatus
}

// OrderRepositoryStub allows tests to customize behaviour per call.
type OrderRepositoryStub struct {
	CreatePendingFn    func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn          func(context.Context, uuid.UUID) (*model.Order, error)
	GetByTrackingIDFn  func(context.Context, string) (*model.Order, error)
	ListByUserFn       func(context.Context, int64, bool) ([]model.Order, error)
	AttachTrackingIDFn func(context.Context, uuid.UUID, string) error
	UpdatePaymentFn    func(context.Context, string, model.PaymentStatus) error
	UpdateFulfillFn    func(context.Context, uuid.UUID, model.FulfillmentStatus) error
	DeleteFn           func(context.Context, uuid.UUID) error
	SelectBatchFn      func(context.Context, int) ([]model.Order, error)

	Orders         []model.Order
	Created        []*model.Order
	Attached       map[uuid.UUID]string
	PaymentUpdates []PaymentStatusUpdate
	Deleted        []uuid.UUID
	Pending        []model.Order
}

// CreatePending tracks invocations and returns configured responses.
func (s *OrderRepositoryStub) CreatePending(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreatePendingFn != nil {
		return s.CreatePendingFn(ctx, order)
	}
	stored := *order
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	stored.Payment = model.PaymentStatusPending
	stored.Fulfillment = model.FulfillmentProcessing
	s.Created = append(s.Created, &stored)
	return &stored, nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByTrackingID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByTrackingID(ctx context.Context, trackingID string) (*model.Order, error) {
	if s.GetByTrackingIDFn != nil {
		return s.GetByTrackingIDFn(ctx, trackingID)
	}
	for _, o := range s.Orders {
		if o.TrackingID == trackingID {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns orders from configured slice.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64, onlyTracked bool) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID, onlyTracked)
	}
	var out []model.Order
	for _, o := range s.Orders {
		if o.UserID != userID {
			continue
		}
		if onlyTracked && o.TrackingID == "" {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// AttachTrackingID records the attachment.
func (s *OrderRepositoryStub) AttachTrackingID(ctx context.Context, id uuid.UUID, trackingID string) error {
	if s.AttachTrackingIDFn != nil {
		return s.AttachTrackingIDFn(ctx, id, trackingID)
	}
	if s.Attached == nil {
		s.Attached = make(map[uuid.UUID]string)
	}
	if _, exists := s.Attached[id]; exists {
		return domainErrors.ErrTrackingAttached
	}
	s.Attached[id] = trackingID
	return nil
}

// UpdatePaymentStatusByTracking records settlement writes.
func (s *OrderRepositoryStub) UpdatePaymentStatusByTracking(ctx context.Context, trackingID string, status model.PaymentStatus) error {
	if s.UpdatePaymentFn != nil {
		return s.UpdatePaymentFn(ctx, trackingID, status)
	}
	s.PaymentUpdates = append(s.PaymentUpdates, PaymentStatusUpdate{TrackingID: trackingID, Status: status})
	return nil
}

// UpdateFulfillment applies override when provided.
func (s *OrderRepositoryStub) UpdateFulfillment(ctx context.Context, id uuid.UUID, status model.FulfillmentStatus) error {
	if s.UpdateFulfillFn != nil {
		return s.UpdateFulfillFn(ctx, id, status)
	}
	return nil
}

// Delete records deletions.
func (s *OrderRepositoryStub) Delete(ctx context.Context, id uuid.UUID) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	s.Deleted = append(s.Deleted, id)
	return nil
}

// SelectBatchForReconciliation returns still-pending tracked orders.
func (s *OrderRepositoryStub) SelectBatchForReconciliation(ctx context.Context, limit int) ([]model.Order, error) {
	if s.SelectBatchFn != nil {
		return s.SelectBatchFn(ctx, limit)
	}
	if limit < len(s.Pending) {
		return s.Pending[:limit], nil
	}
	return s.Pending, nil
}
