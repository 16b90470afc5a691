package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	domainErrors "github.com/dukahub/storefront/internal/domain/errors"
	"github.com/dukahub/storefront/internal/domain/model"
	testhelpers "github.com/dukahub/storefront/internal/test"
)

func TestOrderUseCaseGetForUser(t *testing.T) {
	id := uuid.New()
	orders := &testhelpers.OrderRepositoryStub{
		Orders: []model.Order{{ID: id, UserID: 2, Number: "ORD-1-abc"}},
	}
	uc := NewOrderUseCase(orders, &testhelpers.ProcessorClientStub{}, testLogger())

	if _, err := uc.GetForUser(context.Background(), 2, id); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	if _, err := uc.GetForUser(context.Background(), 1, id); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("foreign order must read as missing, got %v", err)
	}
	if _, err := uc.GetForUser(context.Background(), 2, uuid.New()); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderUseCaseSyncStatusAppliesTerminal(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	processor := &testhelpers.ProcessorClientStub{
		StatusFn: func(_ context.Context, trackingID string) (*model.ProcessorStatus, error) {
			return &model.ProcessorStatus{TrackingID: trackingID, Description: model.ProcessorStatusCompleted, Amount: 4750}, nil
		},
	}
	uc := NewOrderUseCase(orders, processor, testLogger())

	status, err := uc.SyncStatus(context.Background(), "trk-1")
	if err != nil {
		t.Fatalf("sync returned error: %v", err)
	}
	if status.Amount != 4750 {
		t.Fatalf("unexpected amount %v", status.Amount)
	}
	if len(orders.PaymentUpdates) != 1 {
		t.Fatalf("expected one settlement write, got %d", len(orders.PaymentUpdates))
	}
	update := orders.PaymentUpdates[0]
	if update.TrackingID != "trk-1" || update.Status != model.PaymentStatusPaid {
		t.Fatalf("unexpected update %+v", update)
	}
}

func TestOrderUseCaseSyncStatusMapsFailures(t *testing.T) {
	cases := []struct {
		description string
		want        model.PaymentStatus
	}{
		{description: model.ProcessorStatusFailed, want: model.PaymentStatusFailed},
		{description: model.ProcessorStatusInvalid, want: model.PaymentStatusFailed},
		{description: model.ProcessorStatusReversed, want: model.PaymentStatusCancelled},
		{description: "SomethingNew", want: model.PaymentStatusPending},
	}

	for _, tc := range cases {
		t.Run(tc.description, func(t *testing.T) {
			orders := &testhelpers.OrderRepositoryStub{}
			processor := &testhelpers.ProcessorClientStub{
				StatusFn: func(_ context.Context, trackingID string) (*model.ProcessorStatus, error) {
					return &model.ProcessorStatus{TrackingID: trackingID, Description: tc.description}, nil
				},
			}
			uc := NewOrderUseCase(orders, processor, testLogger())

			if _, err := uc.SyncStatus(context.Background(), "trk-1"); err != nil {
				t.Fatalf("sync returned error: %v", err)
			}
			if got := orders.PaymentUpdates[0].Status; got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestOrderUseCaseSyncStatusProcessorError(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	boom := errors.New("processor down")
	processor := &testhelpers.ProcessorClientStub{
		StatusFn: func(context.Context, string) (*model.ProcessorStatus, error) { return nil, boom },
	}
	uc := NewOrderUseCase(orders, processor, testLogger())

	if _, err := uc.SyncStatus(context.Background(), "trk-1"); !errors.Is(err, boom) {
		t.Fatalf("expected processor error, got %v", err)
	}
	if len(orders.PaymentUpdates) != 0 {
		t.Fatal("no settlement write expected on query failure")
	}
}

func TestOrderUseCaseSyncStatusUnknownOrder(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{
		UpdatePaymentFn: func(context.Context, string, model.PaymentStatus) error {
			return domainErrors.ErrNotFound
		},
	}
	uc := NewOrderUseCase(orders, &testhelpers.ProcessorClientStub{}, testLogger())

	if _, err := uc.SyncStatus(context.Background(), "trk-unknown"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderUseCaseAdvanceFulfillment(t *testing.T) {
	var recorded model.FulfillmentStatus
	orders := &testhelpers.OrderRepositoryStub{
		UpdateFulfillFn: func(_ context.Context, _ uuid.UUID, status model.FulfillmentStatus) error {
			recorded = status
			return nil
		},
	}
	uc := NewOrderUseCase(orders, &testhelpers.ProcessorClientStub{}, testLogger())

	if err := uc.AdvanceFulfillment(context.Background(), uuid.New(), model.FulfillmentShipped); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recorded != model.FulfillmentShipped {
		t.Fatalf("expected shipped, got %s", recorded)
	}

	if err := uc.AdvanceFulfillment(context.Background(), uuid.New(), "bogus"); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := uc.AdvanceFulfillment(context.Background(), uuid.New(), model.FulfillmentProcessing); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("processing is not a valid target, got %v", err)
	}
}

func TestOrderUseCaseListByUser(t *testing.T) {
	tracked := model.Order{ID: uuid.New(), UserID: 1, TrackingID: "trk-1"}
	untracked := model.Order{ID: uuid.New(), UserID: 1}
	orders := &testhelpers.OrderRepositoryStub{Orders: []model.Order{tracked, untracked}}
	uc := NewOrderUseCase(orders, &testhelpers.ProcessorClientStub{}, testLogger())

	got, err := uc.ListByUser(context.Background(), 1, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != tracked.ID {
		t.Fatalf("expected only tracked order, got %+v", got)
	}

	all, err := uc.ListByUser(context.Background(), 1, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both orders, got %d", len(all))
	}
}
