package test

import (
	"context"
	"sync"

	"github.com/dukahub/storefront/internal/adapter/pesapal"
	"github.com/dukahub/storefront/internal/domain/model"
)

// ProcessorClientStub simulates the payment processor for tests.
type ProcessorClientStub struct {
	EnsureIPNFn func(context.Context) (string, error)
	SubmitFn    func(context.Context, pesapal.OrderRequest) (*model.PaymentSubmission, error)
	StatusFn    func(context.Context, string) (*model.ProcessorStatus, error)

	mu          sync.Mutex
	Submitted   []pesapal.OrderRequest
	StatusCalls []string
}

// Lock exposes internal mutex for external synchronization.
func (s *ProcessorClientStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *ProcessorClientStub) Unlock() { s.mu.Unlock() }

// EnsureIPN returns a fixed registration id unless overridden.
func (s *ProcessorClientStub) EnsureIPN(ctx context.Context) (string, error) {
	if s.EnsureIPNFn != nil {
		return s.EnsureIPNFn(ctx)
	}
	return "ipn-stub", nil
}

// SubmitOrder records the request and returns a default submission.
func (s *ProcessorClientStub) SubmitOrder(ctx context.Context, req pesapal.OrderRequest) (*model.PaymentSubmission, error) {
	s.mu.Lock()
	s.Submitted = append(s.Submitted, req)
	s.mu.Unlock()
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, req)
	}
	return &model.PaymentSubmission{
		TrackingID:        "trk-stub",
		MerchantReference: req.MerchantReference,
		RedirectURL:       "https://pay.example/redirect",
	}, nil
}

// TransactionStatus records the query and returns a completed settlement.
func (s *ProcessorClientStub) TransactionStatus(ctx context.Context, trackingID string) (*model.ProcessorStatus, error) {
	s.mu.Lock()
	s.StatusCalls = append(s.StatusCalls, trackingID)
	s.mu.Unlock()
	if s.StatusFn != nil {
		return s.StatusFn(ctx, trackingID)
	}
	return &model.ProcessorStatus{
		TrackingID:  trackingID,
		Description: model.ProcessorStatusCompleted,
		Amount:      100,
	}, nil
}
