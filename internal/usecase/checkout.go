package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"strings"

	"github.com/dukahub/storefront/internal/adapter/pesapal"
	domainErrors "github.com/dukahub/storefront/internal/domain/errors"
	"github.com/dukahub/storefront/internal/domain/model"
	"github.com/dukahub/storefront/internal/domain/repository"
	"github.com/dukahub/storefront/internal/pkg/ordernum"
)

const (
	checkoutCurrency     = "KES"
	checkoutCallbackType = "ecommerce"

	// the processor caps the order description length
	maxDescriptionChars = 100
)

// CheckoutResult is the outcome of a successful checkout: the persisted
// order carrying its processor tracking id, plus the URL the payer is sent
// to for card entry.
type CheckoutResult struct {
	Order       *model.Order
	RedirectURL string
}

// CheckoutUseCase turns a validated cart into a pending order submitted to
// the payment processor. The order is persisted before submission so a
// crash mid-checkout leaves an auditable record; if the processor rejects
// the submission the record is rolled back with a best-effort delete.
type CheckoutUseCase struct {
	orders    repository.OrderRepository
	processor pesapal.Client
	baseURL   string
	logger    *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase. baseURL is the public
// storefront URL used to build the payer callback.
func NewCheckoutUseCase(orders repository.OrderRepository, processor pesapal.Client, baseURL string, logger *slog.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{orders: orders, processor: processor, baseURL: baseURL, logger: logger}
}

// Checkout validates and prices the cart, persists a pending order, submits
// it to the processor and attaches the returned tracking id.
func (u *CheckoutUseCase) Checkout(ctx context.Context, userID int64, in *CheckoutInput) (*CheckoutResult, error) {
	if err := ValidateCheckout(in); err != nil {
		return nil, err
	}

	var subtotal float64
	items := make([]model.LineItem, len(in.Items))
	for i, item := range in.Items {
		item.ItemTotal = item.UnitPrice * float64(item.Quantity)
		items[i] = item
		subtotal += item.ItemTotal
	}

	deliveryCost, err := DeliveryCost(subtotal, in.Delivery.County, in.Delivery.Option)
	if err != nil {
		return nil, err
	}
	total := subtotal + deliveryCost

	if in.ClientTotal > 0 && math.Abs(in.ClientTotal-total) > 0.01 {
		return nil, fmt.Errorf("%w: total %0.2f does not match computed %0.2f", domainErrors.ErrValidation, in.ClientTotal, total)
	}

	delivery := in.Delivery
	delivery.Cost = deliveryCost

	number, err := ordernum.Generate()
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	order, err := u.orders.CreatePending(ctx, &model.Order{
		UserID:       userID,
		Number:       number,
		Items:        items,
		Customer:     in.Customer,
		Delivery:     delivery,
		Subtotal:     subtotal,
		DeliveryCost: deliveryCost,
		TotalAmount:  total,
	})
	if err != nil {
		return nil, err
	}

	submission, err := u.processor.SubmitOrder(ctx, pesapal.OrderRequest{
		MerchantReference: order.ID.String(),
		Currency:          checkoutCurrency,
		Amount:            total,
		Description:       orderDescription(items),
		CallbackURL:       u.callbackURL(order),
		Billing: pesapal.BillingAddress{
			Email:       in.Customer.Email,
			Phone:       in.Customer.Phone,
			CountryCode: "KE",
			FirstName:   in.Customer.FirstName,
			LastName:    in.Customer.LastName,
		},
	})
	if err != nil {
		u.rollback(ctx, order, err)
		return nil, err
	}
	if submission.RedirectURL == "" {
		err := pesapal.SubmissionError{Message: "no redirect url in processor response"}
		u.rollback(ctx, order, err)
		return nil, err
	}

	if err := u.orders.AttachTrackingID(ctx, order.ID, submission.TrackingID); err != nil {
		u.rollback(ctx, order, err)
		return nil, err
	}
	order.TrackingID = submission.TrackingID

	u.logger.Info("checkout completed",
		slog.String("order_number", order.Number),
		slog.String("tracking_id", order.TrackingID),
		slog.Float64("total", total),
	)

	return &CheckoutResult{Order: order, RedirectURL: submission.RedirectURL}, nil
}

// callbackURL is where the processor redirects the payer after card entry.
// The query carries the operation type and the local order id so the
// landing page can resolve the order without a session.
func (u *CheckoutUseCase) callbackURL(order *model.Order) string {
	query := url.Values{}
	query.Set("type", checkoutCallbackType)
	query.Set("order_id", order.ID.String())
	return u.baseURL + "/payment/callback?" + query.Encode()
}

// orderDescription summarizes the cart for the processor's payment page:
// product names joined and cut off at maxDescriptionChars.
func orderDescription(items []model.LineItem) string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.ProductName
	}
	joined := strings.Join(names, ", ")
	if len(joined) > maxDescriptionChars {
		return joined[:maxDescriptionChars] + "..."
	}
	return joined
}

// rollback removes the pending order after a failed submission. The delete
// is best-effort: its failure is logged alongside the primary error and
// never masks it.
func (u *CheckoutUseCase) rollback(ctx context.Context, order *model.Order, cause error) {
	if err := u.orders.Delete(ctx, order.ID); err != nil {
		u.logger.Error("failed to roll back order after submission failure",
			slog.String("order_number", order.Number),
			slog.Any("cause", cause),
			slog.Any("rollback_error", err),
		)
		return
	}
	u.logger.Warn("order rolled back after submission failure",
		slog.String("order_number", order.Number),
		slog.Any("cause", cause),
	)
}
