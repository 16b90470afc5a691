package usecase

import (
	"fmt"
	"net/mail"
	"strings"

	domainErrors "github.com/dukahub/storefront/internal/domain/errors"
	"github.com/dukahub/storefront/internal/domain/model"
)

// CheckoutInput is the client's checkout request after transport decoding.
// ClientTotal is the amount the client displayed to the buyer; it is checked
// against the server-side computation and rejected on mismatch.
type CheckoutInput struct {
	Items       []model.LineItem
	Customer    model.CustomerInfo
	Delivery    model.DeliveryInfo
	ClientTotal float64
}

// ValidateCheckout checks a checkout request before any pricing or
// persistence. Every failure wraps ErrValidation with the offending field.
func ValidateCheckout(in *CheckoutInput) error {
	if in == nil || len(in.Items) == 0 {
		return fmt.Errorf("%w: cart is empty", domainErrors.ErrValidation)
	}

	for i, item := range in.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			return fmt.Errorf("%w: item %d has no product id", domainErrors.ErrValidation, i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item %d has non-positive quantity", domainErrors.ErrValidation, i)
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("%w: item %d has negative price", domainErrors.ErrValidation, i)
		}
	}

	if strings.TrimSpace(in.Customer.FirstName) == "" || strings.TrimSpace(in.Customer.LastName) == "" {
		return fmt.Errorf("%w: customer name is required", domainErrors.ErrValidation)
	}
	if _, err := mail.ParseAddress(in.Customer.Email); err != nil {
		return fmt.Errorf("%w: customer email is not valid", domainErrors.ErrValidation)
	}
	if strings.TrimSpace(in.Customer.Phone) == "" {
		return fmt.Errorf("%w: customer phone is required", domainErrors.ErrValidation)
	}

	if strings.TrimSpace(in.Delivery.County) == "" {
		return fmt.Errorf("%w: delivery county is required", domainErrors.ErrValidation)
	}
	if strings.TrimSpace(in.Delivery.Option) == "" {
		return fmt.Errorf("%w: delivery option is required", domainErrors.ErrValidation)
	}

	return nil
}
