package usecase

import (
	"errors"
	"testing"

	domainErrors "github.com/dukahub/storefront/internal/domain/errors"
	"github.com/dukahub/storefront/internal/domain/model"
)

func validCheckoutInput() *CheckoutInput {
	return &CheckoutInput{
		Items: []model.LineItem{
			{ProductID: "p-1", ProductName: "Leather bag", UnitPrice: 1500, Quantity: 2},
			{ProductID: "p-2", ProductName: "Wallet", UnitPrice: 1000, Quantity: 1},
		},
		Customer: model.CustomerInfo{
			FirstName: "Jane",
			LastName:  "Wanjiku",
			Email:     "jane@example.com",
			Phone:     "+254700000000",
		},
		Delivery: model.DeliveryInfo{
			County: "Kajiado",
			Option: "Express",
		},
	}
}

func TestValidateCheckoutAccepts(t *testing.T) {
	if err := ValidateCheckout(validCheckoutInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateCheckoutRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CheckoutInput)
	}{
		{name: "nil input", mutate: nil},
		{name: "empty cart", mutate: func(in *CheckoutInput) { in.Items = nil }},
		{name: "missing product id", mutate: func(in *CheckoutInput) { in.Items[0].ProductID = " " }},
		{name: "zero quantity", mutate: func(in *CheckoutInput) { in.Items[1].Quantity = 0 }},
		{name: "negative price", mutate: func(in *CheckoutInput) { in.Items[0].UnitPrice = -1 }},
		{name: "missing first name", mutate: func(in *CheckoutInput) { in.Customer.FirstName = "" }},
		{name: "missing last name", mutate: func(in *CheckoutInput) { in.Customer.LastName = "  " }},
		{name: "bad email", mutate: func(in *CheckoutInput) { in.Customer.Email = "not-an-email" }},
		{name: "missing phone", mutate: func(in *CheckoutInput) { in.Customer.Phone = "" }},
		{name: "missing county", mutate: func(in *CheckoutInput) { in.Delivery.County = "" }},
		{name: "missing option", mutate: func(in *CheckoutInput) { in.Delivery.Option = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var in *CheckoutInput
			if tc.mutate != nil {
				in = validCheckoutInput()
				tc.mutate(in)
			}
			if err := ValidateCheckout(in); !errors.Is(err, domainErrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
