package model

import "testing"

func TestPaymentStatusIsTerminal(t *testing.T) {
	cases := []struct {
		status   PaymentStatus
		terminal bool
	}{
		{PaymentStatusPending, false},
		{PaymentStatusPaid, true},
		{PaymentStatusFailed, true},
		{PaymentStatusCancelled, true},
	}

	for _, tc := range cases {
		if tc.status.IsTerminal() != tc.terminal {
			t.Fatalf("expected IsTerminal()=%v for %s", tc.terminal, tc.status)
		}
	}
}

func TestFulfillmentCanAdvanceTo(t *testing.T) {
	cases := []struct {
		name    string
		from    FulfillmentStatus
		to      FulfillmentStatus
		allowed bool
	}{
		{"processing to confirmed", FulfillmentProcessing, FulfillmentConfirmed, true},
		{"confirmed to shipped", FulfillmentConfirmed, FulfillmentShipped, true},
		{"shipped to delivered", FulfillmentShipped, FulfillmentDelivered, true},
		{"processing to cancelled", FulfillmentProcessing, FulfillmentCancelled, true},
		{"processing to shipped skips confirmation", FulfillmentProcessing, FulfillmentShipped, false},
		{"delivered is terminal", FulfillmentDelivered, FulfillmentCancelled, false},
		{"cancelled is terminal", FulfillmentCancelled, FulfillmentConfirmed, false},
		{"no going back", FulfillmentShipped, FulfillmentConfirmed, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanAdvanceTo(tc.to); got != tc.allowed {
				t.Fatalf("expected %v for %s -> %s, got %v", tc.allowed, tc.from, tc.to, got)
			}
		})
	}
}

func TestProcessorStatusMapping(t *testing.T) {
	cases := []struct {
		description string
		want        PaymentStatus
		terminal    bool
	}{
		{ProcessorStatusCompleted, PaymentStatusPaid, true},
		{ProcessorStatusFailed, PaymentStatusFailed, true},
		{ProcessorStatusInvalid, PaymentStatusFailed, true},
		{ProcessorStatusReversed, PaymentStatusCancelled, true},
		{ProcessorStatusPending, PaymentStatusPending, false},
		{"SomethingNew", PaymentStatusPending, false},
	}

	for _, tc := range cases {
		status := ProcessorStatus{Description: tc.description}
		got, terminal := status.PaymentStatus()
		if got != tc.want || terminal != tc.terminal {
			t.Fatalf("description %q: expected (%s, %v), got (%s, %v)", tc.description, tc.want, tc.terminal, got, terminal)
		}
	}
}
