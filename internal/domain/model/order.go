package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus describes settlement state of an order. Terminal statuses
// are never overwritten once recorded.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// IsTerminal reports whether no further payment transition is valid.
func (s PaymentStatus) IsTerminal() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusFailed, PaymentStatusCancelled:
		return true
	}
	return false
}

// FulfillmentStatus describes order handling progress. It is advanced
// manually by an administrator and is independent of settlement, except
// that a failed payment cancels a still-processing order.
type FulfillmentStatus string

const (
	FulfillmentProcessing FulfillmentStatus = "processing"
	FulfillmentConfirmed  FulfillmentStatus = "confirmed"
	FulfillmentShipped    FulfillmentStatus = "shipped"
	FulfillmentDelivered  FulfillmentStatus = "delivered"
	FulfillmentCancelled  FulfillmentStatus = "cancelled"
)

// CanAdvanceTo reports whether the transition from s to next is allowed.
func (s FulfillmentStatus) CanAdvanceTo(next FulfillmentStatus) bool {
	if s == FulfillmentDelivered || s == FulfillmentCancelled {
		return false
	}
	switch next {
	case FulfillmentCancelled:
		return true
	case FulfillmentConfirmed:
		return s == FulfillmentProcessing
	case FulfillmentShipped:
		return s == FulfillmentConfirmed
	case FulfillmentDelivered:
		return s == FulfillmentShipped
	}
	return false
}

// LineItem is a snapshot of a purchased product taken at order creation
// time. Prices are frozen and never recomputed from live catalog data.
type LineItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"product_price"`
	Quantity    int     `json:"quantity"`
	Category    string  `json:"category,omitempty"`
	ItemTotal   float64 `json:"item_total"`
}

// CustomerInfo is the billing and contact snapshot attached to an order.
type CustomerInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address,omitempty"`
}

// DeliveryInfo captures the chosen delivery destination and option.
type DeliveryInfo struct {
	County  string  `json:"county"`
	Address string  `json:"address,omitempty"`
	Option  string  `json:"delivery_option"`
	Cost    float64 `json:"delivery_cost"`
}

// Order is a single purchase attempt. TrackingID stays empty until the
// payment processor accepts the submission.
type Order struct {
	ID           uuid.UUID
	UserID       int64
	Number       string
	Items        []LineItem
	Customer     CustomerInfo
	Delivery     DeliveryInfo
	Subtotal     float64
	DeliveryCost float64
	TotalAmount  float64
	Payment      PaymentStatus
	Fulfillment  FulfillmentStatus
	TrackingID   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
