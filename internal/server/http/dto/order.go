package dto

import (
	"time"

	"github.com/dukahub/storefront/internal/domain/model"
)

// OrderResponse is a customer-visible order record.
type OrderResponse struct {
	ID            string           `json:"id"`
	Number        string           `json:"order_number"`
	Items         []model.LineItem `json:"items"`
	Subtotal      float64          `json:"subtotal"`
	DeliveryCost  float64          `json:"delivery_cost"`
	TotalAmount   float64          `json:"total_amount"`
	PaymentStatus string           `json:"payment_status"`
	OrderStatus   string           `json:"order_status"`
	TrackingID    string           `json:"tracking_id,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// FulfillmentRequest advances an order's fulfillment status.
type FulfillmentRequest struct {
	Status string `json:"status"`
}
