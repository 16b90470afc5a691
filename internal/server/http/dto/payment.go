package dto

// IPNRequest is the processor's notification payload. Field casing follows
// the processor's wire format. The payload only names the transaction; the
// settlement itself is re-queried from the processor.
type IPNRequest struct {
	OrderTrackingID        string `json:"OrderTrackingId"`
	OrderMerchantReference string `json:"OrderMerchantReference"`
	OrderNotificationType  string `json:"OrderNotificationType"`
}

// IPNResponse acknowledges a notification. Always sent with HTTP 200 so the
// processor does not retry against transient local failures.
type IPNResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// PaymentStatusResponse reports the processor's authoritative settlement
// state. Timeout is set when a bounded wait expired while still pending.
type PaymentStatusResponse struct {
	PaymentStatusDescription string  `json:"payment_status_description"`
	Amount                   float64 `json:"amount"`
	Timeout                  bool    `json:"timeout,omitempty"`
}
