package dto

// CheckoutItem is a single cart line as sent by the storefront client.
type CheckoutItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category"`
}

// CheckoutCustomer carries buyer contact details.
type CheckoutCustomer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// CheckoutDelivery selects destination county and delivery option.
type CheckoutDelivery struct {
	County  string `json:"county"`
	Address string `json:"address"`
	Option  string `json:"deliveryOption"`
}

// CheckoutRequest is the POST /api/checkout payload. TotalAmount is the
// total the client displayed; the server recomputes and verifies it.
type CheckoutRequest struct {
	CartItems    []CheckoutItem   `json:"cartItems"`
	DeliveryInfo CheckoutDelivery `json:"deliveryInfo"`
	TotalAmount  float64          `json:"totalAmount"`
	CustomerInfo CheckoutCustomer `json:"customerInfo"`
}

// CheckoutData is the success payload: local identifiers plus the
// processor's tracking id and payment page URL.
type CheckoutData struct {
	OrderID         string `json:"orderId"`
	OrderNumber     string `json:"orderNumber"`
	OrderTrackingID string `json:"order_tracking_id"`
	RedirectURL     string `json:"redirect_url"`
}

// CheckoutResponse is the checkout envelope.
type CheckoutResponse struct {
	Success bool          `json:"success"`
	Data    *CheckoutData `json:"data,omitempty"`
	Error   string        `json:"error,omitempty"`
}
