package model

// Processor status descriptions as reported by the payment gateway.
const (
	ProcessorStatusCompleted = "Completed"
	ProcessorStatusFailed    = "Failed"
	ProcessorStatusInvalid   = "Invalid"
	ProcessorStatusReversed  = "Reversed"
	ProcessorStatusPending   = "Pending"
)

// ProcessorStatus is the authoritative settlement record queried from the
// payment gateway. It is the only input allowed to drive payment-status
// transitions; notification payloads are never trusted directly.
type ProcessorStatus struct {
	TrackingID       string
	Description      string
	Amount           float64
	PaymentMethod    string
	ConfirmationCode string
}

// PaymentStatus maps the gateway's textual description onto the local
// payment domain. The second return value reports whether the description
// resolves to a terminal status; a non-terminal read must never downgrade
// an already-settled order.
func (s ProcessorStatus) PaymentStatus() (PaymentStatus, bool) {
	switch s.Description {
	case ProcessorStatusCompleted:
		return PaymentStatusPaid, true
	case ProcessorStatusFailed, ProcessorStatusInvalid:
		return PaymentStatusFailed, true
	case ProcessorStatusReversed:
		return PaymentStatusCancelled, true
	default:
		return PaymentStatusPending, false
	}
}

// PaymentSubmission is the gateway's response to a successful order
// submission: the tracking id used for all later status queries and the
// URL the payer is redirected to.
type PaymentSubmission struct {
	TrackingID        string
	MerchantReference string
	RedirectURL       string
}
