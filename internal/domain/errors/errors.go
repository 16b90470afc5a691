package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("invalid checkout input")
	ErrTrackingAttached   = errors.New("order already submitted to processor")
	ErrInvalidTransition  = errors.New("invalid fulfillment transition")
)
