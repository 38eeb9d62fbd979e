package payment

import "errors"

var (
	// ErrPaymentNotFound is returned when no payment matches a reference.
	ErrPaymentNotFound = errors.New("payment not found")
)
