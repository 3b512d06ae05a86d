package orders

import "errors"

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidOrder         = errors.New("invalid order")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	// ErrPaymentReferenceUsed means another order already carries the reference.
	ErrPaymentReferenceUsed = errors.New("payment reference already used")
)
