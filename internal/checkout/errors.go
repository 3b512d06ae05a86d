package checkout

import "errors"

var (
	ErrCheckoutInProgress = errors.New("a checkout is already in progress for this session")
	ErrEmptyCart          = errors.New("cart is empty, nothing to checkout")
	ErrInvalidAddress     = errors.New("shipping address is incomplete")
	ErrPaymentFailed      = errors.New("payment failed")
	ErrPaymentAlreadyUsed = errors.New("payment reference already used by another order")
	ErrOrderFailed        = errors.New("order could not be created")
	ErrIllegalTransition  = errors.New("illegal transition of checkout state")
)

const (
	msgPaymentFailed = "Payment failed. Please try again."
	msgPaymentReused = "This payment has already been used for another order."
	msgOrderFailed   = "Your payment was received but we could not save your order. Our team has been notified and will contact you."
)
