// Package payment talks to the card gateways (Paystack, Stripe).
package payment

import (
	"context"
	"errors"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/models"
	"github.com/shopspring/decimal"
)

const (
	ProviderPaystack = "paystack"
	ProviderStripe   = "stripe"
)

var (
	ErrMissingReference = errors.New("payment reference is required")
	ErrGateway          = errors.New("payment gateway error")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

const (
	statusFailed  = "failed"
	statusPending = "pending"
)

// Gateway prepares a payment for the storefront and later confirms it.
// InitializePayment reports a declined or unfinished payment through the
// result status; the error is reserved for transport and gateway faults.
type Gateway interface {
	Provider() string
	Prepare(ctx context.Context, data models.PaymentData) (models.PreparedPayment, error)
	InitializePayment(ctx context.Context, data models.PaymentData) (models.PaymentResult, error)
}

// ToMinorUnits converts a major-unit amount (naira, dollars) to kobo/cents.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}
