package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationEntry records a payment that succeeded without an order being stored.
type ReconciliationEntry struct {
	SessionID        string          `json:"session_id"`
	PaymentReference string          `json:"payment_reference"`
	PaymentChannel   string          `json:"payment_channel,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	Email            string          `json:"email"`
	Error            string          `json:"error"`
	At               time.Time       `json:"at"`
}
