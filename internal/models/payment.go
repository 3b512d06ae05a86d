package models

import "github.com/shopspring/decimal"

const PaymentStatusSuccess = "success"

type PaymentData struct {
	Email       string            `json:"email"`
	Amount      decimal.Decimal   `json:"amount"`
	Currency    string            `json:"currency"`
	Reference   string            `json:"reference"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// PaymentResult is what a gateway reports back. Status "success" means paid.
type PaymentResult struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Reference string `json:"reference"`
	Channel   string `json:"channel,omitempty"`
}

func (r PaymentResult) Succeeded() bool {
	return r.Status == PaymentStatusSuccess
}

// PreparedPayment is returned to the storefront so it can open the gateway's payment UI.
type PreparedPayment struct {
	Provider         string `json:"provider"`
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url,omitempty"`
	AccessCode       string `json:"access_code,omitempty"`
	ClientSecret     string `json:"client_secret,omitempty"`
}
