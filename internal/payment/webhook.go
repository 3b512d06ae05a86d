package payment

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/webhook"
)

const PaystackSignatureHeader = "x-paystack-signature"

// VerifyPaystackSignature checks the HMAC-SHA512 of body keyed with the secret key.
func VerifyPaystackSignature(body []byte, signature, secretKey string) bool {
	if signature == "" || secretKey == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

type PaystackEvent struct {
	Event string              `json:"event"`
	Data  paystackTransaction `json:"data"`
}

// ParsePaystackEvent verifies and decodes a webhook body.
func ParsePaystackEvent(body []byte, signature, secretKey string) (PaystackEvent, error) {
	var ev PaystackEvent
	if !VerifyPaystackSignature(body, signature, secretKey) {
		return ev, ErrInvalidSignature
	}
	if err := json.Unmarshal(body, &ev); err != nil {
		return ev, fmt.Errorf("decode paystack event: %w", err)
	}
	return ev, nil
}

func (e PaystackEvent) Succeeded() bool {
	return e.Event == "charge.success" && e.Data.Status == "success"
}

func (e PaystackEvent) Reference() string { return e.Data.Reference }

func (e PaystackEvent) Channel() string { return e.Data.Channel }

// StripeIntentEvent is the part of a payment_intent.* event the shop cares about.
type StripeIntentEvent struct {
	Type     string
	IntentID string
	Channel  string
}

func (e StripeIntentEvent) Succeeded() bool {
	return e.Type == "payment_intent.succeeded"
}

func (e StripeIntentEvent) Failed() bool {
	return e.Type == "payment_intent.payment_failed"
}

// ParseStripeEvent verifies the Stripe-Signature header and decodes the intent.
func ParseStripeEvent(body []byte, signature, secret string) (StripeIntentEvent, error) {
	event, err := webhook.ConstructEvent(body, signature, secret)
	if err != nil {
		return StripeIntentEvent{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	out := StripeIntentEvent{Type: string(event.Type)}
	if event.Data == nil {
		return out, nil
	}
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return out, fmt.Errorf("decode payment intent: %w", err)
	}
	out.IntentID = pi.ID
	if len(pi.PaymentMethodTypes) > 0 {
		out.Channel = pi.PaymentMethodTypes[0]
	}
	return out, nil
}
