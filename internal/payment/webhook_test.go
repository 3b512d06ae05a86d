package payment

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v83"
)

func sign(body []byte, key string) string {
	mac := hmac.New(sha512.New, []byte(key))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaystackSignature(t *testing.T) {
	body := []byte(`{"event":"charge.success"}`)

	assert.True(t, VerifyPaystackSignature(body, sign(body, "sk"), "sk"))
	assert.False(t, VerifyPaystackSignature(body, sign(body, "other"), "sk"))
	assert.False(t, VerifyPaystackSignature(body, "", "sk"))
	assert.False(t, VerifyPaystackSignature(body, sign(body, ""), ""))
}

func TestParsePaystackEvent(t *testing.T) {
	body := []byte(`{"event":"charge.success","data":{"status":"success","reference":"CYP-9","amount":5000,"channel":"bank"}}`)

	ev, err := ParsePaystackEvent(body, sign(body, "sk"), "sk")
	require.NoError(t, err)
	assert.True(t, ev.Succeeded())
	assert.Equal(t, "CYP-9", ev.Reference())
	assert.Equal(t, "bank", ev.Channel())

	_, err = ParsePaystackEvent(body, "bad", "sk")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestResultFromIntent(t *testing.T) {
	ok := resultFromIntent(&stripe.PaymentIntent{
		ID:                 "pi_1",
		Status:             stripe.PaymentIntentStatusSucceeded,
		AmountReceived:     5000,
		PaymentMethodTypes: []string{"card"},
	}, 5000)
	assert.True(t, ok.Succeeded())
	assert.Equal(t, "pi_1", ok.Reference)

	short := resultFromIntent(&stripe.PaymentIntent{ID: "pi_2", Status: stripe.PaymentIntentStatusSucceeded, AmountReceived: 10}, 5000)
	assert.False(t, short.Succeeded())

	processing := resultFromIntent(&stripe.PaymentIntent{ID: "pi_3", Status: stripe.PaymentIntentStatusProcessing}, 1)
	assert.Equal(t, "pending", processing.Status)

	canceled := resultFromIntent(&stripe.PaymentIntent{ID: "pi_4", Status: stripe.PaymentIntentStatusCanceled}, 1)
	assert.Equal(t, "failed", canceled.Status)
	assert.Equal(t, "Payment was cancelled", canceled.Message)
}
