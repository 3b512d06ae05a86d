package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/models"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
	"go.uber.org/zap"
)

type StripeGateway struct {
	logger *zap.Logger
}

// NewStripeGateway sets the process-wide Stripe key.
func NewStripeGateway(secretKey string, logger *zap.Logger) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{logger: logger}
}

func (s *StripeGateway) Provider() string { return ProviderStripe }

// Prepare creates a PaymentIntent; the storefront confirms it with the client secret.
func (s *StripeGateway) Prepare(ctx context.Context, data models.PaymentData) (models.PreparedPayment, error) {
	metadata := make(map[string]string, len(data.Metadata)+1)
	for k, v := range data.Metadata {
		metadata[k] = v
	}
	if data.Reference != "" {
		metadata["reference"] = data.Reference
	}

	params := &stripe.PaymentIntentParams{
		Params:       stripe.Params{Context: ctx},
		Amount:       stripe.Int64(ToMinorUnits(data.Amount)),
		Currency:     stripe.String(strings.ToLower(data.Currency)),
		ReceiptEmail: stripe.String(data.Email),
		Metadata:     metadata,
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return models.PreparedPayment{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	return models.PreparedPayment{
		Provider:     ProviderStripe,
		Reference:    intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// InitializePayment checks the PaymentIntent whose id is data.Reference.
func (s *StripeGateway) InitializePayment(ctx context.Context, data models.PaymentData) (models.PaymentResult, error) {
	if data.Reference == "" {
		return models.PaymentResult{}, ErrMissingReference
	}
	if !strings.HasPrefix(data.Reference, "pi_") {
		return models.PaymentResult{Status: statusFailed, Message: "Unknown payment reference", Reference: data.Reference}, nil
	}

	intent, err := paymentintent.Get(data.Reference, &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return models.PaymentResult{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	res := resultFromIntent(intent, ToMinorUnits(data.Amount))
	s.logger.Info("stripe payment intent checked",
		zap.String("intent", intent.ID),
		zap.String("status", string(intent.Status)),
		zap.String("result", res.Status))
	return res, nil
}

func resultFromIntent(pi *stripe.PaymentIntent, expected int64) models.PaymentResult {
	res := models.PaymentResult{Reference: pi.ID, Channel: "card"}
	if len(pi.PaymentMethodTypes) > 0 {
		res.Channel = pi.PaymentMethodTypes[0]
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		if pi.AmountReceived < expected {
			res.Status = statusFailed
			res.Message = "Amount paid does not match the order total"
			return res
		}
		res.Status = models.PaymentStatusSuccess
	case stripe.PaymentIntentStatusProcessing:
		res.Status = statusPending
		res.Message = "Payment is still processing"
	case stripe.PaymentIntentStatusCanceled:
		res.Status = statusFailed
		res.Message = "Payment was cancelled"
	default:
		res.Status = statusFailed
		res.Message = "Payment was not completed"
	}
	return res
}
