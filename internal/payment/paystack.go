package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/models"
	"go.uber.org/zap"
)

const DefaultPaystackBaseURL = "https://api.paystack.co"

type PaystackClient struct {
	secretKey string
	baseURL   string
	client    *http.Client
	logger    *zap.Logger
}

func NewPaystackClient(secretKey, baseURL string, logger *zap.Logger) *PaystackClient {
	if baseURL == "" {
		baseURL = DefaultPaystackBaseURL
	}
	return &PaystackClient{
		secretKey: secretKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: 15 * time.Second},
		logger:    logger,
	}
}

func (p *PaystackClient) Provider() string { return ProviderPaystack }

type paystackEnvelope[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type paystackInitRequest struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency,omitempty"`
	Reference   string            `json:"reference,omitempty"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type paystackInitData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type paystackTransaction struct {
	Status          string `json:"status"`
	Reference       string `json:"reference"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Channel         string `json:"channel"`
	GatewayResponse string `json:"gateway_response"`
}

// Prepare opens a Paystack transaction and returns the checkout URL/access code
// the storefront hands to the Paystack popup.
func (p *PaystackClient) Prepare(ctx context.Context, data models.PaymentData) (models.PreparedPayment, error) {
	body := paystackInitRequest{
		Email:       data.Email,
		Amount:      ToMinorUnits(data.Amount),
		Currency:    data.Currency,
		Reference:   data.Reference,
		CallbackURL: data.CallbackURL,
		Metadata:    data.Metadata,
	}

	var env paystackEnvelope[paystackInitData]
	status, err := p.do(ctx, http.MethodPost, "/transaction/initialize", body, &env)
	if err != nil {
		return models.PreparedPayment{}, err
	}
	if status >= 300 || !env.Status {
		return models.PreparedPayment{}, fmt.Errorf("%w: initialize: %s", ErrGateway, env.Message)
	}

	return models.PreparedPayment{
		Provider:         ProviderPaystack,
		Reference:        env.Data.Reference,
		AuthorizationURL: env.Data.AuthorizationURL,
		AccessCode:       env.Data.AccessCode,
	}, nil
}

// InitializePayment confirms the transaction behind data.Reference and checks
// that at least data.Amount was collected.
func (p *PaystackClient) InitializePayment(ctx context.Context, data models.PaymentData) (models.PaymentResult, error) {
	if data.Reference == "" {
		return models.PaymentResult{}, ErrMissingReference
	}

	tx, message, err := p.Verify(ctx, data.Reference)
	if err != nil {
		return models.PaymentResult{}, err
	}
	if tx == nil {
		return models.PaymentResult{Status: statusFailed, Message: message, Reference: data.Reference}, nil
	}

	result := models.PaymentResult{
		Status:    tx.Status,
		Message:   tx.GatewayResponse,
		Reference: tx.Reference,
		Channel:   tx.Channel,
	}
	if tx.Status != models.PaymentStatusSuccess {
		if result.Message == "" {
			result.Message = "Payment was not completed"
		}
		return result, nil
	}
	if want := ToMinorUnits(data.Amount); tx.Amount < want {
		p.logger.Warn("paystack amount mismatch",
			zap.String("reference", tx.Reference),
			zap.Int64("paid", tx.Amount),
			zap.Int64("expected", want))
		result.Status = statusFailed
		result.Message = "Amount paid does not match the order total"
	}
	return result, nil
}

// Verify fetches a transaction by reference. A nil transaction with a message
// means Paystack does not know the reference.
func (p *PaystackClient) Verify(ctx context.Context, reference string) (*paystackTransaction, string, error) {
	var env paystackEnvelope[paystackTransaction]
	status, err := p.do(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil, &env)
	if err != nil {
		return nil, "", err
	}
	switch {
	case status >= 500:
		return nil, "", fmt.Errorf("%w: verify: status %d", ErrGateway, status)
	case status >= 400 || !env.Status:
		return nil, env.Message, nil
	}
	return &env.Data, env.Message, nil
}

func (p *PaystackClient) do(ctx context.Context, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: read body: %v", ErrGateway, err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil && resp.StatusCode < 500 {
			return resp.StatusCode, fmt.Errorf("%w: decode: %v", ErrGateway, err)
		}
	}
	return resp.StatusCode, nil
}
