package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/middleware"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/models"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/orders"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/payment"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxWebhookBody = 64 << 10

// 🟢 POST /api/payments/prepare
// Crée la transaction chez le prestataire; le client la finalise puis appelle /api/checkout.
func (h *Handler) PreparePayment(c *gin.Context) {
	sid, found := sessionID(c)
	if !found {
		return
	}
	var input struct {
		Email       string `json:"email" binding:"omitempty,email"`
		CallbackURL string `json:"callback_url"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			fail(c, http.StatusBadRequest, "invalid_request", "Invalid payment request")
			return
		}
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		email = middleware.UserEmail(c)
	}
	if email == "" {
		fail(c, http.StatusBadRequest, "email_required", "Please enter your email address")
		return
	}

	current, err := h.Sessions.LoadCart(c.Request.Context(), sid.String())
	if err != nil {
		internalError(c, h.Logger, "load cart", err)
		return
	}
	if current.IsEmpty() {
		fail(c, http.StatusBadRequest, "empty_cart", "Your cart is empty")
		return
	}
	amounts := h.Deps.Checkout.Quote(current)

	prepared, err := h.Payments.Prepare(c.Request.Context(), models.PaymentData{
		Email:       email,
		Amount:      amounts.Total,
		Currency:    h.Currency,
		Reference:   "CYP-" + uuid.NewString(),
		CallbackURL: input.CallbackURL,
		Metadata:    map[string]string{"session_id": sid.String()},
	})
	if err != nil {
		h.Logger.Warn("⚠️ payment prepare failed", zap.String("session_id", sid.String()), zap.Error(err))
		fail(c, http.StatusBadGateway, "payment_unavailable", "Payment could not be started. Please try again.")
		return
	}
	ok(c, http.StatusOK, gin.H{"payment": prepared, "amounts": amounts})
}

// 🔔 POST /api/payments/paystack/webhook
func (h *Handler) PaystackWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid_body", "Cannot read body")
		return
	}
	event, err := payment.ParsePaystackEvent(body, c.GetHeader(payment.PaystackSignatureHeader), h.PaystackSecret)
	if errors.Is(err, payment.ErrInvalidSignature) {
		h.Logger.Warn("🚫 paystack webhook with bad signature", zap.String("ip", c.ClientIP()))
		fail(c, http.StatusUnauthorized, "invalid_signature", "Invalid signature")
		return
	}
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid_event", "Cannot decode event")
		return
	}

	if event.Succeeded() {
		h.markPaid(c, event.Reference(), event.Channel())
	}
	ok(c, http.StatusOK, gin.H{"received": true})
}

// 🔔 POST /api/payments/stripe/webhook
func (h *Handler) StripeWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid_body", "Cannot read body")
		return
	}
	event, err := payment.ParseStripeEvent(body, c.GetHeader("Stripe-Signature"), h.StripeWebhookSecret)
	if errors.Is(err, payment.ErrInvalidSignature) {
		h.Logger.Warn("🚫 stripe webhook with bad signature", zap.String("ip", c.ClientIP()))
		fail(c, http.StatusUnauthorized, "invalid_signature", "Invalid signature")
		return
	}
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid_event", "Cannot decode event")
		return
	}

	switch {
	case event.Succeeded():
		h.markPaid(c, event.IntentID, event.Channel)
	case event.Failed():
		if _, err := h.Orders.MarkFailedByReference(c.Request.Context(), event.IntentID); err != nil && !errors.Is(err, orders.ErrOrderNotFound) {
			h.Logger.Error("❌ cannot mark order failed", zap.String("reference", event.IntentID), zap.Error(err))
		}
	}
	ok(c, http.StatusOK, gin.H{"received": true})
}

// markPaid enregistre une confirmation du prestataire. La commande peut ne pas
// encore exister si le webhook arrive avant /api/checkout, qui vérifie lui-même le paiement.
func (h *Handler) markPaid(c *gin.Context, reference, channel string) {
	order, err := h.Orders.MarkPaidByReference(c.Request.Context(), reference, channel)
	switch {
	case errors.Is(err, orders.ErrOrderNotFound):
		h.Logger.Info("webhook for unknown order", zap.String("reference", reference))
	case err != nil:
		h.Logger.Error("❌ cannot mark order paid", zap.String("reference", reference), zap.Error(err))
	default:
		h.Logger.Info("✅ payment confirmed by webhook",
			zap.String("order_id", order.ID),
			zap.String("reference", reference))
	}
}
