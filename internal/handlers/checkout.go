package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/cart"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/checkout"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type checkoutInput struct {
	Email            string `json:"email" binding:"omitempty,email"`
	PaymentMethod    string `json:"payment_method"`
	PaymentReference string `json:"payment_reference"`
	CallbackURL      string `json:"callback_url"`
}

// 🟢 POST /api/checkout
func (h *Handler) Checkout(c *gin.Context) {
	sid, found := sessionID(c)
	if !found {
		return
	}

	var input checkoutInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			fail(c, http.StatusBadRequest, "invalid_request", "Invalid checkout request")
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
	method := input.PaymentMethod
	if method == "" && h.Payments != nil {
		method = h.Payments.Provider()
	}

	ctx := c.Request.Context()
	current, err := h.Sessions.LoadCart(ctx, sid.String())
	if err != nil {
		internalError(c, h.Logger, "load cart", err)
		return
	}
	addresses, err := h.Sessions.LoadShipping(ctx, sid.String())
	if err != nil {
		internalError(c, h.Logger, "load shipping", err)
		return
	}

	store := cart.NewStore(current)
	res, err := h.Deps.Checkout.Checkout(ctx, checkout.Request{
		SessionID:        sid,
		Cart:             store,
		Shipping:         addresses,
		CustomerEmail:    email,
		PaymentMethod:    method,
		PaymentReference: input.PaymentReference,
		CallbackURL:      input.CallbackURL,
	})

	switch {
	case err == nil:
		// commande enregistrée: le panier vidé doit survivre à une déconnexion du client
		saveCtx := context.WithoutCancel(ctx)
		if err := h.Sessions.SaveCart(saveCtx, sid.String(), store.Snapshot()); err != nil {
			h.Logger.Error("❌ order placed but cart not cleared",
				zap.String("order_id", res.Order.ID), zap.Error(err))
		}
		ok(c, http.StatusOK, gin.H{
			"order_id": res.Order.ID,
			"redirect": res.Redirect,
			"order":    res.Order,
			"amounts":  res.Amounts,
		})
	case errors.Is(err, checkout.ErrCheckoutInProgress):
		fail(c, http.StatusConflict, "checkout_in_progress", "Your order is already being processed")
	case errors.Is(err, checkout.ErrEmptyCart):
		fail(c, http.StatusBadRequest, "empty_cart", "Your cart is empty")
	case errors.Is(err, checkout.ErrInvalidAddress):
		fail(c, http.StatusBadRequest, "invalid_address", res.AddressError)
	case errors.Is(err, checkout.ErrPaymentAlreadyUsed):
		fail(c, http.StatusPaymentRequired, "payment_already_used", res.PaymentError)
	case errors.Is(err, checkout.ErrPaymentFailed):
		fail(c, http.StatusPaymentRequired, "payment_failed", res.PaymentError)
	case errors.Is(err, checkout.ErrOrderFailed):
		fail(c, http.StatusBadGateway, "order_failed", res.OrderError)
	default:
		internalError(c, h.Logger, "checkout", err)
	}
}

// 🟢 GET /api/checkout/status
func (h *Handler) CheckoutStatus(c *gin.Context) {
	sid, found := sessionID(c)
	if !found {
		return
	}
	ok(c, http.StatusOK, gin.H{
		"state":       h.Deps.Checkout.State(sid),
		"in_progress": h.Deps.Checkout.InProgress(sid),
	})
}
