package handlers

import (
	"errors"
	"net/http"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/models"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/orders"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ownOrder charge une commande de la session appelante.
// Les commandes des autres sessions sont signalées comme introuvables.
func (h *Handler) ownOrder(c *gin.Context) (models.Order, bool) {
	sid, found := sessionID(c)
	if !found {
		return models.Order{}, false
	}
	order, err := h.Orders.GetOrderByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, orders.ErrOrderNotFound) || (err == nil && order.SessionID != sid.String()) {
		fail(c, http.StatusNotFound, "order_not_found", "Order not found")
		return models.Order{}, false
	}
	if err != nil {
		internalError(c, h.Logger, "get order", err)
		return models.Order{}, false
	}
	return order, true
}

// 🟢 GET /api/orders/:id
func (h *Handler) GetOrder(c *gin.Context) {
	order, found := h.ownOrder(c)
	if !found {
		return
	}
	ok(c, http.StatusOK, order)
}

// 🟢 GET /api/orders
func (h *Handler) ListOrders(c *gin.Context) {
	sid, found := sessionID(c)
	if !found {
		return
	}
	list, err := h.Orders.ListBySession(c.Request.Context(), sid.String())
	if err != nil {
		internalError(c, h.Logger, "list orders", err)
		return
	}
	if list == nil {
		list = []models.Order{}
	}
	ok(c, http.StatusOK, list)
}

// 🟢 POST /api/orders/:id/confirmation
func (h *Handler) ResendConfirmation(c *gin.Context) {
	order, found := h.ownOrder(c)
	if !found {
		return
	}
	if err := h.Orders.SendOrderConfirmation(c.Request.Context(), order.ID); err != nil {
		h.Logger.Warn("⚠️ confirmation resend failed", zap.String("order_id", order.ID), zap.Error(err))
		fail(c, http.StatusBadGateway, "email_failed", "We could not send the email. Please try again later.")
		return
	}
	ok(c, http.StatusOK, gin.H{"sent": true})
}
