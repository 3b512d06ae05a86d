package handlers

import (
	"errors"
	"net/http"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/models"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/shipping"
	"github.com/gin-gonic/gin"
)

// mutateShipping charge les adresses de la session, applique fn puis sauvegarde.
// Si fn renvoie false, rien n'est sauvegardé et fn a déjà écrit la réponse.
func (h *Handler) mutateShipping(c *gin.Context, fn func(*shipping.Manager) bool) {
	sid, found := sessionID(c)
	if !found {
		return
	}
	ctx := c.Request.Context()

	m, err := h.Sessions.LoadShipping(ctx, sid.String())
	if err != nil {
		internalError(c, h.Logger, "load shipping", err)
		return
	}
	if !fn(m) {
		return
	}
	if err := h.Sessions.SaveShipping(ctx, sid.String(), m); err != nil {
		internalError(c, h.Logger, "save shipping", err)
		return
	}
	ok(c, http.StatusOK, m)
}

// 🟢 GET /api/shipping
func (h *Handler) GetShipping(c *gin.Context) {
	sid, found := sessionID(c)
	if !found {
		return
	}
	m, err := h.Sessions.LoadShipping(c.Request.Context(), sid.String())
	if err != nil {
		internalError(c, h.Logger, "load shipping", err)
		return
	}
	ok(c, http.StatusOK, m)
}

// 🟢 PUT /api/shipping/fields
func (h *Handler) UpdateShippingField(c *gin.Context) {
	var input struct {
		Field string `json:"field" binding:"required"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid_request", "field is required")
		return
	}
	h.mutateShipping(c, func(m *shipping.Manager) bool {
		if err := m.UpdateField(shipping.Field(input.Field), input.Value); err != nil {
			if errors.Is(err, shipping.ErrUnknownField) {
				fail(c, http.StatusBadRequest, "unknown_field", "Unknown address field: "+input.Field)
				return false
			}
			internalError(c, h.Logger, "update shipping field", err)
			return false
		}
		return true
	})
}

// 🟢 POST /api/shipping/saved
func (h *Handler) SaveShippingAddress(c *gin.Context) {
	var input struct {
		Address models.ShippingAddress `json:"address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Address == (models.ShippingAddress{}) {
		fail(c, http.StatusBadRequest, "invalid_request", "address is required")
		return
	}
	h.mutateShipping(c, func(m *shipping.Manager) bool {
		m.SaveAddress(input.Address)
		return true
	})
}

// 🟢 POST /api/shipping/select
func (h *Handler) SelectShippingAddress(c *gin.Context) {
	var input struct {
		Index *int `json:"index" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid_request", "index is required")
		return
	}
	h.mutateShipping(c, func(m *shipping.Manager) bool {
		m.SelectSavedAddress(*input.Index)
		return true
	})
}

// 🟢 POST /api/shipping/new-form
func (h *Handler) ToggleNewAddressForm(c *gin.Context) {
	var input struct {
		Show bool `json:"show"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid_request", "show must be a boolean")
		return
	}
	h.mutateShipping(c, func(m *shipping.Manager) bool {
		m.ToggleNewAddressForm(input.Show)
		return true
	})
}

// 🟢 POST /api/shipping/validate
func (h *Handler) ValidateShipping(c *gin.Context) {
	sid, found := sessionID(c)
	if !found {
		return
	}
	m, err := h.Sessions.LoadShipping(c.Request.Context(), sid.String())
	if err != nil {
		internalError(c, h.Logger, "load shipping", err)
		return
	}

	var message string
	valid := m.Validate(shipping.NotifierFunc(func(msg string) { message = msg }))
	_, field, _ := shipping.Check(m.Active)
	ok(c, http.StatusOK, gin.H{"valid": valid, "field": field, "message": message})
}
