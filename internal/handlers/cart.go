package handlers

import (
	"net/http"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/cart"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/checkout"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type cartView struct {
	Items      any              `json:"items"`
	TotalItems int              `json:"total_items"`
	TotalPrice decimal.Decimal  `json:"total_price"`
	Quote      checkout.Amounts `json:"quote"`
}

func (h *Handler) viewCart(c cart.Cart) cartView {
	return cartView{
		Items:      c.Items,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
		Quote:      h.Deps.Checkout.Quote(c),
	}
}

// mutateCart charge le panier de la session, applique fn puis le réécrit.
func (h *Handler) mutateCart(c *gin.Context, fn func(cart.Cart) cart.Cart) {
	sid, found := sessionID(c)
	if !found {
		return
	}
	ctx := c.Request.Context()

	current, err := h.Sessions.LoadCart(ctx, sid.String())
	if err != nil {
		internalError(c, h.Logger, "load cart", err)
		return
	}
	next := fn(current)
	if err := h.Sessions.SaveCart(ctx, sid.String(), next); err != nil {
		internalError(c, h.Logger, "save cart", err)
		return
	}
	ok(c, http.StatusOK, h.viewCart(next))
}

// 🟢 GET /api/cart
func (h *Handler) GetCart(c *gin.Context) {
	sid, found := sessionID(c)
	if !found {
		return
	}
	current, err := h.Sessions.LoadCart(c.Request.Context(), sid.String())
	if err != nil {
		internalError(c, h.Logger, "load cart", err)
		return
	}
	ok(c, http.StatusOK, h.viewCart(current))
}

// 🟢 POST /api/cart/items
func (h *Handler) AddCartItem(c *gin.Context) {
	var input struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid_request", "product_id is required")
		return
	}

	product, found := h.Catalog.ByID(input.ProductID)
	if !found {
		fail(c, http.StatusNotFound, "product_not_found", "Product not found")
		return
	}

	h.mutateCart(c, func(cur cart.Cart) cart.Cart {
		return cart.AddItem(cur, product.CartItem(input.Quantity))
	})
}

// 🟢 PATCH /api/cart/items/:productId
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var input struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid_request", "quantity is required")
		return
	}
	productID := c.Param("productId")
	h.mutateCart(c, func(cur cart.Cart) cart.Cart {
		return cart.UpdateQuantity(cur, productID, *input.Quantity)
	})
}

// 🔴 DELETE /api/cart/items/:productId
func (h *Handler) RemoveCartItem(c *gin.Context) {
	productID := c.Param("productId")
	h.mutateCart(c, func(cur cart.Cart) cart.Cart {
		return cart.RemoveItem(cur, productID)
	})
}

// 🔴 DELETE /api/cart
func (h *Handler) ClearCart(c *gin.Context) {
	h.mutateCart(c, cart.Clear)
}
