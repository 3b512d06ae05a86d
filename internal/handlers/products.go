package handlers

import (
	"net/http"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/models"
	"github.com/gin-gonic/gin"
)

// 🟢 GET /api/products
func (h *Handler) ListProducts(c *gin.Context) {
	ok(c, http.StatusOK, h.Catalog.All())
}

// 🟢 GET /api/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	p, found := h.Catalog.ByID(c.Param("id"))
	if !found {
		fail(c, http.StatusNotFound, "product_not_found", "Product not found")
		return
	}
	ok(c, http.StatusOK, p)
}

// 🟢 GET /api/categories/:category/products
func (h *Handler) ListCategory(c *gin.Context) {
	category := models.Category(c.Param("category"))
	if !category.Valid() {
		fail(c, http.StatusNotFound, "category_not_found", "Unknown category")
		return
	}
	ok(c, http.StatusOK, h.Catalog.ByCategory(category))
}
