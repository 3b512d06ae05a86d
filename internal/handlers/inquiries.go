package handlers

import (
	"context"
	"net/http"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 📩 POST /api/contact
func (h *Handler) Contact(c *gin.Context) {
	var in models.ContactInquiry
	if !bindInquiry(c, &in) {
		return
	}
	h.sendInquiry(c, "contact", func(ctx context.Context) error {
		return h.Inquiries.SendContactInquiry(ctx, in)
	})
}

// 📩 POST /api/export-inquiry
func (h *Handler) ExportInquiry(c *gin.Context) {
	var in models.ExportInquiry
	if !bindInquiry(c, &in) {
		return
	}
	h.sendInquiry(c, "export", func(ctx context.Context) error {
		return h.Inquiries.SendExportInquiry(ctx, in)
	})
}

// 📩 POST /api/distributor-inquiry
func (h *Handler) DistributorInquiry(c *gin.Context) {
	var in models.DistributorInquiry
	if !bindInquiry(c, &in) {
		return
	}
	h.sendInquiry(c, "distributor", func(ctx context.Context) error {
		return h.Inquiries.SendDistributorInquiry(ctx, in)
	})
}

func bindInquiry(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, http.StatusBadRequest, "invalid_request", "Please fill in all required fields")
		return false
	}
	return true
}

func (h *Handler) sendInquiry(c *gin.Context, kind string, send func(context.Context) error) {
	if err := send(c.Request.Context()); err != nil {
		h.Logger.Error("❌ inquiry email failed", zap.String("kind", kind), zap.Error(err))
		fail(c, http.StatusBadGateway, "email_failed", "We could not send your message. Please try again later.")
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "Thank you. We will get back to you shortly."})
}
