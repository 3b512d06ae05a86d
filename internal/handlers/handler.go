// Package handlers expose la boutique en HTTP.
package handlers

import (
	"context"
	"net/http"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/cart"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/catalog"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/checkout"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/middleware"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/models"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/shipping"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SessionState conserve le panier et les adresses de chaque session.
type SessionState interface {
	LoadCart(ctx context.Context, sessionID string) (cart.Cart, error)
	SaveCart(ctx context.Context, sessionID string, c cart.Cart) error
	LoadShipping(ctx context.Context, sessionID string) (*shipping.Manager, error)
	SaveShipping(ctx context.Context, sessionID string, m *shipping.Manager) error
	Subscribe(ctx context.Context, sessionID string) *redis.PubSub
}

type Orders interface {
	GetOrderByID(ctx context.Context, id string) (models.Order, error)
	ListBySession(ctx context.Context, sessionID string) ([]models.Order, error)
	MarkPaidByReference(ctx context.Context, reference, channel string) (models.Order, error)
	MarkFailedByReference(ctx context.Context, reference string) (models.Order, error)
	SendOrderConfirmation(ctx context.Context, orderID string) error
}

// PaymentPreparer démarre un paiement que le client termine chez le prestataire.
type PaymentPreparer interface {
	Provider() string
	Prepare(ctx context.Context, data models.PaymentData) (models.PreparedPayment, error)
}

type Inquiries interface {
	SendContactInquiry(ctx context.Context, in models.ContactInquiry) error
	SendExportInquiry(ctx context.Context, in models.ExportInquiry) error
	SendDistributorInquiry(ctx context.Context, in models.DistributorInquiry) error
}

// Pinger indique si un service externe répond.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Catalog   *catalog.Catalog
	Sessions  SessionState
	Checkout  *checkout.Orchestrator
	Orders    Orders
	Payments  PaymentPreparer
	Inquiries Inquiries
	Health    []Pinger

	Currency            string
	PaystackSecret      string
	StripeWebhookSecret string
	AllowedOrigins      []string
	Logger              *zap.Logger
}

type Handler struct {
	Deps
}

func New(d Deps) *Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Handler{Deps: d}
}

// réponse uniforme {success, data?, error?, message?}
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func ok(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func fail(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, envelope{Success: false, Error: code, Message: message})
}

func internalError(c *gin.Context, log *zap.Logger, what string, err error) {
	log.Error("❌ "+what, zap.Error(err), zap.String("path", c.FullPath()))
	_ = c.Error(err)
	fail(c, http.StatusInternalServerError, "internal_error", "Something went wrong. Please try again.")
}

// sessionID renvoie la session de l'appelant ou interrompt la requête.
func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, found := middleware.SessionID(c)
	if !found {
		fail(c, http.StatusUnauthorized, "no_session", "Session missing")
	}
	return id, found
}

// 🟢 GET /healthz
func (h *Handler) Healthz(c *gin.Context) {
	for _, p := range h.Health {
		if err := p.Ping(c.Request.Context()); err != nil {
			h.Logger.Warn("⚠️ health check failed", zap.Error(err))
			fail(c, http.StatusServiceUnavailable, "unhealthy", "A backing service is unreachable")
			return
		}
	}
	ok(c, http.StatusOK, gin.H{"status": "ok"})
}

type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }
