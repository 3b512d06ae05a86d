package routes

import (
	"time"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/handlers"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

type Options struct {
	AllowedOrigins    []string
	Sessions          sessions.Store
	SupabaseJWTSecret string
	RateLimiter       *middleware.RateLimiter
	Logger            *zap.Logger
}

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, opts Options) {
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestLogger(opts.Logger))

	r.GET("/healthz", h.Healthz)

	// Webhooks: pas de cookie de session, signature vérifiée dans le handler
	hooks := r.Group("/api/payments")
	{
		hooks.POST("/paystack/webhook", h.PaystackWebhook)
		hooks.POST("/stripe/webhook", h.StripeWebhook)
	}

	api := r.Group("/api")
	api.Use(opts.RateLimiter.API())
	api.Use(middleware.Session(opts.Sessions, opts.Logger))
	api.Use(middleware.OptionalAuth(opts.SupabaseJWTSecret, opts.Logger))

	// Catalogue
	api.GET("/products", h.ListProducts)
	api.GET("/products/:id", h.GetProduct)
	api.GET("/categories/:category/products", h.ListCategory)

	// Panier
	cartGroup := api.Group("/cart")
	{
		cartGroup.GET("", h.GetCart)
		cartGroup.GET("/ws", h.CartWebSocket)
		cartGroup.POST("/items", opts.RateLimiter.Cart(), h.AddCartItem)
		cartGroup.PATCH("/items/:productId", opts.RateLimiter.Cart(), h.UpdateCartItem)
		cartGroup.DELETE("/items/:productId", opts.RateLimiter.Cart(), h.RemoveCartItem)
		cartGroup.DELETE("", opts.RateLimiter.Cart(), h.ClearCart)
	}

	// Adresse de livraison
	ship := api.Group("/shipping")
	{
		ship.GET("", h.GetShipping)
		ship.PUT("/fields", h.UpdateShippingField)
		ship.POST("/saved", h.SaveShippingAddress)
		ship.POST("/select", h.SelectShippingAddress)
		ship.POST("/new-form", h.ToggleNewAddressForm)
		ship.POST("/validate", h.ValidateShipping)
	}

	// Paiement et commande
	api.POST("/payments/prepare", h.PreparePayment)
	api.POST("/checkout", h.Checkout)
	api.GET("/checkout/status", h.CheckoutStatus)
	api.GET("/orders", h.ListOrders)
	api.GET("/orders/:id", h.GetOrder)
	api.POST("/orders/:id/confirmation", opts.RateLimiter.Inquiry(), h.ResendConfirmation)

	// Formulaires
	api.POST("/contact", opts.RateLimiter.Inquiry(), h.Contact)
	api.POST("/export-inquiry", opts.RateLimiter.Inquiry(), h.ExportInquiry)
	api.POST("/distributor-inquiry", opts.RateLimiter.Inquiry(), h.DistributorInquiry)
}
