package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/cache"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// Limites par endpoint
	APIMaxRequests     = 100 // par IP et par minute
	CartMaxMutations   = 20  // par session et par minute
	InquiryMaxRequests = 5   // par IP et par fenêtre

	APIWindow     = 1 * time.Minute
	CartWindow    = 1 * time.Minute
	InquiryWindow = 10 * time.Minute
)

// RateLimiter compte les requêtes dans Redis par fenêtres fixes, ouvertes à la
// première requête et jamais prolongées. Si Redis tombe, le trafic passe.
type RateLimiter struct {
	client redis.Cmdable
	logger *zap.Logger
}

func NewRateLimiter(client redis.Cmdable, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{client: client, logger: logger}
}

// API limite le nombre de requêtes par IP (général)
func (rl *RateLimiter) API() gin.HandlerFunc {
	return rl.limit("api_requests:", APIMaxRequests, APIWindow, func(c *gin.Context) string {
		return c.ClientIP()
	}, "Too many requests. Try again in a minute")
}

// Cart limite les modifications du panier (anti-spam)
func (rl *RateLimiter) Cart() gin.HandlerFunc {
	return rl.limit("cart_mutations:", CartMaxMutations, CartWindow, func(c *gin.Context) string {
		return c.GetString(sessionIDKey)
	}, "Too many cart changes. Slow down a little")
}

// Inquiry limite les formulaires de contact par IP
func (rl *RateLimiter) Inquiry() gin.HandlerFunc {
	return rl.limit("inquiries:", InquiryMaxRequests, InquiryWindow, func(c *gin.Context) string {
		return c.ClientIP()
	}, "Too many submissions. Try again later")
}

func (rl *RateLimiter) limit(prefix string, max int64, window time.Duration, keyOf func(*gin.Context) string, msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := keyOf(c)
		if id == "" {
			c.Next()
			return
		}

		count, err := cache.IncrementRateLimit(c.Request.Context(), rl.client, prefix+id, window)
		if err != nil {
			rl.logger.Warn("⚠️ rate limiter unavailable", zap.String("key", prefix), zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", max))
		if count > max {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "rate_limited",
				"message": msg,
			})
			return
		}
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", max-count))
		c.Next()
	}
}
