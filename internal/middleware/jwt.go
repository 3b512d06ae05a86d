package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	userIDKey = "user_id"
	emailKey  = "email"
)

// OptionalAuth accepte les invités. Un bearer token, s'il est présent, doit être
// un HS256 valide du fournisseur d'auth; son subject et son email sont mis dans le contexte.
func OptionalAuth(secret string, logger *zap.Logger) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || secret == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			logger.Info("🔐 malformed Authorization header", zap.Int("parts", len(parts)))
			unauthorized(c, "Invalid Authorization header")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			logger.Info("🔐 rejected bearer token", zap.Error(err))
			unauthorized(c, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			unauthorized(c, "Invalid token claims")
			return
		}
		sub, _ := claims.GetSubject()
		if sub == "" {
			unauthorized(c, "Token has no subject")
			return
		}

		c.Set(userIDKey, sub)
		if email, ok := claims[emailKey].(string); ok {
			c.Set(emailKey, email)
		}
		c.Next()
	}
}

// UserEmail renvoie l'email du client connecté, s'il y en a un.
func UserEmail(c *gin.Context) string {
	return c.GetString(emailKey)
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   "unauthorized",
		"message": msg,
	})
}
