package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	SessionCookieName = "cyperus_session"
	sessionIDKey      = "session_id"
	sessionMaxAge     = 86400 * 30
)

// NewSessionStore crée le store de cookies signés qui porte l'id de session.
func NewSessionStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Session donne à chaque requête un id de session stable, créé à la première visite.
func Session(store sessions.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := store.Get(c.Request, SessionCookieName)
		if err != nil {
			// cookie signée avec un ancien secret: on repart d'une session neuve
			logger.Debug("🍪 session cookie rejected", zap.Error(err))
		}

		sid, _ := sess.Values[sessionIDKey].(string)
		if _, perr := uuid.Parse(sid); perr != nil {
			sid = uuid.NewString()
			sess.Values[sessionIDKey] = sid
			if err := sess.Save(c.Request, c.Writer); err != nil {
				logger.Error("❌ cannot save session cookie", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   "session_unavailable",
					"message": "Could not start a session",
				})
				return
			}
		}

		c.Set(sessionIDKey, sid)
		c.Next()
	}
}

// SessionID renvoie l'id posé par Session.
func SessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(sessionIDKey))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
