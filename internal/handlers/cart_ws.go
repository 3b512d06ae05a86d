package handlers

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/cache"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	wsPingInterval = 30 * time.Second
	wsWriteWait    = 10 * time.Second
)

func (h *Handler) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || len(h.AllowedOrigins) == 0 || slices.Contains(h.AllowedOrigins, origin)
		},
	}
}

type cartEvent struct {
	Type string `json:"type"`
	cartView
}

// CartWebSocket pousse le panier à chaque modification (GET /api/cart/ws)
func (h *Handler) CartWebSocket(c *gin.Context) {
	sid, found := sessionID(c)
	if !found {
		return
	}
	log := h.Logger.With(zap.String("session_id", sid.String()))

	conn, err := h.upgrader().Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Info("❌ websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.WithoutCancel(c.Request.Context()))
	defer cancel()

	pubsub := h.Sessions.Subscribe(ctx, sid.String())
	defer pubsub.Close()
	// attendre la confirmation de l'abonnement avant le premier envoi
	if _, err := pubsub.Receive(ctx); err != nil {
		log.Warn("⚠️ cart subscription failed", zap.Error(err))
		return
	}
	ch := pubsub.Channel()

	// lecture: détecte la fermeture côté client
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.pushCart(ctx, conn, sid.String(), "connected"); err != nil {
		return
	}

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, open := <-ch:
			if !open {
				return
			}
			if msg.Payload != cache.EventCartUpdated && msg.Payload != cache.EventCartCleared {
				continue
			}
			if err := h.pushCart(ctx, conn, sid.String(), "cart_"+msg.Payload); err != nil {
				log.Info("websocket closed", zap.Error(err))
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(wsWriteWait)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

func (h *Handler) pushCart(ctx context.Context, conn *websocket.Conn, sid, kind string) error {
	current, err := h.Sessions.LoadCart(ctx, sid)
	if err != nil {
		h.Logger.Warn("⚠️ cannot load cart for websocket", zap.Error(err))
		return nil
	}
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteJSON(cartEvent{Type: kind, cartView: h.viewCart(current)})
}
