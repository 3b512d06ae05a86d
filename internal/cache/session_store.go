package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/cart"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/shipping"
	"github.com/redis/go-redis/v9"
)

const DefaultSessionTTL = 30 * 24 * time.Hour

const (
	EventCartUpdated = "updated"
	EventCartCleared = "cleared"
)

func CartKey(sessionID string) string     { return "cart:" + sessionID }
func ShippingKey(sessionID string) string { return "shipping:" + sessionID }

// CartChannel est le canal pub/sub notifié à chaque écriture du panier.
func CartChannel(sessionID string) string { return "cart:" + sessionID }

// SessionStore garde dans Redis le panier et les adresses de chaque session.
// Chaque écriture rafraîchit le TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) LoadCart(ctx context.Context, sessionID string) (cart.Cart, error) {
	var c cart.Cart
	found, err := s.load(ctx, CartKey(sessionID), &c)
	if err != nil {
		return cart.Cart{}, fmt.Errorf("load cart: %w", err)
	}
	if !found || c.Items == nil {
		return cart.Clear(c), nil
	}
	return c, nil
}

// SaveCart enregistre c et prévient les abonnés.
func (s *SessionStore) SaveCart(ctx context.Context, sessionID string, c cart.Cart) error {
	if err := s.save(ctx, CartKey(sessionID), c); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	event := EventCartUpdated
	if c.IsEmpty() {
		event = EventCartCleared
	}
	return s.client.Publish(ctx, CartChannel(sessionID), event).Err()
}

func (s *SessionStore) LoadShipping(ctx context.Context, sessionID string) (*shipping.Manager, error) {
	m := shipping.NewManager()
	if _, err := s.load(ctx, ShippingKey(sessionID), m); err != nil {
		return nil, fmt.Errorf("load shipping: %w", err)
	}
	return m, nil
}

func (s *SessionStore) SaveShipping(ctx context.Context, sessionID string, m *shipping.Manager) error {
	if err := s.save(ctx, ShippingKey(sessionID), m); err != nil {
		return fmt.Errorf("save shipping: %w", err)
	}
	return nil
}

// Subscribe écoute les événements panier d'une session. L'appelant ferme le PubSub.
func (s *SessionStore) Subscribe(ctx context.Context, sessionID string) *redis.PubSub {
	return s.client.Subscribe(ctx, CartChannel(sessionID))
}

func (s *SessionStore) load(ctx context.Context, key string, dst any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SessionStore) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, s.ttl).Err()
}
