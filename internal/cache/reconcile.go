package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/models"
	"github.com/redis/go-redis/v9"
)

const ReconcileKey = "reconcile:orders"

// ReconciliationQueue est la liste Redis des paiements encaissés dont la
// commande n'a pas pu être enregistrée.
type ReconciliationQueue struct {
	client *redis.Client
}

func NewReconciliationQueue(client *redis.Client) *ReconciliationQueue {
	return &ReconciliationQueue{client: client}
}

func (q *ReconciliationQueue) Enqueue(ctx context.Context, entry models.ReconciliationEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, ReconcileKey, data).Err()
}

// Pending renvoie au plus n entrées, les plus récentes d'abord, sans les retirer.
func (q *ReconciliationQueue) Pending(ctx context.Context, n int64) ([]models.ReconciliationEntry, error) {
	raw, err := q.client.LRange(ctx, ReconcileKey, 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]models.ReconciliationEntry, 0, len(raw))
	for _, r := range raw {
		var e models.ReconciliationEntry
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			return nil, fmt.Errorf("decode reconciliation entry: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}
