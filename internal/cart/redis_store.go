package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"velora_back_end/internal/models"
)

const (
	keyPrefix = "cart:"
	cartTTL   = 30 * 24 * time.Hour
)

// RedisStore stocke chaque panier sous forme d'un unique blob JSON
// (clé cart:<userID>). Chaque écriture publie sur le canal du même nom
// pour la synchronisation temps réel via WebSocket.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, userID string) ([]models.CartItem, error) {
	data, err := s.client.Get(ctx, keyPrefix+userID).Result()
	if err == redis.Nil {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *RedisStore) Put(ctx context.Context, userID string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, keyPrefix+userID, data, cartTTL).Err(); err != nil {
		return err
	}

	s.client.Publish(ctx, keyPrefix+userID, "updated")
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, keyPrefix+userID).Err(); err != nil {
		return err
	}

	s.client.Publish(ctx, keyPrefix+userID, "cleared")
	return nil
}
