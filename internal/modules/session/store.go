// README: Session store backed by Redis lists and values with idle TTL.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Alfredcrmn/hardware-kiosk/internal/types"
)

const (
	historyKeyPrefix = "kiosk:session:%s:history"
	cartKeyPrefix    = "kiosk:session:%s:cart"
)

type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(redis *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: redis, ttl: ttl}
}

func historyKey(id types.ID) string {
	return fmt.Sprintf(historyKeyPrefix, string(id))
}

func cartKey(id types.ID) string {
	return fmt.Sprintf(cartKeyPrefix, string(id))
}

// AppendTurns pushes turns onto the transcript and refreshes the idle TTL.
func (s *Store) AppendTurns(ctx context.Context, id types.ID, turns ...Turn) error {
	if len(turns) == 0 {
		return nil
	}
	values := make([]interface{}, len(turns))
	for i, t := range turns {
		b, err := json.Marshal(t)
		if err != nil {
			return err
		}
		values[i] = b
	}
	pipe := s.redis.Pipeline()
	pipe.RPush(ctx, historyKey(id), values...)
	pipe.Expire(ctx, historyKey(id), s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// History returns up to limit most recent turns, oldest first. A missing
// session yields an empty transcript, not an error.
func (s *Store) History(ctx context.Context, id types.ID, limit int) ([]Turn, error) {
	if limit <= 0 {
		limit = 50
	}
	raw, err := s.redis.LRange(ctx, historyKey(id), int64(-limit), -1).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	turns := make([]Turn, 0, len(raw))
	for _, item := range raw {
		var t Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			continue // a corrupt entry should not poison the transcript
		}
		turns = append(turns, t)
	}
	return turns, nil
}

// SaveCart caches the last cart the client sent, with the same idle TTL.
func (s *Store) SaveCart(ctx context.Context, id types.ID, cart []CartItem) error {
	b, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, cartKey(id), b, s.ttl).Err()
}

// Cart returns the last cached cart, or ErrNotFound when none exists.
func (s *Store) Cart(ctx context.Context, id types.ID) ([]CartItem, error) {
	raw, err := s.redis.Get(ctx, cartKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var cart []CartItem
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, err
	}
	return cart, nil
}
