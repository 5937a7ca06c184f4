package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/robalobadob/wordle-engine/internal/game"
)

const sessionKeyPrefix = "wordle:session:"

type redisStore struct {
	client    *redis.Client
	validator game.WordValidator
	ttl       time.Duration
}

// NewRedisStore keeps sessions as JSON under wordle:session:<id>.
// Loaded sessions get validator attached; ttl <= 0 means no expiry.
func NewRedisStore(client *redis.Client, validator game.WordValidator, ttl time.Duration) Store {
	return &redisStore{client: client, validator: validator, ttl: ttl}
}

func (r *redisStore) Save(ctx context.Context, s *game.Session) error {
	body, err := json.Marshal(s.State())
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+s.ID(), body, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}
	return nil
}

func (r *redisStore) Get(ctx context.Context, id string) (*game.Session, error) {
	body, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}

	var st game.State
	if err := json.Unmarshal(body, &st); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	s, err := game.Restore(st, r.validator)
	if err != nil {
		return nil, fmt.Errorf("restore session %s: %w", id, err)
	}
	return s, nil
}

func (r *redisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
