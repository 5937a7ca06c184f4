package stats

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "wordle:stats:"

type redisStore struct {
	client *redis.Client
}

// NewRedisStore keeps one hash per player under wordle:stats:<id>.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, playerID string) (Record, error) {
	return s.get(ctx, s.client, playerID)
}

func (s *redisStore) get(ctx context.Context, c redis.Cmdable, playerID string) (Record, error) {
	m, err := c.HGetAll(ctx, redisKeyPrefix+playerID).Result()
	if err != nil {
		return Record{}, fmt.Errorf("get stats: %w", err)
	}
	r := Record{PlayerID: playerID}
	if len(m) == 0 {
		return r, ErrNotFound
	}
	r.GamesPlayed = atoi(m["games_played"])
	r.Wins = atoi(m["wins"])
	r.CurrentStreak = atoi(m["current_streak"])
	r.MaxStreak = atoi(m["max_streak"])
	for i := range r.Distribution {
		r.Distribution[i] = atoi(m["dist_"+strconv.Itoa(i+1)])
	}
	return r, nil
}

// Record updates the hash under WATCH so concurrent finishes for the same
// player are not lost.
func (s *redisStore) Record(ctx context.Context, playerID string, won bool, guesses int) (Record, error) {
	key := redisKeyPrefix + playerID
	var out Record

	txf := func(tx *redis.Tx) error {
		r, err := s.get(ctx, tx, playerID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		r.Apply(won, guesses)

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, hashFields(r))
			return nil
		})
		out = r
		return err
	}

	for attempt := 0; attempt < 5; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return Record{}, fmt.Errorf("record stats: %w", err)
		}
		return out, nil
	}
	return Record{}, fmt.Errorf("record stats: %w", redis.TxFailedErr)
}

// Move runs under WATCH on both keys.
func (s *redisStore) Move(ctx context.Context, fromID, toID string) error {
	if fromID == "" || fromID == toID {
		return nil
	}
	fromKey, toKey := redisKeyPrefix+fromID, redisKeyPrefix+toID

	txf := func(tx *redis.Tx) error {
		from, err := s.get(ctx, tx, fromID)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		to, err := s.get(ctx, tx, toID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, toKey, hashFields(Combine(to, from)))
			pipe.Del(ctx, fromKey)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < 5; attempt++ {
		err := s.client.Watch(ctx, txf, fromKey, toKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("move stats: %w", err)
		}
		return nil
	}
	return fmt.Errorf("move stats: %w", redis.TxFailedErr)
}

func hashFields(r Record) map[string]any {
	fields := map[string]any{
		"games_played":   r.GamesPlayed,
		"wins":           r.Wins,
		"current_streak": r.CurrentStreak,
		"max_streak":     r.MaxStreak,
	}
	for i, n := range r.Distribution {
		fields["dist_"+strconv.Itoa(i+1)] = n
	}
	return fields
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
