package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

// Store records a hit for key and reports how many hits key has inside the
// window ending at now, including this one.
type Store interface {
	Hit(ctx context.Context, key string, now time.Time, window time.Duration) (int, error)
}

// MemoryStore keeps windows in a bounded LRU whose entries expire after the
// window length, so idle keys disappear without a sweep.
type MemoryStore struct {
	mu       sync.Mutex
	windows  *expirable.LRU[string, *Window]
	capacity int
}

// NewMemoryStore creates an in-process store. capacity bounds the stamps kept
// per key and should be at least the request limit plus one.
func NewMemoryStore(maxKeys, capacity int, ttl time.Duration) *MemoryStore {
	if maxKeys <= 0 {
		maxKeys = DefaultMemoryKeys
	}
	return &MemoryStore{
		windows:  expirable.NewLRU[string, *Window](maxKeys, nil, ttl),
		capacity: capacity,
	}
}

func (s *MemoryStore) Hit(_ context.Context, key string, now time.Time, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows.Get(key)
	if !ok {
		w = NewWindow(s.capacity)
	}
	n := w.Hit(now, window)
	// re-adding refreshes the entry TTL
	s.windows.Add(key, w)
	return n, nil
}

// RedisStore keeps one sorted set per key scored by hit time, shared by every
// replica pointing at the same redis.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore creates a store over an existing client
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client, prefix: RedisKeyPrefix}
}

func (s *RedisStore) Hit(ctx context.Context, key string, now time.Time, window time.Duration) (int, error) {
	k := s.prefix + key
	score := now.UnixNano()
	cutoff := now.Add(-window).UnixNano()

	var card *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, k, "-inf", strconv.FormatInt(cutoff, 10))
		pipe.ZAdd(ctx, k, redis.Z{Score: float64(score), Member: strconv.FormatInt(score, 10) + ":" + uuid.NewString()})
		card = pipe.ZCard(ctx, k)
		pipe.PExpire(ctx, k, window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgRedisHitFailed, err)
	}
	return int(card.Val()), nil
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)
