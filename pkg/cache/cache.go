package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a namespaced key-value cache on top of Redis. Values are opaque
// bytes; callers decide the encoding (the application layer uses JSON, with a
// JSON null standing for a confirmed-absent entry).
type Store struct {
	rdb *redis.Client
	ns  string
}

func NewStore(rdb *redis.Client, namespace string) *Store {
	return &Store{rdb: rdb, ns: namespace}
}

func (s *Store) key(k string) string {
	if s.ns == "" {
		return k
	}
	return s.ns + ":" + k
}

// Get returns the raw entry and whether the key was present at all. A missing
// key is not an error.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.rdb.Set(ctx, s.key(key), value, ttl).Err()
}

// Delete removes the entry; deleting a key that does not exist is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.key(key)).Err()
}
