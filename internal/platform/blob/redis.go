package blob

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps blobs as plain Redis string values. Conditional writes
// use WATCH + MULTI/EXEC, so the swap is rejected server-side whenever the
// key was touched between the read and the EXEC.
type RedisStore struct {
	client *redis.Client
}

// OpenRedis creates a Redis-backed store and pings it to validate the
// connection.
func OpenRedis(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	if addr == "" {
		return nil, fmt.Errorf("empty redis addr")
	}
	c := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return &RedisStore{client: c}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, Revision, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, NoRevision, nil
	}
	if err != nil {
		return nil, NoRevision, err
	}
	return data, revisionOf(data), nil
}

func (s *RedisStore) CompareAndSwap(ctx context.Context, key string, value []byte, rev Revision) error {
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, key).Bytes()
		switch {
		case err == redis.Nil:
			if rev != NoRevision {
				return ErrRevisionMismatch
			}
		case err != nil:
			return err
		default:
			if revisionOf(cur) != rev {
				return ErrRevisionMismatch
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, value, 0)
			return nil
		})
		return err
	}, key)

	// EXEC aborted because the watched key changed under us.
	if err == redis.TxFailedErr {
		return ErrRevisionMismatch
	}
	return err
}

func (s *RedisStore) Put(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
