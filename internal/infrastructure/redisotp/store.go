// Package redisotp is the Redis-backed implementation of otp.Store, for
// deployments where passcodes must survive restarts or be shared across
// instances. Expiry rides on the key TTL; the compare-and-delete runs as a
// Lua script so only one caller can consume a code.
package redisotp

import (
	"context"
	"time"

	"github.com/go-otp-auth/internal/otp"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "otp:"

var compareAndDelete = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	redis.call("DEL", KEYS[1])
	return 1
end
return 0
`)

type Store struct {
	client *redis.Client
}

func New(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Put(ctx context.Context, e otp.Entry) error {
	ttl := time.Until(e.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Millisecond
	}
	return s.client.Set(ctx, keyPrefix+e.Identity, e.Code, ttl).Err()
}

func (s *Store) CompareAndDelete(ctx context.Context, identity, code string) (bool, error) {
	n, err := compareAndDelete.Run(ctx, s.client, []string{keyPrefix + identity}, code).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
