package otpstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

func otpKey(email string) string {
	return "pwd:reset:otp:" + email
}

// Redis is a Store backed by a shared redis instance, so challenges survive
// process restarts and are visible to every API replica.
type Redis struct {
	rdb *redis.Client
}

func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func (r *Redis) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	return r.rdb.Set(ctx, otpKey(email), code, ttl).Err()
}

func (r *Redis) Get(ctx context.Context, email string) (string, bool, error) {
	code, err := r.rdb.Get(ctx, otpKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return code, true, nil
}

func (r *Redis) Delete(ctx context.Context, email string) error {
	return r.rdb.Del(ctx, otpKey(email)).Err()
}

var _ Store = (*Redis)(nil)
