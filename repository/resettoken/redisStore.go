// Package resettokenrepo stores one-shot password-reset tokens in Redis.
package resettokenrepo

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("reset token not found or expired")

type Store interface {
	// Save binds token -> userID for ttl.
	Save(ctx context.Context, token string, userID int64, ttl time.Duration) error
	// Consume resolves and deletes the token in one shot.
	Consume(ctx context.Context, token string) (int64, error)
}

type store struct{ rdb *redis.Client }

func New(rdb *redis.Client) Store { return &store{rdb: rdb} }

func key(token string) string { return "pwreset:" + token }

func (s *store) Save(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	return s.rdb.Set(ctx, key(token), strconv.FormatInt(userID, 10), ttl).Err()
}

func (s *store) Consume(ctx context.Context, token string) (int64, error) {
	val, err := s.rdb.GetDel(ctx, key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, ErrNotFound
	}
	return id, nil
}
