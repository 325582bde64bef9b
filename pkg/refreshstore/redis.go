package refreshstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "refresh:"

// RedisStore persists tokens in Redis, one key per token with the TTL
// enforced by the server. Rotation deletes the predecessor and writes the
// successor in one transaction.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a Redis-backed token store.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func key(id string) string {
	return keyPrefix + id
}

func (s *RedisStore) Save(ctx context.Context, token Token) error {
	if err := validate(token); err != nil {
		return err
	}

	data, err := json.Marshal(token)
	if err != nil {
		return errors.Join(errors.New("refreshstore: encoding token"), err)
	}
	return s.client.Set(ctx, key(token.ID), data, time.Until(token.ExpiresAt)).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (Token, error) {
	data, err := s.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Token{}, ErrNotFound
	}
	if err != nil {
		return Token{}, err
	}

	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		return Token{}, errors.Join(errors.New("refreshstore: decoding token"), err)
	}
	if token.Expired() {
		// Redis TTL should have removed it already; treat clock skew as absent.
		return Token{}, ErrNotFound
	}
	return token, nil
}

func (s *RedisStore) Rotate(ctx context.Context, oldID string, next Token) error {
	if err := validate(next); err != nil {
		return err
	}

	if _, err := s.Get(ctx, oldID); err != nil {
		return err
	}

	data, err := json.Marshal(next)
	if err != nil {
		return errors.Join(errors.New("refreshstore: encoding token"), err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key(oldID))
		pipe.Set(ctx, key(next.ID), data, time.Until(next.ExpiresAt))
		return nil
	})
	return err
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, key(id)).Err()
}
