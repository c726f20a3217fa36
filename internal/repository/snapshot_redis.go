package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/MauroGomes09/Unireserva/internal/model"
	"github.com/redis/go-redis/v9"
)

// RedisSnapshot stores the table under a single string key.
type RedisSnapshot struct {
	client *redis.Client
	key    string
}

func NewRedisSnapshot(client *redis.Client, key string) *RedisSnapshot {
	if key == "" {
		key = "unireserva:" + SnapshotName
	}
	return &RedisSnapshot{client: client, key: key}
}

func (s *RedisSnapshot) Load(ctx context.Context) (model.RoomTable, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: redis key %s", ErrSnapshotNotFound, s.key)
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot key: %w", err)
	}
	return DecodeSnapshot(data)
}

func (s *RedisSnapshot) Flush(ctx context.Context, table model.RoomTable) error {
	data, err := EncodeSnapshot(table)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set snapshot key: %w", err)
	}
	return nil
}

func (s *RedisSnapshot) Close() error { return s.client.Close() }
