package store

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const defaultRedisKey = "smartx:snapshot"

// RedisMedium keeps the document under one key.
type RedisMedium struct {
	client *redis.Client
	key    string
}

func NewRedisMedium(addr, password string, db int, key string) *RedisMedium {
	if key == "" {
		key = defaultRedisKey
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisMedium{client: client, key: key}
}

func (m *RedisMedium) Name() string { return "redis" }

func (m *RedisMedium) Probe(ctx context.Context) error {
	if err := m.client.Ping(ctx).Err(); err != nil {
		return err
	}
	return m.client.Set(ctx, m.key+":probe", time.Now().UTC().Format(time.RFC3339), time.Minute).Err()
}

func (m *RedisMedium) Read(ctx context.Context) ([]byte, error) {
	b, err := m.client.Get(ctx, m.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	return b, err
}

func (m *RedisMedium) Write(ctx context.Context, doc []byte) error {
	return m.client.Set(ctx, m.key, doc, 0).Err()
}

func (m *RedisMedium) Close() error { return m.client.Close() }
