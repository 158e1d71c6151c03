package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	coreport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/persistence"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each collection as one redis string
type RedisStore struct {
	client *redis.Client
	logger coreport.Logger
}

var (
	_ persistence.KVStore    = (*RedisStore)(nil)
	_ persistence.BatchSaver = (*RedisStore)(nil)
)

// NewRedisStore wraps an existing client
func NewRedisStore(client *redis.Client, logger coreport.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

// ConnectRedis parses url, connects and verifies the connection with a ping
func ConnectRedis(ctx context.Context, url string, logger coreport.Logger) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis ping: %s", errs.ErrStoreUnavailable, err.Error())
	}

	logger.Info("Connected to Redis", map[string]any{"addr": opt.Addr, "db": opt.DB})
	return NewRedisStore(client, logger), nil
}

// Load reads the value under key
func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errs.ErrKeyNotFound
	}
	if err != nil {
		s.logger.Error("Redis load failed", map[string]any{"key": key, "error": err.Error()})
		return nil, fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, err.Error())
	}
	return value, nil
}

// Save writes value under key without expiry
func (s *RedisStore) Save(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		s.logger.Error("Redis save failed", map[string]any{"key": key, "error": err.Error()})
		return fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, err.Error())
	}
	return nil
}

// SaveAll writes every key in one MULTI/EXEC
func (s *RedisStore) SaveAll(ctx context.Context, values map[string][]byte) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, value := range values {
			pipe.Set(ctx, key, value, 0)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Redis batch save failed", map[string]any{"keys": len(values), "error": err.Error()})
		return fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, err.Error())
	}
	return nil
}

// Close closes the client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
