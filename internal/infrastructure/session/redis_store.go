package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/rice-stock/internal/domain/repository"
)

var _ repository.LoginFlagStore = (*RedisStore)(nil)

// RedisStore guarda el indicador en Redis para compartirlo entre réplicas del shell.
// Sin TTL: el acceso provisional no expira.
type RedisStore struct {
	rdb *redis.Client
	key string
}

// NewRedisStore conecta y hace Ping; la clave queda acotada por org.
func NewRedisStore(ctx context.Context, addr, password string, db int, orgID string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb, key: FlagKey(orgID)}, nil
}

// FlagKey clave del indicador para un org.
func FlagKey(orgID string) string {
	return "rice_stock_logged_in:" + orgID
}

func (s *RedisStore) Load(ctx context.Context) (bool, error) {
	v, err := s.rdb.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("session.Load redis: %w", err)
	}
	return v == flagValue, nil
}

func (s *RedisStore) Save(ctx context.Context, loggedIn bool) error {
	if !loggedIn {
		if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
			return fmt.Errorf("session.Save redis: %w", err)
		}
		return nil
	}
	if err := s.rdb.Set(ctx, s.key, flagValue, 0).Err(); err != nil {
		return fmt.Errorf("session.Save redis: %w", err)
	}
	return nil
}

// Close cierra la conexión.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
