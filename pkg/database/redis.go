package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yourusername/assessment-portal/internal/config"
)

// redisPingTimeout ограничивает проверку подключения при старте
const redisPingTimeout = 5 * time.Second

// NewUniversalRedisClient создает клиент Redis для блокировок сдачи тестов и rate limiting.
// Поддерживает режимы single, sentinel и cluster.
func NewUniversalRedisClient(cfg config.RedisConfig) (redis.UniversalClient, error) {
	options, mode, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewUniversalClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (mode: %s, addrs: %v): %w", mode, options.Addrs, err)
	}

	return client, nil
}

// redisOptions переводит конфигурацию в опции go-redis и возвращает итоговый режим
func redisOptions(cfg config.RedisConfig) (*redis.UniversalOptions, string, error) {
	addrs := cfg.Addrs
	if len(addrs) == 0 {
		if cfg.Addr == "" {
			return nil, "", errors.New("redis configuration error: Addrs or Addr must be provided")
		}
		addrs = []string{cfg.Addr}
	}

	options := &redis.UniversalOptions{
		Addrs:    addrs,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.MaxRetries != 0 {
		options.MaxRetries = cfg.MaxRetries
	}
	if cfg.MinRetryBackoff != 0 {
		options.MinRetryBackoff = time.Duration(cfg.MinRetryBackoff) * time.Millisecond
	}
	if cfg.MaxRetryBackoff != 0 {
		options.MaxRetryBackoff = time.Duration(cfg.MaxRetryBackoff) * time.Millisecond
	}

	mode := cfg.Mode
	if mode == "" {
		mode = "single"
	}

	switch mode {
	case "sentinel":
		// NewUniversalClient выбирает failover-клиент по MasterName
		if cfg.MasterName == "" {
			return nil, mode, errors.New("redis sentinel mode requires MasterName")
		}
		options.MasterName = cfg.MasterName
	case "cluster":
		if len(addrs) < 2 {
			return nil, mode, errors.New("redis cluster mode requires at least two addresses")
		}
	case "single":
		if len(addrs) > 1 {
			options.Addrs = addrs[:1]
		}
	default:
		return nil, mode, fmt.Errorf("unsupported redis mode: %s", mode)
	}

	return options, mode, nil
}
