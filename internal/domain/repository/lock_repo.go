package repository

import (
	"context"
	"time"
)

// LockRepository определяет методы для краткоживущих распределённых блокировок
type LockRepository interface {
	// Acquire пытается захватить ключ; false — ключ уже занят.
	// Возвращённый токен владельца нужен для Release.
	Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error)
	// Release снимает блокировку, только если она всё ещё принадлежит token
	Release(ctx context.Context, key, token string) error
}
