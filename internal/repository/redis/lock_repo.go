package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// releaseScript удаляет ключ, только если в нём лежит токен владельца.
// Блокировка, истёкшая по TTL и захваченная другим, не снимается.
const releaseScriptSource = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

var releaseScript = redis.NewScript(releaseScriptSource)

// LockRepo реализует repository.LockRepository на SET NX с TTL и токеном владельца
type LockRepo struct {
	client   redis.UniversalClient
	prefix   string
	newToken func() string
}

// NewLockRepo создает репозиторий блокировок и возвращает ошибку при проблемах
func NewLockRepo(client redis.UniversalClient, prefix string) (*LockRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("Redis client cannot be nil for LockRepo")
	}
	return &LockRepo{client: client, prefix: prefix, newToken: uuid.NewString}, nil
}

// Acquire устанавливает ключ со случайным токеном, только если ключ не существует
func (r *LockRepo) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := r.newToken()
	ok, err := r.client.SetNX(ctx, r.prefix+key, token, ttl).Result()
	if err != nil || !ok {
		return "", false, err
	}
	return token, true, nil
}

// Release снимает блокировку через compare-and-delete
func (r *LockRepo) Release(ctx context.Context, key, token string) error {
	return releaseScript.Run(ctx, r.client, []string{r.prefix + key}, token).Err()
}

// NoOpLockRepo всегда выдаёт блокировку. Используется, когда Redis не настроен.
type NoOpLockRepo struct{}

// Acquire всегда успешен
func (NoOpLockRepo) Acquire(context.Context, string, time.Duration) (string, bool, error) {
	return "", true, nil
}

// Release ничего не делает
func (NoOpLockRepo) Release(context.Context, string, string) error {
	return nil
}
