package middleware

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// redisCallTimeout ограничивает обращение к счётчику, чтобы медленный Redis не тормозил API
const redisCallTimeout = 2 * time.Second

// RateLimitConfig содержит настройки окна rate limiting
type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
	KeyPrefix   string
}

// DefaultRateLimitConfig — лимит для пишущих маршрутов (register, submit_test, upload_image)
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{MaxRequests: 30, Window: time.Minute, KeyPrefix: "rl:api"}
}

// ChatbotRateLimitConfig — лимит для чат-бота
func ChatbotRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{MaxRequests: 60, Window: time.Minute, KeyPrefix: "rl:chatbot"}
}

// RateLimiter считает запросы в фиксированном окне на Redis.
// Без клиента Redis лимит не применяется.
type RateLimiter struct {
	redisClient redis.UniversalClient
}

// NewRateLimiter создает новый RateLimiter
func NewRateLimiter(redisClient redis.UniversalClient) *RateLimiter {
	return &RateLimiter{redisClient: redisClient}
}

// rateKey строит ключ счётчика: IP клиента и шаблон маршрута.
// Для маршрутов /api/user/:id в ключ добавляется id пользователя.
func rateKey(c *gin.Context, prefix string) string {
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	key := prefix + ":" + c.ClientIP() + ":" + route
	if userID, ok := c.Get("userID"); ok {
		if id, ok := userID.(string); ok && id != "" {
			key += ":" + id
		}
	}
	return key
}

// Limit возвращает Gin middleware с заданной конфигурацией
func (rl *RateLimiter) Limit(cfg RateLimitConfig) gin.HandlerFunc {
	if rl == nil || rl.redisClient == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := rateKey(c, cfg.KeyPrefix)

		ctx, cancel := context.WithTimeout(c.Request.Context(), redisCallTimeout)
		defer cancel()

		var incr *redis.IntCmd
		var ttl *redis.DurationCmd
		_, err := rl.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(ctx, key)
			ttl = pipe.TTL(ctx, key)
			return nil
		})
		if err != nil {
			// fail-open: недоступность Redis не должна блокировать студентов
			log.Printf("[RateLimiter] Redis error for key %s: %v. Allowing request.", key, err)
			c.Next()
			return
		}

		count := int(incr.Val())
		window := ttl.Val()
		if window < 0 {
			// Ключ только что создан INCR и ещё без TTL
			if err := rl.redisClient.Expire(ctx, key, cfg.Window).Err(); err != nil {
				log.Printf("[RateLimiter] Failed to set TTL for key %s: %v", key, err)
			}
			window = cfg.Window
		}
		retryAfter := int(window.Seconds())

		remaining := cfg.MaxRequests - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(retryAfter))

		if count > cfg.MaxRequests {
			log.Printf("[RateLimiter] Limit exceeded for key %s: count=%d limit=%d", key, count, cfg.MaxRequests)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success":     false,
				"message":     "Too many requests. Please try again later.",
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}
