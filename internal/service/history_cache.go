package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"faq-chatbot-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const cacheModule = "HISTORY_CACHE"

// IHistoryCache holds the rendered recent history of one (user, file) conversation.
type IHistoryCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, history string)
	Invalidate(ctx context.Context, key string)
}

func historyKey(userId, fileId uuid.UUID) string {
	return fmt.Sprintf("chat:history:%s:%s", userId, fileId)
}

// memoryHistoryCache is the in-process cache, also used when Redis is down.
type memoryHistoryCache struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewMemoryHistoryCache(ttl time.Duration) IHistoryCache {
	return &memoryHistoryCache{
		cache: cache.New(ttl, 10*time.Minute),
		ttl:   ttl,
	}
}

func (m *memoryHistoryCache) Get(_ context.Context, key string) (string, bool) {
	if x, found := m.cache.Get(key); found {
		return x.(string), true
	}
	return "", false
}

func (m *memoryHistoryCache) Set(_ context.Context, key, history string) {
	m.cache.Set(key, history, m.ttl)
}

func (m *memoryHistoryCache) Invalidate(_ context.Context, key string) {
	m.cache.Delete(key)
}

// redisHistoryCache reads and writes Redis and switches to fallback on any
// Redis error other than a miss.
type redisHistoryCache struct {
	rdb      *redis.Client
	ttl      time.Duration
	fallback IHistoryCache
	logger   logger.ILogger
}

func NewRedisHistoryCache(rdb *redis.Client, ttl time.Duration, fallback IHistoryCache, log logger.ILogger) IHistoryCache {
	return &redisHistoryCache{
		rdb:      rdb,
		ttl:      ttl,
		fallback: fallback,
		logger:   log,
	}
}

func (r *redisHistoryCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.rdb.Get(ctx, key).Result()
	if err == nil {
		return val, true
	}
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	r.warn("get", err)
	return r.fallback.Get(ctx, key)
}

func (r *redisHistoryCache) Set(ctx context.Context, key, history string) {
	if err := r.rdb.Set(ctx, key, history, r.ttl).Err(); err != nil {
		r.warn("set", err)
		r.fallback.Set(ctx, key, history)
	}
}

func (r *redisHistoryCache) Invalidate(ctx context.Context, key string) {
	// the fallback may hold a copy written while Redis was down
	r.fallback.Invalidate(ctx, key)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		r.warn("del", err)
	}
}

func (r *redisHistoryCache) warn(op string, err error) {
	r.logger.Warn(cacheModule, "Redis unavailable, using in-process cache", map[string]interface{}{
		"op":    op,
		"error": err.Error(),
	})
}
