// Package cache provides an optional Redis-backed cache for computed
// circadian reports. When Redis is not configured the no-op implementation
// is used and every request recomputes.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/somnolabs/sleep-intelligence/internal/domain"
)

// DefaultTTL bounds staleness of a cached report between invalidations.
const DefaultTTL = 30 * time.Minute

// CircadianCache stores computed circadian reports keyed by user.
type CircadianCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.CircadianRhythmAnalysis, bool)
	Set(ctx context.Context, userID uuid.UUID, report *domain.CircadianRhythmAnalysis)
	Invalidate(ctx context.Context, userID uuid.UUID)
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed cache. Returns a no-op cache when
// addr is empty.
func NewRedisCache(addr, password string, db int) CircadianCache {
	if addr == "" {
		log.Println("[cache] disabled: REDIS_ADDR is empty")
		return noopCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	log.Printf("[cache] enabled: addr=%s db=%d", addr, db)

	return &redisCache{client: client, ttl: DefaultTTL}
}

func key(userID uuid.UUID) string {
	return fmt.Sprintf("circadian:%s", userID)
}

func (c *redisCache) Get(ctx context.Context, userID uuid.UUID) (*domain.CircadianRhythmAnalysis, bool) {
	data, err := c.client.Get(ctx, key(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[cache] get failed: %v", err)
		}
		return nil, false
	}

	var report domain.CircadianRhythmAnalysis
	if err := json.Unmarshal(data, &report); err != nil {
		log.Printf("[cache] corrupt entry for %s, dropping: %v", userID, err)
		c.client.Del(ctx, key(userID))
		return nil, false
	}
	return &report, true
}

func (c *redisCache) Set(ctx context.Context, userID uuid.UUID, report *domain.CircadianRhythmAnalysis) {
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(userID), data, c.ttl).Err(); err != nil {
		log.Printf("[cache] set failed: %v", err)
	}
}

func (c *redisCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := c.client.Del(ctx, key(userID)).Err(); err != nil {
		log.Printf("[cache] invalidate failed: %v", err)
	}
}

// noopCache is used when Redis is not configured.
type noopCache struct{}

func (noopCache) Get(ctx context.Context, userID uuid.UUID) (*domain.CircadianRhythmAnalysis, bool) {
	return nil, false
}
func (noopCache) Set(ctx context.Context, userID uuid.UUID, report *domain.CircadianRhythmAnalysis) {
}
func (noopCache) Invalidate(ctx context.Context, userID uuid.UUID) {}
