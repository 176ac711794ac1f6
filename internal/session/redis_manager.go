package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const stepTTL = 24 * time.Hour

// RedisManager keeps onboarding steps in Redis so they survive restarts and
// are shared across instances. Keys expire after 24h to drop stale
// conversations.
type RedisManager struct {
	client *redis.Client
}

func NewRedisManager(redisHost, redisPort string) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", redisHost, redisPort),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisManager{client: client}, nil
}

func stepKey(userID int64) string {
	return fmt.Sprintf("user:%d:onboarding_step", userID)
}

func (m *RedisManager) SetStep(userID int64, step string) {
	m.client.Set(context.Background(), stepKey(userID), step, stepTTL)
}

func (m *RedisManager) Step(userID int64) string {
	result := m.client.Get(context.Background(), stepKey(userID))
	if result.Err() != nil {
		// Missing key and transport errors both fall back to the default.
		return StepNone
	}
	return result.Val()
}

func (m *RedisManager) Clear(userID int64) {
	m.client.Del(context.Background(), stepKey(userID))
}

// Close closes the Redis connection
func (m *RedisManager) Close() error {
	return m.client.Close()
}
