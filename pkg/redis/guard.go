package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ikkim/catalog-console/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only while it still carries our token, so
// an expired lock taken over by another replica is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SubmitGuard is a per-key mutual exclusion lock shared by every console
// replica. The TTL bounds how long a crashed holder can block a key.
type SubmitGuard struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewSubmitGuard(client *redis.Client, ttl time.Duration) *SubmitGuard {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &SubmitGuard{client: client, ttl: ttl, prefix: "submit:"}
}

// Acquire takes the lock for key. ok is false when someone else holds it.
func (g *SubmitGuard) Acquire(ctx context.Context, key string) (release func(context.Context) error, ok bool, err error) {
	token := uuid.NewString()
	redisKey := g.prefix + key

	ok, err = g.client.SetNX(ctx, redisKey, token, g.ttl).Result()
	if err != nil {
		logger.Error("Failed to acquire submit lock", err, map[string]interface{}{
			"key": redisKey,
		})
		return nil, false, fmt.Errorf("acquire submit lock: %w", err)
	}
	if !ok {
		logger.Debug("Submit lock already held", map[string]interface{}{
			"key": redisKey,
		})
		return nil, false, nil
	}

	release = func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, g.client, []string{redisKey}, token).Err(); err != nil {
			return fmt.Errorf("release submit lock: %w", err)
		}
		return nil
	}
	return release, true, nil
}
