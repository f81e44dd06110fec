package redis

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/curalink/curalink-server/utils"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

// InitRedis connects the optional search cache. When REDIS_ADDR is
// unset or the server is unreachable the client stays nil and the
// external adapters skip caching.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		utils.Log.Info("REDIS_ADDR not set, search caching disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	// Test connection
	if _, err := client.Ping(Ctx).Result(); err != nil {
		utils.Log.Warnf("Failed to connect to Redis, caching disabled: %v", err)
		return
	}

	Client = client
	utils.Log.Info("✅ Connected to Redis")
}
