package external

import (
	"encoding/json"
	"time"

	"github.com/curalink/curalink-server/redis"
)

const cacheTTL = 30 * time.Minute

// cacheGet loads a cached search result. A nil redis client or any
// cache error reads as a miss.
func cacheGet(key string, v interface{}) bool {
	if redis.Client == nil {
		return false
	}
	data, err := redis.Client.Get(redis.Ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

func cacheSet(key string, v interface{}) {
	if redis.Client == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	redis.Client.Set(redis.Ctx, key, data, cacheTTL)
}
