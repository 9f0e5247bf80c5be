package memory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"dailymoji-be/pkg/srj5"
)

// RedisSignalCache is the shared variant of the model-signal cache for
// multi-instance deployments. Lookups are best-effort: any Redis error is
// a miss.
type RedisSignalCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ srj5.SignalCache = &RedisSignalCache{}

func NewRedisSignalCache(client *redis.Client, ttl time.Duration) *RedisSignalCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisSignalCache{client: client, ttl: ttl}
}

func (r *RedisSignalCache) Get(key string) (*srj5.ModelSignal, bool) {
	data, err := r.client.Get(context.Background(), "signal:"+key).Bytes()
	if err != nil {
		return nil, false
	}
	var sig srj5.ModelSignal
	if err := json.Unmarshal(data, &sig); err != nil {
		return nil, false
	}
	return &sig, true
}

func (r *RedisSignalCache) Set(key string, sig *srj5.ModelSignal) {
	data, err := json.Marshal(sig)
	if err != nil {
		return
	}
	r.client.Set(context.Background(), "signal:"+key, data, r.ttl)
}
