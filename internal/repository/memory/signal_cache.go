package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"dailymoji-be/pkg/srj5"
)

// SignalCache keeps parsed model signals keyed by content hash so a
// repeated check-in text inside the TTL skips the model call.
type SignalCache struct {
	cache *cache.Cache
}

var _ srj5.SignalCache = &SignalCache{}

func NewSignalCache(ttl time.Duration) *SignalCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &SignalCache{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *SignalCache) Get(key string) (*srj5.ModelSignal, bool) {
	if x, found := r.cache.Get(key); found {
		return x.(*srj5.ModelSignal), true
	}
	return nil, false
}

func (r *SignalCache) Set(key string, sig *srj5.ModelSignal) {
	r.cache.Set(key, sig, cache.DefaultExpiration)
}
