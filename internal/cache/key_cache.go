// Package cache keeps recently resolved API keys in memory.
package cache

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	numCounters = 1e5
	maxCost     = 1e4
	bufferItems = 64
)

// DefaultTTL bounds how long a resolved key stays cached.
const DefaultTTL = 5 * time.Minute

// KeyCache maps API keys to account ids.
type KeyCache struct {
	cache  *ristretto.Cache[string, uuid.UUID]
	ttl    time.Duration
	logger *zap.Logger
}

// NewKeyCache creates a KeyCache. A non-positive ttl falls back to DefaultTTL.
func NewKeyCache(ttl time.Duration, logger *zap.Logger) (*KeyCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, uuid.UUID]{
		NumCounters: numCounters,
		MaxCost:     maxCost,
		BufferItems: bufferItems,
	})
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &KeyCache{cache: c, ttl: ttl, logger: logger}, nil
}

// Get returns the account id cached for key.
func (k *KeyCache) Get(key string) (uuid.UUID, bool) {
	id, ok := k.cache.Get(key)
	if ok {
		k.logger.Debug("api key cache hit")
	}
	return id, ok
}

// Store caches key for the configured TTL.
func (k *KeyCache) Store(key string, accountID uuid.UUID) {
	k.cache.SetWithTTL(key, accountID, 1, k.ttl)
	// Make the value visible to the next Get.
	k.cache.Wait()
}

// Close releases the cache.
func (k *KeyCache) Close() {
	k.cache.Close()
}
