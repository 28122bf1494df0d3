package cache

import (
	"time"
)

// CacheService represents a generic byte cache. The pipeline uses it to
// keep fetched category pages for a short TTL so repeated runs within
// the TTL skip the network round trip.
type CacheService interface {
	// Get retrieves a value from the cache
	Get(key string) ([]byte, error)

	// Set stores a value in the cache with an expiration time
	Set(key string, value []byte, expiration time.Duration) error

	// Delete removes a value from the cache
	Delete(key string) error
}
