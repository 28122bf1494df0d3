package cache

import (
	"testing"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/stretchr/testify/assert"
)

// This test requires a running memcached instance
// If memcached is not available, the test will be skipped
func TestMemcacheService(t *testing.T) {
	// Create a memcache client
	mc := NewMemcacheService("localhost:11211")

	// Test if memcached is available
	_, err := mc.client.Get("test")
	if err != nil && err != memcache.ErrCacheMiss {
		t.Skip("Memcached is not available, skipping test")
	}

	// Set a page body
	err = mc.Set("page:/hypermarkte/", []byte("<html></html>"), 1*time.Second)
	assert.NoError(t, err)

	// Get the page body
	value, err := mc.Get("page:/hypermarkte/")
	assert.NoError(t, err)
	assert.Equal(t, "<html></html>", string(value))

	// Delete the entry
	err = mc.Delete("page:/hypermarkte/")
	assert.NoError(t, err)

	// Try to get the deleted entry
	_, err = mc.Get("page:/hypermarkte/")
	assert.Error(t, err)
}
