package providers

import (
	"transcript/internal/structures"
	"unsafe"

	"github.com/coocood/freecache"
)

type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

// CacheProvider holds composed user labels for the whole run. Labels derive
// from immutable inputs, so entries are stored without expiry.
type CacheProvider struct {
	cache *freecache.Cache
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Debugf(TypeApp, "Label cache disabled, labels are composed on every message")
		return &noopCache{}
	}

	logger.Debugf(TypeApp, "Label cache: %dMB", conf.Cache.Size)
	return &CacheProvider{
		cache: freecache.NewCache(conf.Cache.Size << 20),
	}
}

// keyBytes views the key without copying; freecache copies keys on Set.
func keyBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get(keyBytes(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *CacheProvider) Set(key string, value []byte) {
	// labels are far below the per-entry limit, a failed Set only costs a recompute
	_ = c.cache.Set(keyBytes(key), value, 0)
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool) { return nil, false }
func (n *noopCache) Set(_ string, _ []byte)      {}
