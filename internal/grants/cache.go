package grants

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vvka-141/usheader/internal/checksum"
	"github.com/vvka-141/usheader/internal/metadata"
	"github.com/vvka-141/usheader/pkg/usheader"
)

// CachingScanner wraps a Scanner with an LRU cache keyed by the normalized
// checksum of the scanned source. Results are copied on the way in and out,
// so callers may modify the sets they receive.
// It is safe for concurrent use.
type CachingScanner struct {
	next   Scanner
	calc   checksum.Calculator
	cache  *lru.Cache[string, metadata.GrantSet]
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCachingScanner creates a cache of the given size in front of next.
// A size of zero or less selects usheader.DefaultScanCacheSize.
func NewCachingScanner(next Scanner, size int) (*CachingScanner, error) {
	if next == nil {
		next = Default
	}
	if size <= 0 {
		size = usheader.DefaultScanCacheSize
	}
	cache, err := lru.New[string, metadata.GrantSet](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create scan cache: %w", err)
	}
	return &CachingScanner{
		next:  next,
		calc:  checksum.New(),
		cache: cache,
	}, nil
}

// Scan returns the cached grants for source, scanning it on a miss.
func (c *CachingScanner) Scan(source string) metadata.GrantSet {
	key := c.calc.CalculateString(source)
	if cached, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return cached.Clone()
	}

	c.misses.Add(1)
	found := c.next.Scan(source)
	c.cache.Add(key, found.Clone())
	return found
}

// Stats returns the number of cache hits and misses so far.
func (c *CachingScanner) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of cached entries.
func (c *CachingScanner) Len() int {
	return c.cache.Len()
}
