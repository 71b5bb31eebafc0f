package grants

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/usheader/internal/metadata"
)

func countingScanner(calls *atomic.Int64) Scanner {
	return Func(func(src string) metadata.GrantSet {
		calls.Add(1)
		return Scan(src)
	})
}

func TestCachingScanner_HitReturnsEqualSet(t *testing.T) {
	var calls atomic.Int64
	c, err := NewCachingScanner(countingScanner(&calls), 8)
	require.NoError(t, err)

	first := c.Scan("GM_getValue('a');")
	second := c.Scan("GM_getValue('a');")

	assert.True(t, first.Equal(second))
	assert.Equal(t, int64(1), calls.Load())
	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestCachingScanner_NormalizedKey(t *testing.T) {
	var calls atomic.Int64
	c, err := NewCachingScanner(countingScanner(&calls), 8)
	require.NoError(t, err)

	c.Scan("GM_info();\n")
	c.Scan("GM_info();  \r\n")
	assert.Equal(t, int64(1), calls.Load(), "line ending variants share a cache entry")

	c.Scan("GM_addStyle(css);")
	assert.Equal(t, int64(2), calls.Load())
	assert.Equal(t, 2, c.Len())
}

func TestCachingScanner_ReturnsCopies(t *testing.T) {
	c, err := NewCachingScanner(nil, 0)
	require.NoError(t, err)

	got := c.Scan("GM_info();")
	got.Add("GM_download")

	again := c.Scan("GM_info();")
	assert.Equal(t, []metadata.Grant{"GM_info"}, again.Sorted())
}

func TestCachingScanner_Eviction(t *testing.T) {
	var calls atomic.Int64
	c, err := NewCachingScanner(countingScanner(&calls), 1)
	require.NoError(t, err)

	c.Scan("GM_info();")
	c.Scan("GM_addStyle();")
	c.Scan("GM_info();")
	assert.Equal(t, int64(3), calls.Load())
	assert.Equal(t, 1, c.Len())
}

func TestCachingScanner_Concurrent(t *testing.T) {
	c, err := NewCachingScanner(nil, 4)
	require.NoError(t, err)

	sources := []string{"GM_info();", "GM.getValue();", "window.focus();"}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			src := sources[i%len(sources)]
			assert.True(t, Scan(src).Equal(c.Scan(src)))
		}(i)
	}
	wg.Wait()
}
