package grants

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/usheader/internal/metadata"
)

func TestDiscover_MergesAndDedupes(t *testing.T) {
	sources := []string{
		"GM_getValue('a'); GM_setValue('a', 1);",
		"GM_getValue('b');",
		"export const x = 1;",
	}
	declared := metadata.NewGrantSet("GM_getValue", "GM_addStyle")

	got, err := Discover(context.Background(), nil, sources, declared, 2)
	require.NoError(t, err)

	assert.Equal(t, []metadata.Grant{"GM_addStyle", "GM_getValue", "GM_setValue"}, got.Sorted())
	assert.Equal(t, 2, declared.Len(), "declared set must not be modified")
}

func TestDiscover_NoSources(t *testing.T) {
	got, err := Discover(context.Background(), nil, nil, nil, 0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, 0, got.Len())
}

// TestDiscover_OrderAndConcurrencyIndependent runs the same sources in several
// orders and limits and expects one answer.
func TestDiscover_OrderAndConcurrencyIndependent(t *testing.T) {
	var sources []string
	for i, g := range metadata.Grants() {
		sources = append(sources, fmt.Sprintf("/* chunk %d */ %s(x);", i, g))
	}
	want, err := Discover(context.Background(), nil, sources, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, len(metadata.Grants()), want.Len())

	reversed := make([]string, len(sources))
	for i, s := range sources {
		reversed[len(sources)-1-i] = s
	}

	for _, limit := range []int{1, 3, 8, 64} {
		t.Run(fmt.Sprintf("limit=%d", limit), func(t *testing.T) {
			got, err := Discover(context.Background(), nil, reversed, nil, limit)
			require.NoError(t, err)
			assert.True(t, want.Equal(got))
		})
	}
}

func TestDiscover_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := Discover(ctx, nil, []string{"GM_info();"}, nil, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, got)
}

func TestDiscover_UsesScanner(t *testing.T) {
	c, err := NewCachingScanner(nil, 8)
	require.NoError(t, err)

	sources := []string{"GM_info();", "GM_info();", "GM_info();"}
	got, err := Discover(context.Background(), c, sources, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, []metadata.Grant{"GM_info"}, got.Sorted())

	hits, misses := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}
