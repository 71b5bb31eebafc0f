package grants

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/usheader/internal/metadata"
	"github.com/vvka-141/usheader/pkg/usheader"
)

// Discover scans every source with scanner and returns the union of the
// discovered grants and declared. Scans run in parallel, at most
// concurrency at a time (usheader.DefaultScanConcurrency when zero or less).
//
// The returned set is new; declared is not modified. Discover stops early and
// returns the context error when ctx is cancelled.
func Discover(ctx context.Context, scanner Scanner, sources []string, declared metadata.GrantSet, concurrency int) (metadata.GrantSet, error) {
	if scanner == nil {
		scanner = Default
	}
	if concurrency <= 0 {
		concurrency = usheader.DefaultScanConcurrency
	}

	found := make([]metadata.GrantSet, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, src := range sources {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			found[i] = scanner.Scan(src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return declared.Union(found...), nil
}
