package utils

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ForEachPartition splits [0, n) into at most workers contiguous ranges and
// calls fn once per range, concurrently. fn must only touch indexes inside
// its own range. With workers <= 1 fn runs once, inline, over the whole range.
func ForEachPartition(ctx context.Context, n, workers int, fn func(ctx context.Context, lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	if workers <= 1 || n == 1 {
		return fn(ctx, 0, n)
	}
	if workers > n {
		workers = n
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	size := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		lo := lo
		g.Go(func() error {
			return fn(gctx, lo, hi)
		})
	}
	return g.Wait()
}
