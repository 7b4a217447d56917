package pager

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// EnhanceFunc augments a single fetched row with derived or externally
// sourced data, e.g. attaching a signed download URL. It runs strictly after
// pagination windowing, so it can neither change the page's metadata nor
// add or drop rows.
type EnhanceFunc[In, Out any] func(ctx context.Context, row In) (Out, error)

// enhanceRows applies fn to every row concurrently, preserving row order and
// count. Any single row failure fails the whole page; there are no partial
// results.
func enhanceRows[In, Out any](ctx context.Context, rows []In, fn EnhanceFunc[In, Out]) ([]Out, error) {
	out := make([]Out, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			enhanced, err := fn(gctx, row)
			if err != nil {
				return fmt.Errorf("failed to enhance row %d: %w", i, err)
			}
			out[i] = enhanced

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
