package runtime

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Branch is one side of a parallel split: an isolated unit of pipeline
// work that yields a result.
type Branch func(ctx context.Context) (any, error)

// Gather runs every branch concurrently and waits for all of them.
// The first branch error cancels the shared context and is returned;
// otherwise the result is a []any in branch order.
func Gather(ctx context.Context, branches ...Branch) (any, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]any, len(branches))
	for i, branch := range branches {
		g.Go(func() error {
			v, err := branch(ctx)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
