package experiment

import (
	"context"
	"runtime"

	"github.com/san-kum/qsim/internal/config"
	"golang.org/x/sync/errgroup"
)

// RunBatch runs independent configurations concurrently. Each run owns its
// own buffers; the first failure cancels the remaining runs.
func RunBatch(ctx context.Context, cfgs []*config.Config) ([]*Outcome, error) {
	outcomes := make([]*Outcome, len(cfgs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, cfg := range cfgs {
		i, cfg := i, cfg
		g.Go(func() error {
			out, err := Run(ctx, cfg)
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
