package sim

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/strayhat/pushjack/internal/stats"
)

// NamedConfig pairs a configuration with a label for sweep output.
type NamedConfig struct {
	Name   string
	Config Config
}

// SweepResult is one completed sweep run.
type SweepResult struct {
	Name     string
	Config   Config
	Snapshot stats.Snapshot
}

// Sweep runs each configuration as an independent simulation, one worker per
// configuration up to the CPU count. Every run owns its own shoe, strategies,
// and aggregator, so no locks are needed; runs without an explicit seed get
// one derived from seedBase so a sweep replays deterministically.
//
// Results come back in input order. Cancelling the context stops the runs
// between rounds; the first error cancels the rest of the sweep.
func Sweep(ctx context.Context, configs []NamedConfig, seedBase int64, logger zerolog.Logger) ([]SweepResult, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("%w: sweep needs at least one configuration", ErrInvalidConfig)
	}

	// Assign missing seeds up front so worker scheduling cannot change them.
	seeder := rand.New(rand.NewSource(seedBase))
	for i := range configs {
		if configs[i].Config.Seed == 0 {
			configs[i].Config.Seed = seeder.Int63()
		}
	}

	workers := runtime.NumCPU()
	if workers > len(configs) {
		workers = len(configs)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([]SweepResult, len(configs))
	for i, nc := range configs {
		g.Go(func() error {
			runLogger := logger.With().Str("run", nc.Name).Logger()
			runLogger.Info().Str("config", nc.Config.String()).Msg("Starting sweep run")

			sim, err := New(nc.Config, WithLogger(runLogger))
			if err != nil {
				return fmt.Errorf("run %q: %w", nc.Name, err)
			}
			snap, err := sim.Run(ctx)
			if err != nil {
				return fmt.Errorf("run %q: %w", nc.Name, err)
			}

			runLogger.Info().
				Float64("house_edge_pct", snap.HouseEdge).
				Float64("sidebet_edge_pct", snap.SidebetEdge).
				Msg("Sweep run complete")
			results[i] = SweepResult{Name: nc.Name, Config: nc.Config, Snapshot: snap}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
