package sim

import (
	"context"
	"math/rand"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/strayhat/pushjack/internal/deck"
	"github.com/strayhat/pushjack/internal/game"
	"github.com/strayhat/pushjack/internal/stats"
)

// Simulator owns the shoe, strategy pair, resolver, and aggregator for one
// run. It is single-threaded: one round at a time, deal -> resolve ->
// aggregate -> return-to-discard, with no blocking operations. Independent
// simulators can run in parallel since they share nothing.
type Simulator struct {
	cfg      Config
	shoe     *deck.Shoe
	resolver *game.Resolver
	agg      *stats.Aggregator
	logger   zerolog.Logger
	clock    quartz.Clock
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger sets the progress logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Simulator) { s.logger = logger }
}

// WithClock injects a clock for elapsed-time measurement in tests.
func WithClock(clock quartz.Clock) Option {
	return func(s *Simulator) { s.clock = clock }
}

// New validates the configuration and builds a ready simulator. A zero seed
// picks a time-based one.
func New(cfg Config, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulator{
		cfg:    cfg,
		logger: zerolog.Nop(),
		clock:  quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(s)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	s.shoe = deck.NewShoe(cfg.Decks, cfg.ReshuffleCutoff, rng)
	s.resolver = game.NewResolver(cfg.Rules(), s.shoe, cfg.PlayerStrategy(), cfg.DealerStrategy())
	s.agg = stats.New()
	return s, nil
}

// Config returns the simulator's configuration.
func (s *Simulator) Config() Config {
	return s.cfg
}

// Stats returns the live aggregator for mid-run queries.
func (s *Simulator) Stats() *stats.Aggregator {
	return s.agg
}

// NewRound starts an interactively stepped round sharing this simulator's
// shoe, strategies, and rules. Completed rounds are not aggregated
// automatically; the driver feeds the result to Stats().Add.
func (s *Simulator) NewRound() *game.Round {
	return game.NewRound(s.resolver)
}

// Run plays the configured number of rounds. The context is checked between
// rounds, so cancelling a long run returns the partial aggregates instead of
// aborting mid-round.
func (s *Simulator) Run(ctx context.Context) (stats.Snapshot, error) {
	start := s.clock.Now()
	progressEvery := s.cfg.Rounds / 20
	if progressEvery < 1 {
		progressEvery = 1
	}

	for i := 0; i < s.cfg.Rounds; i++ {
		select {
		case <-ctx.Done():
			s.logger.Warn().
				Int("completed", i).
				Int("requested", s.cfg.Rounds).
				Msg("Simulation cancelled, returning partial aggregates")
			return s.finish(start)
		default:
		}

		results, err := s.resolver.PlayRound(s.cfg.Players)
		if err != nil {
			return stats.Snapshot{}, err
		}
		for _, r := range results {
			s.agg.Add(r)
		}

		if (i+1)%progressEvery == 0 {
			s.logger.Info().
				Int("rounds", i+1).
				Int("total", s.cfg.Rounds).
				Float64("pct", 100*float64(i+1)/float64(s.cfg.Rounds)).
				Dur("elapsed", s.clock.Since(start)).
				Msg("Progress")
		}
	}

	return s.finish(start)
}

func (s *Simulator) finish(start time.Time) (stats.Snapshot, error) {
	s.agg.SetElapsed(s.clock.Since(start))
	return s.agg.Snapshot()
}
