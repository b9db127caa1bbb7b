package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/strayhat/pushjack/cmd/pushjack/shared"
	"github.com/strayhat/pushjack/internal/report"
	"github.com/strayhat/pushjack/internal/sim"
	"github.com/strayhat/pushjack/internal/stats"
	"github.com/strayhat/pushjack/internal/strategy"
)

// simFlags are the configuration flags shared by the run, sidebet, and play
// commands. An HCL config file, when given, is loaded first and the explicit
// flags overlay it.
type simFlags struct {
	Config          string   `help:"HCL config file" type:"existingfile"`
	Rounds          int      `default:"100000" help:"Number of rounds to simulate"`
	Decks           int      `default:"6" help:"Number of decks in the shoe"`
	Players         int      `default:"1" help:"Simultaneous player hands per round"`
	Cutoff          int      `default:"52" help:"Reshuffle cutoff in cards (ignored with --continuous)"`
	Continuous      bool     `help:"Continuous shuffle: fold discards back in after every round"`
	DealerSoft17    bool     `help:"Dealer hits soft 17"`
	PlayerSoft17    bool     `help:"Player hits soft 17"`
	StandThreshold  int      `default:"17" help:"Player stands at this total"`
	Commission      float64  `default:"5.0" help:"Commission percentage on regular wins"`
	BlackjackPayout float64  `default:"1.0" help:"Payout ratio for a winning dealer blackjack"`
	CommissionOnBJ  bool     `name:"commission-on-bj" help:"Apply commission to blackjack payouts"`
	HitAgainstBJ    bool     `name:"hit-against-bj" help:"Player keeps drawing against a dealer blackjack"`
	Rule            []string `help:"Override rule, e.g. '16:10=hit' or 'soft 17:11=stand' (repeatable)"`
	Seed            int64    `help:"RNG seed (0 for time-based)"`
}

// outputFlags control report writing and logging.
type outputFlags struct {
	OutputDir string `default:"results" help:"Directory for report files"`
	NoSave    bool   `help:"Skip writing report files"`
	JSONLog   bool   `name:"json-log" help:"Structured JSON logging"`
	Debug     bool   `help:"Enable debug logging"`
}

func (o outputFlags) logger() zerolog.Logger {
	if o.JSONLog {
		return shared.SetupStructuredLogger(o.Debug)
	}
	return shared.SetupLogger(o.Debug)
}

// config assembles a sim.Config from the optional file plus flag overlay.
func (f simFlags) config() (sim.Config, error) {
	cfg := sim.Default()
	if f.Config != "" {
		loaded, err := sim.LoadConfig(f.Config)
		if err != nil {
			return sim.Config{}, err
		}
		cfg = loaded
	} else {
		cfg.Rounds = f.Rounds
		cfg.Decks = f.Decks
		cfg.Players = f.Players
		cfg.ReshuffleCutoff = f.Cutoff
		if f.Continuous {
			cfg.ReshuffleCutoff = 0
		}
		cfg.DealerHitsSoft17 = f.DealerSoft17
		cfg.PlayerHitsSoft17 = f.PlayerSoft17
		cfg.StandThreshold = f.StandThreshold
		cfg.CommissionPct = f.Commission
		cfg.BlackjackPayout = f.BlackjackPayout
		cfg.CommissionOnBlackjack = f.CommissionOnBJ
		cfg.HitAgainstBlackjack = f.HitAgainstBJ
	}
	if f.Seed != 0 {
		cfg.Seed = f.Seed
	}

	if len(f.Rule) > 0 {
		table := cfg.Overrides
		if table == nil {
			table = strategy.NewRuleTable()
		}
		for _, raw := range f.Rule {
			desc, upCard, hit, err := strategy.ParseRule(raw)
			if err != nil {
				return sim.Config{}, err
			}
			if err := table.Set(desc, upCard, hit); err != nil {
				return sim.Config{}, err
			}
		}
		cfg.Overrides = table
	}
	return cfg, nil
}

// RunCmd simulates the primary wager.
type RunCmd struct {
	simFlags
	outputFlags
}

func (c *RunCmd) Run() error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	return runAndReport(cfg, c.outputFlags, "pushjack")
}

// runAndReport is the shared execute-then-report path for the run and
// sidebet commands.
func runAndReport(cfg sim.Config, out outputFlags, prefix string) error {
	logger := out.logger()
	ctx := shared.SetupSignalHandler(logger)

	logger.Info().Str("config", cfg.String()).Msg("Starting simulation")

	simulator, err := sim.New(cfg, sim.WithLogger(logger))
	if err != nil {
		return err
	}
	snap, err := simulator.Run(ctx)
	if errors.Is(err, stats.ErrNoRounds) {
		logger.Warn().Msg("No rounds completed, nothing to report")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(report.Summary(cfg, snap))

	if out.NoSave {
		return nil
	}
	paths, err := report.WriteAll(out.OutputDir, prefix, cfg, snap)
	if err != nil {
		return err
	}
	for _, p := range paths {
		logger.Info().Str("path", p).Msg("Report written")
	}
	return nil
}
