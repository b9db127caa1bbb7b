package sim

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/strayhat/pushjack/internal/game"
	"github.com/strayhat/pushjack/internal/strategy"
)

// fileConfig is the HCL shape of a single-run configuration file:
//
//	simulation {
//	  rounds          = 1000000
//	  decks           = 6
//	  commission_pct  = 5.0
//	}
//
//	rule "16" {
//	  up_card = 10
//	  hit     = true
//	}
//
//	sidebet {
//	  mode    = "total"
//	  payouts = { "17" = 2.5, "bust-bust" = 10 }
//	}
type fileConfig struct {
	Simulation *settingsBlock `hcl:"simulation,block"`
	Rules      []ruleBlock    `hcl:"rule,block"`
	Sidebet    *sidebetBlock  `hcl:"sidebet,block"`
}

type settingsBlock struct {
	Rounds                *int     `hcl:"rounds,optional"`
	Decks                 *int     `hcl:"decks,optional"`
	Players               *int     `hcl:"players,optional"`
	ReshuffleCutoff       *int     `hcl:"reshuffle_cutoff,optional"`
	DealerHitsSoft17      *bool    `hcl:"dealer_hits_soft_17,optional"`
	PlayerHitsSoft17      *bool    `hcl:"player_hits_soft_17,optional"`
	StandThreshold        *int     `hcl:"stand_threshold,optional"`
	CommissionPct         *float64 `hcl:"commission_pct,optional"`
	BlackjackPayout       *float64 `hcl:"blackjack_payout,optional"`
	CommissionOnBlackjack *bool    `hcl:"commission_on_blackjack,optional"`
	HitAgainstBlackjack   *bool    `hcl:"hit_against_blackjack,optional"`
	Seed                  *int64   `hcl:"seed,optional"`
}

type ruleBlock struct {
	Hand   string `hcl:"hand,label"`
	UpCard int    `hcl:"up_card"`
	Hit    bool   `hcl:"hit"`
}

type sidebetBlock struct {
	Mode    string             `hcl:"mode"`
	Payouts map[string]float64 `hcl:"payouts,optional"`
}

// sweepFile is the HCL shape of a parameter sweep: repeated run blocks, each
// carrying the single-run body.
type sweepFile struct {
	Runs []sweepRun `hcl:"run,block"`
}

type sweepRun struct {
	Name       string         `hcl:"name,label"`
	Simulation *settingsBlock `hcl:"simulation,block"`
	Rules      []ruleBlock    `hcl:"rule,block"`
	Sidebet    *sidebetBlock  `hcl:"sidebet,block"`
}

// LoadConfig reads a single-run HCL configuration file, applying it on top
// of the defaults, and validates the result.
func LoadConfig(path string) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("sim: parse %s: %s", path, diags.Error())
	}

	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return Config{}, fmt.Errorf("sim: decode %s: %s", path, diags.Error())
	}

	cfg := Default()
	if err := applyFile(&cfg, fc.Simulation, fc.Rules, fc.Sidebet); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadSweep reads a sweep file of named run blocks, each applied on top of
// the defaults independently.
func LoadSweep(path string) ([]NamedConfig, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("sim: parse %s: %s", path, diags.Error())
	}

	var sf sweepFile
	if diags := gohcl.DecodeBody(file.Body, nil, &sf); diags.HasErrors() {
		return nil, fmt.Errorf("sim: decode %s: %s", path, diags.Error())
	}
	if len(sf.Runs) == 0 {
		return nil, fmt.Errorf("%w: sweep file %s has no run blocks", ErrInvalidConfig, path)
	}

	configs := make([]NamedConfig, 0, len(sf.Runs))
	for _, run := range sf.Runs {
		cfg := Default()
		if err := applyFile(&cfg, run.Simulation, run.Rules, run.Sidebet); err != nil {
			return nil, fmt.Errorf("run %q: %w", run.Name, err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("run %q: %w", run.Name, err)
		}
		configs = append(configs, NamedConfig{Name: run.Name, Config: cfg})
	}
	return configs, nil
}

func applyFile(cfg *Config, settings *settingsBlock, rules []ruleBlock, sidebet *sidebetBlock) error {
	if settings != nil {
		applySettings(cfg, settings)
	}
	if len(rules) > 0 {
		table := strategy.NewRuleTable()
		for _, r := range rules {
			desc, err := strategy.ParseDescriptor(r.Hand)
			if err != nil {
				return err
			}
			if err := table.Set(desc, r.UpCard, r.Hit); err != nil {
				return err
			}
		}
		cfg.Overrides = table
	}
	if sidebet != nil {
		if err := applySidebet(cfg, sidebet); err != nil {
			return err
		}
	}
	return nil
}

func applySettings(cfg *Config, s *settingsBlock) {
	if s.Rounds != nil {
		cfg.Rounds = *s.Rounds
	}
	if s.Decks != nil {
		cfg.Decks = *s.Decks
	}
	if s.Players != nil {
		cfg.Players = *s.Players
	}
	if s.ReshuffleCutoff != nil {
		cfg.ReshuffleCutoff = *s.ReshuffleCutoff
	}
	if s.DealerHitsSoft17 != nil {
		cfg.DealerHitsSoft17 = *s.DealerHitsSoft17
	}
	if s.PlayerHitsSoft17 != nil {
		cfg.PlayerHitsSoft17 = *s.PlayerHitsSoft17
	}
	if s.StandThreshold != nil {
		cfg.StandThreshold = *s.StandThreshold
	}
	if s.CommissionPct != nil {
		cfg.CommissionPct = *s.CommissionPct
	}
	if s.BlackjackPayout != nil {
		cfg.BlackjackPayout = *s.BlackjackPayout
	}
	if s.CommissionOnBlackjack != nil {
		cfg.CommissionOnBlackjack = *s.CommissionOnBlackjack
	}
	if s.HitAgainstBlackjack != nil {
		cfg.HitAgainstBlackjack = *s.HitAgainstBlackjack
	}
	if s.Seed != nil {
		cfg.Seed = *s.Seed
	}
}

func applySidebet(cfg *Config, s *sidebetBlock) error {
	switch strings.ToLower(s.Mode) {
	case "off":
		cfg.SidebetMode = game.SidebetOff
	case "total", "totals":
		cfg.SidebetMode = game.SidebetTotals
	case "cards":
		cfg.SidebetMode = game.SidebetCards
	default:
		return fmt.Errorf("%w: unknown sidebet mode %q", ErrInvalidConfig, s.Mode)
	}
	if len(s.Payouts) == 0 {
		return nil
	}

	switch cfg.SidebetMode {
	case game.SidebetTotals:
		payouts := DefaultTotalPayouts()
		for key, mult := range s.Payouts {
			cat, err := parsePushCategory(key)
			if err != nil {
				return err
			}
			payouts[cat] = mult
		}
		cfg.TotalPayouts = payouts
	case game.SidebetCards:
		payouts := DefaultCardPayouts()
		for key, mult := range s.Payouts {
			bucket, err := parseCardBucket(key)
			if err != nil {
				return err
			}
			payouts[bucket] = mult
		}
		cfg.CardPayouts = payouts
	}
	return nil
}

func parsePushCategory(s string) (game.PushCategory, error) {
	for _, c := range game.Categories {
		if c.String() == s {
			return c, nil
		}
	}
	return game.PushNone, fmt.Errorf("%w: unknown push category %q", ErrInvalidConfig, s)
}

func parseCardBucket(s string) (int, error) {
	if s == "12+" {
		return game.MaxCardBucket, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 4 || n >= game.MaxCardBucket {
		return 0, fmt.Errorf("%w: card bucket %q must be 4-11 or \"12+\"", ErrInvalidConfig, s)
	}
	return n, nil
}
