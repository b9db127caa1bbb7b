package main

import (
	"fmt"

	"github.com/strayhat/pushjack/internal/game"
	"github.com/strayhat/pushjack/internal/sim"
)

// SidebetCmd simulates the push side-wager alongside the primary bet.
type SidebetCmd struct {
	simFlags
	outputFlags

	PayoutMode string `default:"total" enum:"total,cards" help:"Pay by push total or by card count"`

	Payout17 float64 `default:"1" help:"Multiplier for a 17 push"`
	Payout18 float64 `default:"1" help:"Multiplier for an 18 push"`
	Payout19 float64 `default:"1" help:"Multiplier for a 19 push"`
	Payout20 float64 `default:"1" help:"Multiplier for a 20 push"`
	Payout21 float64 `default:"1" help:"Multiplier for a 21 push"`
	PayoutBB float64 `name:"payout-bust-bust" default:"1" help:"Multiplier for a bust-bust push"`
	PayoutBJ float64 `name:"payout-bj-bj" default:"1" help:"Multiplier for a blackjack-blackjack push"`

	PayoutCards map[int]float64 `help:"Card-count multipliers, e.g. 4=10,5=5,6=2 (12 is the 12+ bucket)"`
}

func (c *SidebetCmd) Run() error {
	cfg, err := c.config()
	if err != nil {
		return err
	}

	switch c.PayoutMode {
	case "total":
		cfg.SidebetMode = game.SidebetTotals
		cfg.TotalPayouts = map[game.PushCategory]float64{
			game.Push17:         c.Payout17,
			game.Push18:         c.Payout18,
			game.Push19:         c.Payout19,
			game.Push20:         c.Payout20,
			game.Push21:         c.Payout21,
			game.PushBustBust:   c.PayoutBB,
			game.PushBlackjacks: c.PayoutBJ,
		}
	case "cards":
		cfg.SidebetMode = game.SidebetCards
		payouts := sim.DefaultCardPayouts()
		for bucket, mult := range c.PayoutCards {
			if bucket < 4 || bucket > game.MaxCardBucket {
				return fmt.Errorf("card bucket %d out of range [4,%d]", bucket, game.MaxCardBucket)
			}
			payouts[bucket] = mult
		}
		cfg.CardPayouts = payouts
	}

	return runAndReport(cfg, c.outputFlags, "sidebet")
}
