package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/strayhat/pushjack/internal/display"
	"github.com/strayhat/pushjack/internal/sim"
)

// PlayCmd steps through rounds interactively in a terminal UI.
type PlayCmd struct {
	simFlags
}

func (c *PlayCmd) Run() error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	// one hand at a time in the stepper
	cfg.Players = 1

	simulator, err := sim.New(cfg)
	if err != nil {
		return err
	}

	program := tea.NewProgram(display.New(simulator), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run interactive session: %w", err)
	}
	return nil
}
