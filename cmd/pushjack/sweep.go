package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/strayhat/pushjack/cmd/pushjack/shared"
	"github.com/strayhat/pushjack/internal/report"
	"github.com/strayhat/pushjack/internal/sim"
)

// SweepCmd runs every configuration in a sweep file in parallel and prints
// an edge comparison table.
type SweepCmd struct {
	File string `arg:"" help:"HCL sweep file of run blocks" type:"existingfile"`
	Seed int64  `default:"1" help:"Base seed for runs without an explicit one"`

	outputFlags
}

func (c *SweepCmd) Run() error {
	logger := c.logger()
	ctx := shared.SetupSignalHandler(logger)

	configs, err := sim.LoadSweep(c.File)
	if err != nil {
		return err
	}
	logger.Info().Int("runs", len(configs)).Msg("Starting sweep")

	results, err := sim.Sweep(ctx, configs, c.Seed, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tROUNDS\tHOUSE EDGE\tSIDE-BET EDGE\tPUSH RATE")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%.4f%%\t%.4f%%\t%.2f%%\n",
			r.Name, r.Snapshot.Rounds, r.Snapshot.HouseEdge, r.Snapshot.SidebetEdge, r.Snapshot.PushRate())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if c.NoSave {
		return nil
	}
	for _, r := range results {
		paths, err := report.WriteAll(c.OutputDir, "sweep_"+r.Name, r.Config, r.Snapshot)
		if err != nil {
			return err
		}
		for _, p := range paths {
			logger.Info().Str("path", p).Msg("Report written")
		}
	}
	return nil
}
