package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Run     RunCmd           `cmd:"" help:"Simulate the primary dealer-backed wager"`
	Sidebet SidebetCmd       `cmd:"" help:"Simulate the push side-wager"`
	Sweep   SweepCmd         `cmd:"" help:"Run a parallel parameter sweep from an HCL file"`
	Play    PlayCmd          `cmd:"" help:"Step through rounds interactively"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pushjack"),
		kong.Description("Edge simulator for the dealer-backed blackjack wager and its push side-bet"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
