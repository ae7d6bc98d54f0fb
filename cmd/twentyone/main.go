package main

import (
	"github.com/alecthomas/kong"

	"github.com/lox/twentyone/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play against the dealer in the terminal (default)"`
	TUI      TUICmd           `cmd:"tui" help:"Play in a full-screen interface"`
	Simulate SimulateCmd      `cmd:"" help:"Play many rounds with a bot and report statistics"`
	Rules    RulesCmd         `cmd:"" help:"Print the rules"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("twentyone"),
		kong.Description("A game of twenty-one against the dealer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFile,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
