package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mkarren/ballot/pkg/config"
	"github.com/mkarren/ballot/pkg/version"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Version bool `help:"Print version information and exit." short:"v"`
	Debug   bool `help:"Whether to enable debug logging."`

	Check struct {
		Configs []string `arg:"" optional:"" name:"configs" help:"Configuration files to validate." type:"file"`
	} `cmd:"" help:"Validate configuration files and the game modes they declare."`

	Modes struct {
		Configs []string `arg:"" optional:"" name:"configs" help:"Configuration files." type:"file"`
	} `cmd:"" help:"List configured game modes with their resolved difficulties."`

	Table struct {
		Configs []string `arg:"" optional:"" name:"configs" help:"Configuration files." type:"file"`
	} `cmd:"" help:"Print the voting table rows that would be injected into the host."`

	History struct {
		Limit   int      `default:"20" help:"Maximum number of entries to show."`
		Configs []string `arg:"" optional:"" name:"configs" help:"Configuration files." type:"file"`
	} `cmd:"" help:"Show recent vote-driven mode switches."`

	Config struct {
	} `cmd:"" help:"Write ballot's default configuration to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("ballot"),
		kong.Description("game mode injection for a game server's map voting"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	if CLI.Version {
		fmt.Printf(
			"ballot %s (commit %s)\n",
			version.Version,
			version.GitCommit,
		)
		fmt.Printf(
			"built %s\n",
			version.BuildTime,
		)
		os.Exit(0)
	}

	var err error
	switch ctx.Command() {
	case "check":
		fallthrough
	case "check <configs>":
		err = checkCommand(CLI.Check.Configs)
	case "modes":
		fallthrough
	case "modes <configs>":
		err = modesCommand(CLI.Modes.Configs)
	case "table":
		fallthrough
	case "table <configs>":
		err = tableCommand(CLI.Table.Configs)
	case "history":
		fallthrough
	case "history <configs>":
		err = historyCommand(CLI.History.Configs, CLI.History.Limit)
	case "config":
		os.Stdout.Write(config.DEFAULT)
	}

	if err != nil {
		writeError(err)
	}
}
