package main

import (
	"context"
	"os"

	"github.com/desertthunder/genregenie/internal/formatter"
	"github.com/desertthunder/genregenie/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		logger.Error(formatter.Label(nil, err))
		os.Exit(1)
	}
}

// newApp builds the root command. With no subcommand it opens the interactive form.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "genie",
		Usage:     "Guess the genre of a YouTube music video",
		Version:   "0.1.0",
		Writer:    r.output,
		ErrWriter: r.output,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to a dotenv file with YT_API_KEY, SPOTIFY_CLIENT and SPOTIFY_SECRET",
				Value: ".env",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("GENIE_DEBUG"),
			},
		},
		Before:   r.Setup,
		Action:   r.TUI,
		Commands: r.register(),
	}
}
