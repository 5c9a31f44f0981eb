// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// tuiCommand opens the interactive form
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"ui"},
		Usage:   "Interactive form for identifying a video's genre",
		Action:  r.TUI,
	}
}

// guessCommand runs the pipeline once for a single URL
func guessCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "guess",
		Usage: "Predict the genre of a YouTube music video",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "url",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Also save the prediction to this file",
			},
		},
		Action: r.Guess,
	}
}

// configCommand handles configuration files and credential checks
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write an example config.toml",
				Action: r.ConfigInit,
			},
			{
				Name:   "check",
				Usage:  "Report which credentials are set",
				Action: r.ConfigCheck,
			},
		},
	}
}
