package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/genregenie/internal/formatter"
	"github.com/desertthunder/genregenie/internal/shared"
	"github.com/desertthunder/genregenie/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Guess predicts genres for one URL and prints the result label.
func (r *Runner) Guess(ctx context.Context, cmd *cli.Command) error {
	rawURL := strings.TrimSpace(cmd.StringArg("url"))
	if rawURL == "" {
		return fmt.Errorf("%w: url", shared.ErrMissingArgument)
	}

	r.logger.Debug("starting prediction", "url", rawURL)

	progressCh := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			r.logger.Info(update.Message, "phase", update.Phase)
		}
	}()

	prediction, err := r.engine.Run(ctx, rawURL, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	if path := cmd.String("output"); path != "" {
		written, err := formatter.WriteExport(prediction, path, cmd.Bool("json"))
		if err != nil {
			return err
		}
		r.logger.Info("saved prediction", "path", written)
	}

	if cmd.Bool("json") {
		return r.writeJSON(prediction, cmd.Bool("pretty"))
	}
	return r.writePlain("%s\n", formatter.Label(prediction, nil))
}
