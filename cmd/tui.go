package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/genregenie/internal/shared"
	"github.com/desertthunder/genregenie/internal/ui"
	"github.com/urfave/cli/v3"
)

const tuiLogFile = "genie.log"

// TUI launches the interactive Genre Genie form.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.titles == nil || r.music == nil {
		return fmt.Errorf("%w: services not initialized", shared.ErrServiceUnavailable)
	}

	// Logs would corrupt the alternate screen, so they go to a file or nowhere.
	if cmd.Bool("debug") {
		fileLogger, closer, err := shared.NewFileLogger(tuiLogFile)
		if err != nil {
			return fmt.Errorf("failed to create file logger: %w", err)
		}
		defer closer.Close()
		r.SetLogger(fileLogger)
	} else {
		r.SetLogger(shared.NewLogger(io.Discard))
	}

	model := ui.NewModel(ctx, r.engine)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
