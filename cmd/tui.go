package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/gridx/internal/shared"
	"github.com/desertthunder/gridx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive chart editor over the workspace board.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Logging.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Logging.Level))
	r.SetLogger(fileLogger)

	editor, err := r.loadEditor()
	if err != nil {
		return err
	}

	source := ui.ImportSource{Path: cmd.String("file"), Pallete: r.pallete(cmd.String("pallete"))}
	if source.Path != "" {
		if source.Importer, err = r.loadImporter(); err != nil {
			return err
		}
	}

	model := ui.NewModel(ctx, editor, source)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
