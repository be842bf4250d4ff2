package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/gridx/internal/formatter"
	"github.com/desertthunder/gridx/internal/models"
	"github.com/desertthunder/gridx/internal/shared"
	"github.com/desertthunder/gridx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// importOutput is the JSON form printed by import --dry-run.
type importOutput struct {
	Pallete string              `json:"pallete"`
	Total   int                 `json:"total"`
	Skipped int                 `json:"skipped"`
	Albums  []models.ItemRecord `json:"albums"`
}

// Import validates an album file and loads it into a pallete, replacing the pallete's albums.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	pallete := r.pallete(cmd.String("pallete"))
	result, err := r.runImport(ctx, cmd.String("file"), pallete)
	if err != nil {
		return err
	}

	if cmd.Bool("dry-run") {
		out := importOutput{Pallete: result.Pallete, Total: result.Total, Skipped: result.Skipped}
		for _, a := range result.Albums {
			out.Albums = append(out.Albums, models.ToRecord(a))
		}
		return r.writeJSON(out, true)
	}

	editor, err := r.loadEditor()
	if err != nil {
		return err
	}
	editor.LoadPallete(result.Pallete, result.Albums)

	return r.writePlain("✓ Loaded %d albums into %s (%d of %d records skipped)\n",
		len(result.Albums), result.Pallete, result.Skipped, result.Total)
}

// pallete resolves a pallete flag, falling back to the configured import pallete.
func (r *Runner) pallete(flag string) string {
	if flag != "" {
		return flag
	}
	if r.config.Import.Pallete != "" {
		return r.config.Import.Pallete
	}
	return models.LastFMContainer
}

// runImport runs the importer, logging its progress updates at debug level.
func (r *Runner) runImport(ctx context.Context, path, pallete string) (*tasks.ImportResult, error) {
	importer, err := r.loadImporter()
	if err != nil {
		return nil, err
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Debug(update.Message, "phase", update.Phase, "step", update.Step, "total", update.Total)
		}
	}()

	result, err := importer.Import(ctx, progress, path, pallete)
	close(progress)
	<-done

	if err != nil {
		return nil, fmt.Errorf("import failed: %w", err)
	}
	r.logger.Info("import complete", "file", path, "pallete", result.Pallete, "albums", len(result.Albums))
	return result, nil
}

// Export writes the workspace chart to stdout, or to files under --output.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	editor, err := r.loadEditor()
	if err != nil {
		return err
	}
	layout := editor.Layout()
	export := formatter.NewGridExport(cmd.String("name"), layout.Rows, layout.Columns, editor.Board())

	dir := cmd.String("output")
	if dir == "" {
		data, err := formatter.Render(export, format)
		if err != nil {
			return err
		}
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	files, err := formatter.WriteExport(export, format, dir)
	if err != nil {
		return err
	}
	r.logger.Info("export complete", "format", format, "files", len(files))
	for _, f := range files {
		r.writePlain("✓ Wrote %s\n", f)
	}
	return nil
}
