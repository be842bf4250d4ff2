package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/gridx/internal/formatter"
	"github.com/desertthunder/gridx/internal/grid"
	"github.com/desertthunder/gridx/internal/models"
	"github.com/desertthunder/gridx/internal/shared"
	"github.com/desertthunder/gridx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// chartOutput is the JSON form printed by chart list.
type chartOutput struct {
	ID        string `json:"id"`
	Sequence  int    `json:"sequence"`
	Name      string `json:"name"`
	Rows      int    `json:"rows"`
	Columns   int    `json:"columns"`
	Albums    int    `json:"albums"`
	UpdatedAt string `json:"updated_at"`
}

func chartName(cmd *cli.Command) (string, error) {
	name := strings.TrimSpace(cmd.StringArg("name"))
	if name == "" {
		return "", fmt.Errorf("%w: chart name", shared.ErrMissingArgument)
	}
	return name, nil
}

// ChartSave snapshots the workspace under a name, overwriting a chart with the same name.
func (r *Runner) ChartSave(ctx context.Context, cmd *cli.Command) error {
	name, err := chartName(cmd)
	if err != nil {
		return err
	}
	editor, err := r.loadEditor()
	if err != nil {
		return err
	}
	board, layout := editor.Board(), editor.Layout()

	chart, err := r.charts.GetByName(name)
	switch {
	case errors.Is(err, shared.ErrChartNotFound):
		chart = models.NewChart(0, name, layout.Rows, layout.Columns, board)
		if err := r.charts.Create(chart); err != nil {
			return err
		}
		r.logger.Info("chart created", "name", name, "id", chart.ID())
	case err != nil:
		return err
	default:
		chart.SetBoard(board)
		chart.SetLayout(layout.Rows, layout.Columns)
		if err := r.charts.Update(chart); err != nil {
			return err
		}
		r.logger.Info("chart updated", "name", name, "id", chart.ID())
	}

	return r.writePlain("✓ Saved %s (%d×%d)\n", name, layout.Rows, layout.Columns)
}

// ChartLoad replaces the workspace with a saved chart. The workspace sort preference is kept.
func (r *Runner) ChartLoad(ctx context.Context, cmd *cli.Command) error {
	name, err := chartName(cmd)
	if err != nil {
		return err
	}
	editor, err := r.loadEditor()
	if err != nil {
		return err
	}

	chart, err := r.charts.GetByName(name)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	editor.Replace(chart.Board(), grid.Layout{Rows: chart.Rows(), Columns: chart.Columns()})

	return r.writePlain("✓ Loaded %s into the workspace\n", name)
}

// ChartList prints saved charts in save order.
func (r *Runner) ChartList(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.database(); err != nil {
		return err
	}

	criteria := map[string]any{}
	if size := cmd.Int("size"); size > 0 {
		criteria["size"] = size
	}
	charts, err := r.charts.List(criteria)
	if err != nil {
		return err
	}

	out := make([]chartOutput, 0, len(charts))
	for _, c := range charts {
		out = append(out, chartOutput{
			ID:        c.ID(),
			Sequence:  c.Sequence(),
			Name:      c.Name(),
			Rows:      c.Rows(),
			Columns:   c.Columns(),
			Albums:    countAlbums(c.Board().Grid()),
			UpdatedAt: c.UpdatedAt().Format("2006-01-02 15:04"),
		})
	}

	if cmd.Bool("json") {
		return r.writeJSON(out, true)
	}

	if len(out) == 0 {
		return r.writePlain("No saved charts\n")
	}
	r.writePlainHeader(fmt.Sprintf("Saved charts (%d)", len(out)))
	for _, c := range out {
		r.writePlain("%3d. %-24s %2d×%-2d %3d albums  %s\n", c.Sequence, c.Name, c.Rows, c.Columns, c.Albums, c.UpdatedAt)
	}
	return nil
}

// ChartDelete removes a saved chart by name.
func (r *Runner) ChartDelete(ctx context.Context, cmd *cli.Command) error {
	name, err := chartName(cmd)
	if err != nil {
		return err
	}
	if _, err := r.database(); err != nil {
		return err
	}

	chart, err := r.charts.GetByName(name)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := r.charts.Delete(chart.ID()); err != nil {
		return err
	}

	r.logger.Info("chart deleted", "name", name, "id", chart.ID())
	return r.writePlain("✓ Deleted %s\n", name)
}

// ChartExport exports saved charts concurrently and prints a summary.
func (r *Runner) ChartExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}
	if _, err := r.database(); err != nil {
		return err
	}

	names := cmd.Args().Slice()
	if cmd.Bool("all") {
		charts, err := r.charts.List(nil)
		if err != nil {
			return err
		}
		names = names[:0]
		for _, c := range charts {
			names = append(names, c.Name())
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("%w: chart names or --all", shared.ErrMissingArgument)
	}

	r.logger.Info("starting bulk export", "charts", len(names), "format", format)

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("[%d/%d] %s\n", update.Step, update.Total, update.Message)
		}
	}()

	result, err := tasks.BulkExport(ctx, progress, r.charts, names, tasks.BulkExportOpts{
		Format:     format,
		OutputDir:  cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
	})
	close(progress)
	<-done

	if result != nil {
		r.writePlainln("Export complete: %d/%d charts", result.SuccessfulExports, result.TotalCharts)
		r.writePlain("Output: %s\n", result.OutputDirectory)
		if result.ManifestPath != "" {
			r.writePlain("Manifest: %s\n", result.ManifestPath)
		}
		for _, res := range result.Results {
			if res.Error != nil {
				r.writePlain("  - %s: %v\n", res.Name, res.Error)
			}
		}
	}
	return err
}
