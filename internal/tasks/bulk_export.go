package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertthunder/gridx/internal/formatter"
	"github.com/desertthunder/gridx/internal/models"
	"github.com/desertthunder/gridx/internal/shared"
)

// ChartSource looks up saved charts by name.
type ChartSource interface {
	GetByName(name string) (*models.Chart, error)
}

// BulkExportOpts contains configuration for bulk chart exports.
type BulkExportOpts struct {
	Format     formatter.Format // Export format
	OutputDir  string           // Base output directory (default: gridx_export_{epoch})
	NumWorkers int              // Concurrent workers (default: 4, max: 10)
}

// ChartExportResult is the outcome for a single chart.
type ChartExportResult struct {
	Name    string
	Success bool
	Files   []string
	Error   error
}

// BulkExportResult summarizes a bulk export.
type BulkExportResult struct {
	TotalCharts       int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	ManifestPath      string
	Results           []ChartExportResult
}

type chartExportJob struct {
	chart *models.Chart
}

// BulkExport exports the named charts concurrently and writes a manifest summarizing the results.
//
// Charts that cannot be loaded or written are reported as failed without stopping the others.
func BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	src ChartSource,
	names []string,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: chart source not initialized", shared.ErrDatabaseUnavailable)
	}

	if opts.Format == "" {
		opts.Format = formatter.FormatJSON
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("gridx_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalCharts:     len(names),
		OutputDirectory: opts.OutputDir,
		Results:         make([]ChartExportResult, 0, len(names)),
	}

	jobs := make(chan chartExportJob, len(names))
	results := make(chan ChartExportResult, len(names))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go exportWorker(ctx, &wg, jobs, results, opts)
	}

	// the producer counts toward wg so results is closed only after its last send
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(jobs)
		for i, name := range names {
			select {
			case <-ctx.Done():
				return
			default:
			}

			chart, err := src.GetByName(name)
			if err != nil {
				results <- ChartExportResult{Name: name, Error: fmt.Errorf("failed to load chart: %w", err)}
				continue
			}

			jobs <- chartExportJob{chart: chart}
			sendProgress(prog, exportingChartUpdate(i+1, len(names), name))
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			sendProgress(prog, exportCompletedUpdate(completed, len(names), res.Name, len(res.Files)))
		} else {
			result.FailedExports++
			sendProgress(prog, exportFailedUpdate(completed, len(names), res.Name, res.Error))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := formatter.WriteBulkExportManifest(manifest(result, opts.Format), manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker is a worker goroutine that exports charts from the jobs channel.
func exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan chartExportJob,
	results chan<- ChartExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- exportSingleChart(job.chart, opts)
	}
}

// exportSingleChart writes one chart in the requested format.
func exportSingleChart(chart *models.Chart, opts BulkExportOpts) ChartExportResult {
	result := ChartExportResult{Name: chart.Name()}

	export := formatter.NewGridExport(chart.Name(), chart.Rows(), chart.Columns(), chart.Board())
	files, err := formatter.WriteExport(export, opts.Format, opts.OutputDir)
	if err != nil {
		result.Error = fmt.Errorf("%s export failed: %w", opts.Format, err)
		return result
	}

	result.Files = files
	result.Success = true
	return result
}

func manifest(result *BulkExportResult, format formatter.Format) formatter.Manifest {
	m := formatter.Manifest{
		Format:     format,
		ExportedAt: time.Now().UTC(),
		Total:      result.TotalCharts,
		Succeeded:  result.SuccessfulExports,
		Failed:     result.FailedExports,
		Charts:     make([]formatter.ManifestEntry, 0, len(result.Results)),
	}
	for _, r := range result.Results {
		entry := formatter.ManifestEntry{Name: r.Name, Success: r.Success, Files: r.Files}
		if r.Error != nil {
			entry.Error = r.Error.Error()
		}
		m.Charts = append(m.Charts, entry)
	}
	return m
}
