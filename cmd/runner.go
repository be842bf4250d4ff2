package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gridx/internal/grid"
	"github.com/desertthunder/gridx/internal/models"
	"github.com/desertthunder/gridx/internal/repositories"
	"github.com/desertthunder/gridx/internal/shared"
	"github.com/desertthunder/gridx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The database, repositories and editor are opened on first use so commands that never touch them
// (such as setup) do not require a database.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	db         *sql.DB
	charts     *repositories.ChartRepository
	workspace  *repositories.Workspace
	editor     *grid.Editor
	importer   *tasks.Importer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	DB         *sql.DB
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
	}
	if opts.DB != nil {
		r.attach(opts.DB)
	}
	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, boardCommand, importCommand, exportCommand, chartCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the logger used by the runner and everything it opens afterwards.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) attach(db *sql.DB) {
	r.db = db
	r.charts = repositories.NewChartRepository(db)
	r.workspace = repositories.NewWorkspace(db)
}

// database opens the configured database and runs migrations, once.
func (r *Runner) database() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	r.logger.Debug("opening database", "path", r.config.Database.Path)
	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return nil, err
	}
	r.attach(db)
	return db, nil
}

// Close releases the database, if one was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// defaultLayout is the layout used until one has been saved.
func (r *Runner) defaultLayout() grid.Layout {
	order, ok := grid.ParseSortOrder(r.config.Grid.Sort)
	if !ok {
		order = grid.SortNone
	}
	return grid.Layout{Rows: r.config.Grid.Rows, Columns: r.config.Grid.Columns, Sort: order}
}

// loadEditor restores the saved workspace into a [grid.Editor] that saves every change back.
func (r *Runner) loadEditor() (*grid.Editor, error) {
	if r.editor != nil {
		return r.editor, nil
	}
	if _, err := r.database(); err != nil {
		return nil, err
	}

	board, layout, err := r.workspace.Load(r.defaultLayout())
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}

	editor := grid.NewEditor(board, layout, r.logger)
	if board == nil {
		if err := r.workspace.Save(editor.Board(), editor.Layout()); err != nil {
			return nil, fmt.Errorf("failed to save workspace: %w", err)
		}
	}

	editor.OnChange(func(b models.Board, l grid.Layout) {
		if err := r.workspace.Save(b, l); err != nil {
			r.logger.Error("failed to save workspace", "error", err)
		}
	})

	r.editor = editor
	return editor, nil
}

func (r *Runner) loadImporter() (*tasks.Importer, error) {
	if r.importer != nil {
		return r.importer, nil
	}
	importer, err := tasks.NewImporter(r.logger)
	if err != nil {
		return nil, err
	}
	r.importer = importer
	return importer, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
