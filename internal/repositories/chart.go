package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/gridx/internal/models"
	"github.com/desertthunder/gridx/internal/shared"
)

var _ models.NamedRepository[*models.Chart] = (*ChartRepository)(nil)

// ChartRepository implements models.NamedRepository[*models.Chart] for saved board snapshots.
//
// Boards are stored as JSON in the board column. Chart names are unique among non-deleted charts.
type ChartRepository struct {
	db *sql.DB
}

// NewChartRepository creates a new ChartRepository with the given database connection
func NewChartRepository(db *sql.DB) *ChartRepository {
	return &ChartRepository{db: db}
}

const chartColumns = `id, sequence, name, row_count, column_count, board, created_at, updated_at, deleted_at`

// Create inserts a new chart into the database with generated ID and sequence
func (r *ChartRepository) Create(chart *models.Chart) error {
	chart.SetID(shared.GenerateID())

	if err := chart.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	board, err := models.MarshalBoard(chart.Board())
	if err != nil {
		return fmt.Errorf("failed to encode board: %w", err)
	}

	sequence, err := NextSequence(r.db, "charts")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	chart.SetSequence(sequence)

	query := `
		INSERT INTO charts (id, sequence, name, row_count, column_count, board, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		chart.ID(),
		sequence,
		chart.Name(),
		chart.Rows(),
		chart.Columns(),
		string(board),
		chart.CreatedAt(),
		chart.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert chart: %w", err)
	}

	return nil
}

// Get retrieves a chart by ID, excluding soft-deleted charts
func (r *ChartRepository) Get(id string) (*models.Chart, error) {
	query := `SELECT ` + chartColumns + ` FROM charts WHERE id = ? AND deleted_at IS NULL`
	return r.scan(r.db.QueryRow(query, id))
}

// GetByName retrieves a non-deleted chart by its name
func (r *ChartRepository) GetByName(name string) (*models.Chart, error) {
	query := `SELECT ` + chartColumns + ` FROM charts WHERE name = ? AND deleted_at IS NULL`
	return r.scan(r.db.QueryRow(query, name))
}

// Update modifies an existing chart's layout and board
func (r *ChartRepository) Update(chart *models.Chart) error {
	if err := chart.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	board, err := models.MarshalBoard(chart.Board())
	if err != nil {
		return fmt.Errorf("failed to encode board: %w", err)
	}

	now := time.Now()
	chart.SetUpdatedAt(now)

	query := `
		UPDATE charts
		SET name = ?, row_count = ?, column_count = ?, board = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, chart.Name(), chart.Rows(), chart.Columns(), string(board), now, chart.ID())
	if err != nil {
		return fmt.Errorf("failed to update chart: %w", err)
	}

	return expectOne(result, chart.ID())
}

// Delete soft-deletes a chart by ID
func (r *ChartRepository) Delete(id string) error {
	query := `
		UPDATE charts
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete chart: %w", err)
	}

	return expectOne(result, id)
}

// List retrieves all charts matching the given criteria, excluding soft-deleted charts.
//
// Supported criteria: "name" (exact match) and "size" (rows × columns).
func (r *ChartRepository) List(criteria map[string]any) ([]*models.Chart, error) {
	query := `SELECT ` + chartColumns + ` FROM charts WHERE deleted_at IS NULL`
	args := []any{}

	if name, ok := criteria["name"].(string); ok && name != "" {
		query += " AND name = ?"
		args = append(args, name)
	}

	if size, ok := criteria["size"].(int); ok && size > 0 {
		query += " AND row_count * column_count = ?"
		args = append(args, size)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query charts: %w", err)
	}
	defer rows.Close()

	var charts []*models.Chart
	for rows.Next() {
		chart, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		charts = append(charts, chart)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return charts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scan reads a single row into a [models.Chart]
func (r *ChartRepository) scan(row scanner) (*models.Chart, error) {
	var (
		id        string
		sequence  int
		name      string
		rowCount  int
		colCount  int
		board     string
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &name, &rowCount, &colCount, &board, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrChartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan chart: %w", err)
	}

	b, err := models.UnmarshalBoard([]byte(board))
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", name, err)
	}

	chart := models.NewChart(sequence, name, rowCount, colCount, b)
	chart.SetID(id)
	chart.SetCreatedAt(createdAt)
	chart.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		chart.SetDeletedAt(&deletedAt.Time)
	}

	return chart, nil
}

func expectOne(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrChartNotFound, id)
	}
	return nil
}
