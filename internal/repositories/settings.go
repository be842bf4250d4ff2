package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/desertthunder/gridx/internal/grid"
	"github.com/desertthunder/gridx/internal/models"
	"github.com/desertthunder/gridx/internal/shared"
)

// Settings keys used by [Workspace].
const (
	SettingRows    = "rows"
	SettingColumns = "columns"
	SettingSort    = "sort"
	SettingBoard   = "board"
)

// SettingsRepository stores string values by key.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository with the given database connection
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the value stored under key, or [shared.ErrSettingNotFound].
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", shared.ErrSettingNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting: %w", err)
	}
	return value, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// Set inserts or replaces the value stored under key.
func (r *SettingsRepository) Set(key, value string) error {
	return setSetting(r.db, key, value)
}

// Delete removes key. Deleting a missing key is not an error.
func (r *SettingsRepository) Delete(key string) error {
	return deleteSetting(r.db, key)
}

// SetAll writes every key in one transaction: either all values are stored or none are.
func (r *SettingsRepository) SetAll(values [][2]string) error {
	return r.inTx(func(tx *sql.Tx) error {
		for _, kv := range values {
			if err := setSetting(tx, kv[0], kv[1]); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteAll removes every key in one transaction.
func (r *SettingsRepository) DeleteAll(keys ...string) error {
	return r.inTx(func(tx *sql.Tx) error {
		for _, key := range keys {
			if err := deleteSetting(tx, key); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SettingsRepository) inTx(fn func(*sql.Tx) error) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settings: %w", err)
	}
	return nil
}

func setSetting(db execer, key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := db.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

func deleteSetting(db execer, key string) error {
	if _, err := db.Exec(`DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	return nil
}

// List returns every stored setting.
func (r *SettingsRepository) List() (map[string]string, error) {
	rows, err := r.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	settings := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return settings, nil
}

// Workspace persists the live board and its layout between sessions.
type Workspace struct {
	settings *SettingsRepository
}

// NewWorkspace creates a Workspace backed by the settings table.
func NewWorkspace(db *sql.DB) *Workspace {
	return &Workspace{settings: NewSettingsRepository(db)}
}

// Load returns the saved board and layout. Missing settings fall back to fallback; a missing board is returned
// as nil so the caller can start from an empty one.
func (w *Workspace) Load(fallback grid.Layout) (models.Board, grid.Layout, error) {
	layout := fallback

	if v, err := w.settings.Get(SettingRows); err == nil {
		if n, err := strconv.Atoi(v); err == nil {
			layout.Rows = n
		}
	} else if !errors.Is(err, shared.ErrSettingNotFound) {
		return nil, layout, err
	}

	if v, err := w.settings.Get(SettingColumns); err == nil {
		if n, err := strconv.Atoi(v); err == nil {
			layout.Columns = n
		}
	} else if !errors.Is(err, shared.ErrSettingNotFound) {
		return nil, layout, err
	}

	if v, err := w.settings.Get(SettingSort); err == nil {
		if order, ok := grid.ParseSortOrder(v); ok {
			layout.Sort = order
		}
	} else if !errors.Is(err, shared.ErrSettingNotFound) {
		return nil, layout, err
	}

	v, err := w.settings.Get(SettingBoard)
	if errors.Is(err, shared.ErrSettingNotFound) {
		return nil, layout, nil
	}
	if err != nil {
		return nil, layout, err
	}

	board, err := models.UnmarshalBoard([]byte(v))
	if err != nil {
		return nil, layout, fmt.Errorf("saved board: %w", err)
	}
	return board, layout, nil
}

// Save stores board and layout together, replacing what was saved before.
func (w *Workspace) Save(board models.Board, layout grid.Layout) error {
	data, err := models.MarshalBoard(board)
	if err != nil {
		return fmt.Errorf("failed to encode board: %w", err)
	}

	return w.settings.SetAll([][2]string{
		{SettingRows, strconv.Itoa(layout.Rows)},
		{SettingColumns, strconv.Itoa(layout.Columns)},
		{SettingSort, string(layout.Sort)},
		{SettingBoard, string(data)},
	})
}

// Reset removes the saved board and layout.
func (w *Workspace) Reset() error {
	return w.settings.DeleteAll(SettingRows, SettingColumns, SettingSort, SettingBoard)
}
