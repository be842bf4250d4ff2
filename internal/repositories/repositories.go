package repositories

import (
	"database/sql"
	"fmt"
)

// sequenced lists the tables that have a {table}_sequence counter row.
var sequenced = map[string]bool{
	"charts": true,
}

// NextSequence increments and returns the counter for table in a single statement.
func NextSequence(db *sql.DB, table string) (int, error) {
	if !sequenced[table] {
		return 0, fmt.Errorf("no sequence for table %q", table)
	}

	var sequence int
	query := fmt.Sprintf("UPDATE %s_sequence SET value = value + 1 WHERE id = 1 RETURNING value", table)
	if err := db.QueryRow(query).Scan(&sequence); err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	return sequence, nil
}
