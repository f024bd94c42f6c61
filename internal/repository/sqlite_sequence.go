package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/questgame/internal/db"
)

// SQLiteSequenceRepo allocates named sequence values atomically using the
// sequences table.
type SQLiteSequenceRepo struct {
	db db.DBTX
}

// NewSQLiteSequenceRepo creates a new SQLiteSequenceRepo.
func NewSQLiteSequenceRepo(conn db.DBTX) *SQLiteSequenceRepo {
	return &SQLiteSequenceRepo{db: conn}
}

// Next returns the next value of the named sequence, starting at 1.
func (r *SQLiteSequenceRepo) Next(ctx context.Context, name string) (int, error) {
	seedQuery := `INSERT OR IGNORE INTO sequences (name, next_seq) VALUES (?, 1)`
	if _, err := r.db.ExecContext(ctx, seedQuery, name); err != nil {
		return 0, fmt.Errorf("seeding sequence %s: %w", name, err)
	}

	var next int
	allocQuery := `UPDATE sequences
		SET next_seq = next_seq + 1
		WHERE name = ?
		RETURNING next_seq - 1`
	if err := r.db.QueryRowContext(ctx, allocQuery, name).Scan(&next); err != nil {
		return 0, fmt.Errorf("allocating next value for sequence %s: %w", name, err)
	}

	return next, nil
}
