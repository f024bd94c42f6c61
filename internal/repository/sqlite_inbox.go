package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/questgame/internal/db"
	"github.com/alexanderramin/questgame/internal/domain"
)

// SQLiteInboxRepo implements InboxRepo.
type SQLiteInboxRepo struct {
	db db.DBTX
}

// NewSQLiteInboxRepo creates a new SQLiteInboxRepo.
func NewSQLiteInboxRepo(conn db.DBTX) *SQLiteInboxRepo {
	return &SQLiteInboxRepo{db: conn}
}

// Append stores e and sets its ID.
func (r *SQLiteInboxRepo) Append(ctx context.Context, e *domain.InboxEntry) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO inbox (text, created_at) VALUES (?, ?)`,
		e.Text, formatTimestamp(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting inbox entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inbox entry id: %w", err)
	}
	e.ID = id
	return nil
}

func (r *SQLiteInboxRepo) List(ctx context.Context) ([]domain.InboxEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, text, created_at FROM inbox ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing inbox: %w", err)
	}
	defer rows.Close()

	var entries []domain.InboxEntry
	for rows.Next() {
		var e domain.InboxEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning inbox entry: %w", err)
		}
		if e.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("parsing inbox created_at: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating inbox: %w", err)
	}
	return entries, nil
}

func (r *SQLiteInboxRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM inbox`); err != nil {
		return fmt.Errorf("clearing inbox: %w", err)
	}
	return nil
}
