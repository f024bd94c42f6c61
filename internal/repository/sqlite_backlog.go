package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/questgame/internal/db"
	"github.com/alexanderramin/questgame/internal/domain"
)

// SQLiteBacklogRepo implements BacklogRepo. Items are listed in insertion
// order, which is also the selector's tie-break order.
type SQLiteBacklogRepo struct {
	db  db.DBTX
	seq *SQLiteSequenceRepo
}

// NewSQLiteBacklogRepo creates a new SQLiteBacklogRepo.
func NewSQLiteBacklogRepo(conn db.DBTX) *SQLiteBacklogRepo {
	return &SQLiteBacklogRepo{db: conn, seq: NewSQLiteSequenceRepo(conn)}
}

// NextID allocates the next B-NNNN identifier.
func (r *SQLiteBacklogRepo) NextID(ctx context.Context) (string, error) {
	n, err := r.seq.Next(ctx, db.BacklogSequence)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("B-%04d", n), nil
}

func (r *SQLiteBacklogRepo) Create(ctx context.Context, item *domain.BacklogItem) error {
	query := `INSERT INTO backlog_items (id, title, category, impact, effort_min, notes, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM backlog_items), ?)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Title,
		string(item.Category),
		item.Impact,
		item.EffortMin,
		item.Notes,
		formatTimestamp(item.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting backlog item: %w", err)
	}
	return nil
}

func (r *SQLiteBacklogRepo) GetByID(ctx context.Context, id string) (*domain.BacklogItem, error) {
	query := `SELECT id, title, category, impact, effort_min, notes, created_at
		FROM backlog_items WHERE id = ?`
	item, err := scanBacklogItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("backlog item %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning backlog item: %w", err)
	}
	return item, nil
}

func (r *SQLiteBacklogRepo) List(ctx context.Context) ([]domain.BacklogItem, error) {
	query := `SELECT id, title, category, impact, effort_min, notes, created_at
		FROM backlog_items ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing backlog items: %w", err)
	}
	defer rows.Close()

	var items []domain.BacklogItem
	for rows.Next() {
		item, err := scanBacklogItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning backlog item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating backlog items: %w", err)
	}
	return items, nil
}

// Delete removes the item, returning ErrNotFound when no row matched.
func (r *SQLiteBacklogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM backlog_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting backlog item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting backlog item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("backlog item %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBacklogItem(row rowScanner) (*domain.BacklogItem, error) {
	var item domain.BacklogItem
	var category, createdAt string
	if err := row.Scan(&item.ID, &item.Title, &category, &item.Impact, &item.EffortMin, &item.Notes, &createdAt); err != nil {
		return nil, err
	}
	item.Category = domain.Category(category)
	t, err := parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	item.CreatedAt = t
	return &item, nil
}
