package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/questgame/internal/db"
	"github.com/alexanderramin/questgame/internal/domain"
)

// SQLiteActivityRepo implements ActivityRepo over the append-only activity log.
type SQLiteActivityRepo struct {
	db db.DBTX
}

// NewSQLiteActivityRepo creates a new SQLiteActivityRepo.
func NewSQLiteActivityRepo(conn db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: conn}
}

func (r *SQLiteActivityRepo) Append(ctx context.Context, e *domain.ActivityEntry) error {
	query := `INSERT INTO activity_log (id, at, kind, ref, category, xp, loot, commits, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		formatTimestamp(e.At),
		string(e.Kind),
		e.Ref,
		string(e.Category),
		e.XP,
		joinTokens(e.Loot),
		e.Commits,
		e.Note,
	)
	if err != nil {
		return fmt.Errorf("inserting activity entry: %w", err)
	}
	return nil
}

// ListRecent returns up to limit entries, newest first.
func (r *SQLiteActivityRepo) ListRecent(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	query := `SELECT id, at, kind, ref, category, xp, loot, commits, note
		FROM activity_log ORDER BY at DESC, rowid DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	defer rows.Close()

	var entries []domain.ActivityEntry
	for rows.Next() {
		var e domain.ActivityEntry
		var at, kind, category, loot string
		if err := rows.Scan(&e.ID, &at, &kind, &e.Ref, &category, &e.XP, &loot, &e.Commits, &e.Note); err != nil {
			return nil, fmt.Errorf("scanning activity entry: %w", err)
		}
		if e.At, err = parseTimestamp(at); err != nil {
			return nil, fmt.Errorf("parsing activity time: %w", err)
		}
		e.Kind = domain.ActivityKind(kind)
		e.Category = domain.Category(category)
		e.Loot = splitTokens(loot)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activity: %w", err)
	}
	return entries, nil
}
