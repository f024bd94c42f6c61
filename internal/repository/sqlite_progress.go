package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/questgame/internal/db"
	"github.com/alexanderramin/questgame/internal/domain"
)

// SQLiteProgressRepo implements ProgressRepo across the player, mastery,
// inventory and history tables.
type SQLiteProgressRepo struct {
	db db.DBTX
}

// NewSQLiteProgressRepo creates a new SQLiteProgressRepo.
func NewSQLiteProgressRepo(conn db.DBTX) *SQLiteProgressRepo {
	return &SQLiteProgressRepo{db: conn}
}

func (r *SQLiteProgressRepo) Get(ctx context.Context) (*domain.Progress, error) {
	p := domain.NewProgress()

	query := `SELECT name, experience, streak, last_completion_date, total_done,
		quest_seq_day, quest_seq, git_last_seen_hash
		FROM player WHERE id = 'default'`
	var lastDate sql.NullString
	err := r.db.QueryRowContext(ctx, query).Scan(
		&p.Player.Name,
		&p.Player.Experience,
		&p.Player.Streak,
		&lastDate,
		&p.TotalDone,
		&p.QuestSeqDay,
		&p.QuestSeq,
		&p.Git.LastSeenHash,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("player: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning player: %w", err)
	}
	p.Player.LastCompletionDate = parseNullableTime(lastDate, domain.DateLayout)

	if err := r.loadTables(ctx, p); err != nil {
		return nil, err
	}
	if p.Inventory, err = r.loadOrdered(ctx, `SELECT token FROM inventory ORDER BY position`); err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}
	history, err := r.loadOrdered(ctx, `SELECT category FROM category_history ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("loading category history: %w", err)
	}
	for _, c := range history {
		p.History = append(p.History, domain.Category(c))
	}
	return p, nil
}

func (r *SQLiteProgressRepo) loadTables(ctx context.Context, p *domain.Progress) error {
	rows, err := r.db.QueryContext(ctx, `SELECT category, level, progress FROM mastery_tables`)
	if err != nil {
		return fmt.Errorf("listing mastery tables: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c string
		var t domain.MasteryTable
		if err := rows.Scan(&c, &t.Level, &t.Progress); err != nil {
			return fmt.Errorf("scanning mastery table: %w", err)
		}
		p.Tables[domain.Category(c)] = t
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating mastery tables: %w", err)
	}
	return nil
}

func (r *SQLiteProgressRepo) loadOrdered(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Save writes the whole aggregate. Inventory and history are rewritten from
// the already-capped lists held by p.
func (r *SQLiteProgressRepo) Save(ctx context.Context, p *domain.Progress) error {
	query := `UPDATE player SET name = ?, experience = ?, streak = ?, last_completion_date = ?,
		total_done = ?, quest_seq_day = ?, quest_seq = ?, git_last_seen_hash = ?
		WHERE id = 'default'`
	_, err := r.db.ExecContext(ctx, query,
		domain.CoalesceStr(p.Player.Name, domain.DefaultPlayerName),
		p.Player.Experience,
		p.Player.Streak,
		nullableTimeToString(p.Player.LastCompletionDate, domain.DateLayout),
		p.TotalDone,
		p.QuestSeqDay,
		p.QuestSeq,
		p.Git.LastSeenHash,
	)
	if err != nil {
		return fmt.Errorf("updating player: %w", err)
	}

	for _, c := range domain.AllCategories {
		t := p.Table(c)
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO mastery_tables (category, level, progress) VALUES (?, ?, ?)
			ON CONFLICT(category) DO UPDATE SET level = excluded.level, progress = excluded.progress`,
			string(c), t.Level, t.Progress)
		if err != nil {
			return fmt.Errorf("upserting mastery table %s: %w", c, err)
		}
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM inventory`); err != nil {
		return fmt.Errorf("clearing inventory: %w", err)
	}
	for i, tok := range p.Inventory {
		if _, err := r.db.ExecContext(ctx, `INSERT INTO inventory (position, token) VALUES (?, ?)`, i, tok); err != nil {
			return fmt.Errorf("inserting inventory token: %w", err)
		}
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM category_history`); err != nil {
		return fmt.Errorf("clearing category history: %w", err)
	}
	for i, c := range p.History {
		if _, err := r.db.ExecContext(ctx, `INSERT INTO category_history (position, category) VALUES (?, ?)`, i, string(c)); err != nil {
			return fmt.Errorf("inserting category history: %w", err)
		}
	}
	return nil
}
