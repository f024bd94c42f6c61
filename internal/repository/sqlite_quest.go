package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/questgame/internal/db"
	"github.com/alexanderramin/questgame/internal/domain"
)

// SQLiteQuestRepo implements QuestRepo over active_quest and quest_steps.
type SQLiteQuestRepo struct {
	db db.DBTX
}

// NewSQLiteQuestRepo creates a new SQLiteQuestRepo.
func NewSQLiteQuestRepo(conn db.DBTX) *SQLiteQuestRepo {
	return &SQLiteQuestRepo{db: conn}
}

func (r *SQLiteQuestRepo) GetActive(ctx context.Context) (*domain.Quest, error) {
	query := `SELECT id, title, category, impact, effort_min, source, backlog_id, created_at
		FROM active_quest WHERE slot = 1`

	var q domain.Quest
	var category, createdAt string
	err := r.db.QueryRowContext(ctx, query).Scan(
		&q.ID, &q.Title, &category, &q.Impact, &q.EffortMin, &q.Source, &q.BacklogID, &createdAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning active quest: %w", err)
	}
	q.Category = domain.Category(category)
	if q.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing quest created_at: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT text, done FROM quest_steps WHERE quest_id = ? ORDER BY idx`, q.ID)
	if err != nil {
		return nil, fmt.Errorf("listing quest steps: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s domain.Step
		var done int
		if err := rows.Scan(&s.Text, &done); err != nil {
			return nil, fmt.Errorf("scanning quest step: %w", err)
		}
		s.Done = intToBool(done)
		q.Steps = append(q.Steps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quest steps: %w", err)
	}
	return &q, nil
}

// Save replaces the active slot with q and its steps.
func (r *SQLiteQuestRepo) Save(ctx context.Context, q *domain.Quest) error {
	if err := r.Clear(ctx); err != nil {
		return err
	}

	query := `INSERT INTO active_quest (id, slot, title, category, impact, effort_min, source, backlog_id, created_at)
		VALUES (?, 1, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		q.ID,
		q.Title,
		string(q.Category),
		q.Impact,
		q.EffortMin,
		domain.CoalesceStr(q.Source, domain.QuestSourceBacklog),
		q.BacklogID,
		formatTimestamp(q.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting active quest: %w", err)
	}

	for i, s := range q.Steps {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO quest_steps (quest_id, idx, text, done) VALUES (?, ?, ?, ?)`,
			q.ID, i, s.Text, boolToInt(s.Done))
		if err != nil {
			return fmt.Errorf("inserting quest step %d: %w", i+1, err)
		}
	}
	return nil
}

// Clear empties the active slot. Steps are removed by cascade.
func (r *SQLiteQuestRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM active_quest`); err != nil {
		return fmt.Errorf("clearing active quest: %w", err)
	}
	return nil
}
