package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// BacklogSequence names the allocator row used for backlog item ids.
const BacklogSequence = "backlog"

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillBacklogSequence(db); err != nil {
		return fmt.Errorf("backfilling backlog sequence allocator state: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS player (
		id                   TEXT PRIMARY KEY DEFAULT 'default',
		name                 TEXT NOT NULL DEFAULT 'player',
		experience           INTEGER NOT NULL DEFAULT 0 CHECK(experience >= 0),
		streak               INTEGER NOT NULL DEFAULT 0 CHECK(streak >= 0),
		last_completion_date TEXT,
		total_done           INTEGER NOT NULL DEFAULT 0,
		quest_seq_day        TEXT NOT NULL DEFAULT '',
		quest_seq            INTEGER NOT NULL DEFAULT 0
	)`,

	// Seed the single player row
	`INSERT OR IGNORE INTO player (id) VALUES ('default')`,

	`CREATE TABLE IF NOT EXISTS mastery_tables (
		category TEXT PRIMARY KEY CHECK(category IN ('build','ship','reach')),
		level    INTEGER NOT NULL DEFAULT 1 CHECK(level >= 1),
		progress INTEGER NOT NULL DEFAULT 0 CHECK(progress >= 0)
	)`,

	`INSERT OR IGNORE INTO mastery_tables (category) VALUES ('build'), ('ship'), ('reach')`,

	`CREATE TABLE IF NOT EXISTS inventory (
		position INTEGER PRIMARY KEY,
		token    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS category_history (
		position INTEGER PRIMARY KEY,
		category TEXT NOT NULL CHECK(category IN ('build','ship','reach'))
	)`,

	`CREATE TABLE IF NOT EXISTS backlog_items (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		category   TEXT NOT NULL CHECK(category IN ('build','ship','reach')),
		impact     INTEGER NOT NULL DEFAULT 3 CHECK(impact BETWEEN 1 AND 5),
		effort_min INTEGER NOT NULL DEFAULT 30 CHECK(effort_min > 0),
		notes      TEXT NOT NULL DEFAULT '',
		position   INTEGER NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_backlog_items_position ON backlog_items(position)`,

	`CREATE TABLE IF NOT EXISTS active_quest (
		id         TEXT PRIMARY KEY,
		slot       INTEGER NOT NULL DEFAULT 1 UNIQUE CHECK(slot = 1),
		title      TEXT NOT NULL,
		category   TEXT NOT NULL CHECK(category IN ('build','ship','reach')),
		impact     INTEGER NOT NULL,
		effort_min INTEGER NOT NULL,
		source     TEXT NOT NULL DEFAULT 'backlog',
		backlog_id TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS quest_steps (
		quest_id TEXT NOT NULL REFERENCES active_quest(id) ON DELETE CASCADE,
		idx      INTEGER NOT NULL,
		text     TEXT NOT NULL,
		done     INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (quest_id, idx)
	)`,

	`CREATE TABLE IF NOT EXISTS inbox (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		text       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS activity_log (
		id       TEXT PRIMARY KEY,
		at       TEXT NOT NULL,
		kind     TEXT NOT NULL CHECK(kind IN ('DONE','EVENT','SYNC','EXPIRED')),
		ref      TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		xp       INTEGER NOT NULL DEFAULT 0,
		loot     TEXT NOT NULL DEFAULT '',
		commits  INTEGER NOT NULL DEFAULT 0,
		note     TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_activity_log_at ON activity_log(at)`,

	`CREATE TABLE IF NOT EXISTS sequences (
		name     TEXT PRIMARY KEY,
		next_seq INTEGER NOT NULL DEFAULT 1
	)`,

	// Git sync state
	`ALTER TABLE player ADD COLUMN git_last_seen_hash TEXT NOT NULL DEFAULT ''`,
}

// migrateBackfillBacklogSequence raises the backlog allocator above any
// existing B-NNNN id so ids are never reused after an import or upgrade.
func migrateBackfillBacklogSequence(db *sql.DB) error {
	ctx := context.Background()

	query := `INSERT INTO sequences (name, next_seq)
		SELECT ?, COALESCE(MAX(CAST(SUBSTR(id, 3) AS INTEGER)), 0) + 1
		FROM backlog_items
		WHERE id LIKE 'B-%'
		ON CONFLICT(name) DO UPDATE
		SET next_seq = MAX(sequences.next_seq, excluded.next_seq)`
	if _, err := db.ExecContext(ctx, query, BacklogSequence); err != nil {
		return fmt.Errorf("upserting backlog sequence row: %w", err)
	}
	return nil
}
