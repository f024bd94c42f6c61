package domain

import "time"

const (
	// InventoryCap is the number of most recent loot tokens kept.
	InventoryCap = 50
	// HistoryCap is the number of most recent completed categories kept.
	HistoryCap = 10
	// DefaultPlayerName is used until the player renames themselves.
	DefaultPlayerName = "player"
)

// Player holds experience and streak state. Level is always derived from
// Experience and never stored.
type Player struct {
	Name               string
	Experience         int
	Streak             int
	LastCompletionDate *time.Time
}

// Level returns the level derived from the player's experience.
func (p Player) Level() int {
	return LevelForXP(p.Experience)
}

// MasteryTable is a per-category leveling track.
type MasteryTable struct {
	Level    int
	Progress int
}

// NewMasteryTable returns a fresh table at level 1.
func NewMasteryTable() MasteryTable {
	return MasteryTable{Level: 1, Progress: 0}
}

// Needed is the progress required to clear the current level.
func (t MasteryTable) Needed() int {
	return t.Level * 3
}

// Advance adds one progress point and reports whether the table leveled up.
// Progress always stays below Needed after the call.
func (t *MasteryTable) Advance() bool {
	if t.Level < 1 {
		t.Level = 1
	}
	t.Progress++
	if t.Progress >= t.Needed() {
		t.Progress = 0
		t.Level++
		return true
	}
	return false
}

// GitState remembers where the last version-control sync stopped.
type GitState struct {
	LastSeenHash string
}

// Progress is the aggregate mutated by quest selection and progression:
// player, mastery tables, inventory and recent category history.
type Progress struct {
	Player    Player
	Tables    map[Category]MasteryTable
	Inventory []string
	History   []Category
	TotalDone int

	// Day-scoped quest id allocator.
	QuestSeqDay string
	QuestSeq    int

	Git GitState
}

// NewProgress returns the starting aggregate for a new player.
func NewProgress() *Progress {
	p := &Progress{
		Player: Player{Name: DefaultPlayerName},
		Tables: make(map[Category]MasteryTable, len(AllCategories)),
	}
	for _, c := range AllCategories {
		p.Tables[c] = NewMasteryTable()
	}
	return p
}

// Table returns the mastery table for c, or a fresh one if none exists yet.
func (p *Progress) Table(c Category) MasteryTable {
	if t, ok := p.Tables[c]; ok {
		return t
	}
	return NewMasteryTable()
}

// MasteryDelta describes one mastery table advance.
type MasteryDelta struct {
	Category  Category
	Before    MasteryTable
	After     MasteryTable
	LeveledUp bool
}

// AdvanceTable advances the mastery table for c by one step.
func (p *Progress) AdvanceTable(c Category) MasteryDelta {
	if p.Tables == nil {
		p.Tables = make(map[Category]MasteryTable, len(AllCategories))
	}
	before := p.Table(c)
	after := before
	leveled := after.Advance()
	p.Tables[c] = after
	return MasteryDelta{Category: c, Before: before, After: after, LeveledUp: leveled}
}

// AddLoot appends tokens to the inventory, dropping the oldest entries
// beyond InventoryCap.
func (p *Progress) AddLoot(tokens ...string) {
	p.Inventory = appendCapped(p.Inventory, tokens, InventoryCap)
}

// RecordCategory appends c to the recent history, keeping HistoryCap entries.
func (p *Progress) RecordCategory(c Category) {
	p.History = appendCapped(p.History, []Category{c}, HistoryCap)
}

// RecentHistory returns up to the last n history entries, oldest first.
func (p *Progress) RecentHistory(n int) []Category {
	if n >= len(p.History) {
		return p.History
	}
	return p.History[len(p.History)-n:]
}

// NextQuestSeq allocates the next quest sequence number for the given day.
// The sequence restarts at 1 on each new day.
func (p *Progress) NextQuestSeq(day string) int {
	if p.QuestSeqDay != day {
		p.QuestSeqDay = day
		p.QuestSeq = 0
	}
	p.QuestSeq++
	return p.QuestSeq
}

// InventoryCounts tallies inventory tokens.
func (p *Progress) InventoryCounts() map[string]int {
	counts := make(map[string]int)
	for _, tok := range p.Inventory {
		counts[tok]++
	}
	return counts
}

func appendCapped[T any](list []T, items []T, limit int) []T {
	out := append(list, items...)
	if len(out) > limit {
		trimmed := make([]T, limit)
		copy(trimmed, out[len(out)-limit:])
		return trimmed
	}
	return out
}
