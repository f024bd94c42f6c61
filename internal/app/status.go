package app

import (
	"time"

	"github.com/alexanderramin/questgame/internal/domain"
)

// RecentLootSize is how many of the newest inventory tokens a snapshot shows.
const RecentLootSize = 5

type MasteryRow struct {
	Category domain.Category
	Level    int
	Progress int
	Needed   int
}

// Snapshot is the read-only view of the whole game state.
type Snapshot struct {
	GeneratedAt time.Time
	Player      domain.Player
	Level       int
	XPIntoLevel int
	XPForNext   int
	TotalDone   int

	Mastery          []MasteryRow
	ActiveQuest      *domain.Quest
	RecentLoot       []string
	InventoryCounts  map[string]int
	RecentCategories []domain.Category

	// GoldenRuleWarning is set when the next plan will be restricted to
	// ship or reach work.
	GoldenRuleWarning bool

	BacklogSize  int
	InboxSize    int
	LastSeenHash string
}
