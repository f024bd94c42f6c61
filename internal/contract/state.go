// Package contract defines the JSON views served to browser clients.
package contract

import (
	"time"

	"github.com/alexanderramin/questgame/internal/app"
	"github.com/alexanderramin/questgame/internal/domain"
)

type PlayerView struct {
	Name               string  `json:"name"`
	Experience         int     `json:"experience"`
	Level              int     `json:"level"`
	XPIntoLevel        int     `json:"xp_into_level"`
	XPForNext          int     `json:"xp_for_next"`
	Streak             int     `json:"streak"`
	LastCompletionDate *string `json:"last_completion_date"`
	TotalDone          int     `json:"total_done"`
}

type MasteryView struct {
	Category string `json:"category"`
	Level    int    `json:"level"`
	Progress int    `json:"progress"`
	Needed   int    `json:"needed"`
}

type StateView struct {
	GeneratedAt       string         `json:"generated_at"`
	Player            PlayerView     `json:"player"`
	Mastery           []MasteryView  `json:"mastery"`
	Quest             *QuestView     `json:"quest"`
	RecentLoot        []string       `json:"recent_loot"`
	Inventory         map[string]int `json:"inventory"`
	RecentCategories  []string       `json:"recent_categories"`
	GoldenRuleWarning bool           `json:"golden_rule_warning"`
	BacklogSize       int            `json:"backlog_size"`
	InboxSize         int            `json:"inbox_size"`
}

// NewStateView maps a snapshot to its wire form. Lists are never null.
func NewStateView(s *app.Snapshot) StateView {
	v := StateView{
		GeneratedAt: s.GeneratedAt.UTC().Format(time.RFC3339),
		Player: PlayerView{
			Name:        s.Player.Name,
			Experience:  s.Player.Experience,
			Level:       s.Level,
			XPIntoLevel: s.XPIntoLevel,
			XPForNext:   s.XPForNext,
			Streak:      s.Player.Streak,
			TotalDone:   s.TotalDone,
		},
		Mastery:           make([]MasteryView, 0, len(s.Mastery)),
		Quest:             NewQuestView(s.ActiveQuest),
		RecentLoot:        nonNil(s.RecentLoot),
		Inventory:         s.InventoryCounts,
		RecentCategories:  make([]string, 0, len(s.RecentCategories)),
		GoldenRuleWarning: s.GoldenRuleWarning,
		BacklogSize:       s.BacklogSize,
		InboxSize:         s.InboxSize,
	}
	if s.Player.LastCompletionDate != nil {
		d := domain.DateKey(*s.Player.LastCompletionDate)
		v.Player.LastCompletionDate = &d
	}
	if v.Inventory == nil {
		v.Inventory = map[string]int{}
	}
	for _, m := range s.Mastery {
		v.Mastery = append(v.Mastery, MasteryView{
			Category: string(m.Category),
			Level:    m.Level,
			Progress: m.Progress,
			Needed:   m.Needed,
		})
	}
	for _, c := range s.RecentCategories {
		v.RecentCategories = append(v.RecentCategories, string(c))
	}
	return v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
