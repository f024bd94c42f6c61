package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/questgame/internal/config"
	"github.com/alexanderramin/questgame/internal/domain"
	"github.com/alexanderramin/questgame/internal/rng"
)

const (
	baseXP          = 10
	xpPerImpact     = 8
	streakBonusXP   = 2
	streakBonusDays = 14

	// EventImpact is the impact credited for externally verified events.
	EventImpact = 5
)

// Outcome is the result of completing a quest or recording an event.
type Outcome struct {
	Ref         string // quest id or event id
	Category    domain.Category
	XPGained    int
	LevelBefore int
	LevelAfter  int
	Player      domain.Player
	Loot        []string
	Mastery     domain.MasteryDelta
}

// LeveledUp reports whether the player gained at least one level.
func (o *Outcome) LeveledUp() bool {
	return o.LevelAfter > o.LevelBefore
}

// cappedStreak is the streak used for bonuses; it plateaus after two weeks.
func cappedStreak(streak int) int {
	return min(max(streak, 0), streakBonusDays)
}

// CalcXP returns the experience for work of the given impact and category:
// floor((10 + impact*8) * weight) + min(streak, 14)*2.
func CalcXP(impact int, category domain.Category, streak int, rules config.Rules) int {
	base := float64(baseXP + impact*xpPerImpact)
	return int(math.Floor(base*rules.Weight(category))) + cappedStreak(streak)*streakBonusXP
}

// UpdateStreak applies a quest completion on now's calendar day to the
// player's streak. Completing on consecutive days adds one, completing
// again on the same day changes nothing, any gap restarts at one.
func UpdateStreak(p *domain.Player, now time.Time) {
	today := domain.DateKey(now)
	last := ""
	if p.LastCompletionDate != nil {
		last = domain.DateKey(*p.LastCompletionDate)
	}

	switch {
	case last == domain.PreviousDateKey(now):
		p.Streak++
	case last != today:
		p.Streak = 1
	}

	y, m, d := now.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	p.LastCompletionDate = &day
}

// CompleteQuest applies a finished quest to progress: streak, experience,
// loot, mastery and category history. The quest's steps are all marked
// done; clearing the active slot is left to the caller's store.
func CompleteQuest(progress *domain.Progress, quest *domain.Quest, rules config.Rules, src rng.Source, now time.Time) (*Outcome, error) {
	if quest == nil {
		return nil, ErrNoActiveQuest
	}

	category := quest.Category
	if !category.IsValid() {
		category = domain.CategoryBuild
	}
	impact := quest.Impact
	if impact == 0 {
		impact = domain.DefaultImpact
	}

	levelBefore := progress.Player.Level()
	UpdateStreak(&progress.Player, now)

	out := grant(progress, quest.ID, category, impact, rules, src)
	out.LevelBefore = levelBefore

	progress.RecordCategory(category)
	progress.TotalDone++
	quest.MarkAllDone()

	out.Player = progress.Player
	return out, nil
}

// EventID is the loot key for an event recorded on now's day.
func EventID(eventType domain.EventType, now time.Time) string {
	return fmt.Sprintf("E-%s-%s", domain.DateKey(now), eventType)
}

// RecordEvent applies an externally verified achievement. Events are
// credited at impact 5 in their mapped category, use the current streak for
// bonuses without changing it, and do not enter the quest category history.
func RecordEvent(progress *domain.Progress, eventType string, rules config.Rules, src rng.Source, now time.Time) (*Outcome, error) {
	et := domain.EventType(eventType)
	category, ok := et.Category()
	if !ok {
		return nil, invalidEventError(eventType)
	}

	levelBefore := progress.Player.Level()
	out := grant(progress, EventID(et, now), category, EventImpact, rules, src)
	out.LevelBefore = levelBefore
	out.Player = progress.Player
	return out, nil
}

func grant(progress *domain.Progress, ref string, category domain.Category, impact int, rules config.Rules, src rng.Source) *Outcome {
	streak := progress.Player.Streak
	xp := CalcXP(impact, category, streak, rules)
	progress.Player.Experience += xp

	loot := RollLoot(src, category, streak, ref, rules.Rarity)
	progress.AddLoot(loot...)

	return &Outcome{
		Ref:        ref,
		Category:   category,
		XPGained:   xp,
		LevelAfter: progress.Player.Level(),
		Loot:       loot,
		Mastery:    progress.AdvanceTable(category),
	}
}
