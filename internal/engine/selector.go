package engine

import (
	"time"

	"github.com/alexanderramin/questgame/internal/config"
	"github.com/alexanderramin/questgame/internal/domain"
	"github.com/alexanderramin/questgame/internal/rng"
)

const (
	varietyBonus      = 15
	entrepreneurBonus = 10

	// goldenRuleWindow is how many consecutive build completions force
	// the next pick toward ship or reach work.
	goldenRuleWindow = 3
	varietyWindow    = 2
)

// ScoredItem is a backlog item with its selection score broken down.
type ScoredItem struct {
	Item              domain.BacklogItem
	Score             int
	VarietyBonus      int
	EntrepreneurBonus int
}

// Selection is the result of picking the day's quest.
type Selection struct {
	Item       domain.BacklogItem
	Quest      domain.Quest
	Score      int
	Candidates []ScoredItem

	// Remaining is the backlog without the chosen item.
	Remaining []domain.BacklogItem

	// GoldenRule is set when the candidates were restricted to ship/reach.
	GoldenRule bool
	// EffortFallback is set when no item fit the effort cap and the whole
	// backlog was considered.
	EffortFallback bool
}

// ShouldForceEntrepreneur reports whether the last three completions were
// all build work.
func ShouldForceEntrepreneur(history []domain.Category) bool {
	if len(history) < goldenRuleWindow {
		return false
	}
	for _, c := range history[len(history)-goldenRuleWindow:] {
		if c != domain.CategoryBuild {
			return false
		}
	}
	return true
}

// ScoreItem scores a candidate against recent history:
// impact*10 - effort + variety bonus + entrepreneur bonus.
func ScoreItem(item domain.BacklogItem, history []domain.Category) ScoredItem {
	scored := ScoredItem{Item: item}

	recent := history
	if len(recent) > varietyWindow {
		recent = recent[len(recent)-varietyWindow:]
	}
	seen := false
	for _, c := range recent {
		if c == item.Category {
			seen = true
			break
		}
	}
	if !seen {
		scored.VarietyBonus = varietyBonus
	}
	if item.Category.IsEntrepreneurial() {
		scored.EntrepreneurBonus = entrepreneurBonus
	}
	scored.Score = item.Impact*10 - item.EffortMin + scored.VarietyBonus + scored.EntrepreneurBonus
	return scored
}

// SelectDailyQuest picks one backlog item to become today's quest.
//
// Items above the daily effort cap are skipped unless that would leave
// nothing. After three build completions in a row only ship/reach items are
// considered, when there are any. The highest score wins; ties keep the
// item that comes first in backlog order. A day-scoped quest id is
// allocated from progress and the checklist is planned for the chosen title.
//
// The backlog itself is not modified; Selection.Remaining holds it without
// the chosen item so the caller removes it exactly once.
func SelectDailyQuest(
	progress *domain.Progress,
	active *domain.Quest,
	backlog []domain.BacklogItem,
	rules config.Rules,
	src rng.Source,
	now time.Time,
) (*Selection, error) {
	if active != nil {
		return nil, ErrQuestActive
	}
	if len(backlog) == 0 {
		return nil, ErrEmptyBacklog
	}

	sel := &Selection{}

	candidates := make([]domain.BacklogItem, 0, len(backlog))
	for _, item := range backlog {
		if item.EffortMin <= rules.DailyEffortMaxMin {
			candidates = append(candidates, item)
		}
	}
	if len(candidates) == 0 {
		candidates = append(candidates, backlog...)
		sel.EffortFallback = true
	}

	if ShouldForceEntrepreneur(progress.History) {
		var forced []domain.BacklogItem
		for _, item := range candidates {
			if item.Category.IsEntrepreneurial() {
				forced = append(forced, item)
			}
		}
		if len(forced) > 0 {
			candidates = forced
			sel.GoldenRule = true
		}
	}

	best := -1
	for i, item := range candidates {
		scored := ScoreItem(item, progress.History)
		sel.Candidates = append(sel.Candidates, scored)
		if best < 0 || scored.Score > sel.Candidates[best].Score {
			best = i
		}
	}
	chosen := sel.Candidates[best]
	sel.Item = chosen.Item
	sel.Score = chosen.Score

	day := domain.DateKey(now)
	sel.Quest = domain.Quest{
		ID:        domain.QuestID(day, progress.NextQuestSeq(day)),
		Title:     chosen.Item.Title,
		Category:  chosen.Item.Category,
		Impact:    chosen.Item.Impact,
		EffortMin: chosen.Item.EffortMin,
		Steps:     PlanSteps(src, chosen.Item.Category, chosen.Item.Title),
		Source:    domain.QuestSourceBacklog,
		BacklogID: chosen.Item.ID,
		CreatedAt: now,
	}

	sel.Remaining = make([]domain.BacklogItem, 0, len(backlog)-1)
	removed := false
	for _, item := range backlog {
		if !removed && item.ID == chosen.Item.ID {
			removed = true
			continue
		}
		sel.Remaining = append(sel.Remaining, item)
	}

	return sel, nil
}
