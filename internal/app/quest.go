package app

import (
	"github.com/alexanderramin/questgame/internal/domain"
	"github.com/alexanderramin/questgame/internal/engine"
)

type PlanRequest struct {
	// RequeueStale returns a quest left over from an earlier day to the
	// backlog before planning.
	RequeueStale bool
}

type PlanResult struct {
	Quest     domain.Quest
	Selection *engine.Selection
	// Requeued is the stale quest returned to the backlog, if any.
	Requeued *domain.BacklogItem
}

type CompleteResult struct {
	Quest   domain.Quest
	Outcome *engine.Outcome
}

// AddBacklogRequest adds an item directly, bypassing the inbox. Unset
// fields take their defaults; an empty Category is classified from Title.
type AddBacklogRequest struct {
	Title     string
	Category  string
	Impact    *int
	EffortMin *int
	Notes     string
}
