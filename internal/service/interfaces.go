package service

import (
	"context"
	"time"

	"github.com/alexanderramin/questgame/internal/app"
	"github.com/alexanderramin/questgame/internal/config"
	"github.com/alexanderramin/questgame/internal/engine"
	"github.com/alexanderramin/questgame/internal/rng"
)

// CommitSource reports version-control facts since the last seen commit.
type CommitSource interface {
	Facts(ctx context.Context, lastSeen string) (engine.SyncFacts, error)
}

// Runtime holds what the use cases read besides storage: the game rules,
// the clock and the per-day randomness.
type Runtime struct {
	Rules  config.Rules
	Clock  func() time.Time
	Random func(now time.Time) rng.Source
}

// NewRuntime returns a Runtime on the system clock with day-seeded randomness.
func NewRuntime(rules config.Rules) Runtime {
	return Runtime{
		Rules:  rules,
		Clock:  time.Now,
		Random: func(now time.Time) rng.Source { return rng.ForDay(now) },
	}
}

func (r Runtime) now() time.Time {
	if r.Clock == nil {
		return time.Now()
	}
	return r.Clock()
}

func (r Runtime) source(now time.Time) rng.Source {
	if r.Random == nil {
		return rng.ForDay(now)
	}
	return r.Random(now)
}

var (
	_ app.InboxUseCase    = (*inboxService)(nil)
	_ app.TriageUseCase   = (*inboxService)(nil)
	_ app.BacklogUseCase  = (*backlogService)(nil)
	_ app.QuestUseCase    = (*questService)(nil)
	_ app.EventUseCase    = (*eventService)(nil)
	_ app.SyncUseCase     = (*syncService)(nil)
	_ app.StatusUseCase   = (*statusService)(nil)
	_ app.ActivityUseCase = (*activityService)(nil)
)
