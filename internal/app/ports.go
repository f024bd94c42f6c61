package app

import (
	"context"

	"github.com/alexanderramin/questgame/internal/domain"
	"github.com/alexanderramin/questgame/internal/engine"
)

type InboxUseCase interface {
	Add(ctx context.Context, text string) (*domain.InboxEntry, error)
	List(ctx context.Context) ([]domain.InboxEntry, error)
}

type TriageUseCase interface {
	Triage(ctx context.Context) ([]domain.BacklogItem, error)
}

type BacklogUseCase interface {
	List(ctx context.Context) ([]domain.BacklogItem, error)
	Add(ctx context.Context, req AddBacklogRequest) (*domain.BacklogItem, error)
	Remove(ctx context.Context, id string) error
}

type QuestUseCase interface {
	Plan(ctx context.Context, req PlanRequest) (*PlanResult, error)
	Active(ctx context.Context) (*domain.Quest, error)
	ToggleStep(ctx context.Context, index int) (*domain.Quest, error)
	SetSteps(ctx context.Context, done []bool) (*domain.Quest, error)
	Complete(ctx context.Context) (*CompleteResult, error)
}

type EventUseCase interface {
	Record(ctx context.Context, eventType, note string) (*engine.Outcome, error)
}

type SyncUseCase interface {
	Sync(ctx context.Context) (*engine.SyncOutcome, error)
}

type StatusUseCase interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

type ActivityUseCase interface {
	Recent(ctx context.Context, limit int) ([]domain.ActivityEntry, error)
}
