package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/questgame/internal/domain"
)

// ErrNotFound is wrapped by repositories when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ProgressRepo loads and stores the progress aggregate as one unit.
type ProgressRepo interface {
	Get(ctx context.Context) (*domain.Progress, error)
	Save(ctx context.Context, p *domain.Progress) error
}

type BacklogRepo interface {
	NextID(ctx context.Context) (string, error)
	Create(ctx context.Context, item *domain.BacklogItem) error
	GetByID(ctx context.Context, id string) (*domain.BacklogItem, error)
	List(ctx context.Context) ([]domain.BacklogItem, error)
	Delete(ctx context.Context, id string) error
}

// QuestRepo stores the single active quest slot. GetActive returns nil
// without error when the slot is empty.
type QuestRepo interface {
	GetActive(ctx context.Context) (*domain.Quest, error)
	Save(ctx context.Context, q *domain.Quest) error
	Clear(ctx context.Context) error
}

type InboxRepo interface {
	Append(ctx context.Context, e *domain.InboxEntry) error
	List(ctx context.Context) ([]domain.InboxEntry, error)
	Clear(ctx context.Context) error
}

type ActivityRepo interface {
	Append(ctx context.Context, e *domain.ActivityEntry) error
	ListRecent(ctx context.Context, limit int) ([]domain.ActivityEntry, error)
}

type SequenceRepo interface {
	Next(ctx context.Context, name string) (int, error)
}
