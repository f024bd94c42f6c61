package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/questgame/internal/app"
	"github.com/alexanderramin/questgame/internal/db"
	"github.com/alexanderramin/questgame/internal/domain"
	"github.com/alexanderramin/questgame/internal/engine"
	"github.com/alexanderramin/questgame/internal/repository"
)

// ErrBlankText is returned when an inbox line or backlog title is empty.
var ErrBlankText = errors.New("text is required")

type inboxService struct {
	inbox    repository.InboxRepo
	uow      db.UnitOfWork
	rt       Runtime
	observer UseCaseObserver
}

func NewInboxService(inbox repository.InboxRepo, uow db.UnitOfWork, rt Runtime, observers ...UseCaseObserver) app.InboxUseCase {
	return newInboxService(inbox, uow, rt, observers)
}

// NewTriageService returns the use case that moves inbox lines into the backlog.
func NewTriageService(inbox repository.InboxRepo, uow db.UnitOfWork, rt Runtime, observers ...UseCaseObserver) app.TriageUseCase {
	return newInboxService(inbox, uow, rt, observers)
}

func newInboxService(inbox repository.InboxRepo, uow db.UnitOfWork, rt Runtime, observers []UseCaseObserver) *inboxService {
	return &inboxService{inbox: inbox, uow: uow, rt: rt, observer: useCaseObserverOrNoop(observers)}
}

func (s *inboxService) Add(ctx context.Context, text string) (*domain.InboxEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrBlankText
	}
	e := &domain.InboxEntry{Text: text, CreatedAt: s.rt.now()}
	if err := s.inbox.Append(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *inboxService) List(ctx context.Context) ([]domain.InboxEntry, error) {
	return s.inbox.List(ctx)
}

// Triage classifies every inbox line into a new backlog item with default
// impact and effort, then empties the inbox.
func (s *inboxService) Triage(ctx context.Context) (items []domain.BacklogItem, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		observeUseCase(ctx, s.observer, "triage", startedAt, fields, err)
	}()

	now := s.rt.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txInbox := repository.NewSQLiteInboxRepo(tx)
		txBacklog := repository.NewSQLiteBacklogRepo(tx)

		entries, err := txInbox.List(ctx)
		if err != nil {
			return err
		}
		for _, e := range entries {
			text := domain.CleanInboxLine(e.Text)
			if text == "" {
				continue
			}
			id, err := txBacklog.NextID(ctx)
			if err != nil {
				return err
			}
			item := domain.NewBacklogItem(id, text, engine.Classify(text), now)
			if err := txBacklog.Create(ctx, item); err != nil {
				return err
			}
			items = append(items, *item)
		}
		return txInbox.Clear(ctx)
	})
	if err != nil {
		return nil, err
	}
	fields["created"] = len(items)
	return items, nil
}
