package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/questgame/internal/app"
	"github.com/alexanderramin/questgame/internal/db"
	"github.com/alexanderramin/questgame/internal/domain"
	"github.com/alexanderramin/questgame/internal/engine"
	"github.com/alexanderramin/questgame/internal/repository"
)

type eventService struct {
	uow      db.UnitOfWork
	rt       Runtime
	observer UseCaseObserver
}

func NewEventService(uow db.UnitOfWork, rt Runtime, observers ...UseCaseObserver) app.EventUseCase {
	return &eventService{uow: uow, rt: rt, observer: useCaseObserverOrNoop(observers)}
}

// Record rewards an externally verified achievement such as a published
// post or a store release.
func (s *eventService) Record(ctx context.Context, eventType, note string) (out *engine.Outcome, err error) {
	eventType = strings.ToLower(strings.TrimSpace(eventType))
	startedAt := time.Now().UTC()
	fields := map[string]any{"event_type": eventType}
	defer func() {
		observeUseCase(ctx, s.observer, "record-event", startedAt, fields, err)
	}()

	now := s.rt.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProgress := repository.NewSQLiteProgressRepo(tx)

		progress, err := txProgress.Get(ctx)
		if err != nil {
			return err
		}
		out, err = engine.RecordEvent(progress, eventType, s.rt.Rules, s.rt.source(now), now)
		if err != nil {
			return err
		}
		if err := txProgress.Save(ctx, progress); err != nil {
			return err
		}

		entry := newActivity(domain.ActivityEvent, now)
		entry.Ref = out.Ref
		entry.Category = out.Category
		entry.XP = out.XPGained
		entry.Loot = out.Loot
		entry.Note = strings.TrimSpace(note)
		return repository.NewSQLiteActivityRepo(tx).Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	fields["xp"] = out.XPGained
	fields["category"] = string(out.Category)
	return out, nil
}
