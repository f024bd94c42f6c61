package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/questgame/internal/app"
	"github.com/alexanderramin/questgame/internal/db"
	"github.com/alexanderramin/questgame/internal/domain"
	"github.com/alexanderramin/questgame/internal/engine"
	"github.com/alexanderramin/questgame/internal/repository"
)

type backlogService struct {
	backlog  repository.BacklogRepo
	uow      db.UnitOfWork
	rt       Runtime
	observer UseCaseObserver
}

func NewBacklogService(backlog repository.BacklogRepo, uow db.UnitOfWork, rt Runtime, observers ...UseCaseObserver) app.BacklogUseCase {
	return &backlogService{backlog: backlog, uow: uow, rt: rt, observer: useCaseObserverOrNoop(observers)}
}

func (s *backlogService) List(ctx context.Context) ([]domain.BacklogItem, error) {
	return s.backlog.List(ctx)
}

func (s *backlogService) Add(ctx context.Context, req app.AddBacklogRequest) (item *domain.BacklogItem, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		observeUseCase(ctx, s.observer, "backlog-add", startedAt, fields, err)
	}()

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrBlankText
	}

	category := engine.Classify(title)
	if req.Category != "" {
		if category, err = domain.ParseCategory(req.Category); err != nil {
			return nil, err
		}
	}
	effort := domain.IntFromPtrWithDefault(domain.DefaultEffortMin, req.EffortMin)
	if effort <= 0 {
		return nil, fmt.Errorf("effort must be positive, got %d", effort)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txBacklog := repository.NewSQLiteBacklogRepo(tx)
		id, err := txBacklog.NextID(ctx)
		if err != nil {
			return err
		}
		item = domain.NewBacklogItem(id, title, category, s.rt.now())
		item.Impact = domain.IntFromPtrWithDefault(domain.DefaultImpact, req.Impact)
		item.EffortMin = effort
		item.Notes = strings.TrimSpace(req.Notes)
		item.Normalize()
		return txBacklog.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	fields["backlog_id"] = item.ID
	fields["category"] = string(item.Category)
	return item, nil
}

func (s *backlogService) Remove(ctx context.Context, id string) error {
	return s.backlog.Delete(ctx, strings.ToUpper(strings.TrimSpace(id)))
}
