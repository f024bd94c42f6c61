package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/questgame/internal/app"
	"github.com/alexanderramin/questgame/internal/db"
	"github.com/alexanderramin/questgame/internal/domain"
	"github.com/alexanderramin/questgame/internal/engine"
	"github.com/alexanderramin/questgame/internal/repository"
)

type questService struct {
	quests   repository.QuestRepo
	uow      db.UnitOfWork
	rt       Runtime
	observer UseCaseObserver
}

func NewQuestService(quests repository.QuestRepo, uow db.UnitOfWork, rt Runtime, observers ...UseCaseObserver) app.QuestUseCase {
	return &questService{quests: quests, uow: uow, rt: rt, observer: useCaseObserverOrNoop(observers)}
}

func (s *questService) Active(ctx context.Context) (*domain.Quest, error) {
	q, err := s.quests.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, engine.ErrNoActiveQuest
	}
	return q, nil
}

// Plan selects today's quest from the backlog, persists it and removes the
// chosen item from the backlog in one transaction.
func (s *questService) Plan(ctx context.Context, req app.PlanRequest) (result *app.PlanResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"requeue_stale": req.RequeueStale}
	defer func() {
		observeUseCase(ctx, s.observer, "plan", startedAt, fields, err)
	}()

	now := s.rt.now()
	result = &app.PlanResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProgress := repository.NewSQLiteProgressRepo(tx)
		txQuests := repository.NewSQLiteQuestRepo(tx)
		txBacklog := repository.NewSQLiteBacklogRepo(tx)

		progress, err := txProgress.Get(ctx)
		if err != nil {
			return err
		}
		active, err := txQuests.GetActive(ctx)
		if err != nil {
			return err
		}

		if req.RequeueStale && active != nil && active.CreatedBefore(now) {
			if result.Requeued, err = requeue(ctx, tx, active, now); err != nil {
				return err
			}
			active = nil
		}

		backlog, err := txBacklog.List(ctx)
		if err != nil {
			return err
		}
		sel, err := engine.SelectDailyQuest(progress, active, backlog, s.rt.Rules, s.rt.source(now), now)
		if err != nil {
			return err
		}

		if err := txQuests.Save(ctx, &sel.Quest); err != nil {
			return err
		}
		if err := txBacklog.Delete(ctx, sel.Item.ID); err != nil {
			return err
		}
		if err := txProgress.Save(ctx, progress); err != nil {
			return err
		}
		result.Quest = sel.Quest
		result.Selection = sel
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["quest_id"] = result.Quest.ID
	fields["category"] = string(result.Quest.Category)
	fields["score"] = result.Selection.Score
	fields["golden_rule"] = result.Selection.GoldenRule
	return result, nil
}

// requeue moves a quest from an earlier day back to the backlog and logs it
// as expired.
func requeue(ctx context.Context, tx db.DBTX, q *domain.Quest, now time.Time) (*domain.BacklogItem, error) {
	txBacklog := repository.NewSQLiteBacklogRepo(tx)

	fallbackID := ""
	if q.BacklogID == "" {
		id, err := txBacklog.NextID(ctx)
		if err != nil {
			return nil, err
		}
		fallbackID = id
	}
	item := q.ToBacklogItem(fallbackID)
	item.Normalize()
	if err := txBacklog.Create(ctx, item); err != nil {
		return nil, err
	}
	if err := repository.NewSQLiteQuestRepo(tx).Clear(ctx); err != nil {
		return nil, err
	}

	entry := newActivity(domain.ActivityExpired, now)
	entry.Ref = q.ID
	entry.Category = q.Category
	entry.Note = q.Title
	if err := repository.NewSQLiteActivityRepo(tx).Append(ctx, entry); err != nil {
		return nil, err
	}
	return item, nil
}

// ToggleStep flips the step at the zero-based index.
func (s *questService) ToggleStep(ctx context.Context, index int) (*domain.Quest, error) {
	return s.updateSteps(ctx, func(q *domain.Quest) error {
		if err := q.ToggleStep(index); err != nil {
			return fmt.Errorf("%w: %v", engine.ErrInvalidStep, err)
		}
		return nil
	})
}

// SetSteps sets every step's done flag at once; done must have one entry per step.
func (s *questService) SetSteps(ctx context.Context, done []bool) (*domain.Quest, error) {
	return s.updateSteps(ctx, func(q *domain.Quest) error {
		if len(done) != len(q.Steps) {
			return fmt.Errorf("%w: got %d flags for %d steps", engine.ErrInvalidStep, len(done), len(q.Steps))
		}
		for i := range q.Steps {
			q.Steps[i].Done = done[i]
		}
		return nil
	})
}

func (s *questService) updateSteps(ctx context.Context, apply func(q *domain.Quest) error) (*domain.Quest, error) {
	var quest *domain.Quest
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txQuests := repository.NewSQLiteQuestRepo(tx)
		q, err := txQuests.GetActive(ctx)
		if err != nil {
			return err
		}
		if q == nil {
			return engine.ErrNoActiveQuest
		}
		if err := apply(q); err != nil {
			return err
		}
		quest = q
		return txQuests.Save(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return quest, nil
}

// Complete rewards the active quest, clears the slot and logs the completion.
func (s *questService) Complete(ctx context.Context) (result *app.CompleteResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		observeUseCase(ctx, s.observer, "complete-quest", startedAt, fields, err)
	}()

	now := s.rt.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProgress := repository.NewSQLiteProgressRepo(tx)
		txQuests := repository.NewSQLiteQuestRepo(tx)

		progress, err := txProgress.Get(ctx)
		if err != nil {
			return err
		}
		quest, err := txQuests.GetActive(ctx)
		if err != nil {
			return err
		}

		out, err := engine.CompleteQuest(progress, quest, s.rt.Rules, s.rt.source(now), now)
		if err != nil {
			return err
		}
		if err := txProgress.Save(ctx, progress); err != nil {
			return err
		}
		if err := txQuests.Clear(ctx); err != nil {
			return err
		}

		entry := newActivity(domain.ActivityDone, now)
		entry.Ref = quest.ID
		entry.Category = out.Category
		entry.XP = out.XPGained
		entry.Loot = out.Loot
		entry.Note = quest.Title
		if err := repository.NewSQLiteActivityRepo(tx).Append(ctx, entry); err != nil {
			return err
		}

		result = &app.CompleteResult{Quest: *quest, Outcome: out}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["quest_id"] = result.Quest.ID
	fields["category"] = string(result.Outcome.Category)
	fields["xp"] = result.Outcome.XPGained
	fields["streak"] = result.Outcome.Player.Streak
	return result, nil
}
