package service

import (
	"context"

	"github.com/alexanderramin/questgame/internal/app"
	"github.com/alexanderramin/questgame/internal/domain"
	"github.com/alexanderramin/questgame/internal/engine"
	"github.com/alexanderramin/questgame/internal/repository"
)

type statusService struct {
	progress repository.ProgressRepo
	quests   repository.QuestRepo
	backlog  repository.BacklogRepo
	inbox    repository.InboxRepo
	rt       Runtime
}

func NewStatusService(
	progress repository.ProgressRepo,
	quests repository.QuestRepo,
	backlog repository.BacklogRepo,
	inbox repository.InboxRepo,
	rt Runtime,
) app.StatusUseCase {
	return &statusService{progress: progress, quests: quests, backlog: backlog, inbox: inbox, rt: rt}
}

func (s *statusService) Snapshot(ctx context.Context) (*app.Snapshot, error) {
	p, err := s.progress.Get(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.quests.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	backlog, err := s.backlog.List(ctx)
	if err != nil {
		return nil, err
	}
	inbox, err := s.inbox.List(ctx)
	if err != nil {
		return nil, err
	}

	level, into, needed := domain.LevelProgress(p.Player.Experience)
	snap := &app.Snapshot{
		GeneratedAt:       s.rt.now(),
		Player:            p.Player,
		Level:             level,
		XPIntoLevel:       into,
		XPForNext:         needed,
		TotalDone:         p.TotalDone,
		ActiveQuest:       active,
		InventoryCounts:   p.InventoryCounts(),
		RecentCategories:  p.RecentHistory(domain.HistoryCap),
		GoldenRuleWarning: engine.ShouldForceEntrepreneur(p.History),
		BacklogSize:       len(backlog),
		InboxSize:         len(inbox),
		LastSeenHash:      p.Git.LastSeenHash,
	}
	for _, c := range domain.AllCategories {
		t := p.Table(c)
		snap.Mastery = append(snap.Mastery, app.MasteryRow{
			Category: c,
			Level:    t.Level,
			Progress: t.Progress,
			Needed:   t.Needed(),
		})
	}
	if n := len(p.Inventory); n > 0 {
		snap.RecentLoot = append([]string(nil), p.Inventory[max(0, n-app.RecentLootSize):]...)
	}
	return snap, nil
}
