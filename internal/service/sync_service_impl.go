package service

import (
	"context"
	"time"

	"github.com/alexanderramin/questgame/internal/app"
	"github.com/alexanderramin/questgame/internal/db"
	"github.com/alexanderramin/questgame/internal/domain"
	"github.com/alexanderramin/questgame/internal/engine"
	"github.com/alexanderramin/questgame/internal/repository"
)

type syncService struct {
	progress repository.ProgressRepo
	git      CommitSource
	uow      db.UnitOfWork
	rt       Runtime
	observer UseCaseObserver
}

func NewSyncService(progress repository.ProgressRepo, git CommitSource, uow db.UnitOfWork, rt Runtime, observers ...UseCaseObserver) app.SyncUseCase {
	return &syncService{progress: progress, git: git, uow: uow, rt: rt, observer: useCaseObserverOrNoop(observers)}
}

// Sync rewards commits made since the last sync and a release tag at HEAD.
// Git is queried before the transaction opens so no lock is held while it runs.
func (s *syncService) Sync(ctx context.Context) (out *engine.SyncOutcome, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		observeUseCase(ctx, s.observer, "sync", startedAt, fields, err)
	}()

	if !s.rt.Rules.Git.Enabled {
		return nil, engine.ErrSyncDisabled
	}

	current, err := s.progress.Get(ctx)
	if err != nil {
		return nil, err
	}
	facts, err := s.git.Facts(ctx, current.Git.LastSeenHash)
	if err != nil {
		return nil, err
	}

	now := s.rt.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProgress := repository.NewSQLiteProgressRepo(tx)

		progress, err := txProgress.Get(ctx)
		if err != nil {
			return err
		}
		if progress.Git.LastSeenHash != current.Git.LastSeenHash {
			// Another sync finished while git was running.
			return engine.ErrNoNewCommits
		}
		out, err = engine.ApplySync(progress, facts, s.rt.Rules)
		if err != nil {
			return err
		}
		if err := txProgress.Save(ctx, progress); err != nil {
			return err
		}

		entry := newActivity(domain.ActivitySync, now)
		entry.Ref = out.NewestHash
		entry.XP = out.XPGained
		entry.Loot = out.Loot
		entry.Commits = out.Commits
		if out.TagRewarded {
			entry.Note = "release tag"
		}
		return repository.NewSQLiteActivityRepo(tx).Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	fields["commits"] = out.Commits
	fields["xp"] = out.XPGained
	fields["tag"] = out.TagRewarded
	return out, nil
}
