package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/questgame/internal/config"
	"github.com/alexanderramin/questgame/internal/db"
	"github.com/alexanderramin/questgame/internal/domain"
	"github.com/alexanderramin/questgame/internal/engine"
	"github.com/alexanderramin/questgame/internal/repository"
	"github.com/alexanderramin/questgame/internal/testutil"
)

// testEnv wires every repository over one in-memory database with a
// movable clock.
type testEnv struct {
	db       *sql.DB
	uow      db.UnitOfWork
	now      time.Time
	rules    config.Rules
	progress *repository.SQLiteProgressRepo
	backlog  *repository.SQLiteBacklogRepo
	quests   *repository.SQLiteQuestRepo
	inbox    *repository.SQLiteInboxRepo
	activity *repository.SQLiteActivityRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:       database,
		uow:      testutil.NewTestUoW(database),
		now:      testutil.FixedNow,
		rules:    config.DefaultRules(),
		progress: repository.NewSQLiteProgressRepo(database),
		backlog:  repository.NewSQLiteBacklogRepo(database),
		quests:   repository.NewSQLiteQuestRepo(database),
		inbox:    repository.NewSQLiteInboxRepo(database),
		activity: repository.NewSQLiteActivityRepo(database),
	}
}

func (e *testEnv) runtime() Runtime {
	rt := NewRuntime(e.rules)
	rt.Clock = func() time.Time { return e.now }
	return rt
}

func (e *testEnv) seedBacklog(t *testing.T, items ...*domain.BacklogItem) {
	t.Helper()
	for _, item := range items {
		require.NoError(t, e.backlog.Create(context.Background(), item))
	}
}

func (e *testEnv) loadProgress(t *testing.T) *domain.Progress {
	t.Helper()
	p, err := e.progress.Get(context.Background())
	require.NoError(t, err)
	return p
}

func (e *testEnv) recentActivity(t *testing.T) []domain.ActivityEntry {
	t.Helper()
	entries, err := e.activity.ListRecent(context.Background(), 50)
	require.NoError(t, err)
	return entries
}

type fakeCommitSource struct {
	facts    engine.SyncFacts
	err      error
	lastSeen []string
}

func (f *fakeCommitSource) Facts(_ context.Context, lastSeen string) (engine.SyncFacts, error) {
	f.lastSeen = append(f.lastSeen, lastSeen)
	return f.facts, f.err
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}
