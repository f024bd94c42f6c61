package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/questgame/internal/config"
	"github.com/alexanderramin/questgame/internal/domain"
	"github.com/alexanderramin/questgame/internal/repository"
	"github.com/alexanderramin/questgame/internal/service"
	"github.com/alexanderramin/questgame/internal/testutil"
)

type fixture struct {
	srv      *Server
	quests   *repository.SQLiteQuestRepo
	backlog  *repository.SQLiteBacklogRepo
	inbox    *repository.SQLiteInboxRepo
	activity *repository.SQLiteActivityRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	rt := service.NewRuntime(config.DefaultRules())
	rt.Clock = testutil.Clock(testutil.FixedNow)

	f := &fixture{
		quests:   repository.NewSQLiteQuestRepo(database),
		backlog:  repository.NewSQLiteBacklogRepo(database),
		inbox:    repository.NewSQLiteInboxRepo(database),
		activity: repository.NewSQLiteActivityRepo(database),
	}
	progress := repository.NewSQLiteProgressRepo(database)
	f.srv = New(Deps{
		Status:   service.NewStatusService(progress, f.quests, f.backlog, f.inbox, rt),
		Backlog:  service.NewBacklogService(f.backlog, uow, rt),
		Inbox:    service.NewInboxService(f.inbox, uow, rt),
		Activity: service.NewActivityService(f.activity),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return f
}

func (f *fixture) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestToday_NoActiveQuest(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/api/today")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"active":false}`, rec.Body.String())
}

func TestToday_ActiveQuest(t *testing.T) {
	f := newFixture(t)
	q := testutil.NewTestQuest("Q-2025-03-15-001", "Ship landing page", domain.CategoryShip, testutil.WithQuestImpact(5))
	require.NoError(t, f.quests.Save(context.Background(), q))

	rec := f.get(t, "/api/today")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, true, body["active"])
	quest := body["quest"].(map[string]any)
	assert.Equal(t, "Q-2025-03-15-001", quest["id"])
	assert.Equal(t, "ship", quest["category"])
	assert.EqualValues(t, 5, quest["impact"])
	assert.Len(t, quest["steps"], 3)
}

func TestState(t *testing.T) {
	f := newFixture(t)
	f.backlogItem(t, "B-0001")

	rec := f.get(t, "/api/state")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	player := body["player"].(map[string]any)
	assert.EqualValues(t, 1, player["level"])
	assert.EqualValues(t, 0, player["experience"])
	assert.EqualValues(t, 1, body["backlog_size"])
	assert.Nil(t, body["quest"])
	assert.Len(t, body["mastery"], 3)
}

func TestBacklogAndInbox(t *testing.T) {
	f := newFixture(t)
	f.backlogItem(t, "B-0001")
	f.backlogItem(t, "B-0002")
	require.NoError(t, f.inbox.Append(context.Background(), &domain.InboxEntry{Text: "idea", CreatedAt: testutil.FixedNow}))

	backlog := decode[[]map[string]any](t, f.get(t, "/api/backlog"))
	require.Len(t, backlog, 2)
	assert.Equal(t, "B-0001", backlog[0]["id"])

	inbox := decode[[]map[string]any](t, f.get(t, "/api/inbox"))
	require.Len(t, inbox, 1)
	assert.Equal(t, "idea", inbox[0]["text"])
}

func TestEmptyListsEncodeAsArrays(t *testing.T) {
	f := newFixture(t)
	for _, path := range []string{"/api/backlog", "/api/inbox", "/api/log"} {
		t.Run(path, func(t *testing.T) {
			rec := f.get(t, path)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `[]`, rec.Body.String())
		})
	}
}

func TestLog_Limit(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 12; i++ {
		require.NoError(t, f.activity.Append(context.Background(), &domain.ActivityEntry{
			ID:   "a" + string(rune('a'+i)),
			At:   testutil.FixedNow.Add(time.Duration(i) * time.Minute),
			Kind: domain.ActivityEvent,
			Ref:  "blog",
		}))
	}

	tests := []struct {
		query string
		want  int
	}{
		{"", 10},
		{"?limit=3", 3},
		{"?limit=abc", 10},
		{"?limit=-1", 10},
		{"?limit=50", 12},
	}
	for _, tt := range tests {
		t.Run("limit"+tt.query, func(t *testing.T) {
			entries := decode[[]map[string]any](t, f.get(t, "/api/log"+tt.query))
			assert.Len(t, entries, tt.want)
		})
	}
}

func TestNonGetIsRejected(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/state", bytes.NewBufferString("{}"))
	f.srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}

func TestCORSHeaders(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/today", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	f.srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.srv.ListenAndServe(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func (f *fixture) backlogItem(t *testing.T, id string) {
	t.Helper()
	item := testutil.NewTestBacklogItem("Write post "+id, domain.CategoryReach, testutil.WithBacklogID(id))
	require.NoError(t, f.backlog.Create(context.Background(), item))
}
