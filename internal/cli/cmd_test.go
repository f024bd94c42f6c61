package cli

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/questgame/internal/config"
	"github.com/alexanderramin/questgame/internal/engine"
	"github.com/alexanderramin/questgame/internal/repository"
	"github.com/alexanderramin/questgame/internal/service"
	"github.com/alexanderramin/questgame/internal/testutil"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

type stubCommits struct {
	facts engine.SyncFacts
}

func (s *stubCommits) Facts(context.Context, string) (engine.SyncFacts, error) {
	return s.facts, nil
}

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) (*App, *stubCommits) {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	rt := service.NewRuntime(config.DefaultRules())
	rt.Clock = testutil.Clock(testutil.FixedNow)

	progress := repository.NewSQLiteProgressRepo(database)
	backlog := repository.NewSQLiteBacklogRepo(database)
	quests := repository.NewSQLiteQuestRepo(database)
	inbox := repository.NewSQLiteInboxRepo(database)
	activity := repository.NewSQLiteActivityRepo(database)
	commits := &stubCommits{}

	return &App{
		Inbox:    service.NewInboxService(inbox, uow, rt),
		Triage:   service.NewTriageService(inbox, uow, rt),
		Backlog:  service.NewBacklogService(backlog, uow, rt),
		Quests:   service.NewQuestService(quests, uow, rt),
		Events:   service.NewEventService(uow, rt),
		Sync:     service.NewSyncService(progress, commits, uow, rt),
		Status:   service.NewStatusService(progress, quests, backlog, inbox, rt),
		Activity: service.NewActivityService(activity),
		Now:      rt.Clock,
	}, commits
}

// executeCmd runs a cobra command and captures stdout/stderr with styling
// stripped.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	return executeCmdWithInput(t, app, nil, args...)
}

func executeCmdWithInput(t *testing.T, app *App, in io.Reader, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	if in != nil {
		root.SetIn(in)
	}
	root.SetArgs(args)
	err := root.Execute()
	return ansiPattern.ReplaceAllString(buf.String(), ""), err
}

func mustRun(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := executeCmd(t, app, args...)
	require.NoError(t, err, "quest %s", strings.Join(args, " "))
	return out
}

func TestInboxTriageFlow(t *testing.T) {
	app, _ := testApp(t)

	assert.Contains(t, mustRun(t, app, "add", "Write", "blog", "post"), "+ inbox Write blog post")
	assert.Contains(t, mustRun(t, app, "inbox"), "1. Write blog post")

	triage := mustRun(t, app, "triage")
	assert.Contains(t, triage, "+ B-0001 [reach] Write blog post")
	assert.Contains(t, triage, "1 idea(s) moved")

	assert.Contains(t, mustRun(t, app, "inbox"), "inbox is empty")
	assert.Contains(t, mustRun(t, app, "backlog"), "B-0001")
	assert.Contains(t, mustRun(t, app, "triage"), "nothing to triage")
}

func TestAdd_ReadsPipedLines(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmdWithInput(t, app, strings.NewReader("- first idea\n\nsecond idea\n"), "add")
	require.NoError(t, err)
	assert.Contains(t, out, "2 idea(s) added")

	inbox := mustRun(t, app, "inbox")
	assert.Contains(t, inbox, "first idea")
	assert.Contains(t, inbox, "second idea")
}

func TestAdd_InteractiveWithoutText(t *testing.T) {
	app, _ := testApp(t)
	app.IsInteractive = func() bool { return true }

	_, err := executeCmd(t, app, "add")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to add")
}

func TestBacklogAddAndRemove(t *testing.T) {
	app, _ := testApp(t)

	out := mustRun(t, app, "backlog", "add", "Deploy", "v2", "--category", "ship", "--impact", "5", "--effort", "45")
	assert.Contains(t, out, "+ backlog B-0001 [ship] Deploy v2")

	list := mustRun(t, app, "backlog", "list")
	assert.Contains(t, list, "★★★★★")
	assert.Contains(t, list, "45m")

	assert.Contains(t, mustRun(t, app, "backlog", "rm", "b-0001"), "- backlog B-0001")
	assert.Contains(t, mustRun(t, app, "backlog"), "backlog is empty")

	_, err := executeCmd(t, app, "backlog", "remove", "B-0099")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBacklogAdd_InvalidCategory(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "backlog", "add", "Something", "--category", "party")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid category")
}

func TestQuestLifecycle(t *testing.T) {
	app, _ := testApp(t)
	mustRun(t, app, "backlog", "add", "Deploy", "release", "-c", "ship")

	plan := mustRun(t, app, "plan")
	assert.Contains(t, plan, "[ship] Deploy release")
	assert.Contains(t, plan, "Q-2025-03-15-001")
	assert.Contains(t, plan, "0/")

	assert.Contains(t, mustRun(t, app, "plan"), "a quest is already active")

	steps := mustRun(t, app, "steps", "1")
	assert.Contains(t, steps, "[x] 1.")

	_, err := executeCmd(t, app, "steps", "99")
	assert.ErrorIs(t, err, engine.ErrInvalidStep)
	_, err = executeCmd(t, app, "steps", "zero")
	require.Error(t, err)

	assert.Contains(t, mustRun(t, app, "steps"), "[x] 1.")

	done := mustRun(t, app, "done")
	assert.Contains(t, done, "✔ Completed Deploy release")
	assert.Contains(t, done, "XP")
	assert.Contains(t, done, "streak 1")

	assert.Contains(t, mustRun(t, app, "done"), "no active quest")
	assert.Contains(t, mustRun(t, app, "steps"), "no active quest")
	assert.Contains(t, mustRun(t, app, "plan"), "backlog is empty")

	log := mustRun(t, app, "log")
	assert.Contains(t, log, "DONE")
	assert.Contains(t, log, "Q-2025-03-15-001")
}

func TestEvent(t *testing.T) {
	app, _ := testApp(t)

	out := mustRun(t, app, "event", "Blog", "launch", "post")
	assert.Contains(t, out, "✔ Event blog")
	assert.Contains(t, out, "E-2025-03-15-blog")

	_, err := executeCmd(t, app, "event", "party")
	require.ErrorIs(t, err, engine.ErrInvalidEventType)
	assert.Contains(t, err.Error(), "blog, revenue, store, tiktok")

	log := mustRun(t, app, "log", "--limit", "1")
	assert.Contains(t, log, "EVENT")
	assert.Contains(t, log, "launch post")
}

func TestSync(t *testing.T) {
	app, commits := testApp(t)

	assert.Contains(t, mustRun(t, app, "sync"), "no new commits")

	commits.facts = engine.SyncFacts{
		Commits:   []engine.Commit{{Hash: "aaaaaaa111", Subject: "two"}, {Hash: "bbbbbbb222", Subject: "one"}},
		TagAtHead: true,
	}
	out := mustRun(t, app, "sync")
	assert.Contains(t, out, "2 commit(s) up to aaaaaaa")
	assert.Contains(t, out, "+24 XP")
	assert.Contains(t, out, "release tag")
}

func TestStatus(t *testing.T) {
	app, _ := testApp(t)

	out := mustRun(t, app, "status")
	assert.Contains(t, out, "level 1")
	assert.Contains(t, out, "MASTERY")
	assert.Contains(t, out, "no active quest")
}

func TestLevelTable(t *testing.T) {
	app, _ := testApp(t)

	out := mustRun(t, app, "level-table", "3")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "LEVEL")

	_, err := executeCmd(t, app, "level-table", "0")
	require.Error(t, err)
}

func TestServe_NotConfigured(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "serve")
	require.Error(t, err)
}

func TestServe_PassesAddr(t *testing.T) {
	app, _ := testApp(t)
	app.DefaultAddr = "127.0.0.1:9999"
	var got string
	app.Serve = func(_ context.Context, addr string) error {
		got = addr
		return nil
	}

	mustRun(t, app, "serve")
	assert.Equal(t, "127.0.0.1:9999", got)

	mustRun(t, app, "serve", "--addr", ":1234")
	assert.Equal(t, ":1234", got)
}

func TestDoneFlags(t *testing.T) {
	assert.Equal(t, []bool{true, false, true}, doneFlags(3, []int{0, 2, 7}))
	assert.Equal(t, []bool{false, false}, doneFlags(2, nil))
}
