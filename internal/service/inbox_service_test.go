package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/questgame/internal/domain"
)

func TestInboxService_AddRejectsBlankText(t *testing.T) {
	env := newTestEnv(t)
	svc := NewInboxService(env.inbox, env.uow, env.runtime())

	_, err := svc.Add(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrBlankText)
}

func TestInboxService_AddAndList(t *testing.T) {
	env := newTestEnv(t)
	svc := NewInboxService(env.inbox, env.uow, env.runtime())
	ctx := context.Background()

	e, err := svc.Add(ctx, "  record demo video ")
	require.NoError(t, err)
	assert.Equal(t, "record demo video", e.Text)
	assert.Equal(t, env.now, e.CreatedAt)

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, e.ID, entries[0].ID)
}

func TestTriageService_ClassifiesAndClearsInbox(t *testing.T) {
	env := newTestEnv(t)
	inbox := NewInboxService(env.inbox, env.uow, env.runtime())
	obs := &recordingObserver{}
	triage := NewTriageService(env.inbox, env.uow, env.runtime(), obs)
	ctx := context.Background()

	for _, line := range []string{"- [2025-03-14 10:00] write blog post", "fix login bug", "- [x]"} {
		_, err := inbox.Add(ctx, line)
		require.NoError(t, err)
	}

	items, err := triage.Triage(ctx)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "B-0001", items[0].ID)
	assert.Equal(t, "write blog post", items[0].Title)
	assert.Equal(t, domain.CategoryReach, items[0].Category)
	assert.Equal(t, domain.DefaultImpact, items[0].Impact)
	assert.Equal(t, domain.DefaultEffortMin, items[0].EffortMin)
	assert.Equal(t, "B-0002", items[1].ID)
	assert.Equal(t, domain.CategoryBuild, items[1].Category)

	backlog, err := env.backlog.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, backlog)

	left, err := inbox.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, left)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "triage", obs.events[0].Name)
	assert.Equal(t, 2, obs.events[0].Fields["created"])
}

func TestTriageService_EmptyInbox(t *testing.T) {
	env := newTestEnv(t)

	items, err := NewTriageService(env.inbox, env.uow, env.runtime()).Triage(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}
