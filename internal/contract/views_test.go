package contract

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/questgame/internal/app"
	"github.com/alexanderramin/questgame/internal/domain"
)

func TestNewTodayView_InactiveEncodesFlagOnly(t *testing.T) {
	data, err := json.Marshal(NewTodayView(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"active": false}`, string(data))
}

func TestNewTodayView_Active(t *testing.T) {
	q := &domain.Quest{
		ID:        "Q-2025-03-15-001",
		Title:     "Publish post",
		Category:  domain.CategoryReach,
		Impact:    4,
		EffortMin: 25,
		Steps:     []domain.Step{{Text: "a", Done: true}, {Text: "b"}},
		CreatedAt: time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC),
	}

	v := NewTodayView(q)

	assert.True(t, v.Active)
	require.NotNil(t, v.Quest)
	assert.Equal(t, 1, v.Quest.DoneCount)
	assert.Equal(t, "2025-03-15T09:00:00Z", v.Quest.CreatedAt)
	assert.Equal(t, []StepView{{Text: "a", Done: true}, {Text: "b"}}, v.Quest.Steps)
}

func TestNewStateView_EmptyListsAreArrays(t *testing.T) {
	snap := &app.Snapshot{GeneratedAt: time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC), Level: 1, XPForNext: 100}

	data, err := json.Marshal(NewStateView(snap))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []any{}, decoded["recent_loot"])
	assert.Equal(t, []any{}, decoded["recent_categories"])
	assert.Equal(t, map[string]any{}, decoded["inventory"])
	assert.Nil(t, decoded["quest"])
	assert.Nil(t, decoded["player"].(map[string]any)["last_completion_date"])
}

func TestNewStateView_MapsPlayer(t *testing.T) {
	last := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	snap := &app.Snapshot{
		Player:           domain.Player{Name: "ana", Experience: 150, Streak: 3, LastCompletionDate: &last},
		Level:            2,
		XPIntoLevel:      50,
		XPForNext:        130,
		Mastery:          []app.MasteryRow{{Category: domain.CategoryShip, Level: 2, Progress: 1, Needed: 6}},
		RecentCategories: []domain.Category{domain.CategoryShip},
	}

	v := NewStateView(snap)

	assert.Equal(t, "ana", v.Player.Name)
	assert.Equal(t, 2, v.Player.Level)
	require.NotNil(t, v.Player.LastCompletionDate)
	assert.Equal(t, "2025-03-14", *v.Player.LastCompletionDate)
	assert.Equal(t, []MasteryView{{Category: "ship", Level: 2, Progress: 1, Needed: 6}}, v.Mastery)
	assert.Equal(t, []string{"ship"}, v.RecentCategories)
}

func TestNewActivityView(t *testing.T) {
	entries := []domain.ActivityEntry{{
		ID:   "a1",
		At:   time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC),
		Kind: domain.ActivitySync,
		XP:   4,
	}}

	v := NewActivityView(entries)

	require.Len(t, v, 1)
	assert.Equal(t, "SYNC", v[0].Kind)
	assert.Equal(t, []string{}, v[0].Loot)
	assert.Empty(t, NewActivityView(nil))
	assert.NotNil(t, NewBacklogView(nil))
	assert.NotNil(t, NewInboxView(nil))
}
