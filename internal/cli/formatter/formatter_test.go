package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/questgame/internal/app"
	"github.com/alexanderramin/questgame/internal/domain"
	"github.com/alexanderramin/questgame/internal/engine"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

var now = time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)

func testQuest() *domain.Quest {
	return &domain.Quest{
		ID:        "Q-2025-03-15-001",
		Title:     "Ship landing page",
		Category:  domain.CategoryShip,
		Impact:    4,
		EffortMin: 90,
		Steps:     []domain.Step{{Text: "Draft copy", Done: true}, {Text: "Deploy"}},
		CreatedAt: now,
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0m"},
		{-5, "0m"},
		{25, "25m"},
		{60, "1h"},
		{90, "1h 30m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinutes(tt.in))
	}
}

func TestRelativeTime(t *testing.T) {
	assert.Equal(t, "just now", RelativeTime(now.Add(-10*time.Second), now))
	assert.Equal(t, "3 minutes ago", RelativeTime(now.Add(-3*time.Minute), now))
	assert.Equal(t, "2 hours ago", RelativeTime(now.Add(-2*time.Hour), now))
}

func TestRenderBar(t *testing.T) {
	assert.Equal(t, "[█████░░░░░] 50/100", stripANSI(RenderBar(50, 100, 10)))
	assert.Equal(t, "[░░░░░░░░░░] 0/0", stripANSI(RenderBar(0, 0, 10)))
	assert.Equal(t, "[██████████] 12/10", stripANSI(RenderBar(12, 10, 10)))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable([]Column{{Header: "A"}, {Header: "N", Right: true}}, [][]string{
		{"long", "5"},
		{"x", "120"},
	}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "A       N", lines[0])
	assert.Equal(t, "long    5", lines[2])
	assert.Equal(t, "x     120", lines[3])
}

func TestFormatQuest(t *testing.T) {
	out := stripANSI(FormatQuest(testQuest()))

	assert.Contains(t, out, "[ship] Ship landing page")
	assert.Contains(t, out, "Q-2025-03-15-001")
	assert.Contains(t, out, "[x] 1. Draft copy")
	assert.Contains(t, out, "[ ] 2. Deploy")
	assert.Contains(t, out, "1/2 steps done")
	assert.Contains(t, out, "1h 30m")
}

func TestFormatPlan_ShowsRequeueAndGoldenRule(t *testing.T) {
	res := &app.PlanResult{
		Quest:     *testQuest(),
		Selection: &engine.Selection{GoldenRule: true},
		Requeued:  &domain.BacklogItem{ID: "B-0004", Title: "Old task"},
	}

	out := stripANSI(FormatPlan(res))

	assert.Contains(t, out, "returned to backlog as B-0004: Old task")
	assert.Contains(t, out, "golden rule")
	assert.Contains(t, out, "Ship landing page")
}

func TestFormatOutcome(t *testing.T) {
	o := &engine.Outcome{
		XPGained:    44,
		LevelBefore: 1,
		LevelAfter:  2,
		Player:      domain.Player{Streak: 3},
		Loot:        []string{domain.TokenShipToken, domain.TokenEpicBadge},
		Mastery: domain.MasteryDelta{
			Category: domain.CategoryShip,
			After:    domain.MasteryTable{Level: 1, Progress: 2},
		},
	}

	out := stripANSI(FormatOutcome(o))

	assert.Contains(t, out, "+44 XP")
	assert.Contains(t, out, "streak 3")
	assert.Contains(t, out, "LEVEL UP! 1 → 2")
	assert.Contains(t, out, "ship_token, ★ epic_badge")
	assert.Contains(t, out, "ship mastery level 1, 2/3")
}

func TestFormatSync_CollapsesLoot(t *testing.T) {
	o := &engine.SyncOutcome{
		Commits:     3,
		XPGained:    26,
		Loot:        []string{domain.TokenBuildShard, domain.TokenBuildShard, domain.TokenBuildShard, domain.TokenShipToken},
		TagRewarded: true,
		LevelBefore: 1,
		LevelAfter:  1,
		NewestHash:  "abcdef1234567",
	}

	out := stripANSI(FormatSync(o))

	assert.Contains(t, out, "3 commit(s) up to abcdef1")
	assert.Contains(t, out, "3× build_shard, ship_token")
	assert.Contains(t, out, "release tag")
	assert.NotContains(t, out, "LEVEL UP")
}

func TestFormatStatus(t *testing.T) {
	last := now.AddDate(0, 0, -1)
	snap := &app.Snapshot{
		Player:      domain.Player{Name: "ana", Experience: 1234, Streak: 2, LastCompletionDate: &last},
		Level:       6,
		XPIntoLevel: 32,
		XPForNext:   369,
		TotalDone:   9,
		Mastery: []app.MasteryRow{
			{Category: domain.CategoryBuild, Level: 2, Progress: 1, Needed: 6},
		},
		InventoryCounts:   map[string]int{domain.TokenBuildShard: 4},
		RecentCategories:  []domain.Category{domain.CategoryBuild, domain.CategoryBuild, domain.CategoryBuild},
		GoldenRuleWarning: true,
		BacklogSize:       3,
	}

	out := stripANSI(FormatStatus(snap))

	assert.Contains(t, out, "ana  level 6")
	assert.Contains(t, out, "1,234 total")
	assert.Contains(t, out, "last 2025-03-14")
	assert.Contains(t, out, "lv 2")
	assert.Contains(t, out, "  4  build_shard")
	assert.Contains(t, out, "golden rule")
	assert.Contains(t, out, "no active quest")
	assert.Contains(t, out, "backlog 3 · inbox 0")
}

func TestFormatLevelTable(t *testing.T) {
	out := stripANSI(FormatLevelTable(3))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[2], "100")
	assert.Contains(t, lines[4], "169")
	assert.True(t, strings.HasSuffix(lines[4], "399"))
}

func TestFormatLevelTable_GroupsThousands(t *testing.T) {
	out := stripANSI(FormatLevelTable(12))
	assert.Contains(t, out, ",")
}

func TestFormatBacklog(t *testing.T) {
	items := []domain.BacklogItem{
		{ID: "B-0001", Title: "Write post", Category: domain.CategoryReach, Impact: 3, EffortMin: 30, Notes: domain.RequeuedNote},
	}

	out := stripANSI(FormatBacklog(items))

	assert.Contains(t, out, "B-0001")
	assert.Contains(t, out, "[reach]")
	assert.Contains(t, out, "★★★☆☆")
	assert.Contains(t, out, "(returned from a previous day)")
	assert.Contains(t, stripANSI(FormatBacklog(nil)), "backlog is empty")
}

func TestFormatActivity(t *testing.T) {
	entries := []domain.ActivityEntry{
		{Kind: domain.ActivitySync, Ref: "0123456789abcdef", Commits: 2, XP: 4, At: now.Add(-5 * time.Minute)},
		{Kind: domain.ActivityDone, Ref: "Q-2025-03-15-001", Category: domain.CategoryShip, XP: 44, At: now.Add(-2 * time.Hour)},
	}

	out := stripANSI(FormatActivity(entries, now))

	assert.Contains(t, out, "SYNC    2 commit(s) → 0123456 +4 XP  5 minutes ago")
	assert.Contains(t, out, "DONE    Q-2025-03-15-001 [ship] +44 XP  2 hours ago")
	assert.Contains(t, stripANSI(FormatActivity(nil, now)), "no activity yet")
}

func TestFormatInboxAndTriage(t *testing.T) {
	inbox := stripANSI(FormatInbox([]domain.InboxEntry{{ID: 7, Text: "idea", CreatedAt: now.Add(-time.Minute * 2)}}, now))
	assert.Contains(t, inbox, "7. idea  2 minutes ago")

	triage := stripANSI(FormatTriage([]domain.BacklogItem{{ID: "B-0002", Title: "idea", Category: domain.CategoryBuild}}))
	assert.Contains(t, triage, "+ B-0002 [build] idea")
	assert.Contains(t, triage, "1 idea(s) moved")
}
