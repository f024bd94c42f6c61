package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/questgame/internal/config"
	"github.com/alexanderramin/questgame/internal/domain"
)

func TestApplySync_CommitsAndTag(t *testing.T) {
	p := domain.NewProgress()
	p.Player.Streak = 3
	facts := SyncFacts{
		Commits: []Commit{
			{Hash: "ccc", Subject: "add feature"},
			{Hash: "bbb", Subject: "fix typo"},
			{Hash: "aaa", Subject: "init"},
		},
		TagAtHead: true,
	}

	out, err := ApplySync(p, facts, config.DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, 3, out.Commits)
	assert.Equal(t, 3*2+20, out.XPGained)
	assert.True(t, out.TagRewarded)
	assert.Equal(t, []string{
		domain.TokenBuildShard, domain.TokenBuildShard, domain.TokenBuildShard, domain.TokenShipToken,
	}, out.Loot)
	assert.Equal(t, "ccc", out.NewestHash)
	assert.Equal(t, "ccc", p.Git.LastSeenHash)
	assert.Equal(t, 26, p.Player.Experience)
	assert.Equal(t, out.Loot, p.Inventory)
	assert.Equal(t, 3, p.Player.Streak)
	assert.Empty(t, p.History)
}

func TestApplySync_CustomRewards(t *testing.T) {
	rules := config.DefaultRules()
	rules.Git.CommitXP = 5
	rules.Git.TagXP = 0

	out, err := ApplySync(domain.NewProgress(), SyncFacts{Commits: []Commit{{Hash: "a"}}}, rules)
	require.NoError(t, err)

	assert.Equal(t, 5, out.XPGained)
	assert.False(t, out.TagRewarded)
}

func TestApplySync_NoOps(t *testing.T) {
	p := domain.NewProgress()

	_, err := ApplySync(p, SyncFacts{TagAtHead: true}, config.DefaultRules())
	assert.ErrorIs(t, err, ErrNoNewCommits)
	assert.True(t, IsNoOp(err))

	rules := config.DefaultRules()
	rules.Git.Enabled = false
	_, err = ApplySync(p, SyncFacts{Commits: []Commit{{Hash: "a"}}}, rules)
	assert.ErrorIs(t, err, ErrSyncDisabled)

	assert.Equal(t, 0, p.Player.Experience)
	assert.Empty(t, p.Git.LastSeenHash)
}
