package engine

import (
	"github.com/alexanderramin/questgame/internal/config"
	"github.com/alexanderramin/questgame/internal/domain"
)

// Commit is one commit reported by the version-control collaborator.
type Commit struct {
	Hash    string
	Subject string
}

// SyncFacts is what version control reports since the last sync, newest
// commit first.
type SyncFacts struct {
	Commits   []Commit
	TagAtHead bool
}

// SyncOutcome summarizes the rewards of one sync.
type SyncOutcome struct {
	Commits     int
	XPGained    int
	Loot        []string
	TagRewarded bool
	LevelBefore int
	LevelAfter  int
	NewestHash  string
}

// ApplySync grants commit_xp and a build shard per commit, plus tag_xp and a
// ship token when a release tag sits at HEAD. A sync without new commits
// grants nothing, tag included. Streak, mastery and history are untouched.
func ApplySync(progress *domain.Progress, facts SyncFacts, rules config.Rules) (*SyncOutcome, error) {
	if !rules.Git.Enabled {
		return nil, ErrSyncDisabled
	}
	if len(facts.Commits) == 0 {
		return nil, ErrNoNewCommits
	}

	out := &SyncOutcome{
		Commits:     len(facts.Commits),
		LevelBefore: progress.Player.Level(),
		NewestHash:  facts.Commits[0].Hash,
	}
	for range facts.Commits {
		out.XPGained += rules.Git.CommitXP
		out.Loot = append(out.Loot, domain.TokenBuildShard)
	}
	if facts.TagAtHead {
		out.XPGained += rules.Git.TagXP
		out.Loot = append(out.Loot, domain.TokenShipToken)
		out.TagRewarded = true
	}

	progress.Player.Experience += out.XPGained
	progress.AddLoot(out.Loot...)
	if out.NewestHash != "" {
		progress.Git.LastSeenHash = out.NewestHash
	}
	out.LevelAfter = progress.Player.Level()
	return out, nil
}
