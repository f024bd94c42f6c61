package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/questgame/internal/cli/formatter"
	"github.com/alexanderramin/questgame/internal/engine"
)

var noOpHints = map[error]string{
	engine.ErrNoActiveQuest: "no active quest, run `quest plan` first",
	engine.ErrQuestActive:   "a quest is already active, finish it with `quest done`",
	engine.ErrEmptyBacklog:  "backlog is empty, add ideas with `quest add` and run `quest triage`",
	engine.ErrNoNewCommits:  "no new commits since the last sync",
	engine.ErrSyncDisabled:  "git sync is disabled in the config",
}

// hintNoOp prints a dim hint and swallows err when it is a precondition
// outcome rather than a failure.
func hintNoOp(cmd *cobra.Command, err error) error {
	if !engine.IsNoOp(err) {
		return err
	}
	msg := err.Error()
	for target, hint := range noOpHints {
		if errors.Is(err, target) {
			msg = hint
			break
		}
	}
	out(cmd, formatter.Hint(msg))
	return nil
}

func out(cmd *cobra.Command, s string) {
	fmt.Fprint(cmd.OutOrStdout(), s)
}
