package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	questapp "github.com/alexanderramin/questgame/internal/app"
)

// App holds references to all use cases used by CLI commands.
type App struct {
	Inbox    questapp.InboxUseCase
	Triage   questapp.TriageUseCase
	Backlog  questapp.BacklogUseCase
	Quests   questapp.QuestUseCase
	Events   questapp.EventUseCase
	Sync     questapp.SyncUseCase
	Status   questapp.StatusUseCase
	Activity questapp.ActivityUseCase

	// Serve runs the snapshot server until ctx is cancelled.
	Serve       func(ctx context.Context, addr string) error
	DefaultAddr string

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
	Now           func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "quest" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "quest",
		Short:         "One quest a day, picked from your backlog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAddCmd(app),
		newInboxCmd(app),
		newTriageCmd(app),
		newBacklogCmd(app),
		newPlanCmd(app),
		newStepsCmd(app),
		newDoneCmd(app),
		newEventCmd(app),
		newSyncCmd(app),
		newStatusCmd(app),
		newLogCmd(app),
		newServeCmd(app),
		newLevelTableCmd(app),
	)

	return root
}
