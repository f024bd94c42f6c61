package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/questgame/internal/cli/formatter"
	"github.com/alexanderramin/questgame/internal/domain"
)

const defaultLevelRows = 15

func newEventCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "event TYPE [NOTE...]",
		Short:     "Record an external achievement (" + strings.Join(domain.ValidEventTypes(), ", ") + ")",
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: domain.ValidEventTypes(),
		RunE: func(cmd *cobra.Command, args []string) error {
			note := strings.Join(args[1:], " ")
			o, err := app.Events.Record(context.Background(), args[0], note)
			if err != nil {
				return hintNoOp(cmd, err)
			}
			out(cmd, formatter.FormatEvent(strings.ToLower(args[0]), o))
			return nil
		},
	}
}

func newSyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reward new git commits and a release tag at HEAD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := app.Sync.Sync(cmd.Context())
			if err != nil {
				return hintNoOp(cmd, err)
			}
			out(cmd, formatter.FormatSync(o))
			return nil
		},
	}
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show level, streak, mastery and inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := app.Status.Snapshot(context.Background())
			if err != nil {
				return err
			}
			out(cmd, formatter.FormatStatus(snap))
			return nil
		},
	}
}

func newLogCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent activity, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Activity.Recent(context.Background(), limit)
			if err != nil {
				return err
			}
			out(cmd, formatter.FormatActivity(entries, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of entries to show")
	return cmd
}

func newLevelTableCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "level-table [N]",
		Short: "Show experience thresholds for the first N levels",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := defaultLevelRows
			if len(args) == 1 {
				v, err := positiveArg("N", args[0])
				if err != nil {
					return err
				}
				n = v
			}
			out(cmd, formatter.FormatLevelTable(n))
			return nil
		},
	}
}
