package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	questapp "github.com/alexanderramin/questgame/internal/app"
	"github.com/alexanderramin/questgame/internal/cli/formatter"
)

func newBacklogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backlog",
		Short: "Manage the backlog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listBacklog(cmd, app)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List backlog items in order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return listBacklog(cmd, app)
			},
		},
		newBacklogAddCmd(app),
		newBacklogRemoveCmd(app),
	)
	return cmd
}

func listBacklog(cmd *cobra.Command, app *App) error {
	items, err := app.Backlog.List(context.Background())
	if err != nil {
		return err
	}
	out(cmd, formatter.FormatBacklog(items))
	return nil
}

func newBacklogAddCmd(app *App) *cobra.Command {
	var category, notes string

	cmd := &cobra.Command{
		Use:   "add TITLE...",
		Short: "Add a backlog item directly, bypassing the inbox",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			impact, err := optionalInt(cmd.Flags(), "impact")
			if err != nil {
				return err
			}
			effort, err := optionalInt(cmd.Flags(), "effort")
			if err != nil {
				return err
			}

			item, err := app.Backlog.Add(context.Background(), questapp.AddBacklogRequest{
				Title:     strings.Join(args, " "),
				Category:  category,
				Impact:    impact,
				EffortMin: effort,
				Notes:     notes,
			})
			if err != nil {
				return err
			}
			out(cmd, formatter.FormatBacklogItem("+ backlog", item))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "build, ship or reach (classified from the title when omitted)")
	cmd.Flags().IntP("impact", "i", 3, "Impact 1-5")
	cmd.Flags().IntP("effort", "e", 30, "Estimated effort in minutes")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

func newBacklogRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a backlog item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Backlog.Remove(context.Background(), args[0]); err != nil {
				return err
			}
			out(cmd, fmt.Sprintf("%s %s\n", formatter.StyleRed.Render("- backlog"), strings.ToUpper(args[0])))
			return nil
		},
	}
}
