package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	questapp "github.com/alexanderramin/questgame/internal/app"
	"github.com/alexanderramin/questgame/internal/cli/formatter"
)

func newPlanCmd(app *App) *cobra.Command {
	var requeue bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Pick today's quest from the backlog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Quests.Plan(context.Background(), questapp.PlanRequest{RequeueStale: requeue})
			if err != nil {
				return hintNoOp(cmd, err)
			}
			out(cmd, formatter.FormatPlan(res))
			return nil
		},
	}

	cmd.Flags().BoolVar(&requeue, "requeue-stale", false, "Return a quest left over from an earlier day to the backlog first")
	return cmd
}

func newStepsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "steps [N]",
		Short: "Show the checklist, or toggle step N",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if len(args) == 1 {
				n, err := positiveArg("step", args[0])
				if err != nil {
					return err
				}
				q, err := app.Quests.ToggleStep(ctx, n-1)
				if err != nil {
					return hintNoOp(cmd, err)
				}
				out(cmd, formatter.FormatQuest(q))
				return nil
			}

			q, err := app.Quests.Active(ctx)
			if err != nil {
				return hintNoOp(cmd, err)
			}
			if app.interactive() && len(q.Steps) > 0 {
				done, err := runStepsForm(q)
				if errors.Is(err, errFormAborted) {
					return nil
				}
				if err != nil {
					return err
				}
				if q, err = app.Quests.SetSteps(ctx, done); err != nil {
					return hintNoOp(cmd, err)
				}
			}
			out(cmd, formatter.FormatQuest(q))
			return nil
		},
	}
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done",
		Short: "Complete the active quest and collect rewards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Quests.Complete(context.Background())
			if err != nil {
				return hintNoOp(cmd, err)
			}
			out(cmd, formatter.FormatCompletion(res))
			return nil
		},
	}
}
