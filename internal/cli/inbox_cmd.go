package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/questgame/internal/cli/formatter"
)

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add [TEXT...]",
		Short: "Capture an idea in the inbox (reads lines from stdin when piped)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if len(args) > 0 {
				e, err := app.Inbox.Add(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				out(cmd, fmt.Sprintf("%s %s\n", formatter.StyleGreen.Render("+ inbox"), e.Text))
				return nil
			}
			if app.interactive() {
				return fmt.Errorf("nothing to add: pass the idea as arguments or pipe lines on stdin")
			}

			added := 0
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if _, err := app.Inbox.Add(ctx, line); err != nil {
					return err
				}
				added++
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			out(cmd, formatter.Dim(fmt.Sprintf("%d idea(s) added to the inbox", added))+"\n")
			return nil
		},
	}
}

func newInboxCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inbox",
		Short: "List untriaged ideas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Inbox.List(context.Background())
			if err != nil {
				return err
			}
			out(cmd, formatter.FormatInbox(entries, app.now()))
			return nil
		},
	}
}

func newTriageCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "triage",
		Short: "Classify inbox ideas into backlog items and clear the inbox",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.Triage.Triage(context.Background())
			if err != nil {
				return err
			}
			out(cmd, formatter.FormatTriage(items))
			return nil
		},
	}
}
