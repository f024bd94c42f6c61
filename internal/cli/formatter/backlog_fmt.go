package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/questgame/internal/domain"
)

func FormatBacklog(items []domain.BacklogItem) string {
	if len(items) == 0 {
		return Hint("backlog is empty, add ideas with `quest add` and run `quest triage`")
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		title := item.Title
		if item.Notes != "" {
			title += " " + Dim("("+item.Notes+")")
		}
		rows = append(rows, []string{
			Dim(item.ID),
			CategoryBadge(item.Category),
			Stars(item.Impact),
			FormatMinutes(item.EffortMin),
			title,
		})
	}
	return RenderTable([]Column{
		{Header: "ID"},
		{Header: "CAT"},
		{Header: "IMPACT"},
		{Header: "EFFORT", Right: true},
		{Header: "TITLE"},
	}, rows)
}

func FormatBacklogItem(verb string, item *domain.BacklogItem) string {
	return fmt.Sprintf("%s %s %s %s\n", StyleGreen.Render(verb), Dim(item.ID), CategoryBadge(item.Category), item.Title)
}

func FormatInbox(entries []domain.InboxEntry, now time.Time) string {
	if len(entries) == 0 {
		return Hint("inbox is empty")
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s %s  %s\n", Dim(strconv.FormatInt(e.ID, 10)+"."), e.Text, Dim(RelativeTime(e.CreatedAt, now)))
	}
	return b.String()
}

func FormatTriage(items []domain.BacklogItem) string {
	if len(items) == 0 {
		return Hint("inbox is empty, nothing to triage")
	}
	var b strings.Builder
	for i := range items {
		b.WriteString(FormatBacklogItem("+", &items[i]))
	}
	fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("%d idea(s) moved to the backlog", len(items))))
	return b.String()
}
