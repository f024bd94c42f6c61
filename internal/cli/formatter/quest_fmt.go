package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/questgame/internal/app"
	"github.com/alexanderramin/questgame/internal/domain"
	"github.com/alexanderramin/questgame/internal/engine"
)

// FormatQuest renders the active quest with its numbered checklist.
func FormatQuest(q *domain.Quest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", CategoryBadge(q.Category), Bold(q.Title))
	fmt.Fprintf(&b, "%s  impact %s  effort %s\n\n",
		Dim(q.ID), Stars(q.Impact), FormatMinutes(q.EffortMin))
	b.WriteString(FormatSteps(q.Steps))
	fmt.Fprintf(&b, "\n%s", Dim(fmt.Sprintf("%d/%d steps done", q.DoneCount(), len(q.Steps))))
	return RenderBox("Today's quest", b.String()) + "\n"
}

// FormatSteps renders "[x] 1. text" lines.
func FormatSteps(steps []domain.Step) string {
	var b strings.Builder
	for i, s := range steps {
		box := StyleDim.Render("[ ]")
		text := StyleFg.Render(s.Text)
		if s.Done {
			box = StyleGreen.Render("[x]")
			text = StyleDim.Render(s.Text)
		}
		fmt.Fprintf(&b, "%s %d. %s\n", box, i+1, text)
	}
	return b.String()
}

func FormatPlan(res *app.PlanResult) string {
	var b strings.Builder
	if res.Requeued != nil {
		fmt.Fprintf(&b, "%s %s %s\n", StyleYellow.Render("↺"),
			Dim("returned to backlog as "+res.Requeued.ID+":"), res.Requeued.Title)
	}
	if sel := res.Selection; sel != nil {
		if sel.GoldenRule {
			b.WriteString(StyleYellow.Render("golden rule: three builds in a row, picking ship or reach work") + "\n")
		}
		if sel.EffortFallback {
			b.WriteString(Dim("nothing fits the effort cap, considered the whole backlog") + "\n")
		}
	}
	q := res.Quest
	b.WriteString(FormatQuest(&q))
	return b.String()
}

func FormatCompletion(res *app.CompleteResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", StyleGreen.Render("✔ Completed"), Bold(res.Quest.Title), Dim(res.Quest.ID))
	b.WriteString(FormatOutcome(res.Outcome))
	return b.String()
}

func FormatEvent(eventType string, o *engine.Outcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", StyleGreen.Render("✔ Event"), Bold(eventType), Dim(o.Ref))
	b.WriteString(FormatOutcome(o))
	return b.String()
}

// FormatOutcome renders experience, level, streak, loot and mastery changes.
func FormatOutcome(o *engine.Outcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s  %s\n", StyleYellow.Render(fmt.Sprintf("+%d XP", o.XPGained)),
		Dim(fmt.Sprintf("streak %d", o.Player.Streak)))
	if o.LeveledUp() {
		fmt.Fprintf(&b, "  %s\n", StyleHeader.Render(fmt.Sprintf("LEVEL UP! %d → %d", o.LevelBefore, o.LevelAfter)))
	}
	if len(o.Loot) > 0 {
		b.WriteString("  loot: " + formatLoot(o.Loot) + "\n")
	}
	m := o.Mastery
	if m.Category != "" {
		if m.LeveledUp {
			fmt.Fprintf(&b, "  %s mastery %s\n", CategoryStyle(m.Category).Render(string(m.Category)),
				StyleHeader.Render(fmt.Sprintf("level %d!", m.After.Level)))
		} else {
			fmt.Fprintf(&b, "  %s mastery %s\n", CategoryStyle(m.Category).Render(string(m.Category)),
				Dim(fmt.Sprintf("level %d, %d/%d", m.After.Level, m.After.Progress, m.After.Needed())))
		}
	}
	return b.String()
}

func FormatSync(o *engine.SyncOutcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d commit(s) up to %s\n", StyleGreen.Render("✔ Synced"), o.Commits, Dim(ShortHash(o.NewestHash)))
	fmt.Fprintf(&b, "  %s\n", StyleYellow.Render(fmt.Sprintf("+%d XP", o.XPGained)))
	if o.TagRewarded {
		b.WriteString("  " + StylePurple.Render("release tag at HEAD") + "\n")
	}
	if o.LevelAfter > o.LevelBefore {
		fmt.Fprintf(&b, "  %s\n", StyleHeader.Render(fmt.Sprintf("LEVEL UP! %d → %d", o.LevelBefore, o.LevelAfter)))
	}
	if len(o.Loot) > 0 {
		b.WriteString("  loot: " + formatLoot(o.Loot) + "\n")
	}
	return b.String()
}

// formatLoot collapses repeated tokens into "3× build_shard".
func formatLoot(tokens []string) string {
	var order []string
	counts := make(map[string]int)
	for _, t := range tokens {
		if counts[t] == 0 {
			order = append(order, t)
		}
		counts[t]++
	}
	parts := make([]string, 0, len(order))
	for _, t := range order {
		if counts[t] > 1 {
			parts = append(parts, fmt.Sprintf("%d× %s", counts[t], LootToken(t)))
		} else {
			parts = append(parts, LootToken(t))
		}
	}
	return strings.Join(parts, ", ")
}
