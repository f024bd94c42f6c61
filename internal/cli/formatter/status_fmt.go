package formatter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/alexanderramin/questgame/internal/app"
	"github.com/alexanderramin/questgame/internal/domain"
)

const barWidth = 20

// FormatStatus renders the player card, mastery bars, inventory and the
// active quest.
func FormatStatus(s *app.Snapshot) string {
	var b strings.Builder

	var card strings.Builder
	fmt.Fprintf(&card, "%s  level %s\n", Bold(s.Player.Name), StyleHeader.Render(strconv.Itoa(s.Level)))
	fmt.Fprintf(&card, "xp     %s  %s\n", RenderBar(s.XPIntoLevel, s.XPForNext, barWidth),
		Dim(humanize.Comma(int64(s.Player.Experience))+" total"))
	streak := fmt.Sprintf("%d day(s)", s.Player.Streak)
	if s.Player.LastCompletionDate != nil {
		streak += Dim("  last " + domain.DateKey(*s.Player.LastCompletionDate))
	}
	fmt.Fprintf(&card, "streak %s\n", streak)
	fmt.Fprintf(&card, "done   %d quest(s)", s.TotalDone)
	b.WriteString(RenderBox("Player", card.String()) + "\n\n")

	b.WriteString(Header("Mastery") + "\n")
	for _, m := range s.Mastery {
		fmt.Fprintf(&b, "%s  lv %d  %s\n",
			CategoryStyle(m.Category).Render(fmt.Sprintf("%-5s", m.Category)), m.Level,
			RenderBar(m.Progress, m.Needed, barWidth/2))
	}

	if len(s.RecentCategories) > 0 {
		parts := make([]string, len(s.RecentCategories))
		for i, c := range s.RecentCategories {
			parts[i] = CategoryStyle(c).Render(string(c))
		}
		fmt.Fprintf(&b, "\n%s %s\n", Dim("recent:"), strings.Join(parts, " "))
	}
	if s.GoldenRuleWarning {
		b.WriteString(StyleYellow.Render("golden rule: the next plan will pick ship or reach work") + "\n")
	}

	b.WriteString("\n" + Header("Inventory") + "\n")
	if len(s.InventoryCounts) == 0 {
		b.WriteString(Dim("empty") + "\n")
	} else {
		tokens := make([]string, 0, len(s.InventoryCounts))
		for t := range s.InventoryCounts {
			tokens = append(tokens, t)
		}
		sort.Strings(tokens)
		for _, t := range tokens {
			fmt.Fprintf(&b, "%3d  %s\n", s.InventoryCounts[t], LootToken(t))
		}
	}
	if len(s.RecentLoot) > 0 {
		parts := make([]string, len(s.RecentLoot))
		for i, t := range s.RecentLoot {
			parts[i] = LootToken(t)
		}
		fmt.Fprintf(&b, "%s %s\n", Dim("latest:"), strings.Join(parts, ", "))
	}

	b.WriteString("\n")
	if s.ActiveQuest != nil {
		b.WriteString(FormatQuest(s.ActiveQuest))
	} else {
		b.WriteString(Hint("no active quest, run `quest plan`"))
	}
	fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("backlog %d · inbox %d", s.BacklogSize, s.InboxSize)))
	return b.String()
}

// FormatLevelTable lists the first n level thresholds with the total
// experience needed to reach each next level.
func FormatLevelTable(n int) string {
	rows := make([][]string, 0, n)
	total := 0
	for i, t := range domain.LevelThresholds(n) {
		total += t
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			humanize.Comma(int64(t)),
			humanize.Comma(int64(total)),
		})
	}
	return RenderTable([]Column{
		{Header: "LEVEL", Right: true},
		{Header: "XP TO CLEAR", Right: true},
		{Header: "TOTAL XP", Right: true},
	}, rows)
}
