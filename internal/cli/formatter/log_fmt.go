package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/questgame/internal/domain"
)

func kindStyle(k domain.ActivityKind) string {
	label := fmt.Sprintf("%-7s", k)
	switch k {
	case domain.ActivityDone:
		return StyleGreen.Render(label)
	case domain.ActivityEvent:
		return StylePurple.Render(label)
	case domain.ActivitySync:
		return StyleBlue.Render(label)
	case domain.ActivityExpired:
		return StyleYellow.Render(label)
	default:
		return StyleDim.Render(label)
	}
}

// FormatActivity renders log entries newest first with relative times.
func FormatActivity(entries []domain.ActivityEntry, now time.Time) string {
	if len(entries) == 0 {
		return Hint("no activity yet")
	}
	var b strings.Builder
	for _, e := range entries {
		ref := e.Ref
		if e.Kind == domain.ActivitySync {
			ref = fmt.Sprintf("%d commit(s) → %s", e.Commits, ShortHash(e.Ref))
		}
		line := fmt.Sprintf("%s %s", kindStyle(e.Kind), ref)
		if e.Category != "" {
			line += " " + CategoryBadge(e.Category)
		}
		if e.XP > 0 {
			line += " " + StyleYellow.Render(fmt.Sprintf("+%d XP", e.XP))
		}
		if e.Note != "" {
			line += " " + Dim(e.Note)
		}
		fmt.Fprintf(&b, "%s  %s\n", line, Dim(RelativeTime(e.At, now)))
	}
	return b.String()
}
