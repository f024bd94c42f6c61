package domain

import (
	"strings"
	"time"
)

// InboxEntry is a raw idea captured before triage.
type InboxEntry struct {
	ID        int64
	Text      string
	CreatedAt time.Time
}

// CleanInboxLine strips list markers and a leading "[timestamp]" prefix from
// a captured inbox line.
func CleanInboxLine(line string) string {
	text := strings.TrimSpace(line)
	text = strings.TrimSpace(strings.TrimPrefix(text, "-"))
	if strings.HasPrefix(text, "[") {
		if end := strings.Index(text, "]"); end >= 0 {
			text = strings.TrimSpace(text[end+1:])
		}
	}
	return text
}

// ActivityEntry is one line of the append-only activity log.
type ActivityEntry struct {
	ID       string
	At       time.Time
	Kind     ActivityKind
	Ref      string // quest id, event type or newest commit hash
	Category Category
	XP       int
	Loot     []string
	Commits  int
	Note     string
}
