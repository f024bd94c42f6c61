package contract

import (
	"time"

	"github.com/alexanderramin/questgame/internal/domain"
)

type StepView struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

type QuestView struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Category      string     `json:"category"`
	Impact        int        `json:"impact"`
	EffortMinutes int        `json:"effort_minutes"`
	Steps         []StepView `json:"steps"`
	DoneCount     int        `json:"done_count"`
	CreatedAt     string     `json:"created_at"`
}

// TodayView is the /api/today payload: {"active": false} when no quest is set.
type TodayView struct {
	Active bool       `json:"active"`
	Quest  *QuestView `json:"quest,omitempty"`
}

type BacklogItemView struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Category      string `json:"category"`
	Impact        int    `json:"impact"`
	EffortMinutes int    `json:"effort_minutes"`
	Notes         string `json:"notes,omitempty"`
	CreatedAt     string `json:"created_at"`
}

type InboxEntryView struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

type ActivityView struct {
	ID       string   `json:"id"`
	At       string   `json:"at"`
	Kind     string   `json:"kind"`
	Ref      string   `json:"ref,omitempty"`
	Category string   `json:"category,omitempty"`
	XP       int      `json:"xp"`
	Loot     []string `json:"loot"`
	Commits  int      `json:"commits,omitempty"`
	Note     string   `json:"note,omitempty"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// NewQuestView returns nil for a nil quest.
func NewQuestView(q *domain.Quest) *QuestView {
	if q == nil {
		return nil
	}
	v := &QuestView{
		ID:            q.ID,
		Title:         q.Title,
		Category:      string(q.Category),
		Impact:        q.Impact,
		EffortMinutes: q.EffortMin,
		Steps:         make([]StepView, 0, len(q.Steps)),
		DoneCount:     q.DoneCount(),
		CreatedAt:     formatTime(q.CreatedAt),
	}
	for _, s := range q.Steps {
		v.Steps = append(v.Steps, StepView{Text: s.Text, Done: s.Done})
	}
	return v
}

func NewTodayView(q *domain.Quest) TodayView {
	return TodayView{Active: q != nil, Quest: NewQuestView(q)}
}

func NewBacklogView(items []domain.BacklogItem) []BacklogItemView {
	out := make([]BacklogItemView, 0, len(items))
	for _, item := range items {
		out = append(out, BacklogItemView{
			ID:            item.ID,
			Title:         item.Title,
			Category:      string(item.Category),
			Impact:        item.Impact,
			EffortMinutes: item.EffortMin,
			Notes:         item.Notes,
			CreatedAt:     formatTime(item.CreatedAt),
		})
	}
	return out
}

func NewInboxView(entries []domain.InboxEntry) []InboxEntryView {
	out := make([]InboxEntryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, InboxEntryView{ID: e.ID, Text: e.Text, CreatedAt: formatTime(e.CreatedAt)})
	}
	return out
}

func NewActivityView(entries []domain.ActivityEntry) []ActivityView {
	out := make([]ActivityView, 0, len(entries))
	for _, e := range entries {
		out = append(out, ActivityView{
			ID:       e.ID,
			At:       formatTime(e.At),
			Kind:     string(e.Kind),
			Ref:      e.Ref,
			Category: string(e.Category),
			XP:       e.XP,
			Loot:     nonNil(e.Loot),
			Commits:  e.Commits,
			Note:     e.Note,
		})
	}
	return out
}
