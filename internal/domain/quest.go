package domain

import (
	"fmt"
	"time"
)

// QuestSourceBacklog marks quests selected from the backlog.
const QuestSourceBacklog = "backlog"

// RequeuedNote is attached to backlog items returned from an expired quest.
const RequeuedNote = "returned from a previous day"

// Step is one checklist entry of a quest.
type Step struct {
	Text string
	Done bool
}

// Quest is the single active daily task.
type Quest struct {
	ID        string
	Title     string
	Category  Category
	Impact    int
	EffortMin int
	Steps     []Step
	Source    string
	BacklogID string
	CreatedAt time.Time
}

// QuestID formats the day-scoped quest identifier.
func QuestID(day string, seq int) string {
	return fmt.Sprintf("Q-%s-%03d", day, seq)
}

// ToggleStep flips the done flag of the step at index i.
func (q *Quest) ToggleStep(i int) error {
	if i < 0 || i >= len(q.Steps) {
		return fmt.Errorf("step %d out of range (quest has %d steps)", i+1, len(q.Steps))
	}
	q.Steps[i].Done = !q.Steps[i].Done
	return nil
}

// DoneCount returns how many steps are checked.
func (q *Quest) DoneCount() int {
	n := 0
	for _, s := range q.Steps {
		if s.Done {
			n++
		}
	}
	return n
}

// MarkAllDone checks every step.
func (q *Quest) MarkAllDone() {
	for i := range q.Steps {
		q.Steps[i].Done = true
	}
}

// CreatedBefore reports whether the quest was created on a calendar day
// earlier than now's.
func (q *Quest) CreatedBefore(now time.Time) bool {
	return DateKey(q.CreatedAt.In(now.Location())) < DateKey(now)
}

// ToBacklogItem returns the quest as a backlog item, keeping its original
// backlog id when it has one.
func (q *Quest) ToBacklogItem(fallbackID string) *BacklogItem {
	return &BacklogItem{
		ID:        CoalesceStr(q.BacklogID, fallbackID),
		Title:     q.Title,
		Category:  q.Category,
		Impact:    q.Impact,
		EffortMin: q.EffortMin,
		Notes:     RequeuedNote,
		CreatedAt: q.CreatedAt,
	}
}
