package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/questgame/internal/domain"
)

var testBacklogCounter atomic.Int64

// FixedNow is the reference instant used by tests that pin the clock.
var FixedNow = time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)

// Clock returns a func() time.Time that always reports t.
func Clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Backlog item options
type BacklogOption func(*domain.BacklogItem)

func WithImpact(i int) BacklogOption {
	return func(b *domain.BacklogItem) {
		b.Impact = i
	}
}

func WithEffort(m int) BacklogOption {
	return func(b *domain.BacklogItem) {
		b.EffortMin = m
	}
}

func WithBacklogID(id string) BacklogOption {
	return func(b *domain.BacklogItem) {
		b.ID = id
	}
}

func WithNotes(n string) BacklogOption {
	return func(b *domain.BacklogItem) {
		b.Notes = n
	}
}

func NewTestBacklogItem(title string, category domain.Category, opts ...BacklogOption) *domain.BacklogItem {
	n := testBacklogCounter.Add(1)
	b := domain.NewBacklogItem(fmt.Sprintf("B-T%03d", n), title, category, FixedNow)
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Quest options
type QuestOption func(*domain.Quest)

func WithSteps(texts ...string) QuestOption {
	return func(q *domain.Quest) {
		q.Steps = q.Steps[:0]
		for _, s := range texts {
			q.Steps = append(q.Steps, domain.Step{Text: s})
		}
	}
}

func WithCreatedAt(t time.Time) QuestOption {
	return func(q *domain.Quest) {
		q.CreatedAt = t
	}
}

func WithQuestImpact(i int) QuestOption {
	return func(q *domain.Quest) {
		q.Impact = i
	}
}

func NewTestQuest(id, title string, category domain.Category, opts ...QuestOption) *domain.Quest {
	q := &domain.Quest{
		ID:        id,
		Title:     title,
		Category:  category,
		Impact:    domain.DefaultImpact,
		EffortMin: domain.DefaultEffortMin,
		Steps:     []domain.Step{{Text: "first"}, {Text: "second"}, {Text: "third"}},
		Source:    domain.QuestSourceBacklog,
		CreatedAt: FixedNow,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}
