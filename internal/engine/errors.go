package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/questgame/internal/domain"
)

var (
	// ErrNoActiveQuest is returned when completing or editing a quest while
	// none is active.
	ErrNoActiveQuest = errors.New("no active quest")

	// ErrQuestActive is returned when planning while a quest is still active.
	ErrQuestActive = errors.New("a quest is already active")

	// ErrEmptyBacklog is returned when planning with nothing in the backlog.
	ErrEmptyBacklog = errors.New("backlog is empty")

	// ErrNoNewCommits is returned by sync when there is nothing to reward.
	ErrNoNewCommits = errors.New("no new commits")

	// ErrSyncDisabled is returned by sync when git rewards are turned off.
	ErrSyncDisabled = errors.New("git sync is disabled")

	// ErrInvalidEventType is returned for event types outside the fixed set.
	ErrInvalidEventType = errors.New("invalid event type")

	// ErrInvalidStep is returned for a step index outside the quest checklist.
	ErrInvalidStep = errors.New("invalid step")
)

// IsNoOp reports whether err is a precondition outcome caused by normal
// timing (nothing active, already active, nothing to pick, nothing new)
// rather than a failure.
func IsNoOp(err error) bool {
	return errors.Is(err, ErrNoActiveQuest) ||
		errors.Is(err, ErrQuestActive) ||
		errors.Is(err, ErrEmptyBacklog) ||
		errors.Is(err, ErrNoNewCommits) ||
		errors.Is(err, ErrSyncDisabled)
}

func invalidEventError(eventType string) error {
	return fmt.Errorf("%w %q (allowed: %s)", ErrInvalidEventType, eventType,
		strings.Join(domain.ValidEventTypes(), ", "))
}
