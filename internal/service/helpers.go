package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/questgame/internal/domain"
)

func newActivity(kind domain.ActivityKind, at time.Time) *domain.ActivityEntry {
	return &domain.ActivityEntry{
		ID:   uuid.New().String(),
		At:   at,
		Kind: kind,
	}
}
