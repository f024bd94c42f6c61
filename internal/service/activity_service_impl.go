package service

import (
	"context"

	"github.com/alexanderramin/questgame/internal/app"
	"github.com/alexanderramin/questgame/internal/domain"
	"github.com/alexanderramin/questgame/internal/repository"
)

// DefaultActivityLimit is used when a caller asks for a non-positive limit.
const DefaultActivityLimit = 10

type activityService struct {
	activity repository.ActivityRepo
}

func NewActivityService(activity repository.ActivityRepo) app.ActivityUseCase {
	return &activityService{activity: activity}
}

func (s *activityService) Recent(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	return s.activity.ListRecent(ctx, limit)
}
