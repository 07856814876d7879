package service

import (
	"context"

	"github.com/guttosm/b3ofer/internal/domain/models"
	"github.com/guttosm/b3ofer/internal/storage"
)

// RunsService exposes the run log to the HTTP layer.
type RunsService interface {
	ListRuns(ctx context.Context, sides []string, limit int) ([]models.FilterRun, error)
}

type runsService struct {
	repo storage.RunsRepository
}

func NewRunsService(repo storage.RunsRepository) RunsService {
	return &runsService{repo: repo}
}

func (s *runsService) ListRuns(ctx context.Context, sides []string, limit int) ([]models.FilterRun, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.repo.ListRuns(sides, limit)
}
