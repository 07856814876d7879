package storage

import (
	"time"

	"github.com/guttosm/b3ofer/internal/domain/models"
)

// nopRunsRepository is used when the run log is disabled: nothing is ever
// recorded, so every day looks unprocessed.
type nopRunsRepository struct{}

// NewNopRunsRepository returns a RunsRepository that stores nothing.
func NewNopRunsRepository() RunsRepository {
	return nopRunsRepository{}
}

func (nopRunsRepository) HasRun(string, time.Time) (bool, error)             { return false, nil }
func (nopRunsRepository) RecordRun(models.FilterRun) error                   { return nil }
func (nopRunsRepository) ListRuns([]string, int) ([]models.FilterRun, error) { return nil, nil }
func (nopRunsRepository) DeleteRun(string, time.Time) error                  { return nil }
func (nopRunsRepository) Ping() error                                        { return nil }
