package dto

import (
	"time"

	"github.com/guttosm/b3ofer/internal/domain/models"
)

// RunResponse is one processed offer file as exposed by GET /api/v1/runs.
type RunResponse struct {
	ID          string    `json:"id" example:"7b7f3b4e-1d7e-4bb0-9d55-8f4a1b1f0c11"`
	Side        string    `json:"side" example:"CPA"`
	SessionDate string    `json:"session_date" example:"2018-11-16"`
	InputFile   string    `json:"input_file" example:"data/input/OFER_CPA_20181116.txt"`
	OutputFile  string    `json:"output_file" example:"data/output/CPA/OFER_CPA_20181116.csv"`
	RowsRead    int       `json:"rows_read" example:"1843320"`
	RowsWritten int       `json:"rows_written" example:"201554"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

// RunsResponse is the body of GET /api/v1/runs.
type RunsResponse struct {
	Count int           `json:"count" example:"1"`
	Runs  []RunResponse `json:"runs"`
}

// NewRunsResponse converts domain runs into the API shape. The result always
// carries a non-nil Runs slice so it serializes as [].
func NewRunsResponse(runs []models.FilterRun) RunsResponse {
	out := RunsResponse{Count: len(runs), Runs: make([]RunResponse, 0, len(runs))}
	for _, r := range runs {
		out.Runs = append(out.Runs, RunResponse{
			ID:          r.ID,
			Side:        r.Side,
			SessionDate: r.SessionDate.Format("2006-01-02"),
			InputFile:   r.InputFile,
			OutputFile:  r.OutputFile,
			RowsRead:    r.RowsRead,
			RowsWritten: r.RowsWritten,
			StartedAt:   r.StartedAt,
			FinishedAt:  r.FinishedAt,
		})
	}
	return out
}
