package models

import "time"

// FilterRun records one processed offer file.
//
// A run is identified by its side and session date; recording a second run
// for the same pair replaces the first.
type FilterRun struct {
	ID          string
	Side        string // CPA or VDA
	SessionDate time.Time
	InputFile   string
	OutputFile  string
	RowsRead    int
	RowsWritten int
	StartedAt   time.Time
	FinishedAt  time.Time
}
