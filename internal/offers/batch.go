package offers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/b3ofer/internal/domain/models"
	"github.com/guttosm/b3ofer/internal/logger"
	"github.com/guttosm/b3ofer/internal/storage"
)

const maxBatchDays = 30

// BatchOptions selects which daily files ProcessDirectory handles.
type BatchOptions struct {
	InputDir  string
	OutputDir string    // outputs go to OutputDir/<SIDE>/
	Reference time.Time // last session date considered
	Days      int       // number of trading days ending at Reference (1..30)
	Parallel  int       // 0 = min(NumCPU, files)
	Force     bool      // reprocess days that already have a recorded run
}

// now is swapped in tests.
var now = time.Now

// ProcessDirectory runs the pipeline over the last Days trading days of
// OFER_<SIDE>_<YYYYMMDD>.txt files in InputDir.
//
// Parameters:
//   - ctx (context.Context): cancels every pending file when done.
//   - p (*Pipeline): the pipeline; its side selects which files are read.
//   - opts (BatchOptions): directories, reference date, day count (clamped to
//     1..30), parallelism and the force flag.
//   - repo (storage.RunsRepository): run log used to skip and record days.
//
// Behavior:
//   - All expected files must exist; otherwise every missing name is reported
//     and nothing is processed.
//   - Files are processed concurrently; each file is a single pass. The first
//     error cancels the remaining files and is returned.
//   - A day with a recorded run is skipped unless Force is set.
//   - Each successful file is recorded in repo.
//   - Outputs go to OutputDir/<SIDE>/OFER_<SIDE>_<YYYYMMDD>.<ext>, dated like
//     their input.
//
// Returns:
//   - error: the missing-file list, or the first failure, wrapped with the
//     file name.
func ProcessDirectory(ctx context.Context, p *Pipeline, opts BatchOptions, repo storage.RunsRepository) error {
	days := opts.Days
	if days < 1 {
		days = 1
	}
	if days > maxBatchDays {
		days = maxBatchDays
	}
	ref := opts.Reference
	if ref.IsZero() {
		ref = now()
	}
	dates := LastNBusinessDays(days, ref)

	side := p.Side()
	var files, missing []string
	for _, d := range dates {
		name := FileName(side, d, inputExt)
		full := filepath.Join(opts.InputDir, name)
		files = append(files, full)

		if _, err := os.Stat(full); err != nil {
			if os.IsNotExist(err) {
				missing = append(missing, name)
			} else {
				return fmt.Errorf("stat failed for %s: %w", full, err)
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required files: %s", strings.Join(missing, ", "))
	}

	maxParallel := opts.Parallel
	if maxParallel <= 0 {
		maxParallel = runtime.NumCPU()
	}
	if maxParallel > len(files) {
		maxParallel = len(files)
	}

	logger.L().Info().
		Str("side", string(side)).
		Str("dir", opts.InputDir).
		Int("files", len(files)).
		Int("max_parallel", maxParallel).
		Msg("batch start")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	for i, file := range files {
		idx := i
		f := file
		day := dates[i]

		g.Go(func() error {
			return processOne(gctx, p, repo, f, day, opts, idx, len(files))
		})
	}

	return g.Wait()
}

func processOne(ctx context.Context, p *Pipeline, repo storage.RunsRepository, file string, day time.Time, opts BatchOptions, idx, total int) error {
	side := p.Side()
	base := filepath.Base(file)
	lg := logger.With("side", string(side), "file", base)
	sessionDate := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	exists, err := repo.HasRun(string(side), sessionDate)
	if err != nil {
		lg.Error().Err(err).Msg("check run log failed")
		return fmt.Errorf("file %s: check run log: %w", file, err)
	}
	if exists && !opts.Force {
		lg.Info().Int("idx", idx+1).Int("total", total).Bool("skipped", true).Msg("already processed")
		return nil
	}

	output := filepath.Join(opts.OutputDir, string(side), FileName(side, day, p.Format().Ext()))

	started := now()
	res, err := p.Run(ctx, file, output)
	if err != nil {
		lg.Error().Err(err).Dur("elapsed", time.Since(started)).Msg("file failed")
		return fmt.Errorf("file %s: %w", file, err)
	}

	run := newRun(side, sessionDate, file, output, res, started)
	if err := repo.RecordRun(run); err != nil {
		lg.Error().Err(err).Msg("record run failed")
		return fmt.Errorf("file %s: record run: %w", file, err)
	}

	lg.Info().
		Int("idx", idx+1).
		Int("total", total).
		Str("run_id", run.ID).
		Int("rows_written", res.RowsWritten).
		Bool("force", opts.Force).
		Msg("file done")
	return nil
}

// ProcessFile runs the pipeline over a single file. When the input name
// follows OFER_<SIDE>_<YYYYMMDD> and matches the pipeline side, the run is
// recorded in repo; other names are processed without a run-log entry.
func ProcessFile(ctx context.Context, p *Pipeline, input, output string, repo storage.RunsRepository) (Result, error) {
	started := now()
	res, err := p.Run(ctx, input, output)
	if err != nil {
		return Result{}, err
	}

	side, day, perr := ParseFileName(input)
	if perr != nil || side != p.Side() {
		logger.L().Debug().Str("file", filepath.Base(input)).Msg("no session date in file name, run not recorded")
		return res, nil
	}
	if err := repo.RecordRun(newRun(side, day, input, output, res, started)); err != nil {
		return res, fmt.Errorf("record run: %w", err)
	}
	return res, nil
}

func newRun(side Side, day time.Time, input, output string, res Result, started time.Time) models.FilterRun {
	return models.FilterRun{
		ID:          uuid.NewString(),
		Side:        string(side),
		SessionDate: time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
		InputFile:   input,
		OutputFile:  output,
		RowsRead:    res.RowsRead,
		RowsWritten: res.RowsWritten,
		StartedAt:   started,
		FinishedAt:  now(),
	}
}
