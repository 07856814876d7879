package offers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/guttosm/b3ofer/internal/domain/models"
	"github.com/guttosm/b3ofer/internal/storage"
)

// fakeRuns is an in-memory RunsRepository safe for the batch goroutines.
type fakeRuns struct {
	mu        sync.Mutex
	has       map[string]bool
	recorded  []models.FilterRun
	hasErr    error
	recordErr error
}

func runKey(side string, d time.Time) string { return side + d.Format("20060102") }

func (f *fakeRuns) HasRun(side string, d time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hasErr != nil {
		return false, f.hasErr
	}
	return f.has[runKey(side, d)], nil
}

func (f *fakeRuns) RecordRun(run models.FilterRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recordErr != nil {
		return f.recordErr
	}
	f.recorded = append(f.recorded, run)
	return nil
}

func (f *fakeRuns) ListRuns([]string, int) ([]models.FilterRun, error) { return nil, nil }
func (f *fakeRuns) DeleteRun(string, time.Time) error                  { return nil }
func (f *fakeRuns) Ping() error                                        { return nil }

var _ storage.RunsRepository = (*fakeRuns)(nil)

// batchDays are the three trading days ending 2018-11-16 (15th is a holiday).
var batchDays = []time.Time{date(2018, 11, 16), date(2018, 11, 14), date(2018, 11, 13)}

func setupBatch(t *testing.T, side Side) (in, out string, p *Pipeline) {
	t.Helper()
	in = t.TempDir()
	out = t.TempDir()
	for _, d := range batchDays {
		writeFile(t, in, FileName(side, d, ".txt"), sampleFile())
	}
	p, err := NewPipeline(testOptions(side))
	if err != nil {
		t.Fatal(err)
	}
	return in, out, p
}

func TestProcessDirectory_AllFiles(t *testing.T) {
	in, out, p := setupBatch(t, SideBuy)
	repo := &fakeRuns{}

	err := ProcessDirectory(context.Background(), p, BatchOptions{
		InputDir: in, OutputDir: out, Reference: date(2018, 11, 16), Days: 3, Parallel: 2,
	}, repo)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	for _, d := range batchDays {
		name := filepath.Join(out, "CPA", FileName(SideBuy, d, ".csv"))
		if _, err := os.Stat(name); err != nil {
			t.Fatalf("missing output %s: %v", name, err)
		}
	}
	if len(repo.recorded) != 3 {
		t.Fatalf("recorded %d runs, want 3", len(repo.recorded))
	}
	for _, r := range repo.recorded {
		if r.Side != "CPA" || r.RowsRead != 3 || r.RowsWritten != 2 || r.ID == "" {
			t.Fatalf("unexpected run %+v", r)
		}
		if r.SessionDate.Location() != time.UTC {
			t.Fatal("session date must be UTC")
		}
		if !strings.HasSuffix(r.OutputFile, FileName(SideBuy, r.SessionDate, ".csv")) {
			t.Fatalf("output %s does not carry the input date %s", r.OutputFile, r.SessionDate)
		}
	}
}

func TestProcessDirectory_SkipAndForce(t *testing.T) {
	in, out, p := setupBatch(t, SideSell)
	repo := &fakeRuns{has: map[string]bool{runKey("VDA", date(2018, 11, 14)): true}}
	opts := BatchOptions{InputDir: in, OutputDir: out, Reference: date(2018, 11, 16), Days: 3}

	if err := ProcessDirectory(context.Background(), p, opts, repo); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(repo.recorded) != 2 {
		t.Fatalf("recorded %d runs, want 2", len(repo.recorded))
	}
	skipped := filepath.Join(out, "VDA", FileName(SideSell, date(2018, 11, 14), ".csv"))
	if _, err := os.Stat(skipped); !os.IsNotExist(err) {
		t.Fatalf("skipped day must not be written, stat err=%v", err)
	}

	repo.recorded = nil
	opts.Force = true
	if err := ProcessDirectory(context.Background(), p, opts, repo); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(repo.recorded) != 3 {
		t.Fatalf("force recorded %d runs, want 3", len(repo.recorded))
	}
}

func TestProcessDirectory_MissingFiles(t *testing.T) {
	in, out, p := setupBatch(t, SideBuy)
	for _, d := range batchDays[1:] {
		_ = os.Remove(filepath.Join(in, FileName(SideBuy, d, ".txt")))
	}
	repo := &fakeRuns{}

	err := ProcessDirectory(context.Background(), p, BatchOptions{
		InputDir: in, OutputDir: out, Reference: date(2018, 11, 16), Days: 3,
	}, repo)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, d := range batchDays[1:] {
		if !strings.Contains(err.Error(), FileName(SideBuy, d, ".txt")) {
			t.Fatalf("error does not list %s: %v", FileName(SideBuy, d, ".txt"), err)
		}
	}
	if len(repo.recorded) != 0 {
		t.Fatal("nothing should be processed when files are missing")
	}
}

func TestProcessDirectory_Errors(t *testing.T) {
	t.Run("bad file", func(t *testing.T) {
		in, out, p := setupBatch(t, SideBuy)
		writeFile(t, in, FileName(SideBuy, date(2018, 11, 14), ".txt"), sampleHeader+"\nbroken\n")
		repo := &fakeRuns{}

		err := ProcessDirectory(context.Background(), p, BatchOptions{
			InputDir: in, OutputDir: out, Reference: date(2018, 11, 16), Days: 3, Parallel: 1,
		}, repo)
		if err == nil || !strings.Contains(err.Error(), "OFER_CPA_20181114.txt") {
			t.Fatalf("expected error naming the bad file, got %v", err)
		}
		for _, r := range repo.recorded {
			if r.SessionDate.Equal(date(2018, 11, 14)) {
				t.Fatal("failed file must not be recorded")
			}
		}
	})

	t.Run("run log check", func(t *testing.T) {
		in, out, p := setupBatch(t, SideBuy)
		err := ProcessDirectory(context.Background(), p, BatchOptions{
			InputDir: in, OutputDir: out, Reference: date(2018, 11, 16), Days: 1,
		}, &fakeRuns{hasErr: errors.New("db down")})
		if err == nil || !strings.Contains(err.Error(), "check run log") {
			t.Fatalf("unexpected err: %v", err)
		}
	})

	t.Run("record", func(t *testing.T) {
		in, out, p := setupBatch(t, SideBuy)
		err := ProcessDirectory(context.Background(), p, BatchOptions{
			InputDir: in, OutputDir: out, Reference: date(2018, 11, 16), Days: 1,
		}, &fakeRuns{recordErr: errors.New("db down")})
		if err == nil || !strings.Contains(err.Error(), "record run") {
			t.Fatalf("unexpected err: %v", err)
		}
	})

	t.Run("canceled", func(t *testing.T) {
		in, out, p := setupBatch(t, SideBuy)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := ProcessDirectory(ctx, p, BatchOptions{
			InputDir: in, OutputDir: out, Reference: date(2018, 11, 16), Days: 3,
		}, &fakeRuns{})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}

func TestProcessDirectory_DefaultsToNowAndClampsDays(t *testing.T) {
	old := now
	now = func() time.Time { return time.Date(2018, 11, 16, 18, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = old })

	in, out, p := setupBatch(t, SideBuy)
	repo := &fakeRuns{}
	if err := ProcessDirectory(context.Background(), p, BatchOptions{InputDir: in, OutputDir: out}, repo); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(repo.recorded) != 1 || !repo.recorded[0].SessionDate.Equal(date(2018, 11, 16)) {
		t.Fatalf("expected a single run for 2018-11-16, got %+v", repo.recorded)
	}
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	p, err := NewPipeline(testOptions(SideBuy))
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name       string
		file       string
		wantRecord bool
	}{
		{name: "dated name", file: "OFER_CPA_20181116.txt", wantRecord: true},
		{name: "other side name", file: "OFER_VDA_20181116.txt", wantRecord: false},
		{name: "free name", file: "offers.txt", wantRecord: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := writeFile(t, dir, tc.file, sampleFile())
			repo := &fakeRuns{}
			res, err := ProcessFile(context.Background(), p, in, filepath.Join(dir, "out.csv"), repo)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if res.RowsWritten != 2 {
				t.Fatalf("rows written = %d", res.RowsWritten)
			}
			if got := len(repo.recorded) == 1; got != tc.wantRecord {
				t.Fatalf("recorded=%v want %v", got, tc.wantRecord)
			}
			if tc.wantRecord && !repo.recorded[0].SessionDate.Equal(date(2018, 11, 16)) {
				t.Fatalf("session date = %s", repo.recorded[0].SessionDate)
			}
		})
	}

	t.Run("pipeline error", func(t *testing.T) {
		in := writeFile(t, dir, "OFER_CPA_20181114.txt", "")
		repo := &fakeRuns{}
		if _, err := ProcessFile(context.Background(), p, in, filepath.Join(dir, "x.csv"), repo); err == nil {
			t.Fatal("expected error")
		}
		if len(repo.recorded) != 0 {
			t.Fatal("failed run must not be recorded")
		}
	})
}

func TestProcessDirectory_SkipsSaoPauloHoliday(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	sessions := []time.Time{date(2018, 11, 22), date(2018, 11, 21), date(2018, 11, 19), date(2018, 11, 16), date(2018, 11, 14)}
	for _, d := range sessions {
		writeFile(t, in, FileName(SideSell, d, ".txt"), sampleFile())
	}
	p, err := NewPipeline(testOptions(SideSell))
	if err != nil {
		t.Fatal(err)
	}
	repo := &fakeRuns{}

	err = ProcessDirectory(context.Background(), p, BatchOptions{
		InputDir: in, OutputDir: out, Reference: date(2018, 11, 22), Days: 5,
	}, repo)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(repo.recorded) != len(sessions) {
		t.Fatalf("recorded %d runs, want %d", len(repo.recorded), len(sessions))
	}
}
