package offers

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/guttosm/b3ofer/internal/domain/models"
)

// LoadOptions controls how an OFER file is read.
type LoadOptions struct {
	Comma       rune     // field separator, ';' for B3 files
	HeaderLines int      // leading lines skipped by position
	Columns     []string // names assigned to the fields, in order
}

// Load reads the whole file at path into memory.
//
// It fails on:
//   - missing or unreadable file
//   - fewer than HeaderLines lines
//   - any data line whose field count differs from len(opts.Columns)
//   - context cancellation
//
// Header lines are skipped without looking at their content. Field values are
// not trimmed or converted.
func Load(ctx context.Context, path string, opts LoadOptions) (*models.QuoteTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	return loadFrom(ctx, f, opts)
}

func loadFrom(ctx context.Context, src io.Reader, opts LoadOptions) (*models.QuoteTable, error) {
	if len(opts.Columns) == 0 {
		return nil, errors.New("no columns configured")
	}
	comma := opts.Comma
	if comma == 0 {
		comma = ';'
	}

	br := bufio.NewReader(src)

	// Skip header lines by position, before the CSV reader sees them: their
	// field count and quoting do not have to match the data lines.
	for i := 1; i <= opts.HeaderLines; i++ {
		text, err := br.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && text != "" && i == opts.HeaderLines {
				// last header line without a trailing newline: header-only file
				break
			}
			return nil, fmt.Errorf("read header line %d: %w", i, err)
		}
	}

	r := csv.NewReader(br)
	r.Comma = comma
	r.LazyQuotes = true
	r.FieldsPerRecord = -1 // checked explicitly below to report the line

	table := &models.QuoteTable{Columns: append([]string(nil), opts.Columns...)}
	lineNumber := opts.HeaderLines

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		line, _ := r.FieldPos(0)
		lineNumber = opts.HeaderLines + line

		if len(rec) != len(opts.Columns) {
			return nil, fmt.Errorf("invalid column count on line %d: expected %d got %d", lineNumber, len(opts.Columns), len(rec))
		}
		table.Records = append(table.Records, models.QuoteRecord(rec))
	}

	return table, nil
}
