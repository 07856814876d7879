package offers

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/guttosm/b3ofer/config"
	"github.com/guttosm/b3ofer/internal/logger"
)

// Options configures a Pipeline.
type Options struct {
	Side        Side
	Comma       rune
	HeaderLines int
	Symbols     []string
	SymbolWidth int
	Match       MatchMode
	DropColumns []string // nil or empty: DefaultDropColumns(Side)
	Format      Format
}

// OptionsFromConfig maps the loaded configuration onto pipeline options.
func OptionsFromConfig(cfg config.OffersConfig) (Options, error) {
	side, err := ParseSide(cfg.Side)
	if err != nil {
		return Options{}, err
	}
	match, err := ParseMatchMode(cfg.SymbolMatch)
	if err != nil {
		return Options{}, err
	}
	format, err := ParseFormat(cfg.OutputFormat)
	if err != nil {
		return Options{}, err
	}
	delim := []rune(cfg.Delimiter)
	if len(delim) != 1 {
		return Options{}, fmt.Errorf("delimiter must be a single character, got %q", cfg.Delimiter)
	}

	return Options{
		Side:        side,
		Comma:       delim[0],
		HeaderLines: cfg.HeaderLines,
		Symbols:     cfg.Symbols,
		SymbolWidth: cfg.SymbolWidth,
		Match:       match,
		DropColumns: cfg.DropColumns,
		Format:      format,
	}, nil
}

// Result summarizes one pipeline run.
type Result struct {
	RowsRead    int
	RowsWritten int
	Columns     []string
}

// Pipeline runs Load → Filter → Project → Write over one offer file.
// It holds no state between runs and is safe to share across goroutines.
type Pipeline struct {
	side    Side
	load    LoadOptions
	symbols *SymbolSet
	drop    []string
	format  Format
}

// NewPipeline validates opts and builds a Pipeline.
func NewPipeline(opts Options) (*Pipeline, error) {
	if opts.Side != SideBuy && opts.Side != SideSell {
		return nil, fmt.Errorf("unknown side %q", opts.Side)
	}
	if len(opts.Symbols) == 0 {
		return nil, errors.New("allow-list is empty")
	}
	if opts.HeaderLines < 0 {
		return nil, errors.New("header lines must be >= 0")
	}
	if opts.Match == "" {
		opts.Match = MatchExact
	}
	if opts.Format == "" {
		opts.Format = FormatCSV
	}

	drop := opts.DropColumns
	if len(drop) == 0 {
		drop = DefaultDropColumns(opts.Side)
	}

	return &Pipeline{
		side: opts.Side,
		load: LoadOptions{
			Comma:       opts.Comma,
			HeaderLines: opts.HeaderLines,
			Columns:     Columns(opts.Side),
		},
		symbols: NewSymbolSet(opts.Symbols, opts.SymbolWidth, opts.Match),
		drop:    append([]string(nil), drop...),
		format:  opts.Format,
	}, nil
}

// Side returns the order-book side this pipeline reads.
func (p *Pipeline) Side() Side { return p.side }

// Format returns the output format.
func (p *Pipeline) Format() Format { return p.format }

// Run processes one offer file: Load, FilterSymbols, DropColumns, WriteTable.
//
// Parameters:
//   - ctx (context.Context): checked between rows while loading.
//   - input (string): path of the OFER file.
//   - output (string): destination; replaced only when every stage succeeds.
//
// Behavior:
//   - Each stage is logged with the side and file name, row counts and elapsed time.
//   - Any stage error aborts the run before the output file is touched.
//   - An empty filter result is not an error; the output holds only the header.
//
// Returns:
//   - Result: rows read, rows written and the surviving columns.
//   - error: wrapped with the stage that failed ("load", "filter", "project", "save").
func (p *Pipeline) Run(ctx context.Context, input, output string) (Result, error) {
	lg := logger.With("side", string(p.side), "file", filepath.Base(input))
	start := time.Now()

	table, err := Load(ctx, input, p.load)
	if err != nil {
		return Result{}, fmt.Errorf("load %s: %w", input, err)
	}
	lg.Debug().Int("rows", table.Len()).Dur("elapsed", time.Since(start)).Msg("loaded")

	filtered, err := FilterSymbols(table, SymbolColumn, p.symbols)
	if err != nil {
		return Result{}, fmt.Errorf("filter: %w", err)
	}
	lg.Debug().Int("rows", filtered.Len()).Int("symbols", p.symbols.Len()).Msg("filtered")

	projected, err := DropColumns(filtered, p.drop)
	if err != nil {
		return Result{}, fmt.Errorf("project: %w", err)
	}
	lg.Debug().Strs("columns", projected.Columns).Msg("projected")

	if err := WriteTable(projected, output, p.format, string(p.side)); err != nil {
		return Result{}, fmt.Errorf("save %s: %w", output, err)
	}

	res := Result{
		RowsRead:    table.Len(),
		RowsWritten: projected.Len(),
		Columns:     projected.Columns,
	}
	lg.Info().
		Int("rows_read", res.RowsRead).
		Int("rows_written", res.RowsWritten).
		Str("output", output).
		Dur("elapsed", time.Since(start)).
		Msg("offer file filtered")
	return res, nil
}
