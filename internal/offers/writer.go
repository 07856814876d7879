package offers

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/guttosm/b3ofer/internal/domain/models"
)

// Format is the output file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "csv" or "xlsx" in any case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want csv or xlsx)", s)
	}
}

// Ext returns the file extension for the format, with the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// WriteTable writes the table to path, overwriting any existing file.
//
// Parameters:
//   - table (*models.QuoteTable): columns and records to write.
//   - path (string): destination file.
//   - format (Format): FormatCSV or FormatXLSX.
//   - sheet (string): XLSX sheet name; "Sheet1" when empty, ignored for CSV.
//
// Behavior:
//   - CSV output is comma-separated with a header row and no index column.
//   - XLSX output holds the same rows on a single sheet, every cell as text.
//   - Missing parent directories are created.
//   - The file is first written next to the destination and then renamed over
//     it, so a failed write never leaves a partial output behind.
//
// Returns:
//   - error: directory, temp file, encoding or rename failure.
func WriteTable(table *models.QuoteTable, path string, format Format, sheet string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	switch format {
	case FormatXLSX:
		err = writeXLSX(table, tmp, sheet)
	default:
		err = writeCSV(table, tmp)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	// CreateTemp uses 0600
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace output: %w", err)
	}
	committed = true
	return nil
}

func writeCSV(table *models.QuoteTable, out io.Writer) error {
	w := csv.NewWriter(out)
	if err := w.Write(table.Columns); err != nil {
		return err
	}
	for _, rec := range table.Records {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeXLSX(table *models.QuoteTable, out io.Writer, sheet string) error {
	if sheet == "" {
		sheet = "Sheet1"
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", toCells(table.Columns)); err != nil {
		return err
	}
	for i, rec := range table.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, toCells(rec)); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	_, err = f.WriteTo(out)
	return err
}

// toCells keeps every value as a string cell; prices stay in B3's
// comma-decimal notation.
func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
