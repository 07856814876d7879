package offers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	filePrefix     = "OFER_"
	fileDateLayout = "20060102" // YYYYMMDD
	inputExt       = ".txt"
)

// FileName returns the B3 file name for a side and session date,
// e.g. OFER_CPA_20181116.txt for ext ".txt".
func FileName(side Side, day time.Time, ext string) string {
	return filePrefix + string(side) + "_" + day.Format(fileDateLayout) + ext
}

// ParseFileName extracts side and session date from names like
// OFER_VDA_20181122.txt. Any extension is accepted.
func ParseFileName(name string) (Side, time.Time, error) {
	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	parts := strings.Split(stem, "_")
	if len(parts) != 3 || parts[0]+"_" != filePrefix {
		return "", time.Time{}, fmt.Errorf("unexpected file name %q (want OFER_<SIDE>_<YYYYMMDD>)", base)
	}
	side, err := ParseSide(parts[1])
	if err != nil {
		return "", time.Time{}, fmt.Errorf("file %s: %w", base, err)
	}
	day, err := time.Parse(fileDateLayout, parts[2])
	if err != nil {
		return "", time.Time{}, fmt.Errorf("file %s: parse date: %w", base, err)
	}
	return side, day, nil
}
