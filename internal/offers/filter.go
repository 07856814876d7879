package offers

import (
	"fmt"
	"strings"

	"github.com/guttosm/b3ofer/internal/domain/models"
)

// MatchMode decides how symbols in the file are compared with the allow-list.
//
// B3 writes the instrument symbol as a fixed-width, space-padded field.
// MatchExact pads every allow-list entry to the configured width and compares
// the raw field byte for byte, so a field padded to any other width does not
// match. MatchTrim strips surrounding whitespace on both sides instead.
type MatchMode string

const (
	MatchExact MatchMode = "exact"
	MatchTrim  MatchMode = "trim"
)

// ParseMatchMode accepts "exact" or "trim" in any case.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case MatchExact:
		return MatchExact, nil
	case MatchTrim:
		return MatchTrim, nil
	default:
		return "", fmt.Errorf("unknown match mode %q (want exact or trim)", s)
	}
}

// SymbolSet is the allow-list of instrument symbols kept by the filter.
type SymbolSet struct {
	mode    MatchMode
	members map[string]struct{}
}

// NewSymbolSet builds the allow-list. In exact mode each symbol is right-padded
// with spaces to width; a width of 0 (or one shorter than the symbol) keeps the
// symbol as given.
func NewSymbolSet(symbols []string, width int, mode MatchMode) *SymbolSet {
	s := &SymbolSet{mode: mode, members: make(map[string]struct{}, len(symbols))}
	for _, sym := range symbols {
		s.members[s.key(sym, width)] = struct{}{}
	}
	return s
}

func (s *SymbolSet) key(sym string, width int) string {
	if s.mode == MatchTrim {
		return strings.TrimSpace(sym)
	}
	if pad := width - len(sym); pad > 0 {
		return sym + strings.Repeat(" ", pad)
	}
	return sym
}

// Contains reports whether a raw symbol field is on the allow-list.
func (s *SymbolSet) Contains(field string) bool {
	if s.mode == MatchTrim {
		field = strings.TrimSpace(field)
	}
	_, ok := s.members[field]
	return ok
}

// Len returns the number of distinct allow-list entries.
func (s *SymbolSet) Len() int {
	return len(s.members)
}

// FilterSymbols returns a new table with the records whose column value is in
// the set, in their original order. The input table is left untouched.
func FilterSymbols(table *models.QuoteTable, column string, set *SymbolSet) (*models.QuoteTable, error) {
	idx := table.ColumnIndex(column)
	if idx < 0 {
		return nil, fmt.Errorf("symbol column %q not found", column)
	}

	out := &models.QuoteTable{Columns: append([]string(nil), table.Columns...)}
	for _, rec := range table.Records {
		if set.Contains(rec[idx]) {
			out.Records = append(out.Records, rec)
		}
	}
	return out, nil
}
