package models

// QuoteRecord is one row of a B3 offer-book file (OFER_CPA / OFER_VDA).
//
// Values are kept exactly as read from the file: fixed-width symbols keep their
// trailing padding and prices keep the comma decimal separator. The position of
// each value matches the Columns of the QuoteTable that owns the record.
type QuoteRecord []string

// QuoteTable is an in-memory offer book: named columns plus the records in
// file order. Pipeline stages derive a new table instead of mutating one.
type QuoteTable struct {
	Columns []string
	Records []QuoteRecord
}

// ColumnIndex returns the position of the named column, or -1.
func (t *QuoteTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Len returns the number of records.
func (t *QuoteTable) Len() int {
	return len(t.Records)
}
