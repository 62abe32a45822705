package model

// Dataset is a raw tabular file loaded fully into memory: an ordered list of
// named columns and row-oriented cell values as parsed from the source sheet.
// Cells are kept as strings until the pipeline coerces the numeric columns.
type Dataset struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of the named column, or -1 if absent.
// Matching is exact and case-sensitive.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col), or "" when the stored row is shorter
// than the header (spreadsheet readers trim trailing empty cells).
func (d *Dataset) Cell(row, col int) string {
	if col < 0 || row < 0 || row >= len(d.Rows) {
		return ""
	}
	r := d.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// Number is a coerced numeric cell. Valid is false when the source value
// could not be parsed; such values are missing, not errors.
type Number struct {
	Value float64
	Valid bool
}

// OrZero returns the value, treating missing as 0. This is the
// missing-as-zero policy used when computing the value products.
func (n Number) OrZero() float64 {
	if !n.Valid {
		return 0
	}
	return n.Value
}
