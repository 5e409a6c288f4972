package tagging

// Record is one row of the input table. Cells holds only the columns the
// row actually has; a column missing from Cells is absent, which is
// different from present-but-empty only for diagnostics.
type Record struct {
	// Index is the 1-based data row number (the header is not counted).
	Index int
	Cells map[string]string
}

// NewRecord builds a Record from a header and the row's cells. Cells past
// the end of the header are ignored; header columns past the end of the
// row are absent.
func NewRecord(index int, header, cells []string) Record {
	m := make(map[string]string, len(header))
	for i, col := range header {
		if i >= len(cells) {
			break
		}
		m[col] = cells[i]
	}
	return Record{Index: index, Cells: m}
}

// Get returns the raw cell for column and whether the row has it.
func (r Record) Get(column string) (string, bool) {
	v, ok := r.Cells[column]
	return v, ok
}
