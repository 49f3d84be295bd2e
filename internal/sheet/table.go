package sheet

import (
	"fmt"
	"strconv"
)

// Table is a header-plus-rows view of a worksheet-like dataset. The header
// is the first row of the underlying store; data rows follow in order.
// Cells keep their source type (string or float64) so monetary columns
// remain numeric until render time.
type Table struct {
	Header []string
	Rows   [][]any
}

func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

func (t Table) Nrow() int {
	return len(t.Rows)
}

// Cell returns the value at the given row and column, or nil when the row
// is shorter than the header (stores may trim trailing blanks).
func (t Table) Cell(row, col int) any {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return nil
	}
	return r[col]
}

// CellString returns the cell coerced to its string form. Floats with an
// integral value render without a decimal part so that keys read back from
// a store that re-typed them still compare equal to their upload form.
func (t Table) CellString(row, col int) string {
	return CellString(t.Cell(row, col))
}

func CellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
