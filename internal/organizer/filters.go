package organizer

import (
	"strings"
	"time"

	"github.com/farxc/listagem-empenhos/internal/sheet"
)

// DepartmentAll disables department scoping in a filter.
const DepartmentAll = "Todos"

// Filter narrows the browsing view. Zero values mean "no restriction".
// Target columns are discovered by fuzzy header match, so a filter on a
// column the dataset does not carry is silently skipped.
type Filter struct {
	Department string
	Empenho    string
	Supplier   string
	StartDate  *time.Time
	EndDate    *time.Time
}

var (
	emissionColumnTokens = []string{"emissao", "data"}
	supplierNameTokens   = []string{"nome", "razao", "fornecedor", "credor"}
)

// ApplyFilter returns the rows matching every restriction, preserving
// order. Substring matches are case-insensitive.
func ApplyFilter(t sheet.Table, f Filter) sheet.Table {
	deptIdx, hasDept := sheet.FindColumn(t.Header, sheet.Fold(DepartmentColumn))
	keyIdx, hasKey := sheet.FindColumn(t.Header, keyColumnTokens...)
	emissionIdx, hasEmission := sheet.FindColumn(t.Header, emissionColumnTokens...)
	supplierIdx, hasSupplier := sheet.FindColumnFunc(t.Header, func(folded string) bool {
		return sheet.ContainsAny(folded, supplierNameTokens...) && !sheet.ContainsAny(folded, "codigo", "cod")
	})

	out := sheet.Table{Header: t.Header}
	for i := range t.Rows {
		if f.Department != "" && f.Department != DepartmentAll {
			if !hasDept || t.CellString(i, deptIdx) != f.Department {
				continue
			}
		}
		if f.Empenho != "" && hasKey {
			if !containsFold(t.CellString(i, keyIdx), f.Empenho) {
				continue
			}
		}
		if f.Supplier != "" && hasSupplier {
			if !containsFold(t.CellString(i, supplierIdx), f.Supplier) {
				continue
			}
		}
		if (f.StartDate != nil || f.EndDate != nil) && hasEmission {
			emitted, ok := ParseReferenceDate(t.CellString(i, emissionIdx))
			if !ok {
				continue
			}
			day := time.Date(emitted.Year(), emitted.Month(), emitted.Day(), 0, 0, 0, 0, time.UTC)
			if f.StartDate != nil && day.Before(*f.StartDate) {
				continue
			}
			if f.EndDate != nil && day.After(*f.EndDate) {
				continue
			}
		}
		out.Rows = append(out.Rows, t.Rows[i])
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
