package organizer

import (
	"testing"
	"time"

	"github.com/farxc/listagem-empenhos/internal/sheet"
)

func browseTable() sheet.Table {
	return sheet.Table{
		Header: []string{"Data Emissão", "Nº Empenho", DepartmentColumn, "Nome Fornecedor", StatusColumn},
		Rows: [][]any{
			{"15/01/2024", "2024/0001", "DEPTO DE FINANÇAS", "ACME Materiais", "No Prazo"},
			{"20/02/2024", "2024/0002", "DEPTO DE OBRAS", "Construtora Beta", "Vencido"},
			{"05/03/2024", "2024/0003", "DEPTO DE FINANÇAS", "ACME Materiais", "Vencido"},
			{"", "2024/0004", "DEPTO DE OBRAS", "Gama Serviços", "Data Inválida"},
		},
	}
}

func TestApplyFilter_Department(t *testing.T) {
	t.Parallel()

	got := ApplyFilter(browseTable(), Filter{Department: "DEPTO DE FINANÇAS"})
	if got.Nrow() != 2 {
		t.Fatalf("rows = %d, want 2", got.Nrow())
	}

	if got := ApplyFilter(browseTable(), Filter{Department: DepartmentAll}); got.Nrow() != 4 {
		t.Fatalf("Todos must not filter, got %d rows", got.Nrow())
	}
}

func TestApplyFilter_EmpenhoSubstring(t *testing.T) {
	t.Parallel()

	got := ApplyFilter(browseTable(), Filter{Empenho: "0003"})
	if got.Nrow() != 1 || got.CellString(0, 1) != "2024/0003" {
		t.Fatalf("got %d rows", got.Nrow())
	}
}

func TestApplyFilter_SupplierCaseInsensitive(t *testing.T) {
	t.Parallel()

	got := ApplyFilter(browseTable(), Filter{Supplier: "acme"})
	if got.Nrow() != 2 {
		t.Fatalf("rows = %d, want 2", got.Nrow())
	}
}

func TestApplyFilter_DateRange(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	got := ApplyFilter(browseTable(), Filter{StartDate: &start, EndDate: &end})
	if got.Nrow() != 1 || got.CellString(0, 1) != "2024/0002" {
		t.Fatalf("rows = %d", got.Nrow())
	}

	// Rows without a parseable date drop out of any date-bounded view.
	onlyStart := ApplyFilter(browseTable(), Filter{StartDate: &start})
	for i := 0; i < onlyStart.Nrow(); i++ {
		if onlyStart.CellString(i, 1) == "2024/0004" {
			t.Fatalf("undated row must not pass a date filter")
		}
	}
}

func TestApplyFilter_Combined(t *testing.T) {
	t.Parallel()

	got := ApplyFilter(browseTable(), Filter{Department: "DEPTO DE FINANÇAS", Empenho: "0001"})
	if got.Nrow() != 1 || got.CellString(0, 1) != "2024/0001" {
		t.Fatalf("rows = %d", got.Nrow())
	}
}
