package organizer

import "testing"

func TestDepartmentName_Known(t *testing.T) {
	t.Parallel()

	if got := DepartmentName("01.02.05"); got != "DEPTO DE FINANÇAS" {
		t.Fatalf("got %q", got)
	}
}

func TestDepartmentName_TruncatesSubCodes(t *testing.T) {
	t.Parallel()

	// Trailing sub-codes vary between uploads; only the 8-char prefix
	// identifies the department.
	if got := DepartmentName("01.02.20.123.4567"); got != "FUNDO MUNICIPAL DE SAUDE" {
		t.Fatalf("got %q", got)
	}
	if got := DepartmentName("  02.01.01  "); got != "CÂMARA MUNICIPAL" {
		t.Fatalf("trimmed lookup: got %q", got)
	}
}

func TestDepartmentName_Fallback(t *testing.T) {
	t.Parallel()

	if got := DepartmentName("99.99.99"); got != "DEP-99.99.99" {
		t.Fatalf("got %q", got)
	}
	if got := DepartmentName(""); got != "DEP-" {
		t.Fatalf("empty code: got %q", got)
	}
}

func TestDepartmentNames_Sorted(t *testing.T) {
	t.Parallel()

	names := DepartmentNames()
	if len(names) != len(Departamentos) {
		t.Fatalf("got %d names, want %d", len(names), len(Departamentos))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("not sorted at %d: %q > %q", i, names[i-1], names[i])
		}
	}
}
