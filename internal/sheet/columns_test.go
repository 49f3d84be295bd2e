package sheet

import "testing"

func TestFold_StripsDiacriticsAndCase(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Observação":         "observacao",
		"OBSERVACAO":         "observacao",
		"  Nº do Empenho  ":  "nº do empenho",
		"Usuário":            "usuario",
		"Data Emissão":       "data emissao",
		"Razão Social":       "razao social",
		"Prazo (90 dias)":    "prazo (90 dias)",
		"Código Fornecedor":  "codigo fornecedor",
	}
	for in, want := range cases {
		if got := Fold(in); got != want {
			t.Fatalf("Fold(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFindColumn_AccentInsensitive(t *testing.T) {
	t.Parallel()

	header := []string{"Data Emissão", "Nº Empenho", "Fornecedor", "OBSERVAÇÃO"}

	idx, ok := FindColumn(header, "empenho")
	if !ok || idx != 1 {
		t.Fatalf("empenho column: got (%d, %v)", idx, ok)
	}

	idx, ok = FindColumn(header, "observacao")
	if !ok || idx != 3 {
		t.Fatalf("observacao column: got (%d, %v)", idx, ok)
	}
}

func TestFindColumn_TokenPriority(t *testing.T) {
	t.Parallel()

	header := []string{"Histórico", "Saldo a Pagar"}

	// First token wins even when a later token matches an earlier column.
	idx, ok := FindColumn(header, "saldo", "historico")
	if !ok || idx != 1 {
		t.Fatalf("got (%d, %v), want (1, true)", idx, ok)
	}
}

func TestFindColumn_NotFound(t *testing.T) {
	t.Parallel()

	if _, ok := FindColumn([]string{"A", "B"}, "empenho"); ok {
		t.Fatalf("expected not found")
	}
	if _, ok := FindColumn(nil, "empenho"); ok {
		t.Fatalf("expected not found on empty header")
	}
}

func TestFindColumnFunc_ExcludesCodes(t *testing.T) {
	t.Parallel()

	header := []string{"Código Fornecedor", "Nome Fornecedor"}
	idx, ok := FindColumnFunc(header, func(folded string) bool {
		return ContainsAny(folded, "fornecedor") && !ContainsAny(folded, "codigo", "cod")
	})
	if !ok || idx != 1 {
		t.Fatalf("got (%d, %v), want (1, true)", idx, ok)
	}
}

func TestCellString(t *testing.T) {
	t.Parallel()

	if got := CellString(100.0); got != "100" {
		t.Fatalf("float key form: got %q", got)
	}
	if got := CellString(1234.57); got != "1234.57" {
		t.Fatalf("float: got %q", got)
	}
	if got := CellString(nil); got != "" {
		t.Fatalf("nil: got %q", got)
	}
	if got := CellString("2024/0001"); got != "2024/0001" {
		t.Fatalf("string: got %q", got)
	}
}
