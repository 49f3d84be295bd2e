package organizer

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/shopspring/decimal"

	"github.com/farxc/listagem-empenhos/internal/sheet"
)

// Column-name tokens (folded form) that mark a column as non-monetary.
var (
	nonMonetaryTokens = []string{"data", "prazo", "status", "departamento", "observa"}
	identifierTokens  = []string{"empenho", "emp.", "emp", "codigo", "cod.", "nº", "numero"}
)

// isMonetaryColumn reports whether a column may hold currency amounts,
// judged by name alone. Identifier columns (commitment numbers, supplier
// codes) are numeric but must never be rounded.
func isMonetaryColumn(name string) bool {
	folded := sheet.Fold(name)
	if sheet.ContainsAny(folded, nonMonetaryTokens...) {
		return false
	}
	if sheet.ContainsAny(folded, identifierTokens...) {
		return false
	}
	return true
}

// NormalizeMonetary coerces monetary columns to numeric values rounded to
// 2 decimal places. Only columns gota already typed as numeric are touched;
// mixed or textual columns pass through unchanged, as do individual cells
// that fail coercion (their NaN marker is preserved).
func NormalizeMonetary(df dataframe.DataFrame) dataframe.DataFrame {
	for _, name := range df.Names() {
		if !isMonetaryColumn(name) {
			continue
		}

		col := df.Col(name)
		if col.Type() != series.Float && col.Type() != series.Int {
			continue
		}

		values := col.Float()
		rounded := make([]float64, len(values))
		for i, v := range values {
			if math.IsNaN(v) {
				rounded[i] = v
				continue
			}
			rounded[i] = RoundMonetary(v)
		}
		df = df.Mutate(series.New(rounded, series.Float, name))
	}
	return df
}

// RoundMonetary rounds a currency amount to 2 decimal places. decimal
// avoids the half-even drift float arithmetic would introduce.
func RoundMonetary(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
