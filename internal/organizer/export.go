package organizer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/farxc/listagem-empenhos/internal/sheet"
)

const exportSheetName = "Organizada"

// ExportXLSX renders a dataset as a downloadable workbook: one sheet,
// header row plus data rows, columns sized to their content.
func ExportXLSX(t sheet.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheetName); err != nil {
		return nil, err
	}

	for c, name := range t.Header {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheetName, cell, name); err != nil {
			return nil, err
		}
	}

	widths := make([]int, len(t.Header))
	for c, name := range t.Header {
		widths[c] = len(name) + 5
		if widths[c] < 15 {
			widths[c] = 15
		}
	}

	for r, row := range t.Rows {
		for c := range t.Header {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			var value any = ""
			if c < len(row) && row[c] != nil {
				value = row[c]
			}
			if err := f.SetCellValue(exportSheetName, cell, value); err != nil {
				return nil, err
			}
			if l := len(sheet.CellString(value)); l+2 > widths[c] {
				widths[c] = l + 2
			}
		}
	}

	for c := range t.Header {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(exportSheetName, col, col, float64(widths[c])); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatCurrency renders a value in Brazilian currency display form
// ("R$ 1.234,56"). Strictly a presentation helper; stored values stay
// numeric. Values that cannot be read as a number come back unchanged.
func FormatCurrency(v any) string {
	var amount float64
	switch val := v.(type) {
	case float64:
		amount = val
	case int:
		amount = float64(val)
	case string:
		clean := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(val), "R$"))
		if clean == "" {
			return val
		}
		if strings.Contains(clean, ",") {
			// Brazilian format: dots are thousands separators.
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.ReplaceAll(clean, ",", ".")
		}
		parsed, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return val
		}
		amount = parsed
	default:
		return sheet.CellString(v)
	}

	formatted := fmt.Sprintf("%.2f", amount)
	intPart, fracPart, _ := strings.Cut(formatted, ".")

	negative := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := "R$ " + strings.Join(groups, ".") + "," + fracPart
	if negative {
		out = "R$ -" + strings.Join(groups, ".") + "," + fracPart
	}
	return out
}
