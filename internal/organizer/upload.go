package organizer

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// Positional columns extracted from every upload (0-indexed): the budget
// code (D), the emission date (F), four pass-through columns (H, J, K, W)
// and the commitment number (AJ). Positions are fixed by convention with
// the finance system's export, headers are not.
var extractIndexes = []int{3, 5, 7, 9, 10, 22, 35}

// ReadUpload decodes an uploaded spreadsheet (xlsx, xls or csv) into a
// dataframe. CSV files exported by the municipal finance system come in
// Windows-1252; set windows1252 to decode them.
func ReadUpload(filename string, r io.Reader, windows1252 bool) (dataframe.DataFrame, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		if windows1252 {
			r = charmap.Windows1252.NewDecoder().Reader(r)
		}
		df := dataframe.ReadCSV(r, dataframe.WithLazyQuotes(true))
		if df.Error() != nil {
			return dataframe.DataFrame{}, fmt.Errorf("reading CSV upload: %w", df.Error())
		}
		return df, nil
	case ".xlsx":
		f, err := excelize.OpenReader(r)
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("opening xlsx upload: %w", err)
		}
		defer f.Close()

		rows, err := f.GetRows(f.GetSheetName(0))
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("reading xlsx rows: %w", err)
		}
		return recordsToDataframe(rows)
	case ".xls":
		data, err := io.ReadAll(r)
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("opening xls upload: %w", err)
		}
		return recordsToDataframe(wb.ReadAllCells(1 << 16))
	default:
		return dataframe.DataFrame{}, fmt.Errorf("unsupported upload type %q", filepath.Ext(filename))
	}
}

// recordsToDataframe loads raw sheet rows into a dataframe. Excel readers
// trim trailing empty cells, so rows are padded to a common width and blank
// or repeated header cells get positional names to keep them addressable.
func recordsToDataframe(rows [][]string) (dataframe.DataFrame, error) {
	if len(rows) < 1 {
		return dataframe.DataFrame{}, fmt.Errorf("upload is empty")
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	padded := make([][]string, len(rows))
	for i, row := range rows {
		p := make([]string, width)
		copy(p, row)
		padded[i] = p
	}

	seen := map[string]bool{}
	for i, name := range padded[0] {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			name = fmt.Sprintf("Coluna %d", i+1)
		}
		seen[name] = true
		padded[0][i] = name
	}

	df := dataframe.LoadRecords(padded)
	if df.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("loading upload records: %w", df.Error())
	}
	return df, nil
}

// ExtractColumns selects the fixed positional subset from an upload,
// keeping the original header names as provisional labels.
func ExtractColumns(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if df.Ncol() < minColumns {
		return dataframe.DataFrame{}, &InsufficientColumnsError{Count: df.Ncol()}
	}

	extracted := df.Select(extractIndexes)
	if extracted.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("selecting positional columns: %w", extracted.Error())
	}
	return extracted, nil
}
