package organizer

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/farxc/listagem-empenhos/internal/sheet"
)

// AnnotationColumn is the free-text note column. It is the only field a
// user may edit in place and the only one the merge carries forward.
const AnnotationColumn = "Observação"

// Organize turns an extracted positional batch into the canonical record
// shape: department mapping inserted after the code column, emission date
// reformatted for display, deadline and status computed, monetary columns
// normalized and the annotation column guaranteed.
//
// now is sampled once by the caller so every record in the batch is
// classified against the same instant.
func Organize(extracted dataframe.DataFrame, now time.Time) (dataframe.DataFrame, error) {
	names := extracted.Names()
	if len(names) != len(extractIndexes) {
		return dataframe.DataFrame{}, fmt.Errorf("expected %d extracted columns, got %d", len(extractIndexes), len(names))
	}

	codeName, refName := names[0], names[1]
	nrows := extracted.Nrow()

	codes := extracted.Col(codeName).Records()
	departments := make([]string, nrows)
	for i, code := range codes {
		departments[i] = DepartmentName(code)
	}

	refDisplay := make([]string, nrows)
	deadlineDisplay := make([]string, nrows)
	statusLabels := make([]string, nrows)
	for i, raw := range extracted.Col(refName).Records() {
		reference, ok := ParseReferenceDate(raw)
		if !ok {
			statusLabels[i] = Status{Kind: StatusInvalidDate}.Label()
			continue
		}
		deadline := Deadline(reference)
		refDisplay[i] = reference.Format(displayDateFormat)
		deadlineDisplay[i] = deadline.Format(displayDateFormat)
		statusLabels[i] = ComputeStatus(deadline, true, now).Label()
	}

	columns := []series.Series{
		series.New(codes, series.String, codeName),
		series.New(departments, series.String, DepartmentColumn),
		series.New(refDisplay, series.String, refName),
	}
	for _, name := range names[2:] {
		columns = append(columns, extracted.Col(name))
	}
	columns = append(columns,
		series.New(deadlineDisplay, series.String, DeadlineColumn),
		series.New(statusLabels, series.String, StatusColumn),
	)

	hasAnnotation := false
	for _, name := range names {
		if name == AnnotationColumn {
			hasAnnotation = true
			break
		}
	}
	if !hasAnnotation {
		columns = append(columns, series.New(make([]string, nrows), series.String, AnnotationColumn))
	}

	result := dataframe.New(columns...)
	if result.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("assembling canonical batch: %w", result.Error())
	}
	return NormalizeMonetary(result), nil
}

// ToTable converts a canonical dataframe into the header-plus-rows form
// the row store persists. Numeric columns stay numeric; NaN cells become
// empty strings so the store never sees float markers.
func ToTable(df dataframe.DataFrame) sheet.Table {
	header := df.Names()
	nrows := df.Nrow()

	rows := make([][]any, nrows)
	for i := range rows {
		rows[i] = make([]any, len(header))
	}

	for c, name := range header {
		col := df.Col(name)
		if col.Type() == series.Float || col.Type() == series.Int {
			for r, v := range col.Float() {
				if math.IsNaN(v) {
					rows[r][c] = ""
				} else {
					rows[r][c] = v
				}
			}
			continue
		}
		for r, v := range col.Records() {
			if v == "NaN" {
				v = ""
			}
			rows[r][c] = v
		}
	}

	return sheet.Table{Header: header, Rows: rows}
}
