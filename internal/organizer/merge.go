package organizer

import (
	"github.com/farxc/listagem-empenhos/internal/sheet"
)

// Key and annotation discovery tokens, matched against folded headers.
// Header spelling drifts between the upload and what the store hands back
// ("Observação" vs "OBSERVACAO"), hence the fuzzy lookup.
var (
	keyColumnTokens        = []string{"empenho"}
	annotationColumnTokens = []string{"observacao"}
)

// Merge reconciles a freshly processed batch against the previously
// persisted dataset, keyed by commitment number:
//
//   - records present on both sides take the new data, but a non-empty
//     existing annotation always wins over the uploaded one;
//   - records only in the batch are emitted unchanged;
//   - records only in the existing dataset are appended afterwards in
//     their original relative order — commitments that stop appearing in
//     an upload are never silently dropped.
//
// Column order follows the batch, with columns present only in the
// existing dataset appended at the end. Key discovery failing on either
// side aborts the merge; it never proceeds on a guessed key.
func Merge(batch, existing sheet.Table) (sheet.Table, error) {
	if existing.IsEmpty() {
		return batch, nil
	}

	batchKey, ok := sheet.FindColumn(batch.Header, keyColumnTokens...)
	if !ok {
		return sheet.Table{}, &KeyColumnNotFoundError{Side: SideUpload}
	}
	existingKey, ok := sheet.FindColumn(existing.Header, keyColumnTokens...)
	if !ok {
		return sheet.Table{}, &KeyColumnNotFoundError{Side: SideExisting}
	}

	// Annotation columns are discovered independently per side; a missing
	// one just disables carry-forward, it is not an error.
	batchAnnotation, batchHasAnnotation := sheet.FindColumn(batch.Header, annotationColumnTokens...)
	existingAnnotation, existingHasAnnotation := sheet.FindColumn(existing.Header, annotationColumnTokens...)

	// Later duplicates win, matching how the lookup is rebuilt on every
	// upload.
	existingByKey := make(map[string]int, existing.Nrow())
	for i := range existing.Rows {
		existingByKey[existing.CellString(i, existingKey)] = i
	}

	header := append([]string{}, batch.Header...)
	headerIndex := make(map[string]int, len(header))
	for i, name := range header {
		headerIndex[name] = i
	}
	extraFromExisting := []int{}
	for i, name := range existing.Header {
		if _, ok := headerIndex[name]; !ok {
			headerIndex[name] = len(header)
			header = append(header, name)
			extraFromExisting = append(extraFromExisting, i)
		}
	}

	merged := make([][]any, 0, batch.Nrow())
	seen := make(map[string]bool, batch.Nrow())

	for i := range batch.Rows {
		key := batch.CellString(i, batchKey)
		seen[key] = true

		row := make([]any, len(header))
		for c := range header {
			row[c] = ""
		}
		copy(row, batch.Rows[i])

		if oldIdx, found := existingByKey[key]; found {
			if batchHasAnnotation && existingHasAnnotation {
				if old := existing.CellString(oldIdx, existingAnnotation); old != "" {
					row[batchAnnotation] = old
				}
			}
			// Columns the batch does not carry keep their stored values.
			for _, oldCol := range extraFromExisting {
				row[headerIndex[existing.Header[oldCol]]] = existing.Cell(oldIdx, oldCol)
			}
		}

		merged = append(merged, row)
	}

	for i := range existing.Rows {
		key := existing.CellString(i, existingKey)
		if seen[key] {
			continue
		}
		seen[key] = true

		row := make([]any, len(header))
		for c := range header {
			row[c] = ""
		}
		for oldCol, name := range existing.Header {
			row[headerIndex[name]] = existing.Cell(i, oldCol)
		}
		merged = append(merged, row)
	}

	return sheet.Table{Header: header, Rows: merged}, nil
}
