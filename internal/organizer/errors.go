package organizer

import "fmt"

// The 35-index column (spreadsheet column AJ) holds the commitment number,
// so anything narrower cannot be processed at all.
const minColumns = 36

// InsufficientColumnsError reports an upload too narrow to contain the
// positional columns the extractor depends on.
type InsufficientColumnsError struct {
	Count int
}

func (e *InsufficientColumnsError) Error() string {
	return fmt.Sprintf("upload has only %d columns, at least %d are required (through column AJ)", e.Count, minColumns)
}

// Merge sides for key column discovery failures.
const (
	SideUpload   = "upload"
	SideExisting = "existing"
)

// KeyColumnNotFoundError reports that the commitment key column could not
// be identified on one side of a merge. The merge never proceeds on a
// guessed key, so this aborts the whole operation.
type KeyColumnNotFoundError struct {
	Side string
}

func (e *KeyColumnNotFoundError) Error() string {
	return fmt.Sprintf("commitment key column not found in %s data", e.Side)
}
