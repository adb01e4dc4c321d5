package sheet

import (
	"errors"
	"strings"
)

// ErrFileNotFound indicates the resolved workbook path does not exist.
var ErrFileNotFound = errors.New("spreadsheet not found")

// ErrSchemaMismatch indicates required columns are absent from the header row.
var ErrSchemaMismatch = errors.New("spreadsheet schema mismatch")

// SchemaError reports every required column missing from a header row.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "spreadsheet is missing required columns: " + strings.Join(e.Missing, ", ")
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// EnsureExpectedHeaders verifies that every required column appears among
// headers. Extra columns are tolerated. On failure it returns a SchemaError
// naming all missing columns at once.
func EnsureExpectedHeaders(headers []string) error {
	have := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		have[h] = struct{}{}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := have[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}
