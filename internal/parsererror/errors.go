// Package parsererror defines the typed errors returned by the extraction
// pipeline.
package parsererror

import "fmt"

// ParseError represents an error during parsing.
type ParseError struct {
	Stage string
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Stage, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an error where an input file does not conform
// to the expected format.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// LookupSchemaError represents a lookup table whose columns match neither
// supported schema. Enrichment is skipped when it occurs.
type LookupSchemaError struct {
	FilePath string
	Columns  []string
}

func (e *LookupSchemaError) Error() string {
	return fmt.Sprintf("lookup table '%s' has no recognized schema (columns: %v); expected fullName+ACCOUNTNUMBER or firstName+lastName+ACCOUNTNUMBER",
		e.FilePath, e.Columns)
}
