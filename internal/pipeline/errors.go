package pipeline

import (
	"fmt"
	"strings"
)

// Error kind identifiers surfaced to callers.
const (
	KindParseError      = "parse_error"
	KindSchemaError     = "schema_error"
	KindProcessingError = "processing_error"
)

// ParseError indicates the uploaded bytes are not a readable spreadsheet.
// Fatal; nothing is computed. The underlying decoder error is kept for
// diagnostics.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unreadable spreadsheet: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError indicates required columns are absent. Fatal; detected before
// any coercion or derivation. MissingColumns lists exactly the absent names.
type SchemaError struct {
	MissingColumns []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.MissingColumns, ", "))
}

// ProcessingError wraps an unexpected failure between coercion and export.
// It is caught at the run boundary so the host never crashes; Stack holds
// the goroutine stack when the failure was a recovered panic.
type ProcessingError struct {
	Err   error
	Stack []byte
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("processing failed: %v", e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }
