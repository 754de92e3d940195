package emissions

import "fmt"

// InvalidScenarioError reports a malformed intervention scenario: a
// fractional effect outside [0, 1) or a negative fixed reduction.
type InvalidScenarioError struct {
	Scenario string
	Reason   string
}

func (e *InvalidScenarioError) Error() string {
	return fmt.Sprintf("invalid scenario %q: %s", e.Scenario, e.Reason)
}

// EmptyDatasetError reports that the unfiltered input contained no rows at
// all. A dataset where every row was excluded by validation is a valid
// zero-valued result, not this error.
type EmptyDatasetError struct{}

func (e *EmptyDatasetError) Error() string {
	return "dataset contains no flight records"
}

// SchemaError reports a required field that was missing or non-numeric at
// the ingestion boundary. Line is 1-based and includes the header row.
type SchemaError struct {
	Field  string
	Line   int
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("schema error at line %d, field %q: %s", e.Line, e.Field, e.Reason)
	}
	return fmt.Sprintf("schema error in field %q: %s", e.Field, e.Reason)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
