package content

import "fmt"

// ParseErrorKind classifies parser failures.
type ParseErrorKind int

const (
	// NoStructureFound means the raw text contains no balanced JSON object.
	NoStructureFound ParseErrorKind = iota
	// MalformedStructure means an object was found but failed to decode.
	MalformedStructure
	// SchemaViolation means the decoded object violates a model invariant.
	SchemaViolation
)

func (k ParseErrorKind) String() string {
	switch k {
	case NoStructureFound:
		return "no_structure_found"
	case MalformedStructure:
		return "malformed_structure"
	case SchemaViolation:
		return "schema_violation"
	default:
		return "unknown"
	}
}

// ParseError is the failure type for ParseCourse and ParseQuiz. All parse
// errors are recoverable: the caller may retry with a fresh generation.
type ParseError struct {
	Kind   ParseErrorKind
	Field  string // set for SchemaViolation
	Reason string // set for SchemaViolation
	Err    error  // set for MalformedStructure
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case NoStructureFound:
		return "no balanced JSON object found in response"
	case MalformedStructure:
		return fmt.Sprintf("malformed JSON payload: %v", e.Err)
	case SchemaViolation:
		return fmt.Sprintf("schema violation: %s: %s", e.Field, e.Reason)
	default:
		return "parse error"
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func noStructure() *ParseError {
	return &ParseError{Kind: NoStructureFound}
}

func malformed(err error) *ParseError {
	return &ParseError{Kind: MalformedStructure, Err: err}
}

func schemaViolation(field, reason string) *ParseError {
	return &ParseError{Kind: SchemaViolation, Field: field, Reason: reason}
}
