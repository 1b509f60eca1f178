package document

import "strings"

// ParseError reports a document that is not well-formed JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "Error reading file: Could not parse JSON."
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError reports a well-formed document that does not have the board shape.
type SchemaError struct {
	Problems []error
}

func (e *SchemaError) Error() string {
	return "Invalid file format: The JSON structure does not match the Kanban schema."
}

// Detail lists every problem found, one per line.
func (e *SchemaError) Detail() string {
	lines := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		lines = append(lines, "  - "+p.Error())
	}
	return strings.Join(lines, "\n")
}
