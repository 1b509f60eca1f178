package document

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const boardSchemaURL = "kboard-board.schema.json"

// boardSchema is the shape contract for imported and stored documents. A task
// needs a string "title" or, for older exports, a string "content".
const boardSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id", "title", "columns"],
  "properties": {
    "id": {"type": "string"},
    "title": {"type": "string"},
    "columns": {"type": "array", "items": {"$ref": "#/$defs/column"}}
  },
  "$defs": {
    "column": {
      "type": "object",
      "required": ["id", "title", "tasks"],
      "properties": {
        "id": {"type": "string"},
        "title": {"type": "string"},
        "tasks": {"type": "array", "items": {"$ref": "#/$defs/task"}}
      }
    },
    "task": {
      "type": "object",
      "required": ["id"],
      "properties": {
        "id": {"type": "string"}
      },
      "anyOf": [
        {"required": ["title"], "properties": {"title": {"type": "string"}}},
        {"required": ["content"], "properties": {"content": {"type": "string"}}}
      ]
    }
  }
}`

var compiledBoardSchema = jsonschema.MustCompileString(boardSchemaURL, boardSchema)

// IsValidSchema reports whether v, a value decoded from JSON into any, has
// the board document shape. It never modifies v.
func IsValidSchema(v any) bool {
	return compiledBoardSchema.Validate(v) == nil
}

// ValidateSchema checks v against the board document shape and returns one
// error per failing location.
func ValidateSchema(v any) []error {
	err := compiledBoardSchema.Validate(v)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []error{err}
	}

	var errs []error
	collectSchemaErrors(ve, &errs)
	if len(errs) == 0 {
		errs = append(errs, fmt.Errorf("%s", ve.Message))
	}
	return errs
}

// collectSchemaErrors flattens the cause tree, keeping only leaf failures.
func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]error) {
	if len(ve.Causes) == 0 {
		path := pointerToPath(ve.InstanceLocation)
		if path == "" {
			path = "document"
		}
		*errs = append(*errs, fmt.Errorf("%s: %s", path, ve.Message))
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(cause, errs)
	}
}

// pointerToPath renders a JSON pointer such as /columns/0/tasks as
// columns[0].tasks.
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

// CheckIntegrity rejects documents whose column or task IDs repeat. The shape
// check alone accepts them, but a board built from one would break ID lookups.
func CheckIntegrity(doc *Document) []error {
	var errs []error
	columnIDs := make(map[string]bool)
	taskIDs := make(map[string]bool)

	for i, c := range doc.Columns {
		if columnIDs[c.ID] {
			errs = append(errs, fmt.Errorf("columns[%d].id: duplicate column id %q", i, c.ID))
		}
		columnIDs[c.ID] = true

		for j, t := range c.Tasks {
			if taskIDs[t.ID] {
				errs = append(errs, fmt.Errorf("columns[%d].tasks[%d].id: duplicate task id %q", i, j, t.ID))
			}
			taskIDs[t.ID] = true
		}
	}
	return errs
}
