// Package document converts boards to and from their external JSON form.
// The same document shape is used for the persistent storage slot and for
// exported files.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Document is the serialized form of a board.
type Document struct {
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	Columns []ColumnDocument `json:"columns"`
}

// ColumnDocument is the serialized form of a column.
type ColumnDocument struct {
	ID    string         `json:"id"`
	Title string         `json:"title"`
	Tasks []TaskDocument `json:"tasks"`
}

// TaskDocument is the serialized form of a task. Imports also accept the
// legacy "content" field in place of "title"; exports always write "title".
type TaskDocument struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

const exportIndent = "   "

// Marshal encodes the document in the indented layout used for exported files.
func Marshal(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", exportIndent)
	if err != nil {
		return nil, fmt.Errorf("encoding board document: %w", err)
	}
	return data, nil
}

// MarshalCompact encodes the document for the storage slot.
func MarshalCompact(doc *Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding board document: %w", err)
	}
	return data, nil
}

// Parse decodes a board document, checks its shape and ID integrity, and
// returns the typed document. Malformed JSON yields a *ParseError and a
// well-formed document of the wrong shape yields a *SchemaError.
func Parse(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &ParseError{Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &ParseError{Err: fmt.Errorf("unexpected data after top-level value")}
	}

	if problems := ValidateSchema(raw); len(problems) > 0 {
		return nil, &SchemaError{Problems: problems}
	}

	doc := fromRaw(raw.(map[string]any))
	if problems := CheckIntegrity(doc); len(problems) > 0 {
		return nil, &SchemaError{Problems: problems}
	}
	return doc, nil
}

// Read parses a board document from r.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading board document: %w", err)
	}
	return Parse(data)
}

// LoadFile parses the board document stored at path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// fromRaw builds a typed document from a decoded value that has already
// passed ValidateSchema.
func fromRaw(raw map[string]any) *Document {
	doc := &Document{
		ID:      raw["id"].(string),
		Title:   raw["title"].(string),
		Columns: []ColumnDocument{},
	}
	for _, c := range raw["columns"].([]any) {
		col := c.(map[string]any)
		cd := ColumnDocument{
			ID:    col["id"].(string),
			Title: col["title"].(string),
			Tasks: []TaskDocument{},
		}
		for _, t := range col["tasks"].([]any) {
			task := t.(map[string]any)
			desc, _ := task["description"].(string)
			cd.Tasks = append(cd.Tasks, TaskDocument{
				ID:          task["id"].(string),
				Title:       taskText(task),
				Description: desc,
			})
		}
		doc.Columns = append(doc.Columns, cd)
	}
	return doc
}

// taskText prefers a non-empty "title" and falls back to the legacy
// "content" field.
func taskText(task map[string]any) string {
	title, titleOK := task["title"].(string)
	if titleOK && title != "" {
		return title
	}
	if content, ok := task["content"].(string); ok {
		return content
	}
	return title
}
