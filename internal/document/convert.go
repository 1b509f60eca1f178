package document

import (
	"strings"
	"time"

	"github.com/alexanderramin/kboard/internal/domain"
)

// FromBoard serializes the full board tree. IDs, titles and ordering are
// copied exactly.
func FromBoard(b *domain.Board) *Document {
	doc := &Document{
		ID:      b.ID,
		Title:   b.Title,
		Columns: make([]ColumnDocument, 0, len(b.Columns)),
	}
	for _, c := range b.Columns {
		cd := ColumnDocument{
			ID:    c.ID,
			Title: c.Title,
			Tasks: make([]TaskDocument, 0, len(c.Tasks)),
		}
		for _, t := range c.Tasks {
			cd.Tasks = append(cd.Tasks, TaskDocument{
				ID:          t.ID,
				Title:       t.Title,
				Description: t.Description,
			})
		}
		doc.Columns = append(doc.Columns, cd)
	}
	return doc
}

// ToBoard rebuilds a board from a document, preserving every ID and the
// stored order. Call Parse (or CheckIntegrity) first; ToBoard trusts its input.
func ToBoard(doc *Document) *domain.Board {
	b := &domain.Board{
		ID:      doc.ID,
		Title:   doc.Title,
		Columns: make([]*domain.Column, 0, len(doc.Columns)),
	}
	for _, cd := range doc.Columns {
		col := &domain.Column{
			ID:    cd.ID,
			Title: cd.Title,
			Tasks: make([]*domain.Task, 0, len(cd.Tasks)),
		}
		for _, td := range cd.Tasks {
			col.Tasks = append(col.Tasks, &domain.Task{
				ID:          td.ID,
				Title:       td.Title,
				Description: td.Description,
			})
		}
		b.AttachColumn(col)
	}
	return b
}

const exportDateLayout = "2006-01-02"

// ExportFileName returns the file name for an exported board. A blank base
// becomes kboard-YYYY-MM-DD, and a ".json" suffix is added when missing.
func ExportFileName(base string, now time.Time) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return "kboard-" + now.Format(exportDateLayout) + ".json"
	}
	if strings.HasSuffix(base, ".json") {
		return base
	}
	return base + ".json"
}
