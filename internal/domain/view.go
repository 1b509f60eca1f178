package domain

import (
	"fmt"
	"sort"
	"strings"
)

type SortMode string

const (
	SortNone      SortMode = "none"
	SortTitle     SortMode = "title"
	SortTitleDesc SortMode = "title-desc"
)

// ValidSortModes lists the accepted sort modes in cycling order.
var ValidSortModes = []SortMode{SortNone, SortTitle, SortTitleDesc}

// ParseSortMode accepts a sort mode name; blank means SortNone.
func ParseSortMode(s string) (SortMode, error) {
	if s == "" {
		return SortNone, nil
	}
	for _, m := range ValidSortModes {
		if string(m) == strings.ToLower(s) {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid sort mode %q (expected none, title or title-desc)", s)
}

// Next returns the mode after m in ValidSortModes, wrapping around.
func (m SortMode) Next() SortMode {
	if m == "" {
		m = SortNone
	}
	for i, v := range ValidSortModes {
		if v == m {
			return ValidSortModes[(i+1)%len(ValidSortModes)]
		}
	}
	return SortNone
}

// Sorted reports whether m reorders tasks away from their board position.
func (m SortMode) Sorted() bool {
	return m != "" && m != SortNone
}

// ListColumnID identifies the synthetic column produced by list view.
const ListColumnID = "list"

// ViewOptions controls how a board is projected for display.
type ViewOptions struct {
	Filter string
	Sort   SortMode
	List   bool
}

// ColumnView is a read-only projection of a column. Tasks share pointers with
// the live board but the slices are copies, so reordering a view never
// reorders the board.
type ColumnView struct {
	ID    string
	Title string
	Tasks []*Task
	Total int
}

// ApplyView projects the board through filter, sort and list options.
func ApplyView(b *Board, opts ViewOptions) []ColumnView {
	views := make([]ColumnView, 0, len(b.Columns))
	query := strings.ToLower(strings.TrimSpace(opts.Filter))

	for _, c := range b.Columns {
		tasks := make([]*Task, 0, len(c.Tasks))
		for _, t := range c.Tasks {
			if query == "" || matchesFilter(t, query) {
				tasks = append(tasks, t)
			}
		}
		sortTasks(tasks, opts.Sort)
		views = append(views, ColumnView{ID: c.ID, Title: c.Title, Tasks: tasks, Total: len(c.Tasks)})
	}

	if opts.List {
		all := ColumnView{ID: ListColumnID, Title: "All Tasks"}
		for _, v := range views {
			all.Tasks = append(all.Tasks, v.Tasks...)
			all.Total += v.Total
		}
		sortTasks(all.Tasks, opts.Sort)
		return []ColumnView{all}
	}
	return views
}

func matchesFilter(t *Task, query string) bool {
	return strings.Contains(strings.ToLower(t.Title), query) ||
		strings.Contains(strings.ToLower(t.Description), query)
}

func sortTasks(tasks []*Task, mode SortMode) {
	switch mode {
	case SortTitle:
		sort.SliceStable(tasks, func(i, j int) bool {
			return strings.ToLower(tasks[i].Title) < strings.ToLower(tasks[j].Title)
		})
	case SortTitleDesc:
		sort.SliceStable(tasks, func(i, j int) bool {
			return strings.ToLower(tasks[i].Title) > strings.ToLower(tasks[j].Title)
		})
	}
}
