package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/kboard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// ColumnWidth is the inner width of a rendered board column.
const ColumnWidth = 28

// FormatBoard renders the projected columns side by side under the board title.
func FormatBoard(title string, views []domain.ColumnView, opts domain.ViewOptions) string {
	var b strings.Builder
	b.WriteString(Header(title))
	b.WriteString("\n")
	if summary := ViewSummary(opts); summary != "" {
		b.WriteString(Dim(summary))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(views) == 0 {
		b.WriteString(Dim("No columns. Add one with: kboard column add TITLE"))
		b.WriteString("\n")
		return b.String()
	}

	blocks := make([]string, 0, len(views))
	for i, v := range views {
		blocks = append(blocks, RenderColumn(v, ColumnAccent(i, len(views)), opts.Filter != "", -1))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
	b.WriteString("\n")
	return b.String()
}

// RenderColumn renders one column block. The task at selected, if any, is
// highlighted.
func RenderColumn(v domain.ColumnView, accent lipgloss.Color, filtered bool, selected int) string {
	return renderColumn(v, accent, filtered, selected, false)
}

// RenderActiveColumn renders a column block with a highlighted border.
func RenderActiveColumn(v domain.ColumnView, accent lipgloss.Color, filtered bool, selected int) string {
	return renderColumn(v, accent, filtered, selected, true)
}

func renderColumn(v domain.ColumnView, accent lipgloss.Color, filtered bool, selected int, active bool) string {
	border := lipgloss.NormalBorder()
	borderColor := ColorDim
	if active {
		border = lipgloss.ThickBorder()
		borderColor = accent
	}
	style := lipgloss.NewStyle().
		Border(border).
		BorderForeground(borderColor).
		Width(ColumnWidth).
		PaddingLeft(1).
		PaddingRight(1)

	lines := []string{
		lipgloss.NewStyle().Foreground(accent).Bold(true).Render(Truncate(v.Title, ColumnWidth-8)) +
			" " + Dim(columnCount(v, filtered)),
		"",
	}
	if len(v.Tasks) == 0 {
		lines = append(lines, Dim("(empty)"))
	}
	for i, t := range v.Tasks {
		lines = append(lines, taskLine(t, i == selected))
	}
	return style.Render(strings.Join(lines, "\n"))
}

func columnCount(v domain.ColumnView, filtered bool) string {
	if filtered {
		return fmt.Sprintf("(%d/%d)", len(v.Tasks), v.Total)
	}
	return fmt.Sprintf("(%d)", len(v.Tasks))
}

func taskLine(t *domain.Task, selected bool) string {
	marker := "• "
	title := Truncate(t.Title, ColumnWidth-4)
	if selected {
		marker = StyleHeader.Render("▸ ")
		title = StyleBold.Render(title)
	}
	line := marker + title
	if desc := FirstLine(t.Description); desc != "" {
		line += "\n  " + Dim(Truncate(desc, ColumnWidth-4))
	}
	return line
}

// ViewSummary describes active view options, or returns "" when none are set.
func ViewSummary(opts domain.ViewOptions) string {
	var parts []string
	if opts.Filter != "" {
		parts = append(parts, fmt.Sprintf("filter: %q", opts.Filter))
	}
	if opts.Sort.Sorted() {
		parts = append(parts, "sort: "+string(opts.Sort))
	}
	if opts.List {
		parts = append(parts, "list view")
	}
	return strings.Join(parts, " · ")
}

// FormatTaskTable renders tasks as a flat table with their owning column.
func FormatTaskTable(tasks []*domain.Task) string {
	if len(tasks) == 0 {
		return Dim("No tasks.") + "\n"
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		column := ""
		if c := t.Column(); c != nil {
			column = c.Title
		}
		rows = append(rows, []string{
			TruncID(t.ID),
			t.Title,
			column,
			Dim(Truncate(FirstLine(t.Description), 40)),
		})
	}
	return RenderTable([]string{"ID", "TITLE", "COLUMN", "DESCRIPTION"}, rows)
}

// FormatColumnList renders the board's columns in order with task counts.
func FormatColumnList(b *domain.Board) string {
	if len(b.Columns) == 0 {
		return Dim("No columns.") + "\n"
	}
	rows := make([][]string, 0, len(b.Columns))
	for i, c := range b.Columns {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			TruncID(c.ID),
			lipgloss.NewStyle().Foreground(ColumnAccent(i, len(b.Columns))).Render(c.Title),
			strconv.Itoa(len(c.Tasks)),
		})
	}
	return RenderTable([]string{"#", "ID", "TITLE", "TASKS"}, rows)
}

// FormatTaskDetail renders a single task with its column and description.
func FormatTaskDetail(t *domain.Task) string {
	var b strings.Builder
	b.WriteString(Dim("id      ") + t.ID + "\n")
	if c := t.Column(); c != nil {
		b.WriteString(Dim("column  ") + c.Title + "\n")
	}
	b.WriteString("\n")
	if t.Description == "" {
		b.WriteString(Dim("No description."))
	} else {
		b.WriteString(t.Description)
	}
	return RenderBox(t.Title, b.String())
}
