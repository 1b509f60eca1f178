package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/kboard/internal/cli/formatter"
	"github.com/alexanderramin/kboard/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type boardKeyMap struct {
	Left        key.Binding
	Right       key.Binding
	Up          key.Binding
	Down        key.Binding
	AddTask     key.Binding
	AddColumn   key.Binding
	Edit        key.Binding
	Describe    key.Binding
	RenameCol   key.Binding
	Delete      key.Binding
	DeleteCol   key.Binding
	Advance     key.Binding
	MovePrev    key.Binding
	MoveNext    key.Binding
	ReorderUp   key.Binding
	ReorderDown key.Binding
	Open        key.Binding
	Filter      key.Binding
	Sort        key.Binding
	List        key.Binding
	Reset       key.Binding
	Command     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "column left")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "column right")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		AddTask:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		AddColumn:   key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add column")),
		Edit:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit title")),
		Describe:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "description")),
		RenameCol:   key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "rename column")),
		Delete:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete task")),
		DeleteCol:   key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "delete column")),
		Advance:     key.NewBinding(key.WithKeys("enter", "c"), key.WithHelp("enter/c", "advance")),
		MovePrev:    key.NewBinding(key.WithKeys("<", "H"), key.WithHelp("</H", "move left")),
		MoveNext:    key.NewBinding(key.WithKeys(">", "L"), key.WithHelp(">/L", "move right")),
		ReorderUp:   key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "reorder up")),
		ReorderDown: key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "reorder down")),
		Open:        key.NewBinding(key.WithKeys("o", " "), key.WithHelp("o", "details")),
		Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		List:        key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "list view")),
		Reset:       key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset board")),
		Command:     key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddTask, k.Advance, k.MovePrev, k.MoveNext, k.Filter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.Open},
		{k.AddTask, k.Edit, k.Describe, k.Delete, k.Advance},
		{k.MovePrev, k.MoveNext, k.ReorderUp, k.ReorderDown},
		{k.AddColumn, k.RenameCol, k.DeleteCol, k.Reset},
		{k.Filter, k.Sort, k.List, k.Command, k.Help, k.Quit},
	}
}

// boardView shows the projected board with a column/task cursor.
type boardView struct {
	state *SharedState
	keys  boardKeyMap

	views  []domain.ColumnView
	col    int
	row    int
	offset int // first visible column when the board is wider than the terminal

	// selectedID keeps the cursor on the same task across refreshes.
	selectedID string
}

func newBoardView(state *SharedState) *boardView {
	v := &boardView{state: state, keys: defaultBoardKeyMap()}
	v.refresh()
	return v
}

func (v *boardView) ID() ViewID                { return ViewBoard }
func (v *boardView) Title() string             { return v.state.App.Board.Board().Title }
func (v *boardView) ShortHelp() []key.Binding  { return v.keys.ShortHelp() }
func (v *boardView) FullHelp() [][]key.Binding { return v.keys.FullHelp() }

func (v *boardView) Init() tea.Cmd { return nil }

// refresh re-projects the board and repositions the cursor.
func (v *boardView) refresh() {
	v.views = domain.ApplyView(v.state.App.Board.Board(), v.state.Opts)

	if v.selectedID != "" {
		for ci, cv := range v.views {
			for ri, t := range cv.Tasks {
				if t.ID == v.selectedID {
					v.col, v.row = ci, ri
					v.scrollToCursor()
					return
				}
			}
		}
	}
	v.clamp()
}

func (v *boardView) clamp() {
	v.col = max(min(v.col, len(v.views)-1), 0)
	if n := v.visibleTaskCount(); v.row >= n {
		v.row = n - 1
	}
	v.row = max(v.row, 0)
	v.selectedID = ""
	if t := v.selectedTask(); t != nil {
		v.selectedID = t.ID
	}
	v.scrollToCursor()
}

func (v *boardView) visibleTaskCount() int {
	if v.col < 0 || v.col >= len(v.views) {
		return 0
	}
	return len(v.views[v.col].Tasks)
}

func (v *boardView) selectedTask() *domain.Task {
	if v.col < 0 || v.col >= len(v.views) {
		return nil
	}
	tasks := v.views[v.col].Tasks
	if v.row < 0 || v.row >= len(tasks) {
		return nil
	}
	return tasks[v.row]
}

// selectedColumn returns the live column under the cursor. In list view it
// is the selected task's column, or the first column when nothing is selected.
func (v *boardView) selectedColumn() *domain.Column {
	b := v.state.App.Board.Board()
	if v.state.Opts.List {
		if t := v.selectedTask(); t != nil {
			return t.Column()
		}
		if len(b.Columns) > 0 {
			return b.Columns[0]
		}
		return nil
	}
	if v.col < 0 || v.col >= len(v.views) {
		return nil
	}
	return b.FindColumn(v.views[v.col].ID)
}

func (v *boardView) moveCursor(dCol, dRow int) {
	v.col += dCol
	v.row += dRow
	v.clamp()
}

func (v *boardView) visibleColumns() int {
	if v.state.Width <= 0 {
		return max(len(v.views), 1)
	}
	return max(v.state.Width/(formatter.ColumnWidth+2), 1)
}

func (v *boardView) scrollToCursor() {
	n := v.visibleColumns()
	if v.col < v.offset {
		v.offset = v.col
	}
	if v.col >= v.offset+n {
		v.offset = v.col - n + 1
	}
	v.offset = max(min(v.offset, len(v.views)-n), 0)
}

func (v *boardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.scrollToCursor()
		return v, nil
	case refreshViewMsg:
		v.refresh()
		return v, nil
	case statusMsg:
		if msg.selectTaskID != "" {
			v.selectedID = msg.selectTaskID
		}
		v.refresh()
		return v, nil
	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *boardView) handleKey(msg tea.KeyMsg) tea.Cmd {
	app := v.state.App
	task := v.selectedTask()

	switch {
	case key.Matches(msg, v.keys.Left):
		v.moveCursor(-1, 0)
	case key.Matches(msg, v.keys.Right):
		v.moveCursor(1, 0)
	case key.Matches(msg, v.keys.Up):
		v.moveCursor(0, -1)
	case key.Matches(msg, v.keys.Down):
		v.moveCursor(0, 1)

	case key.Matches(msg, v.keys.AddTask):
		col := v.selectedColumn()
		if col == nil {
			return emit(statusMsg{text: "Add a column first (A).", isErr: true})
		}
		var title string
		columnID := col.ID
		return startWizardCmd(v.state, "New task in "+col.Title, newTitleForm("Task title", "What needs doing?", &title),
			func() tea.Cmd { return emit(applyAddTask(app, columnID, title)) })

	case key.Matches(msg, v.keys.AddColumn):
		var title string
		return startWizardCmd(v.state, "New column", newTitleForm("Column title", "e.g. Review", &title),
			func() tea.Cmd { return emit(applyAddColumn(app, title)) })

	case key.Matches(msg, v.keys.Edit):
		if task == nil {
			return nil
		}
		title, taskID := task.Title, task.ID
		return startWizardCmd(v.state, "Edit task", newTitleForm("Task title", "", &title),
			func() tea.Cmd { return emit(applyRenameTask(app, taskID, title)) })

	case key.Matches(msg, v.keys.Describe):
		if task == nil {
			return nil
		}
		desc, taskID := task.Description, task.ID
		return startWizardCmd(v.state, "Description of "+task.Title,
			newTextForm("Description", "Leave blank to clear.", &desc),
			func() tea.Cmd { return emit(applyEditDescription(app, taskID, desc)) })

	case key.Matches(msg, v.keys.RenameCol):
		col := v.selectedColumn()
		if col == nil {
			return nil
		}
		title, columnID := col.Title, col.ID
		return startWizardCmd(v.state, "Rename column", newTitleForm("Column title", "", &title),
			func() tea.Cmd { return emit(applyRenameColumn(app, columnID, title)) })

	case key.Matches(msg, v.keys.Delete):
		if task == nil {
			return nil
		}
		return emit(applyRemoveTask(app, task.ID))

	case key.Matches(msg, v.keys.DeleteCol):
		col := v.selectedColumn()
		if col == nil {
			return nil
		}
		columnID := col.ID
		if len(col.Tasks) == 0 {
			return emit(applyRemoveColumn(app, columnID))
		}
		var ok bool
		prompt := fmt.Sprintf("Delete column %q and its %d task(s)?", col.Title, len(col.Tasks))
		return startWizardCmd(v.state, "Delete column", newConfirmForm(prompt, &ok), func() tea.Cmd {
			if !ok {
				return emit(statusMsg{text: "Cancelled."})
			}
			return emit(applyRemoveColumn(app, columnID))
		})

	case key.Matches(msg, v.keys.Advance):
		if task == nil {
			return nil
		}
		return emit(applyPropagate(app, task.ID))

	case key.Matches(msg, v.keys.MovePrev), key.Matches(msg, v.keys.MoveNext):
		if task == nil {
			return nil
		}
		b := app.Board.Board()
		dest := b.NextColumn(task.Column().ID)
		if key.Matches(msg, v.keys.MovePrev) {
			dest = b.PrevColumn(task.Column().ID)
		}
		if dest == nil {
			return nil
		}
		return emit(applyMove(app, task.ID, dest.ID))

	case key.Matches(msg, v.keys.ReorderUp), key.Matches(msg, v.keys.ReorderDown):
		if task == nil {
			return nil
		}
		if v.state.Opts.List || v.state.Opts.Sort.Sorted() {
			return emit(statusMsg{text: "Reordering is unavailable while sorted or in list view.", isErr: true})
		}
		idx := task.Column().IndexOf(task.ID)
		if key.Matches(msg, v.keys.ReorderUp) {
			idx--
		} else {
			idx++
		}
		if idx < 0 || idx >= len(task.Column().Tasks) {
			return nil
		}
		return emit(applyReorder(app, task.ID, idx))

	case key.Matches(msg, v.keys.Open):
		if task == nil {
			return nil
		}
		return pushView(newDetailView(v.state, task))

	case key.Matches(msg, v.keys.Filter):
		query := v.state.Opts.Filter
		return startWizardCmd(v.state, "Filter", newFilterForm(&query), func() tea.Cmd {
			v.state.Opts.Filter = strings.TrimSpace(query)
			if v.state.Opts.Filter == "" {
				return emit(statusMsg{text: "Filter cleared"})
			}
			return emit(statusMsg{text: fmt.Sprintf("Filtering by %q", v.state.Opts.Filter)})
		})

	case key.Matches(msg, v.keys.Sort):
		v.state.Opts.Sort = v.state.Opts.Sort.Next()
		return emit(statusMsg{text: "Sort: " + string(v.state.Opts.Sort)})

	case key.Matches(msg, v.keys.List):
		v.state.Opts.List = !v.state.Opts.List
		v.col, v.offset = 0, 0
		if v.state.Opts.List {
			return emit(statusMsg{text: "List view"})
		}
		return emit(statusMsg{text: "Board view"})

	case key.Matches(msg, v.keys.Reset):
		var ok bool
		return startWizardCmd(v.state, "Reset board",
			newConfirmForm("Are you sure you want to clear the board? This cannot be undone.", &ok),
			func() tea.Cmd {
				if !ok {
					return emit(statusMsg{text: "Cancelled."})
				}
				return emit(applyClear(app))
			})
	}
	return nil
}

func (v *boardView) View() string {
	if len(v.views) == 0 {
		return "\n  " + formatter.Dim("No columns. Press A to add one.")
	}

	filtered := v.state.Opts.Filter != ""
	n := v.visibleColumns()
	end := min(v.offset+n, len(v.views))

	blocks := make([]string, 0, end-v.offset)
	for i := v.offset; i < end; i++ {
		cv := v.views[i]
		accent := formatter.ColumnAccent(i, len(v.views))
		if i == v.col {
			blocks = append(blocks, formatter.RenderActiveColumn(cv, accent, filtered, v.row))
		} else {
			blocks = append(blocks, formatter.RenderColumn(cv, accent, filtered, -1))
		}
	}

	var b strings.Builder
	if summary := formatter.ViewSummary(v.state.Opts); summary != "" {
		b.WriteString(formatter.Dim(summary))
	}
	if v.offset > 0 || end < len(v.views) {
		if b.Len() > 0 {
			b.WriteString("  ")
		}
		b.WriteString(formatter.Dim(fmt.Sprintf("columns %d-%d of %d", v.offset+1, end, len(v.views))))
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
	return b.String()
}
