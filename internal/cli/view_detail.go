package cli

import (
	"github.com/alexanderramin/kboard/internal/cli/formatter"
	"github.com/alexanderramin/kboard/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// detailView shows one task's full description in a scrollable viewport.
type detailView struct {
	state  *SharedState
	taskID string
	vp     viewport.Model
}

func newDetailView(state *SharedState, task *domain.Task) *detailView {
	vp := viewport.New(max(state.Width, 40), state.ContentHeight())
	v := &detailView{state: state, taskID: task.ID, vp: vp}
	v.load()
	return v
}

func (v *detailView) load() {
	task, _ := v.state.App.Board.Board().FindTask(v.taskID)
	if task == nil {
		v.vp.SetContent(formatter.Dim("This task no longer exists."))
		return
	}
	v.vp.SetContent(formatter.FormatTaskDetail(task))
}

func (v *detailView) ID() ViewID    { return ViewDetail }
func (v *detailView) Title() string { return "Task" }
func (v *detailView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "scroll")),
	}
}

func (v *detailView) Init() tea.Cmd { return nil }

func (v *detailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.vp.Width = max(msg.Width, 40)
		v.vp.Height = v.state.ContentHeight()
		return v, nil
	case refreshViewMsg, statusMsg:
		v.load()
		return v, nil
	case tea.KeyMsg:
		if msg.String() == "q" {
			return v, popView()
		}
	}
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

func (v *detailView) View() string {
	return v.vp.View()
}
