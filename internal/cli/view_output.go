package cli

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// outputView shows what a command bar command printed.
type outputView struct {
	state *SharedState
	line  string
	vp    viewport.Model
}

func newOutputView(state *SharedState, line, out string) *outputView {
	vp := viewport.New(max(state.Width, 40), state.ContentHeight())
	vp.SetContent(out)
	return &outputView{state: state, line: line, vp: vp}
}

func (v *outputView) ID() ViewID    { return ViewOutput }
func (v *outputView) Title() string { return v.line }
func (v *outputView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "scroll")),
	}
}

func (v *outputView) Init() tea.Cmd { return nil }

func (v *outputView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.vp.Width = max(msg.Width, 40)
		v.vp.Height = v.state.ContentHeight()
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

func (v *outputView) View() string {
	return v.vp.View()
}
