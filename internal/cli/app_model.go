package cli

import (
	"strings"

	"github.com/alexanderramin/kboard/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// appModel is the root bubbletea Model for the TUI.
// It manages a view stack, a status line and the key help bar.
type appModel struct {
	state     *SharedState
	viewStack []View
	help      help.Model
	cmdBar    commandBar
	quitting  bool

	// Outcome of the last action, shown above the help bar.
	status    string
	statusErr bool
}

func newAppModel(app *App) appModel {
	state := &SharedState{App: app}

	h := help.New()
	h.Styles.ShortKey = formatter.StyleHeader
	h.Styles.ShortDesc = formatter.StyleDim
	h.Styles.FullKey = formatter.StyleHeader
	h.Styles.FullDesc = formatter.StyleDim

	m := appModel{
		state:     state,
		help:      h,
		cmdBar:    newCommandBar(state),
		viewStack: []View{newBoardView(state)},
	}
	if app.LoadResult != nil && app.LoadResult.Recovered != nil {
		m.status = "Corrupt data found, resetting board."
		m.statusErr = true
	}
	return m
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// broadcast delivers msg to every view on the stack so views underneath a
// form see mutations made through it.
func (m *appModel) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.help.Width = msg.Width
		m.cmdBar.SetWidth(msg.Width)
		return m, m.broadcast(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case refreshViewMsg:
		return m, m.broadcast(msg)

	case statusMsg:
		if msg.text != "" {
			m.status = msg.text
			m.statusErr = msg.isErr
		}
		return m, m.broadcast(msg)

	case wizardCompleteMsg:
		// Atomically pop the wizard view and execute the follow-up command.
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, tea.Batch(msg.nextCmd, func() tea.Msg { return refreshViewMsg{} })
	}

	var cmds []tea.Cmd
	if m.cmdBar.Focused() {
		cmds = append(cmds, m.cmdBar.UpdateNonKey(msg))
	}
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.cmdBar.Focused() {
		return m, m.cmdBar.Update(msg)
	}

	v := m.activeView()
	if v == nil {
		return m, nil
	}

	// Forms receive every key, including q and ?.
	if v.ID() != ViewForm {
		switch {
		case msg.String() == "q" && v.ID() == ViewBoard:
			m.quitting = true
			return m, tea.Quit

		case msg.String() == ":" && v.ID() == ViewBoard:
			m.status = ""
			m.statusErr = false
			return m, m.cmdBar.Focus()

		case msg.String() == "?":
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case msg.Type == tea.KeyEsc:
			if len(m.viewStack) > 1 {
				m.viewStack = m.viewStack[:len(m.viewStack)-1]
				return m, nil
			}
			if m.state.Opts.Filter != "" {
				m.state.Opts.Filter = ""
				return m, func() tea.Msg { return statusMsg{text: "Filter cleared"} }
			}
			return m, nil
		}
		// Any other key dismisses the previous status.
		m.status = ""
		m.statusErr = false
	}

	updated, cmd := v.Update(msg)
	m.setActiveView(updated.(View))
	return m, cmd
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader()}
	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}
	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}
	return result
}

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("kboard")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	header := title
	if len(crumbs) > 0 {
		header += " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	b := m.state.App.Board.Board()
	header += "  " + formatter.Dim("[") + formatter.StyleGreen.Render(formatter.Pluralize(b.TaskCount(), "task")) + formatter.Dim("]")

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))

	status := ""
	if m.status != "" {
		if m.statusErr {
			status = formatter.StyleRed.Render(m.status)
		} else {
			status = formatter.StyleGreen.Render(m.status)
		}
	}

	var hints string
	if v := m.activeView(); v != nil {
		if km, ok := v.(help.KeyMap); ok {
			hints = m.help.View(km)
		} else {
			hints = m.help.ShortHelpView(append(v.ShortHelp(), backBinding(len(m.viewStack) > 1)...))
		}
	}

	return sep + "\n" + status + "\n" + m.cmdBar.View() + "\n" + hints
}

func backBinding(show bool) []key.Binding {
	if !show {
		return nil
	}
	return []key.Binding{key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))}
}
