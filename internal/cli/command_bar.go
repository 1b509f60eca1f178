package cli

import (
	"sort"
	"strings"

	"github.com/alexanderramin/kboard/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const commandPrompt = "kboard ❯ "

// commandBar is the ':' line at the bottom of the board view. It runs kboard
// subcommands against the open board.
type commandBar struct {
	input   textinput.Model
	state   *SharedState
	focused bool

	history    []string
	historyIdx int

	// Full command lines offered as completions, e.g. "task move".
	completions []string
}

func newCommandBar(state *SharedState) commandBar {
	ti := textinput.New()
	ti.Prompt = ""
	ti.ShowSuggestions = true
	ti.CharLimit = 500
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	var path string
	if state.App.Config != nil {
		path = state.App.Config.HistoryFile
	}
	hist := loadHistory(path)

	return commandBar{
		input:       ti,
		state:       state,
		history:     hist,
		historyIdx:  len(hist),
		completions: commandLines(state.App),
	}
}

func (c *commandBar) Focus() tea.Cmd {
	c.focused = true
	return c.input.Focus()
}

func (c *commandBar) Blur() {
	c.focused = false
	c.input.Blur()
	c.input.Reset()
	c.input.SetSuggestions(nil)
}

func (c *commandBar) Focused() bool {
	return c.focused
}

func (c *commandBar) SetWidth(w int) {
	c.input.Width = max(w-len([]rune(commandPrompt))-1, 10)
}

// Update handles a key while the bar has focus.
func (c *commandBar) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		line := strings.TrimSpace(c.input.Value())
		c.Blur()
		if line == "" {
			return nil
		}
		c.addHistory(line)
		return c.execute(line)

	case tea.KeyUp:
		c.historyUp()
		return nil

	case tea.KeyDown:
		c.historyDown()
		return nil

	case tea.KeyEsc:
		c.Blur()
		return nil

	default:
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		c.updateSuggestions()
		return cmd
	}
}

// UpdateNonKey feeds cursor blinks to the input.
func (c *commandBar) UpdateNonKey(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *commandBar) View() string {
	prompt := formatter.StylePurple.Render("kboard") + " " + formatter.Dim("❯") + " "
	if !c.focused {
		return prompt + formatter.Dim("press : to type a command")
	}
	return prompt + c.input.View()
}

// execute runs line and reports the result. Output longer than one line
// opens in its own view.
func (c *commandBar) execute(line string) tea.Cmd {
	out, err := runCommandLine(c.state.App, line)
	if err != nil {
		text := "Error: " + err.Error()
		if out != "" && !strings.Contains(out, err.Error()) {
			text = firstLine(out) + " " + text
		}
		return emit(statusMsg{text: text, isErr: true})
	}

	if strings.Contains(out, "\n") {
		return tea.Batch(
			pushView(newOutputView(c.state, line, out)),
			emit(refreshViewMsg{}),
		)
	}
	if out == "" {
		out = "Done"
	}
	return emit(statusMsg{text: out})
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func (c *commandBar) addHistory(line string) {
	if n := len(c.history); n == 0 || c.history[n-1] != line {
		c.history = append(c.history, line)
	}
	c.historyIdx = len(c.history)

	if c.state.App.Config != nil {
		appendHistory(c.state.App.Config.HistoryFile, line)
	}
}

func (c *commandBar) historyUp() {
	if c.historyIdx > 0 {
		c.historyIdx--
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	}
}

func (c *commandBar) historyDown() {
	if c.historyIdx < len(c.history)-1 {
		c.historyIdx++
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	} else {
		c.historyIdx = len(c.history)
		c.input.SetValue("")
	}
}

// updateSuggestions offers completions for the first two words only. The
// text input matches suggestions against the whole value, so each one is a
// full command line.
func (c *commandBar) updateSuggestions() {
	text := c.input.Value()
	if text == "" || len(strings.Fields(text)) > 2 {
		c.input.SetSuggestions(nil)
		return
	}
	c.input.SetSuggestions(filterSuggestions(c.completions, text))
}

// commandLines lists every command a user can type in the bar: top-level
// names plus "parent child" pairs, taken from the cobra tree.
func commandLines(app *App) []string {
	root := NewRootCmd(app)

	var lines []string
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "board" || cmd.Name() == "help" || cmd.Name() == "completion" {
			continue
		}
		lines = append(lines, cmd.Name())
		for _, sub := range cmd.Commands() {
			if !sub.Hidden {
				lines = append(lines, cmd.Name()+" "+sub.Name())
			}
		}
	}
	sort.Strings(lines)
	return lines
}

// filterSuggestions returns items from pool that start with prefix (case-insensitive).
func filterSuggestions(pool []string, prefix string) []string {
	if prefix == "" {
		return pool
	}
	lp := strings.ToLower(prefix)
	var result []string
	for _, s := range pool {
		if strings.HasPrefix(strings.ToLower(s), lp) {
			result = append(result, s)
		}
	}
	return result
}
