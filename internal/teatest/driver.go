// Package teatest drives bubbletea models synchronously in tests.
//
// Instead of running a tea.Program, the Driver calls Update directly and
// executes every returned Cmd in turn, feeding the resulting messages back
// into the model until nothing is left. Keys pressed in a test therefore
// have fully settled (board mutated, views pushed or popped) by the time
// the next line of the test runs.
//
// Cmds that block on timers, such as cursor blinks inside huh forms, are
// abandoned after a short timeout.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds the chain of Cmd -> Msg -> Cmd a single event may cause.
const MaxDrainDepth = 100

// cmdTimeout separates message factories, which return at once, from
// timer-driven Cmds that would stall the test.
const cmdTimeout = 10 * time.Millisecond

// Driver is a synchronous harness around a tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg has been produced. The runtime
	// normally swallows that message, so the model itself may never see it.
	Quitting bool

	// Msgs records every message delivered to the model, in order.
	Msgs []tea.Msg
}

// Option configures a Driver at construction.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.T.Helper()
		d.Send(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model in a Driver. Call DrainInit to run the model's Init.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs Init and settles every message it produces.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send delivers msg and settles the resulting Cmds. It is a no-op once the
// model has quit.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.deliver(msg, 0)
}

// PressKey sends a single printable key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// PressKeys sends each rune of keys as its own key press.
func (d *Driver) PressKeys(keys string) {
	d.T.Helper()
	for _, r := range keys {
		d.PressKey(r)
	}
}

// Type is an alias of PressKeys that reads better when filling a text field.
func (d *Driver) Type(s string) {
	d.T.Helper()
	d.PressKeys(s)
}

// Press sends a special key such as tea.KeyEnter or tea.KeyLeft.
func (d *Driver) Press(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

func (d *Driver) PressEnter() { d.T.Helper(); d.Press(tea.KeyEnter) }
func (d *Driver) PressEsc()   { d.T.Helper(); d.Press(tea.KeyEsc) }
func (d *Driver) PressCtrlC() { d.T.Helper(); d.Press(tea.KeyCtrlC) }
func (d *Driver) PressUp()    { d.T.Helper(); d.Press(tea.KeyUp) }
func (d *Driver) PressDown()  { d.T.Helper(); d.Press(tea.KeyDown) }
func (d *Driver) PressLeft()  { d.T.Helper(); d.Press(tea.KeyLeft) }
func (d *Driver) PressRight() { d.T.Helper(); d.Press(tea.KeyRight) }

// View renders the model.
func (d *Driver) View() string {
	return d.Model.View()
}

// ViewContains reports whether the rendered model contains s.
func (d *Driver) ViewContains(s string) bool {
	return strings.Contains(d.Model.View(), s)
}

func (d *Driver) deliver(msg tea.Msg, depth int) {
	d.T.Helper()
	d.Msgs = append(d.Msgs, msg)
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drain(cmd, depth+1)
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: gave up draining after %d nested commands", MaxDrainDepth)
		return
	}

	msg := runWithTimeout(cmd)
	switch m := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range m {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		d.Msgs = append(d.Msgs, m)
		updated, _ := d.Model.Update(m)
		d.Model = updated
		return
	}
	if isBlink(msg) {
		return
	}
	d.deliver(msg, depth)
}

// runWithTimeout executes cmd and returns its message, or nil if it did not
// finish within cmdTimeout.
func runWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isBlink matches the unexported cursor blink messages of bubbles/cursor,
// which would otherwise schedule an endless chain of timers.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
