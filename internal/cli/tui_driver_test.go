package cli

import (
	"testing"

	"github.com/alexanderramin/kboard/internal/teatest"
)

// TestDriver wraps teatest.Driver with access to the appModel internals
// (view stack, board cursor, status line) the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the appModel for app at 120x40 and drains Init.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	return NewTestDriverSize(t, app, 120, 40)
}

// NewTestDriverSize is NewTestDriver with a chosen terminal size.
func NewTestDriverSize(t *testing.T, app *App, w, h int) *TestDriver {
	t.Helper()
	d := teatest.New(t, newAppModel(app), teatest.WithSize(w, h))
	d.DrainInit()
	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ActiveViewTitle returns the Title() of the top view on the stack.
func (d *TestDriver) ActiveViewTitle() string {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ""
	}
	return v.Title()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// Board returns the board view at the bottom of the stack.
func (d *TestDriver) Board() *boardView {
	d.T.Helper()
	bv, ok := d.appModel().viewStack[0].(*boardView)
	if !ok {
		d.T.Fatalf("root view is %T, not *boardView", d.appModel().viewStack[0])
	}
	return bv
}

// Cursor returns the board cursor as (column, row).
func (d *TestDriver) Cursor() (int, int) {
	bv := d.Board()
	return bv.col, bv.row
}

// SelectedTitle returns the title of the task under the cursor, or "".
func (d *TestDriver) SelectedTitle() string {
	if t := d.Board().selectedTask(); t != nil {
		return t.Title
	}
	return ""
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// Status returns the status line text and whether it reports an error.
func (d *TestDriver) Status() (string, bool) {
	m := d.appModel()
	return m.status, m.statusErr
}

// IsQuitting reports whether the app has signalled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// CmdBarFocused reports whether the ':' command bar has focus.
func (d *TestDriver) CmdBarFocused() bool {
	m := d.appModel()
	return m.cmdBar.Focused()
}
