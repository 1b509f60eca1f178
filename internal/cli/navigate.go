package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// refreshViewMsg asks every view on the stack to re-read the board.
type refreshViewMsg struct{}

// statusMsg reports the outcome of a board action in the status line.
type statusMsg struct {
	text  string
	isErr bool
	// selectTaskID moves the board cursor to this task, if it is visible.
	selectTaskID string
}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel handles it atomically: pop the wizard view, then run nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// emit wraps an already computed message in a tea.Cmd.
func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
