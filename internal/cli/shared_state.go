package cli

import "github.com/alexanderramin/kboard/internal/domain"

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// View options applied to the board: filter, sort and list mode.
	Opts domain.ViewOptions

	// Terminal dimensions
	Width  int
	Height int
}

// ContentHeight returns the rows available to the active view once the
// header and status bar are drawn.
func (s *SharedState) ContentHeight() int {
	const chrome = 6
	return max(s.Height-chrome, 3)
}
