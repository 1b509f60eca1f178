package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/kboard/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// kboardHuhTheme returns a huh theme matching the formatter palette.
func kboardHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

var errBlankTitle = errors.New("title cannot be empty")

// requireTitle rejects blank and whitespace-only input.
func requireTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return errBlankTitle
	}
	return nil
}

// newTitleForm asks for a single non-blank line. value holds the initial
// text and receives the answer.
func newTitleForm(title, placeholder string, value *string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Placeholder(placeholder).
			CharLimit(200).
			Validate(requireTitle).
			Value(value),
	)).WithTheme(kboardHuhTheme()).WithShowHelp(false)
}

// newTextForm asks for free text. Blank answers are allowed.
func newTextForm(title, description string, value *string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title(title).
			Description(description).
			CharLimit(2000).
			Lines(5).
			Value(value),
	)).WithTheme(kboardHuhTheme()).WithShowHelp(false)
}

// newFilterForm asks for a filter query; blank clears the filter.
func newFilterForm(value *string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Filter tasks").
			Description("Matches title or description. Leave blank to clear.").
			Value(value),
	)).WithTheme(kboardHuhTheme()).WithShowHelp(false)
}

func newConfirmForm(prompt string, value *bool) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(prompt).
			Affirmative("Yes").
			Negative("No").
			Value(value),
	)).WithTheme(kboardHuhTheme()).WithShowHelp(false)
}

// confirm asks a yes/no question on the terminal. Without a terminal there
// is nobody to ask, so it fails and points at --yes.
func (app *App) confirm(prompt string) (bool, error) {
	if app.Confirm != nil {
		return app.Confirm(prompt)
	}
	if app.IsInteractive == nil || !app.IsInteractive() {
		return false, errors.New(prompt + " Pass --yes to confirm without a prompt.")
	}
	var ok bool
	if err := newConfirmForm(prompt, &ok).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}
