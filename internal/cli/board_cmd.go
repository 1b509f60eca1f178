package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive board",
		Long: `Open the board in a full-screen terminal view. Navigate with the
arrow keys, press ? for all key bindings and q to quit. Every change
is saved as soon as it is made.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoardTUI(cmd, app)
		},
	}
}

func runBoardTUI(cmd *cobra.Command, app *App) error {
	p := tea.NewProgram(newAppModel(app),
		tea.WithAltScreen(),
		tea.WithContext(commandContext(cmd)),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running board view: %w", err)
	}
	return nil
}
