package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/kboard/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newColumnCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "column",
		Aliases: []string{"col"},
		Short:   "Manage board columns",
	}

	cmd.AddCommand(
		newColumnAddCmd(app),
		newColumnRenameCmd(app),
		newColumnRemoveCmd(app),
		newColumnListCmd(app),
	)

	return cmd
}

func newColumnAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add TITLE",
		Short: "Append a column to the right of the board",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := app.Board.AddColumn(commandContext(cmd), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Added column %s %s", formatter.Bold(col.Title), formatter.TruncID(col.ID))))
			return nil
		},
	}
}

func newColumnRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename COLUMN TITLE",
		Short: "Rename a column",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := resolveColumn(app.Board.Board(), args[0])
			if err != nil {
				return err
			}
			old := col.Title
			if err := app.Board.RenameColumn(commandContext(cmd), col.ID, strings.Join(args[1:], " ")); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Renamed column %s to %s", old, formatter.Bold(col.Title))))
			return nil
		},
	}
}

func newColumnRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm COLUMN",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a column and every task in it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := resolveColumn(app.Board.Board(), args[0])
			if err != nil {
				return err
			}
			if len(col.Tasks) > 0 && !yes {
				ok, err := app.confirm(fmt.Sprintf("Delete column %q and its %d task(s)?", col.Title, len(col.Tasks)))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}
			n := len(col.Tasks)
			if err := app.Board.RemoveColumn(commandContext(cmd), col.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Deleted column %s (%d task(s) removed)", col.Title, n)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newColumnListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List columns in board order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatColumnList(app.Board.Board()))
			return nil
		},
	}
}
