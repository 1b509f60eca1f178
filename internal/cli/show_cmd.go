package cli

import (
	"fmt"

	"github.com/alexanderramin/kboard/internal/cli/formatter"
	"github.com/alexanderramin/kboard/internal/domain"
	"github.com/spf13/cobra"
)

type showOptions struct {
	filter string
	sort   domain.SortMode
	list   bool
}

func newShowCmd(app *App) *cobra.Command {
	var opts showOptions

	cmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"ls"},
		Short:   "Print the board",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderBoard(cmd, app, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.filter, "filter", "f", "", "Only show tasks whose title or description contains this text")
	cmd.Flags().VarP(newSortFlag(&opts.sort), "sort", "s", "Sort tasks within columns ("+sortModeNames()+")")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "Show all tasks as one flat list")

	return cmd
}

func renderBoard(cmd *cobra.Command, app *App, opts showOptions) error {
	b := app.Board.Board()
	viewOpts := domain.ViewOptions{Filter: opts.filter, Sort: opts.sort, List: opts.list}
	views := domain.ApplyView(b, viewOpts)

	out := cmd.OutOrStdout()
	if opts.list {
		fmt.Fprintln(out, formatter.Header(b.Title))
		if summary := formatter.ViewSummary(viewOpts); summary != "" {
			fmt.Fprintln(out, formatter.Dim(summary))
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, formatter.FormatTaskTable(views[0].Tasks))
	} else {
		fmt.Fprint(out, formatter.FormatBoard(b.Title, views, viewOpts))
	}

	saved, err := app.Board.LastSaved(commandContext(cmd))
	if err != nil {
		return err
	}
	if !saved.IsZero() {
		fmt.Fprintln(out, formatter.Dim("Last saved "+saved.Local().Format(lastSavedLayout)))
	}
	return nil
}

const lastSavedLayout = "2006-01-02 15:04"
