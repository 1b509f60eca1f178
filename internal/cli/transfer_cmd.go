package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/kboard/internal/cli/formatter"
	"github.com/alexanderramin/kboard/internal/document"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var dir string
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "export [NAME]",
		Short: "Write the board to a JSON file",
		Long: "Write the whole board to NAME.json in the export directory.\n" +
			"Without NAME the file is called kboard-YYYY-MM-DD.json.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			if toStdout {
				return app.Board.Export(ctx, cmd.OutOrStdout())
			}

			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			if !cmd.Flags().Changed("dir") {
				dir = app.Config.ExportDir
			}
			path, err := app.Board.ExportFile(ctx, dir, name, app.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Exported board to "+path))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory to write into (default from config, env KBOARD_EXPORT_DIR)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Write the JSON to standard output instead of a file")

	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the board with one read from a JSON file (\"-\" for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			var err error
			if args[0] == "-" {
				err = app.Board.Import(ctx, cmd.InOrStdin())
			} else {
				err = app.Board.ImportFile(ctx, args[0])
			}
			if err != nil {
				var se *document.SchemaError
				if errors.As(err, &se) {
					fmt.Fprintln(cmd.ErrOrStderr(), se.Detail())
				}
				return err
			}

			b := app.Board.Board()
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Imported %s: %d column(s), %d task(s)",
				formatter.Bold(b.Title), len(b.Columns), b.TaskCount())))
			return nil
		},
	}
}
