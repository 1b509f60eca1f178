package cli

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/alexanderramin/kboard/internal/config"
	"github.com/alexanderramin/kboard/internal/repository"
	"github.com/alexanderramin/kboard/internal/service"
	"github.com/spf13/cobra"
)

// App holds the board service and the settings CLI commands run against.
type App struct {
	Board  service.BoardService
	Config *config.Config
	Logger *slog.Logger

	// Open builds the board service from resolved settings. It is only
	// called when Board is nil, after flags have been parsed.
	Open func(cfg *config.Config) (service.BoardService, error)

	// IsInteractive reports whether stdin is a terminal; the bare command
	// launches the TUI only when it returns true.
	IsInteractive func() bool

	// Confirm overrides the terminal yes/no prompt used by destructive commands.
	Confirm func(prompt string) (bool, error)

	// Now is the clock used for export file names.
	Now func() time.Time

	// LoadResult describes how the board was obtained for this run.
	LoadResult *service.LoadResult
}

// NewRootCmd creates the top-level "kboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "kboard",
		Short: "A personal kanban board for the terminal",
		Long: "kboard keeps a single kanban board of columns and tasks.\n" +
			"Run it without arguments in a terminal to open the interactive board.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return app.prepare(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runBoardTUI(cmd, app)
			}
			return renderBoard(cmd, app, showOptions{})
		},
	}

	root.PersistentFlags().String(config.FlagDB, "", "Path to the board database (env KBOARD_DB)")
	root.PersistentFlags().String(config.FlagConfig, "", "Path to a config file (default ~/.kboard/config.toml)")
	root.PersistentFlags().String(config.FlagExportDir, "", "Default directory for exported files (env KBOARD_EXPORT_DIR)")
	root.PersistentFlags().Bool(flagEphemeral, false, "Keep the board in memory only; nothing is read or saved")

	root.AddCommand(
		newShowCmd(app),
		newBoardCmd(app),
		newColumnCmd(app),
		newTaskCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newResetCmd(app),
	)

	return root
}

const flagEphemeral = "ephemeral"

// prepare resolves settings, opens storage and loads the board once.
func (app *App) prepare(cmd *cobra.Command) error {
	if app.Board == nil {
		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		app.Config = cfg
		svc, err := app.openBoard(cmd, cfg)
		if err != nil {
			return err
		}
		app.Board = svc
	}
	if app.Config == nil {
		app.Config = config.Defaults()
	}
	if app.Now == nil {
		app.Now = time.Now
	}

	if app.Board.Board() != nil {
		return nil
	}
	res, err := app.Board.Load(commandContext(cmd))
	if err != nil {
		return err
	}
	app.LoadResult = res
	return nil
}

func (app *App) openBoard(cmd *cobra.Command, cfg *config.Config) (service.BoardService, error) {
	if ephemeral, _ := cmd.Flags().GetBool(flagEphemeral); ephemeral {
		return service.NewBoardService(repository.NewMemoryBoardStore(), service.BoardOptions{
			DefaultTitle: cfg.BoardTitle,
			Logger:       app.Logger,
		}), nil
	}
	if app.Open == nil {
		return nil, errors.New("no board storage configured")
	}
	return app.Open(cfg)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
