package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/kboard/internal/cli"
	"github.com/alexanderramin/kboard/internal/config"
	"github.com/alexanderramin/kboard/internal/db"
	"github.com/alexanderramin/kboard/internal/repository"
	"github.com/alexanderramin/kboard/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var database *sql.DB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	app := &cli.App{}

	// Storage is opened after flag parsing so --db and --config apply.
	app.Open = func(cfg *config.Config) (service.BoardService, error) {
		level := slog.LevelWarn
		if cfg.LogUseCases {
			level = slog.LevelInfo
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		app.Logger = logger

		var err error
		database, err = db.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}

		var observers []service.UseCaseObserver
		if cfg.LogUseCases {
			observers = append(observers, service.NewLogUseCaseObserver(logger))
		}

		store := repository.NewSQLiteBoardStore(database)
		return service.NewBoardService(store, service.BoardOptions{
			DefaultTitle: cfg.BoardTitle,
			Logger:       logger,
		}, observers...), nil
	}

	// The bare command opens the board view only on an interactive terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
