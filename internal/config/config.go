// Package config resolves kboard settings.
//
// Settings are loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.kboard/config.toml, or the file named by --config or KBOARD_CONFIG)
// 3. Project config file (.kboard.toml in the working directory)
// 4. Environment variables (KBOARD_*)
// 5. CLI flags
//
// Each level overrides the previous one.
package config

import "path/filepath"

const (
	DefaultBoardTitle = "Kanban Board"
	DefaultExportDir  = "."

	configDirName      = ".kboard"
	userConfigFileName = "config.toml"
	projectConfigFile  = ".kboard.toml"
	defaultDBFileName  = "kboard.db"
	historyFileName    = "history"
)

// Config holds the resolved settings.
type Config struct {
	DBPath      string `toml:"db_path"`
	ExportDir   string `toml:"export_dir"`
	BoardTitle  string `toml:"board_title"`
	LogUseCases bool   `toml:"log_use_cases"`

	// HistoryFile keeps lines typed into the board view's command bar.
	// Empty disables history.
	HistoryFile string `toml:"history_file"`

	// File is the user config file that was read, if any.
	File string `toml:"-"`
}

func setDefaults(cfg *Config) {
	cfg.DBPath = filepath.Join("~", configDirName, defaultDBFileName)
	cfg.ExportDir = DefaultExportDir
	cfg.BoardTitle = DefaultBoardTitle
	cfg.LogUseCases = false
	cfg.HistoryFile = filepath.Join("~", configDirName, historyFileName)
}

// Defaults returns a Config holding only built-in defaults, with paths expanded.
func Defaults() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	finalize(cfg)
	return cfg
}
