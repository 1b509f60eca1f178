package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

// Flag names read by Load.
const (
	FlagConfig    = "config"
	FlagDB        = "db"
	FlagExportDir = "export-dir"
)

// Load resolves settings from defaults, config files, the environment and
// the given flag set. Only flags the user actually set override earlier
// sources. A nil flag set is allowed.
func Load(flags *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	userFile, explicit := userConfigFile(flags)
	if userFile != "" {
		err := loadConfigFile(cfg, userFile)
		switch {
		case err == nil:
			cfg.File = userFile
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("loading config file %s: %w", userFile, err)
		}
	}

	if _, err := os.Stat(projectConfigFile); err == nil {
		if err := loadConfigFile(cfg, projectConfigFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	if flags != nil {
		if v, ok := changedString(flags, FlagDB); ok {
			cfg.DBPath = v
		}
		if v, ok := changedString(flags, FlagExportDir); ok {
			cfg.ExportDir = v
		}
	}

	finalize(cfg)
	return cfg, nil
}

func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// userConfigFile returns the user config path and whether it was named
// explicitly. An explicit file must exist.
func userConfigFile(flags *pflag.FlagSet) (string, bool) {
	if flags != nil {
		if v, ok := changedString(flags, FlagConfig); ok && v != "" {
			return expandPath(v), true
		}
	}
	if v := os.Getenv("KBOARD_CONFIG"); v != "" {
		return expandPath(v), true
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(home, configDirName, userConfigFileName), false
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("KBOARD_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("KBOARD_EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}
	if v := os.Getenv("KBOARD_BOARD_TITLE"); strings.TrimSpace(v) != "" {
		cfg.BoardTitle = v
	}
	if v, ok := os.LookupEnv("KBOARD_HISTORY_FILE"); ok {
		cfg.HistoryFile = v
	}
	if v := os.Getenv("KBOARD_LOG_USE_CASES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("KBOARD_LOG_USE_CASES: %w", err)
		}
		cfg.LogUseCases = b
	}
	return nil
}

func changedString(flags *pflag.FlagSet, name string) (string, bool) {
	f := flags.Lookup(name)
	if f == nil || !f.Changed {
		return "", false
	}
	return f.Value.String(), true
}

// finalize expands paths and restores defaults for blank values.
func finalize(cfg *Config) {
	if strings.TrimSpace(cfg.BoardTitle) == "" {
		cfg.BoardTitle = DefaultBoardTitle
	}
	cfg.BoardTitle = strings.TrimSpace(cfg.BoardTitle)
	if cfg.ExportDir == "" {
		cfg.ExportDir = DefaultExportDir
	}
	if cfg.DBPath != ":memory:" {
		cfg.DBPath = expandPath(cfg.DBPath)
	}
	cfg.ExportDir = expandPath(cfg.ExportDir)
	cfg.HistoryFile = expandPath(cfg.HistoryFile)
}
