package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Settings are process-level options read from the environment.
type Settings struct {
	DBPath      string `env:"QUEST_DB"`
	ConfigPath  string `env:"QUEST_CONFIG"`
	Addr        string `env:"QUEST_ADDR"          envDefault:"127.0.0.1:8777"`
	LogLevel    string `env:"QUEST_LOG_LEVEL"     envDefault:"info"`
	LogUseCases bool   `env:"QUEST_LOG_USE_CASES" envDefault:"false"`
	RepoDir     string `env:"QUEST_REPO"          envDefault:"."`
}

// LoadSettings parses the environment and fills the data paths with
// ~/.questgame defaults.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	if s.DBPath == "" || s.ConfigPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Settings{}, fmt.Errorf("finding home directory: %w", err)
		}
		base := filepath.Join(home, ".questgame")
		if s.DBPath == "" {
			s.DBPath = filepath.Join(base, "quest.db")
		}
		if s.ConfigPath == "" {
			s.ConfigPath = filepath.Join(base, "config.json")
		}
	}
	return s, nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (s Settings) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(s.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
