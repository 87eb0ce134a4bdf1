// Package config persists the few user-level settings the tools need,
// chiefly where the shared catalog database lives. The settings value
// is loaded once in main and passed to whatever needs it; nothing else
// holds path state.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// ErrNotConfigured means no database directory has been chosen yet.
var ErrNotConfigured = errors.New("no database folder configured; run 'idioms set-db' first")

// Settings is the on-disk settings file plus environment overrides.
type Settings struct {
	DBDir       string  `yaml:"db_dir" env:"IDIOM_DB_DIR"`
	ThresholdEN float64 `yaml:"threshold_en" env:"IDIOM_THRESHOLD_EN" env-default:"0.60"`
	ThresholdHE float64 `yaml:"threshold_he" env:"IDIOM_THRESHOLD_HE" env-default:"0.60"`
}

// DefaultPath returns the settings file location under the user config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "idiom-ledger", "settings.yaml"), nil
}

// Load reads the settings file if it exists, then applies environment
// overrides. A missing file is not an error; environment variables
// alone can configure everything.
func Load(path string) (Settings, error) {
	var s Settings
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &s); err != nil {
			return Settings{}, fmt.Errorf("read settings %s: %w", path, err)
		}
		return s, nil
	}
	if err := cleanenv.ReadEnv(&s); err != nil {
		return Settings{}, fmt.Errorf("read settings from environment: %w", err)
	}
	return s, nil
}

// Save writes the settings file, creating its directory if needed.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// DBPath returns the full path of the catalog database file, or
// ErrNotConfigured when no directory has been chosen.
func (s Settings) DBPath() (string, error) {
	if s.DBDir == "" {
		return "", ErrNotConfigured
	}
	return filepath.Join(s.DBDir, "idioms.db"), nil
}

// ExportPath returns the default CSV export location, next to the
// database so the sync folder carries it too.
func (s Settings) ExportPath() (string, error) {
	if s.DBDir == "" {
		return "", ErrNotConfigured
	}
	return filepath.Join(s.DBDir, "idioms_export.csv"), nil
}
