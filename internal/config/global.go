// Package config handles pmap's global configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/matsen/prayermap/internal/force"
	"github.com/matsen/prayermap/internal/mindmap"
	"github.com/matsen/prayermap/internal/validation"
	"github.com/matsen/prayermap/internal/viewport"
	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/pmap/config.yml.
type Config struct {
	JournalPath  string `yaml:"journal_path,omitempty" json:"journal_path,omitempty"`
	Mode         string `yaml:"mode,omitempty" json:"mode,omitempty" validate:"omitempty,oneof=lists people"`
	RootLabel    string `yaml:"root_label,omitempty" json:"root_label,omitempty"`
	GeneralLabel string `yaml:"general_label,omitempty" json:"general_label,omitempty"`
	HideAnswered bool   `yaml:"hide_answered,omitempty" json:"hide_answered"`

	Layout force.Params         `yaml:"layout" json:"layout"`
	Fit    FitConfig            `yaml:"fit" json:"fit"`
	Zoom   viewport.ZoomOptions `yaml:"zoom" json:"zoom"`
	View   viewport.Size        `yaml:"view" json:"view"`
}

// FitConfig extends the fit options with the auto-fit delay used by the
// interactive map.
type FitConfig struct {
	viewport.FitOptions `yaml:",inline"`
	DelayMS             int `yaml:"delay_ms" json:"delay_ms" validate:"gte=0"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "pmap"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"

	// EnvConfig overrides the config file location.
	EnvConfig = "PMAP_CONFIG"
	// EnvJournal overrides journal_path.
	EnvJournal = "PMAP_JOURNAL"
)

// ErrInvalidConfig is returned when the config file parses but fails validation.
var ErrInvalidConfig = validation.ErrInvalid

// ErrJournalNotConfigured is returned when no journal path is set anywhere.
var ErrJournalNotConfigured = errors.New("journal_path not configured")

// globalConfigCache caches the loaded global config.
var globalConfigCache *Config

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Mode:         string(mindmap.ModeLists),
		RootLabel:    mindmap.DefaultRootLabel,
		GeneralLabel: mindmap.DefaultOptions().GeneralLabel,
		Layout:       force.DefaultParams(),
		Fit: FitConfig{
			FitOptions: viewport.DefaultFitOptions(),
			DelayMS:    int(viewport.FitDelay / time.Millisecond),
		},
		Zoom: viewport.DefaultZoomOptions(),
		View: viewport.Size{Width: 800, Height: 600},
	}
}

// GlobalConfigPath returns the path to the global config file.
// PMAP_CONFIG wins; otherwise respects XDG_CONFIG_HOME, defaulting to
// ~/.config/pmap/config.yml.
func GlobalConfigPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return ExpandPath(p)
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns the defaults (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*Config, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	cfg, err := LoadFile(GlobalConfigPath())
	if err != nil {
		return nil, err
	}

	globalConfigCache = cfg
	return cfg, nil
}

// LoadFile reads the config at path on top of the defaults. Keys missing
// from the file keep their default values. An empty path or a missing
// file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing global config: %w", err)
			}
		}
	}

	if p := os.Getenv(EnvJournal); p != "" {
		cfg.JournalPath = p
	}
	if cfg.JournalPath != "" {
		cfg.JournalPath = ExpandPath(cfg.JournalPath)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// Validate checks every field against its rules.
func (c *Config) Validate() error {
	return validation.Struct(c)
}

// MapMode returns the configured grouping mode.
func (c *Config) MapMode() mindmap.Mode {
	m, err := mindmap.ParseMode(c.Mode)
	if err != nil {
		return mindmap.ModeLists
	}
	return m
}

// BuildOptions returns the graph builder options for a view of the given size.
func (c *Config) BuildOptions(size viewport.Size) mindmap.Options {
	opts := mindmap.DefaultOptions()
	opts.Center = size.Center()
	if c.RootLabel != "" {
		opts.RootLabel = c.RootLabel
	}
	if c.GeneralLabel != "" {
		opts.GeneralLabel = c.GeneralLabel
	}
	opts.HideAnswered = c.HideAnswered
	return opts
}

// FitDelay returns how long the interactive map waits before auto-fitting.
func (c *Config) FitDelay() time.Duration {
	return time.Duration(c.Fit.DelayMS) * time.Millisecond
}

// ValidateJournalPath returns the configured journal path after validation.
func (c *Config) ValidateJournalPath() (string, error) {
	if c.JournalPath == "" {
		return "", ErrJournalNotConfigured
	}
	return c.JournalPath, nil
}

// HelpfulConfigMessage returns a helpful message when journal_path is not configured.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No prayer journal configured.

Tip: pass --journal, set %s, or create %s:
  mkdir -p %s
  echo 'journal_path: /path/to/journal.json' > %s`,
		EnvJournal,
		configPath,
		filepath.Dir(configPath),
		configPath)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
