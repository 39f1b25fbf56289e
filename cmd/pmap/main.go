// Package main provides the pmap CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/matsen/prayermap/internal/config"
	"github.com/matsen/prayermap/internal/journal"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// journalPath and configPath override the configured locations.
var (
	journalPath string
	configPath  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pmap",
	Short: "Mind map for a prayer journal",
	Long: `pmap lays out a prayer journal as a mind map.

Prayer lists (or the people named on cards) form a ring of categories
around a central root, with each card attached to its category. The map
is relaxed with a force-directed simulation and framed to fit the view.

The journal is only read. Supported snapshots: the app's JSON export,
JSONL (one list per line) and SQLite.
All commands output JSON by default; use --human for readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&journalPath, "journal", "", "Journal snapshot (.json, .jsonl, .db); overrides journal_path")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/pmap/config.yml)")
	rootCmd.Version = Version
}

// mustLoadConfig loads configuration, exits on error.
// The returned config is a copy, so flag overrides never leak into the cache.
func mustLoadConfig() *config.Config {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(config.ExpandPath(configPath))
	} else {
		cfg, err = config.LoadGlobalConfig()
	}
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	c := *cfg
	if journalPath != "" {
		c.JournalPath = config.ExpandPath(journalPath)
	}
	return &c
}

// mustLoadJournal reads the configured journal snapshot, exits on error.
func mustLoadJournal(cfg *config.Config) *journal.Snapshot {
	path, err := cfg.ValidateJournalPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		os.Exit(ExitConfigError)
	}

	snap, err := journal.Load(path)
	if err != nil {
		if errors.Is(err, journal.ErrUnsupportedFormat) {
			exitWithError(ExitConfigError, "%v", err)
		}
		exitWithError(ExitDataError, "loading journal: %v", err)
	}
	return snap
}
