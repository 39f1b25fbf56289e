package main

import (
	"fmt"
	"strings"

	"github.com/matsen/prayermap/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key]",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration: defaults, overlaid by the config
file, overlaid by PMAP_JOURNAL and --journal.

Usage:
  pmap config                 # Show all config
  pmap config path            # Config file location
  pmap config journal-path    # Get a specific value
  pmap config layout          # Get a whole section

Keys:
  path, journal-path, mode, root-label, general-label, hide-answered,
  layout, fit, zoom, view`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

// ConfigResponse is the response for pmap config.
type ConfigResponse struct {
	Path   string         `json:"path"`
	Config *config.Config `json:"config"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	path := configPath
	if path == "" {
		path = config.GlobalConfigPath()
	}

	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("# %s\n", path)
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			fmt.Print(string(out))
		} else {
			outputJSON(ConfigResponse{Path: path, Config: cfg})
		}
		return nil
	}

	key := normalizeKey(args[0])
	var value interface{}
	switch key {
	case "path":
		value = path
	case "journal-path":
		value = cfg.JournalPath
	case "mode":
		value = cfg.Mode
	case "root-label":
		value = cfg.RootLabel
	case "general-label":
		value = cfg.GeneralLabel
	case "hide-answered":
		value = cfg.HideAnswered
	case "layout":
		value = cfg.Layout
	case "fit":
		value = cfg.Fit
	case "zoom":
		value = cfg.Zoom
	case "view":
		value = cfg.View
	default:
		exitWithError(ExitError, "unknown configuration key: %s", args[0])
	}

	if humanOutput {
		switch v := value.(type) {
		case string, bool:
			fmt.Println(v)
		default:
			out, err := yaml.Marshal(v)
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			fmt.Print(string(out))
		}
		return nil
	}
	return outputJSON(map[string]interface{}{strings.ReplaceAll(key, "-", "_"): value})
}

// normalizeKey converts key formats (journal-path, journal_path, Journal_Path) to consistent format
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
