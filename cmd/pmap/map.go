package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matsen/prayermap/internal/tui"
	"github.com/spf13/cobra"
)

var mapOptions mapFlags

func init() {
	mapOptions.register(mapCmd)
	rootCmd.AddCommand(mapCmd)
}

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Explore the mind map in the terminal",
	Long: `Open the mind map in an interactive terminal view.

Mouse: scroll to zoom, drag to pan, click a card to open it.
Keys:  +/- zoom, arrows or hjkl pan, f fit, m switch lists/people,
       enter open the card nearest the center, esc close it, q quit.`,
	Args: cobra.NoArgs,
	RunE: runMap,
}

func runMap(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	settings, err := mapOptions.settings(cfg)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := settings.Layout.Validate(); err != nil {
		exitWithError(ExitConfigError, "layout parameters: %v", err)
	}
	snap := mustLoadJournal(cfg)

	fit := tui.DefaultFitOptions()
	fit.MaxScale = cfg.Fit.MaxScale

	m := tui.New(snap, tui.Options{
		Mode:     settings.Mode,
		Build:    settings.Build,
		Layout:   settings.Layout,
		Zoom:     cfg.Zoom,
		Fit:      fit,
		FitDelay: cfg.FitDelay(),
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running map: %w", err)
	}
	return nil
}
