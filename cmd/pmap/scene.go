package main

import (
	"context"
	"errors"

	"github.com/matsen/prayermap/internal/config"
	"github.com/matsen/prayermap/internal/mindmap"
	"github.com/matsen/prayermap/internal/validation"
	"github.com/matsen/prayermap/internal/viz"
	"github.com/spf13/cobra"
)

// mapFlags are the map-shaping flags shared by layout, viz and replay.
// Zero values fall back to the configuration.
type mapFlags struct {
	mode         string
	width        float64
	height       float64
	hideAnswered bool
}

func (f *mapFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mode, "mode", "", "Group cards by lists or people (default from config)")
	cmd.Flags().Float64Var(&f.width, "width", 0, "View width (default from config)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "View height (default from config)")
	cmd.Flags().BoolVar(&f.hideAnswered, "hide-answered", false, "Leave answered cards off the map")
}

// settings merges the flags over cfg.
func (f *mapFlags) settings(cfg *config.Config) (viz.Settings, error) {
	mode := cfg.MapMode()
	if f.mode != "" {
		m, err := mindmap.ParseMode(f.mode)
		if err != nil {
			return viz.Settings{}, err
		}
		mode = m
	}

	size := cfg.View
	if f.width > 0 {
		size.Width = f.width
	}
	if f.height > 0 {
		size.Height = f.height
	}

	build := cfg.BuildOptions(size)
	if f.hideAnswered {
		build.HideAnswered = true
	}

	return viz.Settings{
		Mode:   mode,
		Size:   size,
		Build:  build,
		Layout: cfg.Layout,
		Fit:    cfg.Fit.FitOptions,
	}, nil
}

// mustBuildScene loads the journal and lays out the map, exits on error.
func mustBuildScene(ctx context.Context, f *mapFlags) *viz.Scene {
	cfg := mustLoadConfig()
	settings, err := f.settings(cfg)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	snap := mustLoadJournal(cfg)

	if ctx == nil {
		ctx = context.Background()
	}
	scene, err := viz.BuildScene(ctx, snap, settings)
	if err != nil {
		if errors.Is(err, validation.ErrInvalid) {
			exitWithError(ExitConfigError, "%v", err)
		}
		exitWithError(ExitError, "%v", err)
	}
	return scene
}
