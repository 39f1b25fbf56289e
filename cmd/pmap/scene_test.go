package main

import (
	"errors"
	"testing"

	"github.com/matsen/prayermap/internal/config"
	"github.com/matsen/prayermap/internal/mindmap"
)

func TestMapFlagsSettings(t *testing.T) {
	cfg := config.Default()
	cfg.Mode = "people"
	cfg.RootLabel = "Oração"

	tests := []struct {
		name       string
		flags      mapFlags
		wantMode   mindmap.Mode
		wantWidth  float64
		wantHeight float64
		wantHide   bool
	}{
		{"config defaults", mapFlags{}, mindmap.ModePeople, 800, 600, false},
		{"mode flag wins", mapFlags{mode: "lists"}, mindmap.ModeLists, 800, 600, false},
		{"size flags", mapFlags{width: 1280, height: 720}, mindmap.ModePeople, 1280, 720, false},
		{"width only", mapFlags{width: 300}, mindmap.ModePeople, 300, 600, false},
		{"hide answered", mapFlags{hideAnswered: true}, mindmap.ModePeople, 800, 600, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.flags.settings(cfg)
			if err != nil {
				t.Fatalf("settings() error = %v", err)
			}
			if s.Mode != tt.wantMode {
				t.Errorf("Mode = %q, want %q", s.Mode, tt.wantMode)
			}
			if s.Size.Width != tt.wantWidth || s.Size.Height != tt.wantHeight {
				t.Errorf("Size = %+v", s.Size)
			}
			if s.Build.HideAnswered != tt.wantHide {
				t.Errorf("HideAnswered = %v, want %v", s.Build.HideAnswered, tt.wantHide)
			}
			if s.Build.Center != s.Size.Center() {
				t.Errorf("Center = %+v, want %+v", s.Build.Center, s.Size.Center())
			}
			if s.Build.RootLabel != "Oração" {
				t.Errorf("RootLabel = %q", s.Build.RootLabel)
			}
			if s.Layout != cfg.Layout || s.Fit != cfg.Fit.FitOptions {
				t.Error("layout and fit should come from config")
			}
		})
	}
}

func TestMapFlagsSettings_BadMode(t *testing.T) {
	f := mapFlags{mode: "calendar"}
	if _, err := f.settings(config.Default()); !errors.Is(err, mindmap.ErrUnknownMode) {
		t.Errorf("settings() error = %v, want ErrUnknownMode", err)
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"journal-path", "journal-path"},
		{"journal_path", "journal-path"},
		{"Journal_Path", "journal-path"},
		{"layout", "layout"},
	}
	for _, tt := range tests {
		if got := normalizeKey(tt.input); got != tt.want {
			t.Errorf("normalizeKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("short", 10); got != "short" {
		t.Errorf("truncateString() = %q", got)
	}
	if got := truncateString("a very long card title", 10); got != "a very ..." {
		t.Errorf("truncateString() = %q", got)
	}
	if got := truncateString("Oração pela família", 8); got != "Oraçã..." {
		t.Errorf("truncateString() = %q, want rune-safe cut", got)
	}
}
