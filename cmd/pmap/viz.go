package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/matsen/prayermap/internal/viz"
	"github.com/spf13/cobra"
)

var (
	vizFlags  mapFlags
	vizOutput string
	vizFormat string
	vizTitle  string
)

func init() {
	vizFlags.register(vizCmd)
	vizCmd.Flags().StringVarP(&vizOutput, "output", "o", "", "Output file path (default: stdout)")
	vizCmd.Flags().StringVar(&vizFormat, "format", viz.FormatHTML, "Output format: "+strings.Join(viz.ValidFormats, ", "))
	vizCmd.Flags().StringVar(&vizTitle, "title", "", "Page title for HTML output")
	rootCmd.AddCommand(vizCmd)
}

var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Render the mind map as SVG or HTML",
	Long: `Render the laid-out mind map.

Categories are drawn as tinted pills in their palette color, cards as small
circles, and every edge as a gentle curve in its category's color. Answered
cards are dimmed.

Examples:
  # HTML page to stdout
  pmap viz > map.html

  # SVG for people mode
  pmap viz --format svg --mode people -o people.svg`,
	Args: cobra.NoArgs,
	RunE: runViz,
}

func runViz(cmd *cobra.Command, args []string) error {
	scene := mustBuildScene(cmd.Context(), &vizFlags)

	opts := viz.DefaultOptions()
	if vizTitle != "" {
		opts.Title = vizTitle
	}
	out, err := viz.Render(scene.Data(), vizFormat, opts)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", vizFormat, err)
	}

	if vizOutput == "" {
		fmt.Print(out)
		return nil
	}

	if err := os.WriteFile(vizOutput, []byte(out), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if humanOutput {
		fmt.Printf("Map written to %s\n", vizOutput)
	} else {
		outputJSON(OutputResponse{Output: vizOutput, Format: vizFormat})
	}
	return nil
}
