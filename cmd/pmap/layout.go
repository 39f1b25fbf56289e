package main

import (
	"fmt"

	"github.com/matsen/prayermap/internal/mindmap"
	"github.com/matsen/prayermap/internal/viz"
	"github.com/spf13/cobra"
)

var layoutFlags mapFlags

func init() {
	layoutFlags.register(layoutCmd)
	rootCmd.AddCommand(layoutCmd)
}

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Lay out the journal as a mind map",
	Long: `Build the mind map for the journal, relax it with the force simulation,
and fit it to the view.

Outputs every node position, every edge curve and the fitted view transform.

Examples:
  pmap layout --journal journal.json
  pmap layout --mode people --width 1280 --height 720
  pmap layout --human --hide-answered`,
	Args: cobra.NoArgs,
	RunE: runLayout,
}

func runLayout(cmd *cobra.Command, args []string) error {
	scene := mustBuildScene(cmd.Context(), &layoutFlags)
	data := scene.Data()

	if humanOutput {
		printLayoutHuman(scene, data)
		return nil
	}
	return outputJSON(data)
}

// printLayoutHuman prints the map as an indented tree of categories and cards.
func printLayoutHuman(scene *viz.Scene, data *viz.GraphData) {
	g := &scene.Graph
	root := g.Root()

	fmt.Printf("%s %s\n", brand.Sprint(root.Label), subtle.Sprintf("(%s)", scene.Mode))
	fmt.Printf("%s %d nodes, %d edges\n", subtle.Sprint("Map:"), len(data.Nodes), len(data.Edges))
	fmt.Printf("%s k=%.3f x=%.1f y=%.1f\n\n", subtle.Sprint("View:"),
		scene.Transform.K, scene.Transform.X, scene.Transform.Y)

	if g.IsEmpty() {
		warn.Println("No prayer cards yet.")
		return
	}

	for _, cat := range g.Categories() {
		children := g.Children(cat.ID)
		fmt.Printf("%s %s %s\n", info.Sprint("◆"), info.Sprint(cat.Label),
			subtle.Sprintf("(%d) at %.0f,%.0f", len(children), cat.Pos.X, cat.Pos.Y))
		for _, id := range children {
			n, ok := g.Node(id)
			if !ok {
				continue
			}
			title := truncateString(n.Label, LabelMaxLen)
			if isAnswered(n) {
				fmt.Printf("    %s %s\n", subtle.Sprint("○"), subtle.Sprint(title))
			} else {
				fmt.Printf("    ● %s\n", title)
			}
		}
	}
}

func isAnswered(n *mindmap.Node) bool {
	return n.Payload.Card != nil && n.Payload.Card.IsAnswered
}
