package main

import (
	"errors"
	"fmt"

	"github.com/matsen/prayermap/internal/viewport"
	"github.com/spf13/cobra"
)

var replayFlags mapFlags

func init() {
	replayFlags.register(replayCmd)
	rootCmd.AddCommand(replayCmd)
}

var replayCmd = &cobra.Command{
	Use:   "replay <events.jsonl>",
	Short: "Replay a recorded pan/zoom gesture stream",
	Long: `Feed a recorded stream of input events through the view controller and
print the transform after every event.

The view starts the way the interactive map does: sized to the view,
centered, then fitted to the laid-out graph. Each line of the input is one
JSON event:

  {"type":"wheel","x":400,"y":300,"deltaY":-100}
  {"type":"pointerdown","x":10,"y":10}
  {"type":"pointermove","x":40,"y":25}
  {"type":"pointerup"}
  {"type":"touchstart","touches":[{"x":0,"y":0},{"x":100,"y":0}]}
  {"type":"touchmove","touches":[{"x":0,"y":0},{"x":200,"y":0}]}
  {"type":"touchend"}
  {"type":"resize","width":1024,"height":768}
  {"type":"fit"}

Output is one JSON object per event (JSONL), or a table with --human.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

// ReplayStep is the view state after one event.
type ReplayStep struct {
	Index     int                `json:"index"`
	Event     string             `json:"event"`
	State     string             `json:"state"`
	Transform viewport.Transform `json:"transform"`
}

func runReplay(cmd *cobra.Command, args []string) error {
	events, err := viewport.ReadEventsFile(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	scene := mustBuildScene(cmd.Context(), &replayFlags)
	cfg := mustLoadConfig()

	view := viewport.NewView(cfg.Zoom, cfg.Fit.FitOptions)
	view.Resize(scene.Size)
	view.FitTo(&scene.Graph)

	steps := make([]ReplayStep, 0, len(events)+1)
	steps = append(steps, replayStep(0, "start", view))
	for i, ev := range events {
		if err := view.Handle(ev, &scene.Graph); err != nil {
			if errors.Is(err, viewport.ErrUnknownEvent) || errors.Is(err, viewport.ErrInvalidSize) {
				exitWithError(ExitDataError, "event %d: %v", i+1, err)
			}
			return err
		}
		steps = append(steps, replayStep(i+1, ev.Type, view))
	}

	if humanOutput {
		for _, s := range steps {
			fmt.Printf("%4d  %-12s %-9s k=%-8.4f x=%-10.2f y=%.2f\n",
				s.Index, s.Event, s.State, s.Transform.K, s.Transform.X, s.Transform.Y)
		}
		return nil
	}
	for _, s := range steps {
		if err := outputJSONCompact(s); err != nil {
			return err
		}
	}
	return nil
}

func replayStep(i int, event string, v *viewport.View) ReplayStep {
	return ReplayStep{
		Index:     i,
		Event:     event,
		State:     v.State().String(),
		Transform: v.Transform(),
	}
}
