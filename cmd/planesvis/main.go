// Command planesvis opens a window that replays the task arrivals of a
// generated planes problem.
package main

import (
	"fmt"
	"io"
	"os"

	"gioui.org/app"
	"gioui.org/unit"
	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/planes-gen/internal/core"
	"github.com/elektrokombinacija/planes-gen/internal/gen"
	"github.com/elektrokombinacija/planes-gen/internal/logging"
	"github.com/elektrokombinacija/planes-gen/internal/vis"
)

func main() {
	if err := newRootCmd(runWindow).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runFunc shows a loaded viewer. It does not return on success.
type runFunc func(a *vis.App, title string) error

func newRootCmd(run runFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planesvis FILE",
		Short: "Replay the task arrivals of a generated problem",
		Long: `planesvis shows planes, stations and tasks of a problem written by
planesgen, with tasks appearing as playback advances. Use "-" to read the
problem from standard input.

Keys: space play/pause, left/right step, Home rewind, +/- speed,
R fit area, Esc clear selection. Drag with the right button to pan and
scroll to zoom.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			bins, _ := cmd.Flags().GetInt("bins")
			level, _ := cmd.Flags().GetString("log-level")
			logger := logging.NewLogger(level, "text", cmd.ErrOrStderr())

			p, err := loadProblem(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			a, err := vis.NewApp(p, bins)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			logger.Info("problem loaded", "file", args[0],
				"planes", len(p.Planes), "tasks", len(p.Tasks), "stations", len(p.Stations))
			return run(a, "planes viewer: "+args[0])
		},
	}
	cmd.Flags().Int("bins", gen.DefaultBins, "Arrival histogram bins")
	cmd.Flags().String("log-level", "info", "Log level: trace, debug, info, warn, error")
	return cmd
}

func loadProblem(stdin io.Reader, path string) (*core.Problem, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening problem: %w", err)
		}
		defer f.Close()
		r = f
	}
	return core.DecodeProblem(r)
}

func runWindow(a *vis.App, title string) error {
	go func() {
		window := new(app.Window)
		window.Option(
			app.Title(title),
			app.Size(unit.Dp(1400), unit.Dp(900)),
		)
		if err := a.Run(window); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}
