package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/planes-gen/internal/core"
	"github.com/elektrokombinacija/planes-gen/internal/gen"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Validate a problem file and summarize its arrivals",
		Long: `Decode a generated problem, check its invariants, and print entity counts,
the task arrival histogram and the arrival peaks.

Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bins, _ := cmd.Flags().GetInt("bins")
			divisor, _ := cmd.Flags().GetFloat64("divisor")
			factor, _ := cmd.Flags().GetFloat64("peak-factor")

			problem, err := readProblem(cmd, args[0])
			if err != nil {
				return err
			}
			if err := problem.Validate(); err != nil {
				return fmt.Errorf("invalid problem %s: %w", args[0], err)
			}
			return summarize(cmd.OutOrStdout(), problem, bins, divisor, factor)
		},
	}

	cmd.Flags().Int("bins", gen.DefaultBins, "Histogram bins")
	cmd.Flags().Float64("divisor", gen.DefaultDivisor, "Tasks per histogram mark")
	cmd.Flags().Float64("peak-factor", 3, "Report runs of bins above this multiple of the mean bin count")
	return cmd
}

func readProblem(cmd *cobra.Command, path string) (*core.Problem, error) {
	var r io.Reader = cmd.InOrStdin()
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

func summarize(w io.Writer, p *core.Problem, bins int, divisor, factor float64) error {
	fmt.Fprintf(w, "duration: %d s\n", p.Duration)
	fmt.Fprintf(w, "area:     %d x %d m\n", p.Width, p.Height)
	for _, kind := range core.AllKinds() {
		fmt.Fprintf(w, "%-9s %d\n", kind.String()+"s:", p.Count(kind))
	}

	h, err := gen.NewHistogram(core.TaskTimes(p.Tasks), p.Duration, bins)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\narrivals (%d bins of %.0f s, one mark per %g tasks):\n", bins, h.BinWidth(), divisor)
	if err := h.Render(w, divisor); err != nil {
		return err
	}

	if h.Total() == 0 {
		return nil
	}
	threshold := factor * h.Total() / float64(bins)
	peaks := h.Peaks(threshold)
	fmt.Fprintf(w, "\npeaks above %.1f tasks per bin: %d\n", threshold, len(peaks))
	for _, pk := range peaks {
		fmt.Fprintf(w, "  [%.0f, %.0f) s  max %.0f in bin %d\n",
			float64(pk.Start)*h.BinWidth(), float64(pk.End+1)*h.BinWidth(), pk.Max, pk.MaxBin)
	}
	return nil
}
