package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one problem instance",
		Long: `Generate one problem instance as JSON.

The problem goes to stdout unless --output names a file; logs and the task
arrival histogram go to stderr.`,
		Example: `  planesgen generate --seed 7 --tasks 5000 > planes.json
  planesgen generate --crises 0 -o testdata/uniform.json --catalog runs.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cmd, cfg)

			metrics, err := newMetrics()
			if err != nil {
				return err
			}
			g, err := generate(cfg, logger, metrics, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			output := cfg.Output.Path
			if isStdout(output) {
				if _, err := cmd.OutOrStdout().Write(g.data); err != nil {
					return fmt.Errorf("writing problem: %w", err)
				}
				output = ""
			} else {
				if err := writeFileAtomic(output, g.data); err != nil {
					return err
				}
				logger.Info("problem written", "path", output, "bytes", len(g.data))
			}

			if cfg.Metrics.Textfile != "" {
				if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
					return err
				}
			}
			return recordRuns(cmd.Context(), cfg.Catalog.Path, logger, g.run(output))
		},
	}

	addGenerationFlags(cmd)
	cmd.Flags().Int64("seed", 0, "Master random seed")
	cmd.Flags().Int("tasks", 0, "Number of tasks")
	cmd.Flags().Int("crises", 0, "Number of crisis bursts")
	cmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	cmd.Flags().String("indent", "", "Indent JSON output with this string")
	cmd.Flags().Bool("no-histogram", false, "Do not print the arrival histogram")
	cmd.Flags().Int("bins", 0, "Histogram bins")
	cmd.Flags().Float64("divisor", 0, "Tasks per histogram mark")
	return cmd
}
