package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/planes-gen/internal/catalog"
)

// suiteFileName names one suite instance.
func suiteFileName(tasks, crises int, seed int64) string {
	return fmt.Sprintf("planes_%d_%d_%d.json", tasks, crises, seed)
}

func newSuiteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suite",
		Short: "Generate a scaling suite of problem instances",
		Long: `Generate one instance per combination of task count, crisis count and seed.

Each instance is an independent run with its own seed, written to
<out>/planes_<tasks>_<crises>_<seed>.json.`,
		Example: `  planesgen suite --out testdata --seeds 1,2,3 --crises 0,4 --tasks 1000,43200`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cmd, cfg)

			outDir, _ := cmd.Flags().GetString("out")
			seeds, _ := cmd.Flags().GetInt64Slice("seeds")
			crises, _ := cmd.Flags().GetIntSlice("crises")
			taskCounts, _ := cmd.Flags().GetIntSlice("tasks")
			if len(seeds) == 0 {
				seeds = []int64{cfg.Generation.Seed}
			}
			if len(crises) == 0 {
				crises = []int{cfg.Generation.Crises}
			}
			if len(taskCounts) == 0 {
				taskCounts = []int{cfg.Generation.Tasks}
			}

			metrics, err := newMetrics()
			if err != nil {
				return err
			}

			var runs []*catalog.Run
			for _, tasks := range taskCounts {
				for _, n := range crises {
					for _, seed := range seeds {
						if err := cmd.Context().Err(); err != nil {
							return err
						}

						run := *cfg
						run.Generation.Tasks = tasks
						run.Generation.Crises = n
						run.Generation.Seed = seed
						if err := run.Validate(); err != nil {
							return fmt.Errorf("invalid suite entry (tasks=%d, crises=%d, seed=%d): %w", tasks, n, seed, err)
						}

						g, err := generate(&run, logger, metrics, nil)
						if err != nil {
							return fmt.Errorf("tasks=%d crises=%d seed=%d: %w", tasks, n, seed, err)
						}

						path := filepath.Join(outDir, suiteFileName(tasks, n, seed))
						if err := writeFileAtomic(path, g.data); err != nil {
							return err
						}
						runs = append(runs, g.run(path))

						fmt.Fprintf(cmd.OutOrStdout(), "Generated: %s (%d planes, %d tasks, %d crises, %v)\n",
							path, run.Generation.Planes, tasks, n, g.elapsed.Round(time.Millisecond))
					}
				}
			}

			if cfg.Metrics.Textfile != "" {
				if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
					return err
				}
			}
			return recordRuns(cmd.Context(), cfg.Catalog.Path, logger, runs...)
		},
	}

	addGenerationFlags(cmd)
	cmd.Flags().String("out", "testdata", "Output directory")
	cmd.Flags().Int64Slice("seeds", nil, "Seeds (default the configured seed)")
	cmd.Flags().IntSlice("crises", nil, "Crisis counts (default the configured count)")
	cmd.Flags().IntSlice("tasks", nil, "Task counts (default the configured count)")
	cmd.Flags().String("indent", "", "Indent JSON output with this string")
	return cmd
}
