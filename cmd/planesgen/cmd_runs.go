package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/planes-gen/internal/catalog"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List catalogued generation runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Catalog.Path == "" {
				return errors.New("no catalog configured (set --catalog or catalog.path)")
			}
			limit, _ := cmd.Flags().GetInt("limit")
			jsonOut, _ := cmd.Flags().GetBool("json")

			c, err := catalog.Open(cmd.Context(), cfg.Catalog.Path)
			if err != nil {
				return err
			}
			defer c.Close()

			runs, err := c.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(runs)
			}

			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tSEED\tPLANES\tTASKS\tCRISES\tDIGEST\tOUTPUT")
			for _, r := range runs {
				output := r.Output
				if output == "" {
					output = "(stdout)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
					short(r.ID, 8), r.CreatedAt.Local().Format(time.DateTime), r.Seed,
					r.Planes, r.Tasks, r.Crises, short(r.Digest, 12), output)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().String("catalog", "", "SQLite run catalog")
	cmd.Flags().Int("limit", 20, "Maximum runs to list (0 for all)")
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

func short(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
