package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/personal-health-agent/pha/compare"
)

func newCompareCmd(configPath *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "compare [query...]",
		Short: "Run the configured (or given) queries through both pipelines and report timings",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := wireApp(*configPath)
			if err != nil {
				return err
			}

			queries := args
			if len(queries) == 0 {
				queries = app.cfg.Compare.Queries
			}
			if len(queries) == 0 {
				return fmt.Errorf("no queries given and none configured")
			}

			harness := compare.New(
				app.newOrchestrator(),
				app.newUnified(),
				app.logger,
			)
			report := harness.Run(cmd.Context(), queries)

			if asJSON {
				out, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			for _, row := range report.Rows {
				fmt.Fprintf(cmd.OutOrStdout(), "%q\n  orchestrated: %dms, %d chars\n  unified:      %dms, %d chars\n",
					row.Query, row.OrchestratedMillis, row.OrchestratedChars, row.UnifiedMillis, row.UnifiedChars)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nmean latency: orchestrated %.0fms, unified %.0fms\n",
				report.MeanOrchestratedMillis, report.MeanUnifiedMillis)

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the full report as JSON")

	return cmd
}
