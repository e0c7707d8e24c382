// Package merge implements the merge command: load every configured source
// batch, run the full pipeline, and write the canonical catalog plus the run
// report.
package merge

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Bloodwingv2/gamecrawl/cmd/common"
	"github.com/Bloodwingv2/gamecrawl/internal/ingest"
	"github.com/Bloodwingv2/gamecrawl/internal/output"
	"github.com/Bloodwingv2/gamecrawl/internal/pipeline"
	"github.com/Bloodwingv2/gamecrawl/internal/report"
	"github.com/Bloodwingv2/gamecrawl/internal/sources"
)

// Command creates the merge command.
func Command(cfgFile *string, debug *bool) *cobra.Command {
	var (
		skipMissing bool
		outputPath  string
	)

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge all source batches into the canonical catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps(*cfgFile, *debug)
			if err != nil {
				return err
			}
			cfg := deps.Config

			if !cmd.Flags().Changed("skip-missing") {
				skipMissing = cfg.Pipeline.SkipMissing
			}
			if outputPath == "" {
				outputPath = cfg.Output.CSVPath
			}

			loader := ingest.NewLoader(deps.Logger)
			batches, skipped, err := loader.LoadAll(sources.Enabled(cfg.Sources), skipMissing)
			if err != nil {
				return fmt.Errorf("load sources: %w", err)
			}

			p := pipeline.New(deps.Logger, pipeline.Options{
				SimilarityThreshold: cfg.Pipeline.SimilarityThreshold,
			})
			records, runReport, err := p.Run(batches, skipped)
			if err != nil {
				return fmt.Errorf("run pipeline: %w", err)
			}

			writer := output.NewWriter(deps.Logger)
			if err := writer.WriteCSV(outputPath, records); err != nil {
				return fmt.Errorf("write catalog: %w", err)
			}

			runPath := filepath.Join(cfg.Output.ReportDir, runReport.RunID+".json")
			if err := writer.WriteReport(runPath, runReport); err != nil {
				return fmt.Errorf("save report: %w", err)
			}
			latestPath := filepath.Join(cfg.Output.ReportDir, report.LatestFile)
			if err := writer.WriteReport(latestPath, runReport); err != nil {
				return fmt.Errorf("save latest report: %w", err)
			}

			report.Render(cmd.OutOrStdout(), runReport)
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipMissing, "skip-missing", false,
		"skip sources whose batch file cannot be loaded instead of aborting")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"catalog output path (defaults to output.csv_path from config)")

	return cmd
}
