// Package report implements the report command: render a saved run report.
package report

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Bloodwingv2/gamecrawl/cmd/common"
	"github.com/Bloodwingv2/gamecrawl/internal/report"
)

// Command creates the report command.
func Command(cfgFile *string, debug *bool) *cobra.Command {
	var runID string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the latest merge run report",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps(*cfgFile, *debug)
			if err != nil {
				return err
			}

			name := report.LatestFile
			if runID != "" {
				name = runID + ".json"
			}

			saved, err := report.Load(filepath.Join(deps.Config.Output.ReportDir, name))
			if err != nil {
				return err
			}

			report.Render(cmd.OutOrStdout(), saved)
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "show a specific run instead of the latest")

	return cmd
}
