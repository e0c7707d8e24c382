// Package sources provides the sources command implementation.
package sources

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Bloodwingv2/gamecrawl/cmd/common"
	"github.com/Bloodwingv2/gamecrawl/internal/sources"
)

// Command creates the sources command with its subcommands.
func Command(cfgFile *string, debug *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage configured data sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(listCommand(cfgFile, debug))
	cmd.AddCommand(validateCommand(cfgFile, debug))

	return cmd
}

// listCommand displays every configured source in a table.
func listCommand(cfgFile *string, debug *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps(*cfgFile, *debug)
			if err != nil {
				return err
			}

			renderTable(deps.Config.Sources)
			return nil
		},
	}
}

// validateCommand checks the source configuration and batch files.
func validateCommand(cfgFile *string, debug *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate source configuration and batch files",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps(*cfgFile, *debug)
			if err != nil {
				return err
			}

			configs := deps.Config.Sources
			if err := sources.Validate(configs); err != nil {
				return fmt.Errorf("source configuration invalid: %w", err)
			}

			missing := 0
			for _, cfg := range sources.Enabled(configs) {
				if _, statErr := os.Stat(cfg.File); statErr != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "missing batch file for %s: %s\n", cfg.Name, cfg.File)
					missing++
				}
			}
			if missing > 0 {
				return fmt.Errorf("%d enabled source(s) have no batch file", missing)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d sources valid (%d enabled)\n",
				len(configs), len(sources.Enabled(configs)))
			return nil
		},
	}
}

// renderTable formats the sources as a table on stdout.
func renderTable(configs []sources.Config) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "File", "Enabled"})

	for _, cfg := range configs {
		t.AppendRow(table.Row{cfg.Name, cfg.File, cfg.Enabled})
	}
	t.Render()
}
