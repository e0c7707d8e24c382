// Package load implements the load command: import the canonical catalog
// CSV into PostgreSQL.
package load

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bloodwingv2/gamecrawl/cmd/common"
	"github.com/Bloodwingv2/gamecrawl/internal/output"
	"github.com/Bloodwingv2/gamecrawl/internal/storage"
)

// Command creates the load command.
func Command(cfgFile *string, debug *bool) *cobra.Command {
	var (
		force   bool
		csvPath string
	)

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load the merged catalog into PostgreSQL",
		Long: `Loads the canonical catalog CSV into the games table. The import is
idempotent: when the table already holds rows it is left alone unless
--force truncates it first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps(*cfgFile, *debug)
			if err != nil {
				return err
			}
			cfg := deps.Config

			if csvPath == "" {
				csvPath = cfg.Output.CSVPath
			}

			records, err := output.ReadCSV(csvPath)
			if err != nil {
				return fmt.Errorf("read catalog: %w", err)
			}

			db, err := storage.NewPostgresConnection(cfg.Database)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer storage.Close(db)

			repo := storage.NewRepository(db, deps.Logger)
			ctx := cmd.Context()

			if err := repo.EnsureSchema(ctx); err != nil {
				return err
			}

			count, err := repo.Count(ctx)
			if err != nil {
				return err
			}
			if count > 0 {
				if !force {
					deps.Logger.Info("Table already loaded, skipping import",
						"existing_rows", count,
					)
					return nil
				}
				if err := repo.Truncate(ctx); err != nil {
					return err
				}
				deps.Logger.Info("Truncated existing rows", "rows", count)
			}

			if err := repo.ImportRecords(ctx, records, cfg.Database.BatchSize); err != nil {
				return fmt.Errorf("import catalog: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d games from %s\n", len(records), csvPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "truncate the games table before importing")
	cmd.Flags().StringVar(&csvPath, "input", "", "catalog CSV path (defaults to output.csv_path from config)")

	return cmd
}
