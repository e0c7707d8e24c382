// Package cmd implements the command-line interface for gamecrawl.
// It provides the root command and subcommands for merging scraped game
// catalogs and serving the result.
package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Bloodwingv2/gamecrawl/cmd/httpd"
	"github.com/Bloodwingv2/gamecrawl/cmd/load"
	"github.com/Bloodwingv2/gamecrawl/cmd/merge"
	"github.com/Bloodwingv2/gamecrawl/cmd/report"
	cmdsources "github.com/Bloodwingv2/gamecrawl/cmd/sources"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debugMode enables debug logging for all commands.
	debugMode bool

	// rootCmd represents the root command for the gamecrawl CLI.
	rootCmd = &cobra.Command{
		Use:   "gamecrawl",
		Short: "A game catalog aggregator",
		Long:  `Merges scraped game store catalogs into one normalized dataset.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so environment variables are available to viper.
	_ = godotenv.Load()

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gamecrawl version %s\n", version())
		},
	})

	rootCmd.AddCommand(merge.Command(&cfgFile, &debugMode))
	rootCmd.AddCommand(load.Command(&cfgFile, &debugMode))
	rootCmd.AddCommand(report.Command(&cfgFile, &debugMode))
	rootCmd.AddCommand(cmdsources.Command(&cfgFile, &debugMode))
	rootCmd.AddCommand(httpd.Command(&cfgFile, &debugMode))
}

// version reads the module version from build info.
func version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

// PrintErrorf prints an error message to stderr for top-level failures.
func PrintErrorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
