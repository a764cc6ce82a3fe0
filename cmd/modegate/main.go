package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yanmxa/modegate/internal/log"
)

var (
	version = "0.1.0"
)

func init() {
	// Load .env file if it exists (silent fail if not found)
	_ = godotenv.Load()

	// Initialize logging (enabled via MODEGATE_DEBUG=1)
	_ = log.Init()
}

func main() {
	defer log.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "modegate",
	Short: "Modegate - mode-based tool authorization",
	Long: `Modegate decides whether a named tool may be invoked while the
host system operates in a given mode. Modes grant tools through tool
groups, optionally restricted to file patterns; custom modes are loaded
from ~/.modegate/modes.yaml and .modegate/modes.yaml.

Examples:
  modegate check read_file --mode ask
  modegate check execute_command --mode ask
  modegate check apply_diff --mode architect --param path=docs/plan.md
  modegate modes
  modegate tools`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("modegate version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
