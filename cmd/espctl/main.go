// Command espctl drives an ESP evolution run from a TOML configuration
// file, grounded in crownet's cobra-rooted CLI shape: a persistent
// --config/--seed flag pair on the root command, one RunE-bearing
// subcommand per mode.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile string
	seedFlag   int64
)

var rootCmd = &cobra.Command{
	Use:   "espctl",
	Short: "espctl drives an Enforced Sub-Populations evolution run",
	Long: `espctl runs ESP neuroevolution against a configurable task,
logging one CSV row and one SQLite summary row per generation.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a TOML run configuration (defaults built in if omitted)")
	rootCmd.PersistentFlags().Int64Var(&seedFlag, "seed", 0, "override the configured RNG seed (0 keeps the config's own value)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(dumpCmd)
}
