package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quickscope",
	Short: "QuickScope - deterministic equity valuation and strategy engine",
	Long: `QuickScope CLI

Per-ticker fundamental valuation, sentiment fusion and rule-table strategy
recommendations. Same inputs and config always produce the same output.

Usage:
  go run ./cmd/quickscope [command]

Examples:
  go run ./cmd/quickscope analyze AAPL MSFT --profile moderate --portfolio 100000
  go run ./cmd/quickscope analyze NVDA --strategy hedged --format markdown
  go run ./cmd/quickscope api --port 8080`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
