package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/quickscope/internal/analyzer"
	"github.com/wonny/quickscope/internal/contracts"
	"github.com/wonny/quickscope/internal/render"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze TICKER [TICKER...]",
	Short: "Analyze one or more tickers",
	Long: `Run the full valuation, sentiment and strategy pipeline for the given
tickers and print recommendations.

Example:
  go run ./cmd/quickscope analyze AAPL MSFT --profile moderate --portfolio 100000
  go run ./cmd/quickscope analyze NVDA --strategy options_based --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeProfile   string
	analyzeStrategy  string
	analyzePortfolio float64
	analyzeFormat    string
	analyzeWorkers   int
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeProfile, "profile", "moderate", "risk profile (conservative|moderate|aggressive)")
	analyzeCmd.Flags().StringVar(&analyzeStrategy, "strategy", "long_only", "strategy type (long_only|hedged|leveraged|options_based)")
	analyzeCmd.Flags().Float64Var(&analyzePortfolio, "portfolio", 100000, "portfolio size in account currency")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "text", "output format (text|json|markdown)")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 4, "concurrent ticker analyses")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	profile, err := contracts.ParseRiskProfile(analyzeProfile)
	if err != nil {
		return err
	}
	strategy, err := contracts.ParseStrategyType(analyzeStrategy)
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(analyzeFormat)
	if err != nil {
		return err
	}
	if analyzePortfolio <= 0 {
		return fmt.Errorf("portfolio size must be positive, got %v", analyzePortfolio)
	}

	s, err := buildStack(analyzeWorkers)
	if err != nil {
		return err
	}
	defer s.Close()

	results := s.service.AnalyzeBatch(cmd.Context(), args, analyzer.Selection{
		Profile:       profile,
		Strategy:      strategy,
		PortfolioSize: analyzePortfolio,
	})

	if err := render.RenderBatch(os.Stdout, results, format); err != nil {
		return fmt.Errorf("render results: %w", err)
	}

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed == len(results) {
		return fmt.Errorf("all %d tickers failed", failed)
	}
	return nil
}
