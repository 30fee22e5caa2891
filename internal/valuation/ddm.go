package valuation

import (
	"fmt"

	"github.com/wonny/quickscope/internal/contracts"
	"github.com/wonny/quickscope/internal/strategyconfig"
)

// DDMCalculator prices a dividend payer with the Gordon growth model.
// Non-payers are skipped, not failed: that is the expected outcome for most
// growth stocks.
type DDMCalculator struct {
	market MarketParams
	cfg    strategyconfig.DDM
}

// NewDDMCalculator creates a dividend discount calculator.
func NewDDMCalculator(market MarketParams, cfg strategyconfig.DDM) *DDMCalculator {
	return &DDMCalculator{market: market, cfg: cfg}
}

// Calculate runs the Gordon growth model on the snapshot.
func (c *DDMCalculator) Calculate(s *contracts.FundamentalsSnapshot) contracts.ValuationMethodResult {
	if !s.PaysDividend() {
		return contracts.ValuationMethodResult{
			Method: contracts.MethodDDM,
			Status: contracts.StatusSkipped,
			Reason: fmt.Sprintf("%v: no dividend", contracts.ErrNotApplicable),
		}
	}

	costOfEquity := c.market.CostOfEquity(s.BetaOrDefault())

	growth := c.cfg.DefaultDividendGrowth
	if s.DividendGrowthRate != nil {
		growth = *s.DividendGrowthRate
	}

	if growth >= costOfEquity {
		return contracts.ValuationMethodResult{
			Method: contracts.MethodDDM,
			Status: contracts.StatusFailed,
			Reason: fmt.Sprintf("%v: dividend growth %.4f >= cost of equity %.4f",
				contracts.ErrInvalidAssumption, growth, costOfEquity),
		}
	}

	nextDividend := *s.DividendPerShareTTM * (1 + growth)
	return contracts.ValuationMethodResult{
		Method: contracts.MethodDDM,
		Status: contracts.StatusOK,
		DDM: &contracts.DDMOutcome{
			IntrinsicValuePerShare: nextDividend / (costOfEquity - growth),
			CostOfEquity:           costOfEquity,
			DividendGrowthRate:     growth,
			NextDividend:           nextDividend,
		},
	}
}
