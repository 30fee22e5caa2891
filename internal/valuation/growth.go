package valuation

import (
	"math"

	"github.com/wonny/quickscope/internal/contracts"
)

// GrowthCalculator derives revenue and earnings CAGRs over 3 and 5 year
// windows. Each figure needs years+1 annual points with positive endpoints;
// short or unusable history yields a nil figure rather than an error.
type GrowthCalculator struct{}

// NewGrowthCalculator creates a growth calculator.
func NewGrowthCalculator() *GrowthCalculator {
	return &GrowthCalculator{}
}

// Calculate computes the CAGR set for a snapshot.
func (c *GrowthCalculator) Calculate(s *contracts.FundamentalsSnapshot) contracts.ValuationMethodResult {
	outcome := &contracts.GrowthOutcome{
		Revenue3Y:  cagrOver(s.RevenueHistory, 3),
		Revenue5Y:  cagrOver(s.RevenueHistory, 5),
		Earnings3Y: cagrOver(s.EarningsHistory, 3),
		Earnings5Y: cagrOver(s.EarningsHistory, 5),
	}

	if outcome.Revenue3Y == nil && outcome.Revenue5Y == nil &&
		outcome.Earnings3Y == nil && outcome.Earnings5Y == nil {
		return contracts.ValuationMethodResult{
			Method: contracts.MethodGrowth,
			Status: contracts.StatusSkipped,
			Reason: "insufficient history",
		}
	}

	return contracts.ValuationMethodResult{
		Method: contracts.MethodGrowth,
		Status: contracts.StatusOK,
		Growth: outcome,
	}
}

// cagrOver computes the compound growth rate over the most recent `years`
// annual periods of an oldest-to-newest history.
func cagrOver(history []float64, years int) *float64 {
	if len(history) < years+1 {
		return nil
	}
	start := history[len(history)-1-years]
	end := history[len(history)-1]
	if start <= 0 || end <= 0 {
		return nil
	}
	cagr := math.Pow(end/start, 1/float64(years)) - 1
	return &cagr
}
