package valuation

import (
	"fmt"

	"github.com/wonny/quickscope/internal/contracts"
	"github.com/wonny/quickscope/internal/strategyconfig"
)

// HealthCalculator composes liquidity, leverage and profitability metrics into
// a single [0,100] score. Missing metrics are excluded and the remaining
// weights renormalized, so a sparse snapshot degrades coverage, not the score.
type HealthCalculator struct {
	cfg strategyconfig.Health
}

// NewHealthCalculator creates a health score calculator.
func NewHealthCalculator(cfg strategyconfig.Health) *HealthCalculator {
	return &HealthCalculator{cfg: cfg}
}

// Calculate scores the snapshot's financial health.
func (c *HealthCalculator) Calculate(s *contracts.FundamentalsSnapshot) contracts.ValuationMethodResult {
	components := make(map[string]float64)
	var weighted, weightSum float64

	for name, weight := range c.cfg.Weights {
		value, ok := healthMetric(s, name)
		if !ok {
			continue
		}
		band, ok := c.cfg.Bands[name]
		if !ok {
			continue
		}
		norm := normalize(value, band)
		components[name] = norm
		weighted += weight * norm
		weightSum += weight
	}

	if weightSum == 0 {
		return contracts.ValuationMethodResult{
			Method: contracts.MethodHealthScore,
			Status: contracts.StatusFailed,
			Reason: fmt.Sprintf("%v: no health metrics computable", contracts.ErrInsufficientData),
		}
	}

	return contracts.ValuationMethodResult{
		Method: contracts.MethodHealthScore,
		Status: contracts.StatusOK,
		Health: &contracts.HealthOutcome{
			Score:      weighted / weightSum * 100,
			Components: components,
		},
	}
}

// normalize maps a metric value to [0,1] linearly between its band endpoints.
// Bands with Healthy < Unhealthy are inverted metrics (lower is better).
func normalize(value float64, band strategyconfig.MetricBand) float64 {
	lo, hi := band.Unhealthy, band.Healthy
	if lo == hi {
		return 0.5
	}
	norm := (value - lo) / (hi - lo)
	if norm < 0 {
		return 0
	}
	if norm > 1 {
		return 1
	}
	return norm
}

func healthMetric(s *contracts.FundamentalsSnapshot, name string) (float64, bool) {
	switch name {
	case "current_ratio":
		return s.CurrentRatio()
	case "quick_ratio":
		return s.QuickRatio()
	case "debt_to_equity":
		return s.DebtToEquity()
	case "interest_coverage":
		return s.InterestCoverage()
	case "roe":
		return s.ROE()
	case "roa":
		return s.ROA()
	case "net_margin":
		return s.NetMargin()
	case "operating_margin":
		return s.OperatingMargin()
	default:
		return 0, false
	}
}
