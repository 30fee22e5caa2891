package valuation

import (
	"fmt"
	"math"

	"github.com/wonny/quickscope/internal/contracts"
	"github.com/wonny/quickscope/internal/strategyconfig"
)

// MarketParams are the market-wide constants behind CAPM.
type MarketParams struct {
	RiskFreeRate      float64
	EquityRiskPremium float64
}

// CostOfEquity derives the cost of equity from beta via CAPM.
func (m MarketParams) CostOfEquity(beta float64) float64 {
	return m.RiskFreeRate + beta*m.EquityRiskPremium
}

// DCFCalculator values a company by projecting free cash flow forward and
// discounting it at the weighted average cost of capital.
type DCFCalculator struct {
	market MarketParams
	cfg    strategyconfig.DCF
}

// NewDCFCalculator creates a DCF calculator.
func NewDCFCalculator(market MarketParams, cfg strategyconfig.DCF) *DCFCalculator {
	return &DCFCalculator{market: market, cfg: cfg}
}

// Calculate runs the DCF for a snapshot. growthOverride, when non-nil,
// replaces the trailing growth estimate. Failures are absorbed into the
// result's status; the caller never sees an error for a single method.
func (c *DCFCalculator) Calculate(s *contracts.FundamentalsSnapshot, growthOverride *float64) contracts.ValuationMethodResult {
	outcome, err := c.compute(s, growthOverride)
	if err != nil {
		return contracts.ValuationMethodResult{
			Method: contracts.MethodDCF,
			Status: contracts.StatusFailed,
			Reason: err.Error(),
		}
	}
	return contracts.ValuationMethodResult{
		Method: contracts.MethodDCF,
		Status: contracts.StatusOK,
		DCF:    outcome,
	}
}

func (c *DCFCalculator) compute(s *contracts.FundamentalsSnapshot, growthOverride *float64) (*contracts.DCFOutcome, error) {
	baseFCF, ok := s.BaseFCF()
	if !ok {
		return nil, fmt.Errorf("%w: no free cash flow figure", contracts.ErrInsufficientData)
	}
	if baseFCF <= 0 {
		return nil, fmt.Errorf("%w: non-positive free cash flow %.2f", contracts.ErrInsufficientData, baseFCF)
	}
	if s.SharesOutstanding <= 0 {
		return nil, fmt.Errorf("%w: shares outstanding unknown", contracts.ErrInsufficientData)
	}

	growth := c.growthRate(s, growthOverride)
	wacc, costOfEquity := c.wacc(s)

	// Project FCF forward and discount the stream plus a Gordon terminal value.
	projected := make([]float64, c.cfg.ProjectionYears)
	fcf := baseFCF
	for i := range projected {
		fcf *= 1 + growth
		projected[i] = fcf
	}

	pv, tv, err := DiscountFCF(projected, wacc, c.cfg.TerminalGrowthRate)
	if err != nil {
		return nil, err
	}

	return &contracts.DCFOutcome{
		IntrinsicValuePerShare: pv / s.SharesOutstanding,
		WACC:                   wacc,
		CostOfEquity:           costOfEquity,
		GrowthRate:             growth,
		TerminalGrowthRate:     c.cfg.TerminalGrowthRate,
		ProjectedFCF:           projected,
		TerminalValue:          tv,
	}, nil
}

// DiscountFCF discounts an already-projected FCF stream at wacc and appends a
// Gordon perpetuity terminal value grown at terminalGrowth. It returns the
// total present value and the undiscounted terminal value. Fails when the
// terminal growth rate is at or above the discount rate, which would make the
// perpetuity meaningless.
func DiscountFCF(projected []float64, wacc, terminalGrowth float64) (pv, terminalValue float64, err error) {
	if len(projected) == 0 {
		return 0, 0, fmt.Errorf("%w: empty projection", contracts.ErrInsufficientData)
	}
	if terminalGrowth >= wacc {
		return 0, 0, fmt.Errorf("%w: terminal growth %.4f >= discount rate %.4f",
			contracts.ErrInvalidAssumption, terminalGrowth, wacc)
	}

	for i, fcf := range projected {
		pv += fcf / math.Pow(1+wacc, float64(i+1))
	}

	final := projected[len(projected)-1]
	terminalValue = final * (1 + terminalGrowth) / (wacc - terminalGrowth)
	pv += terminalValue / math.Pow(1+wacc, float64(len(projected)))

	return pv, terminalValue, nil
}

// growthRate picks the projection growth rate: an explicit override, then the
// trailing FCF CAGR, then the trailing revenue CAGR, then the terminal rate
// as a conservative floor. The result is capped at the configured maximum.
func (c *DCFCalculator) growthRate(s *contracts.FundamentalsSnapshot, override *float64) float64 {
	g := c.cfg.TerminalGrowthRate
	switch {
	case override != nil:
		g = *override
	default:
		if cagr := trailingCAGR(s.FCFHistory); cagr != nil {
			g = *cagr
		} else if cagr := trailingCAGR(s.RevenueHistory); cagr != nil {
			g = *cagr
		}
	}

	if g > c.cfg.MaxGrowthRate {
		g = c.cfg.MaxGrowthRate
	}
	return g
}

// wacc blends the CAPM cost of equity with the after-tax cost of debt by
// market-value capital structure.
func (c *DCFCalculator) wacc(s *contracts.FundamentalsSnapshot) (wacc, costOfEquity float64) {
	costOfEquity = c.market.CostOfEquity(s.BetaOrDefault())

	equity := s.MarketCap()
	debt := 0.0
	if s.TotalDebt != nil && *s.TotalDebt > 0 {
		debt = *s.TotalDebt
	}
	if debt == 0 || equity <= 0 {
		return costOfEquity, costOfEquity
	}

	costOfDebt := c.cfg.CostOfDebt
	if s.InterestExpense != nil && *s.InterestExpense > 0 {
		costOfDebt = *s.InterestExpense / debt
	}
	afterTaxDebt := costOfDebt * (1 - c.cfg.TaxRate)

	total := equity + debt
	wacc = equity/total*costOfEquity + debt/total*afterTaxDebt
	return wacc, costOfEquity
}

// trailingCAGR computes the compound growth rate over an annual history,
// nil when fewer than three points exist or endpoints are non-positive.
func trailingCAGR(history []float64) *float64 {
	n := len(history)
	if n < 3 {
		return nil
	}
	start, end := history[0], history[n-1]
	if start <= 0 || end <= 0 {
		return nil
	}
	years := float64(n - 1)
	cagr := math.Pow(end/start, 1/years) - 1
	return &cagr
}
