package valuation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/quickscope/internal/contracts"
	"github.com/wonny/quickscope/internal/strategyconfig"
)

func testMarket() MarketParams {
	return MarketParams{RiskFreeRate: 0.045, EquityRiskPremium: 0.08}
}

func TestDiscountFCF(t *testing.T) {
	projected := []float64{100, 110, 121, 133, 146}

	pv, tv, err := DiscountFCF(projected, 0.09, 0.03)
	require.NoError(t, err)

	// Terminal value: 146 * 1.03 / (0.09 - 0.03)
	assert.InDelta(t, 2506.33, tv, 0.01)
	// Sum of discounted stream plus discounted terminal value.
	assert.InDelta(t, 2095.81, pv, 0.1)
}

func TestDiscountFCF_TerminalGrowthAtOrAboveWACC(t *testing.T) {
	for _, g := range []float64{0.09, 0.12} {
		_, _, err := DiscountFCF([]float64{100}, 0.09, g)
		require.Error(t, err)
		assert.True(t, errors.Is(err, contracts.ErrInvalidAssumption))
	}
}

func TestDCFCalculator_Calculate(t *testing.T) {
	cfg := strategyconfig.Default().Valuation.DCF
	calc := NewDCFCalculator(testMarket(), cfg)

	snap := &contracts.FundamentalsSnapshot{
		Ticker:            "ACME",
		CurrentPrice:      50,
		SharesOutstanding: 1000,
		Beta:              contracts.Float(1.0),
		FreeCashFlow:      contracts.Float(100),
		FCFHistory:        []float64{82.6, 90.9, 100},
	}

	res := calc.Calculate(snap, nil)
	require.Equal(t, contracts.StatusOK, res.Status)
	require.NotNil(t, res.DCF)

	assert.Len(t, res.DCF.ProjectedFCF, cfg.ProjectionYears)
	assert.Greater(t, res.DCF.IntrinsicValuePerShare, 0.0)
	assert.Greater(t, res.DCF.WACC, cfg.TerminalGrowthRate)
	// No debt on the balance sheet, so WACC collapses to the cost of equity.
	assert.InDelta(t, res.DCF.CostOfEquity, res.DCF.WACC, 1e-12)
	assert.InDelta(t, 0.125, res.DCF.CostOfEquity, 1e-9)
}

func TestDCFCalculator_GrowthMonotonicity(t *testing.T) {
	cfg := strategyconfig.Default().Valuation.DCF
	calc := NewDCFCalculator(testMarket(), cfg)

	snap := &contracts.FundamentalsSnapshot{
		CurrentPrice:      50,
		SharesOutstanding: 1000,
		FreeCashFlow:      contracts.Float(100),
	}

	low := calc.Calculate(snap, contracts.Float(0.02))
	high := calc.Calculate(snap, contracts.Float(0.08))
	require.Equal(t, contracts.StatusOK, low.Status)
	require.Equal(t, contracts.StatusOK, high.Status)

	assert.Greater(t, high.DCF.IntrinsicValuePerShare, low.DCF.IntrinsicValuePerShare,
		"higher growth must not lower the intrinsic value")
}

func TestDCFCalculator_GrowthCap(t *testing.T) {
	cfg := strategyconfig.Default().Valuation.DCF
	calc := NewDCFCalculator(testMarket(), cfg)

	snap := &contracts.FundamentalsSnapshot{
		CurrentPrice:      50,
		SharesOutstanding: 1000,
		FreeCashFlow:      contracts.Float(100),
		// 50% trailing growth, far beyond the configured cap.
		FCFHistory: []float64{100, 150, 225},
	}

	res := calc.Calculate(snap, nil)
	require.Equal(t, contracts.StatusOK, res.Status)
	assert.InDelta(t, cfg.MaxGrowthRate, res.DCF.GrowthRate, 1e-9)
}

func TestDCFCalculator_MissingFCF(t *testing.T) {
	calc := NewDCFCalculator(testMarket(), strategyconfig.Default().Valuation.DCF)

	res := calc.Calculate(&contracts.FundamentalsSnapshot{
		CurrentPrice:      50,
		SharesOutstanding: 1000,
	}, nil)

	assert.Equal(t, contracts.StatusFailed, res.Status)
	assert.Contains(t, res.Reason, "free cash flow")
}

func TestDCFCalculator_WACCBelowCostOfEquityWithCheapDebt(t *testing.T) {
	cfg := strategyconfig.Default().Valuation.DCF
	calc := NewDCFCalculator(testMarket(), cfg)

	snap := &contracts.FundamentalsSnapshot{
		CurrentPrice:      50,
		SharesOutstanding: 1000,
		Beta:              contracts.Float(1.2),
		FreeCashFlow:      contracts.Float(100),
		TotalDebt:         contracts.Float(20000),
		InterestExpense:   contracts.Float(800), // 4% cost of debt
	}

	res := calc.Calculate(snap, nil)
	require.Equal(t, contracts.StatusOK, res.Status)
	assert.Less(t, res.DCF.WACC, res.DCF.CostOfEquity)
}
