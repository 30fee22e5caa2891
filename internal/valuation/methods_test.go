package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/quickscope/internal/contracts"
	"github.com/wonny/quickscope/internal/strategyconfig"
)

func TestComparables_UndervaluedScoresNegative(t *testing.T) {
	calc := NewComparablesCalculator(strategyconfig.Default().Valuation.Comparables)

	// Technology medians: PE 28, PS 6, PB 8. Price the stock far below all.
	snap := &contracts.FundamentalsSnapshot{
		Ticker:            "CHEAP",
		Sector:            "technology",
		CurrentPrice:      28,
		SharesOutstanding: 1000,
		EPS:               contracts.Float(2.0), // PE 14, half the median
		Revenue:           contracts.Float(14000),
		TotalEquity:       contracts.Float(10000),
	}

	res := calc.Calculate(snap)
	require.Equal(t, contracts.StatusOK, res.Status)
	require.NotNil(t, res.Comparables)

	assert.Negative(t, res.Comparables.AvgDeviation)
	assert.Equal(t, -2, res.Comparables.Score)
	require.True(t, res.Comparables.HasImpliedValue)
	// Implied from earnings: median PE 28 x EPS 2.
	assert.InDelta(t, 56.0, res.Comparables.ImpliedValuePerShare, 1e-9)
}

func TestComparables_OvervaluedScoresPositive(t *testing.T) {
	calc := NewComparablesCalculator(strategyconfig.Default().Valuation.Comparables)

	snap := &contracts.FundamentalsSnapshot{
		Ticker:            "RICH",
		Sector:            "utilities", // PE 17
		CurrentPrice:      100,
		SharesOutstanding: 1000,
		EPS:               contracts.Float(2.0), // PE 50, ~194% above median
	}

	res := calc.Calculate(snap)
	require.Equal(t, contracts.StatusOK, res.Status)
	assert.Equal(t, 2, res.Comparables.Score)
}

func TestComparables_UnknownSectorFallsBackToDefault(t *testing.T) {
	calc := NewComparablesCalculator(strategyconfig.Default().Valuation.Comparables)

	snap := &contracts.FundamentalsSnapshot{
		Sector:            "Conglomerates",
		CurrentPrice:      40,
		SharesOutstanding: 1000,
		EPS:               contracts.Float(2.0), // PE 20, exactly the default median
	}

	res := calc.Calculate(snap)
	require.Equal(t, contracts.StatusOK, res.Status)
	assert.Equal(t, 0, res.Comparables.Score)
	assert.InDelta(t, 0.0, res.Comparables.AvgDeviation, 1e-9)
}

func TestComparables_NegativeEarningsExcludePE(t *testing.T) {
	calc := NewComparablesCalculator(strategyconfig.Default().Valuation.Comparables)

	snap := &contracts.FundamentalsSnapshot{
		CurrentPrice:      40,
		SharesOutstanding: 1000,
		EPS:               contracts.Float(-1.5),
		Revenue:           contracts.Float(20000),
	}

	res := calc.Calculate(snap)
	require.Equal(t, contracts.StatusOK, res.Status)
	for _, r := range res.Comparables.Ratios {
		assert.NotEqual(t, "pe", r.Name)
	}
	// Implied value falls through to the sales multiple.
	require.True(t, res.Comparables.HasImpliedValue)
	assert.InDelta(t, 2.5*20000/1000, res.Comparables.ImpliedValuePerShare, 1e-9)
}

func TestComparables_NoMultiplesFails(t *testing.T) {
	calc := NewComparablesCalculator(strategyconfig.Default().Valuation.Comparables)

	res := calc.Calculate(&contracts.FundamentalsSnapshot{CurrentPrice: 10})
	assert.Equal(t, contracts.StatusFailed, res.Status)
}

func TestDDM_GordonGrowth(t *testing.T) {
	calc := NewDDMCalculator(testMarket(), strategyconfig.Default().Valuation.DDM)

	snap := &contracts.FundamentalsSnapshot{
		Ticker:              "DIVCO",
		CurrentPrice:        30,
		SharesOutstanding:   1000,
		Beta:                contracts.Float(1.0), // cost of equity 0.125
		DividendPerShareTTM: contracts.Float(2.0),
		DividendGrowthRate:  contracts.Float(0.04),
	}

	res := calc.Calculate(snap)
	require.Equal(t, contracts.StatusOK, res.Status)
	require.NotNil(t, res.DDM)

	// D1 = 2.00 * 1.04; value = D1 / (0.125 - 0.04)
	assert.InDelta(t, 2.08, res.DDM.NextDividend, 1e-9)
	assert.InDelta(t, 2.08/0.085, res.DDM.IntrinsicValuePerShare, 1e-9)
}

func TestDDM_NonPayerIsSkipped(t *testing.T) {
	calc := NewDDMCalculator(testMarket(), strategyconfig.Default().Valuation.DDM)

	res := calc.Calculate(&contracts.FundamentalsSnapshot{CurrentPrice: 30})
	assert.Equal(t, contracts.StatusSkipped, res.Status)
	assert.Nil(t, res.DDM)
}

func TestDDM_GrowthAboveCostOfEquityFails(t *testing.T) {
	calc := NewDDMCalculator(testMarket(), strategyconfig.Default().Valuation.DDM)

	res := calc.Calculate(&contracts.FundamentalsSnapshot{
		CurrentPrice:        30,
		Beta:                contracts.Float(1.0),
		DividendPerShareTTM: contracts.Float(2.0),
		DividendGrowthRate:  contracts.Float(0.15),
	})
	assert.Equal(t, contracts.StatusFailed, res.Status)
}

func TestHealth_ScoreBounds(t *testing.T) {
	calc := NewHealthCalculator(strategyconfig.Default().Valuation.Health)

	pristine := &contracts.FundamentalsSnapshot{
		CurrentAssets:      contracts.Float(5000),
		CurrentLiabilities: contracts.Float(1000),
		Inventory:          contracts.Float(200),
		TotalDebt:          contracts.Float(100),
		TotalEquity:        contracts.Float(10000),
		TotalAssets:        contracts.Float(15000),
		OperatingIncome:    contracts.Float(4000),
		InterestExpense:    contracts.Float(10),
		NetIncome:          contracts.Float(3000),
		Revenue:            contracts.Float(10000),
	}

	res := calc.Calculate(pristine)
	require.Equal(t, contracts.StatusOK, res.Status)
	assert.InDelta(t, 100.0, res.Health.Score, 1e-9)
	for name, norm := range res.Health.Components {
		assert.GreaterOrEqual(t, norm, 0.0, name)
		assert.LessOrEqual(t, norm, 1.0, name)
	}
}

func TestHealth_MissingMetricsRenormalize(t *testing.T) {
	calc := NewHealthCalculator(strategyconfig.Default().Valuation.Health)

	// Only profitability metrics present, all at their healthy bounds.
	snap := &contracts.FundamentalsSnapshot{
		NetIncome:   contracts.Float(1500),
		Revenue:     contracts.Float(10000),
		TotalEquity: contracts.Float(7500),
		TotalAssets: contracts.Float(15000),
	}

	res := calc.Calculate(snap)
	require.Equal(t, contracts.StatusOK, res.Status)
	// roe 0.20, roa 0.10, net_margin 0.15 all saturate their bands, so the
	// renormalized score must be 100 even though half the metrics are missing.
	assert.InDelta(t, 100.0, res.Health.Score, 1e-9)
	assert.Len(t, res.Health.Components, 3)
}

func TestHealth_NoMetricsFails(t *testing.T) {
	calc := NewHealthCalculator(strategyconfig.Default().Valuation.Health)

	res := calc.Calculate(&contracts.FundamentalsSnapshot{CurrentPrice: 10})
	assert.Equal(t, contracts.StatusFailed, res.Status)
}

func TestHealth_InvertedBand(t *testing.T) {
	band := strategyconfig.MetricBand{Unhealthy: 2.5, Healthy: 0.5}

	assert.InDelta(t, 1.0, normalize(0.3, band), 1e-9)
	assert.InDelta(t, 0.0, normalize(3.0, band), 1e-9)
	assert.InDelta(t, 0.5, normalize(1.5, band), 1e-9)
}

func TestGrowth_CAGR(t *testing.T) {
	calc := NewGrowthCalculator()

	// 10% compounding over 5 years, 6 annual points.
	history := []float64{100, 110, 121, 133.1, 146.41, 161.051}
	snap := &contracts.FundamentalsSnapshot{RevenueHistory: history}

	res := calc.Calculate(snap)
	require.Equal(t, contracts.StatusOK, res.Status)
	require.NotNil(t, res.Growth.Revenue3Y)
	require.NotNil(t, res.Growth.Revenue5Y)
	assert.InDelta(t, 0.10, *res.Growth.Revenue3Y, 1e-9)
	assert.InDelta(t, 0.10, *res.Growth.Revenue5Y, 1e-9)
	assert.Nil(t, res.Growth.Earnings3Y)
}

func TestGrowth_ShortHistorySkips(t *testing.T) {
	calc := NewGrowthCalculator()

	res := calc.Calculate(&contracts.FundamentalsSnapshot{
		RevenueHistory: []float64{100, 110},
	})
	assert.Equal(t, contracts.StatusSkipped, res.Status)
	assert.Equal(t, "insufficient history", res.Reason)
}

func TestGrowth_NegativeEndpointYieldsNil(t *testing.T) {
	calc := NewGrowthCalculator()

	res := calc.Calculate(&contracts.FundamentalsSnapshot{
		EarningsHistory: []float64{-50, 10, 20, 30},
		RevenueHistory:  []float64{100, 110, 121, 133.1},
	})
	require.Equal(t, contracts.StatusOK, res.Status)
	assert.Nil(t, res.Growth.Earnings3Y, "loss-making start year has no meaningful CAGR")
	assert.NotNil(t, res.Growth.Revenue3Y)
}
