package valuation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/quickscope/internal/contracts"
	"github.com/wonny/quickscope/internal/strategyconfig"
	"github.com/wonny/quickscope/pkg/logger"
)

func newTestAggregator(t *testing.T, mutate func(*strategyconfig.Config)) *Aggregator {
	t.Helper()
	cfg := strategyconfig.Default()
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, strategyconfig.Validate(cfg))
	return NewAggregator(logger.Nop(), testMarket(), cfg.Valuation)
}

func richSnapshot() *contracts.FundamentalsSnapshot {
	return &contracts.FundamentalsSnapshot{
		Ticker:            "ACME",
		Sector:            "industrials",
		AsOf:              time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		CurrentPrice:      42,
		SharesOutstanding: 1000,
		Beta:              contracts.Float(1.1),
		Revenue:           contracts.Float(50000),
		OperatingIncome:   contracts.Float(9000),
		NetIncome:         contracts.Float(6000),
		EPS:               contracts.Float(6.0),
		EBITDA:            contracts.Float(11000),
		InterestExpense:   contracts.Float(400),
		TotalAssets:       contracts.Float(80000),
		TotalEquity:       contracts.Float(35000),
		Cash:              contracts.Float(8000),
		TotalDebt:         contracts.Float(10000),
		CurrentAssets:     contracts.Float(25000),
		CurrentLiabilities: contracts.Float(12000),
		Inventory:         contracts.Float(5000),
		FreeCashFlow:      contracts.Float(5000),
		RevenueHistory:    []float64{38000, 41000, 44500, 47000, 50000},
		EarningsHistory:   []float64{4200, 4700, 5100, 5600, 6000},
		FCFHistory:        []float64{3900, 4200, 4500, 4800, 5000},
	}
}

func TestAggregator_FullSnapshot(t *testing.T) {
	agg := newTestAggregator(t, nil)

	report, err := agg.Evaluate(richSnapshot())
	require.NoError(t, err)

	assert.Equal(t, "ACME", report.Ticker)
	assert.Equal(t, contracts.MethodDCF, report.PrimaryMethod)
	assert.Greater(t, report.IntrinsicValuePerShare, 0.0)
	assert.Greater(t, report.HealthScore, 0.0)
	assert.LessOrEqual(t, report.HealthScore, 100.0)
	assert.NotNil(t, report.Growth)
	assert.Len(t, report.Methods, 5)

	// Upside is derived, never stored.
	wantUpside := (report.IntrinsicValuePerShare - 42) / 42
	assert.InDelta(t, wantUpside, report.UpsidePct(), 1e-12)
}

func TestAggregator_FallsBackToComparables(t *testing.T) {
	agg := newTestAggregator(t, nil)

	snap := richSnapshot()
	snap.FreeCashFlow = nil
	snap.FCFHistory = nil // DCF has nothing to project

	report, err := agg.Evaluate(snap)
	require.NoError(t, err)

	assert.Equal(t, contracts.MethodComparables, report.PrimaryMethod)
	// Implied from earnings: industrials median PE 19 x EPS 6.
	assert.InDelta(t, 19*6.0, report.IntrinsicValuePerShare, 1e-9)
}

func TestAggregator_BlendPolicy(t *testing.T) {
	dcfOnly := newTestAggregator(t, nil)
	blended := newTestAggregator(t, func(cfg *strategyconfig.Config) {
		cfg.Valuation.Reconciliation.Policy = strategyconfig.ReconcileBlend
	})

	snap := richSnapshot()

	primary, err := dcfOnly.Evaluate(snap)
	require.NoError(t, err)
	blend, err := blended.Evaluate(snap)
	require.NoError(t, err)

	var implied float64
	for _, m := range blend.Methods {
		if m.Method == contracts.MethodComparables && m.Applicable() {
			implied = m.Comparables.ImpliedValuePerShare
		}
	}
	require.NotZero(t, implied)

	want := primary.IntrinsicValuePerShare*0.6 + implied*0.4
	assert.InDelta(t, want, blend.IntrinsicValuePerShare, 1e-9)
}

func TestAggregator_NoMethodSucceeds(t *testing.T) {
	agg := newTestAggregator(t, nil)

	_, err := agg.Evaluate(&contracts.FundamentalsSnapshot{
		Ticker:       "EMPTY",
		CurrentPrice: 10,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrInsufficientData))
}

func TestAggregator_MethodFailureDoesNotAbortOthers(t *testing.T) {
	agg := newTestAggregator(t, nil)

	snap := richSnapshot()
	// Dividend growth above cost of equity makes DDM fail hard.
	snap.DividendPerShareTTM = contracts.Float(1.0)
	snap.DividendGrowthRate = contracts.Float(0.50)

	report, err := agg.Evaluate(snap)
	require.NoError(t, err)

	var ddmStatus contracts.MethodStatus
	for _, m := range report.Methods {
		if m.Method == contracts.MethodDDM {
			ddmStatus = m.Status
		}
	}
	assert.Equal(t, contracts.StatusFailed, ddmStatus)
	assert.Equal(t, contracts.MethodDCF, report.PrimaryMethod)
}
