package strategyconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/quickscope/internal/contracts"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestShippedYAMLMatchesDefault(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "strategy", "us_equity_v1.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("meta:\n  config_id: x\n  bogus_field: 1\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadOrDefaultWithoutPath(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "us_equity_v1", cfg.Meta.ConfigID)
}

func TestHashDeterministicAndSensitive(t *testing.T) {
	h1, err := Hash(Default())
	require.NoError(t, err)
	h2, err := Hash(Default())
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	changed := Default()
	changed.Valuation.DCF.TerminalGrowthRate = 0.03
	h3, err := Hash(changed)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestValidateCatchesBrokenConfigs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing config id", func(c *Config) { c.Meta.ConfigID = "" }},
		{"projection years too short", func(c *Config) { c.Valuation.DCF.ProjectionYears = 3 }},
		{"terminal growth too high", func(c *Config) { c.Valuation.DCF.TerminalGrowthRate = 0.06 }},
		{"missing default sector", func(c *Config) {
			delete(c.Valuation.Comparables.SectorMedians, "default")
		}},
		{"health weights off one", func(c *Config) { c.Valuation.Health.Weights["roe"] = 0.5 }},
		{"band missing for weighted metric", func(c *Config) {
			delete(c.Valuation.Health.Bands, "roe")
		}},
		{"unknown reconciliation policy", func(c *Config) {
			c.Valuation.Reconciliation.Policy = "majority_vote"
		}},
		{"blend weights not summing", func(c *Config) {
			c.Valuation.Reconciliation.Policy = ReconcileBlend
			c.Valuation.Reconciliation.DCFWeight = 0.9
		}},
		{"missing rule cell", func(c *Config) {
			delete(c.Strategy.Rules[contracts.RiskModerate], contracts.StrategyHedged)
		}},
		{"missing profile row", func(c *Config) {
			delete(c.Strategy.Rules, contracts.RiskAggressive)
		}},
		{"unknown overlay kind", func(c *Config) {
			cell := c.Strategy.Rules[contracts.RiskModerate][contracts.StrategyHedged]
			cell.Overlay = "iron_condor"
			c.Strategy.Rules[contracts.RiskModerate][contracts.StrategyHedged] = cell
		}},
		{"descending confidence buckets", func(c *Config) {
			c.Strategy.Confidence.UpsideBuckets = []float64{0.25, 0.10}
		}},
		{"stop loss zero", func(c *Config) {
			cell := c.Strategy.Rules[contracts.RiskConservative][contracts.StrategyLongOnly]
			cell.StopLossPct = 0
			c.Strategy.Rules[contracts.RiskConservative][contracts.StrategyLongOnly] = cell
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}

func TestConfidenceLookup(t *testing.T) {
	c := Default().Strategy.Confidence

	assert.Equal(t, contracts.ConfidenceLow, c.Lookup(0.05, 0.1))
	assert.Equal(t, contracts.ConfidenceMedium, c.Lookup(0.15, 0.4))
	assert.Equal(t, contracts.ConfidenceMediumHigh, c.Lookup(0.15, 0.7))
	assert.Equal(t, contracts.ConfidenceHigh, c.Lookup(0.30, 0.8))

	// Magnitudes bucket on absolute value, so deep downside with strong
	// negative sentiment is still a confident reading.
	assert.Equal(t, contracts.ConfidenceHigh, c.Lookup(-0.30, -0.8))
}

func TestForSectorFallback(t *testing.T) {
	c := Default().Valuation.Comparables

	assert.Equal(t, 28.0, c.ForSector("technology").PE)
	assert.Equal(t, 20.0, c.ForSector("basket weaving").PE)
}

func TestDaysDuration(t *testing.T) {
	assert.Equal(t, 14*24*60*60, int(Days(14).Duration().Seconds()))
}
