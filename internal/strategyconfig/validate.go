package strategyconfig

import (
	"fmt"
	"math"

	"github.com/wonny/quickscope/internal/contracts"
)

// Validate checks internal consistency of a Config. The rule table must be
// exhaustive over every (risk profile, strategy type) combination so a
// missing cell is a load-time failure, never a runtime surprise.
func Validate(cfg *Config) error {
	if cfg.Meta.ConfigID == "" {
		return fmt.Errorf("meta.config_id is required")
	}

	if err := validateDCF(cfg.Valuation.DCF); err != nil {
		return err
	}
	if err := validateComparables(cfg.Valuation.Comparables); err != nil {
		return err
	}
	if err := validateHealth(cfg.Valuation.Health); err != nil {
		return err
	}
	if err := validateReconciliation(cfg.Valuation.Reconciliation); err != nil {
		return err
	}
	if err := validateSentiment(cfg.Sentiment); err != nil {
		return err
	}
	if err := validateStrategy(cfg.Strategy); err != nil {
		return err
	}

	return nil
}

func validateDCF(d DCF) error {
	if d.ProjectionYears < 5 || d.ProjectionYears > 10 {
		return fmt.Errorf("dcf.projection_years %d out of range [5, 10]", d.ProjectionYears)
	}
	if d.TerminalGrowthRate <= 0 || d.TerminalGrowthRate >= 0.05 {
		return fmt.Errorf("dcf.terminal_growth_rate %.4f out of range (0, 0.05)", d.TerminalGrowthRate)
	}
	if d.TaxRate < 0 || d.TaxRate >= 1 {
		return fmt.Errorf("dcf.tax_rate %.4f out of range [0, 1)", d.TaxRate)
	}
	if d.CostOfDebt <= 0 {
		return fmt.Errorf("dcf.cost_of_debt must be positive")
	}
	if d.MaxGrowthRate <= 0 {
		return fmt.Errorf("dcf.max_growth_rate must be positive")
	}
	return nil
}

func validateComparables(c Comparables) error {
	if c.MildDeviation <= 0 || c.StrongDeviation <= c.MildDeviation {
		return fmt.Errorf("comparables deviations must satisfy 0 < mild < strong (got mild=%.2f strong=%.2f)",
			c.MildDeviation, c.StrongDeviation)
	}
	if _, ok := c.SectorMedians["default"]; !ok {
		return fmt.Errorf("comparables.sector_medians must contain a \"default\" entry")
	}
	for sector, m := range c.SectorMedians {
		if m.PE <= 0 || m.PS <= 0 || m.PB <= 0 || m.EVEBITDA <= 0 {
			return fmt.Errorf("comparables.sector_medians[%s]: all medians must be positive", sector)
		}
	}
	return nil
}

func validateHealth(h Health) error {
	if len(h.Weights) == 0 {
		return fmt.Errorf("health.weights is empty")
	}

	sum := 0.0
	for metric, w := range h.Weights {
		if w <= 0 {
			return fmt.Errorf("health.weights[%s] must be positive", metric)
		}
		if _, ok := h.Bands[metric]; !ok {
			return fmt.Errorf("health.bands missing entry for weighted metric %q", metric)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("health.weights must sum to 1.0, got %.6f", sum)
	}

	for metric, b := range h.Bands {
		if b.Healthy == b.Unhealthy {
			return fmt.Errorf("health.bands[%s]: healthy and unhealthy bounds are equal", metric)
		}
	}
	return nil
}

func validateReconciliation(r Reconciliation) error {
	switch r.Policy {
	case ReconcileDCFPrimary:
		return nil
	case ReconcileBlend:
		if r.DCFWeight <= 0 || r.ComparablesWeight <= 0 {
			return fmt.Errorf("reconciliation blend weights must be positive")
		}
		if math.Abs(r.DCFWeight+r.ComparablesWeight-1.0) > 1e-6 {
			return fmt.Errorf("reconciliation blend weights must sum to 1.0, got %.6f",
				r.DCFWeight+r.ComparablesWeight)
		}
		return nil
	default:
		return fmt.Errorf("reconciliation.policy %q unknown (want dcf_primary|blend)", r.Policy)
	}
}

func validateSentiment(s Sentiment) error {
	if s.AnalystDecay <= 0 {
		return fmt.Errorf("sentiment.analyst_decay must be positive")
	}
	if s.TrendWindowDays < 2 {
		return fmt.Errorf("sentiment.trend_window_days must be at least 2")
	}
	if s.TrendSlopeThreshold <= 0 {
		return fmt.Errorf("sentiment.trend_slope_threshold must be positive")
	}
	return nil
}

func validateStrategy(s Strategy) error {
	if s.EntryBandPct <= 0 || s.EntryBandPct >= 0.1 {
		return fmt.Errorf("strategy.entry_band_pct %.4f out of range (0, 0.1)", s.EntryBandPct)
	}

	// Exhaustive rule table: every profile x strategy combination.
	for _, profile := range contracts.RiskProfiles {
		row, ok := s.Rules[profile]
		if !ok {
			return fmt.Errorf("strategy.rules missing profile %q", profile)
		}
		for _, st := range contracts.StrategyTypes {
			cell, ok := row[st]
			if !ok {
				return fmt.Errorf("strategy.rules[%s] missing strategy %q", profile, st)
			}
			if err := validateRule(profile, st, cell); err != nil {
				return err
			}
		}
	}

	o := s.Overlays
	if o.PutStrikeOffsetPct <= 0 || o.PutStrikeOffsetPct >= 0.5 {
		return fmt.Errorf("strategy.overlays.put_strike_offset_pct out of range (0, 0.5)")
	}
	if o.LeapsDelta <= 0 || o.LeapsDelta > 1 {
		return fmt.Errorf("strategy.overlays.leaps_delta out of range (0, 1]")
	}
	if o.LeapsMultiplier < 1 {
		return fmt.Errorf("strategy.overlays.leaps_multiplier must be >= 1")
	}

	c := s.Confidence
	if len(c.UpsideBuckets) != 2 || len(c.SentimentBuckets) != 2 {
		return fmt.Errorf("strategy.confidence buckets must each have exactly 2 cut points")
	}
	if c.UpsideBuckets[0] >= c.UpsideBuckets[1] || c.SentimentBuckets[0] >= c.SentimentBuckets[1] {
		return fmt.Errorf("strategy.confidence bucket cut points must be ascending")
	}
	if len(c.Matrix) != 3 {
		return fmt.Errorf("strategy.confidence.matrix must have 3 rows")
	}
	for i, row := range c.Matrix {
		if len(row) != 3 {
			return fmt.Errorf("strategy.confidence.matrix row %d must have 3 entries", i)
		}
		for j, level := range row {
			switch level {
			case contracts.ConfidenceLow, contracts.ConfidenceMedium,
				contracts.ConfidenceMediumHigh, contracts.ConfidenceHigh:
			default:
				return fmt.Errorf("strategy.confidence.matrix[%d][%d]: unknown level %q", i, j, level)
			}
		}
	}

	return nil
}

func validateRule(p contracts.RiskProfile, t contracts.StrategyType, r Rule) error {
	where := fmt.Sprintf("strategy.rules[%s][%s]", p, t)
	if r.PositionCapPct <= 0 || r.PositionCapPct > 0.5 {
		return fmt.Errorf("%s.position_cap_pct %.4f out of range (0, 0.5]", where, r.PositionCapPct)
	}
	if r.MinUpside <= 0 {
		return fmt.Errorf("%s.min_upside must be positive", where)
	}
	if r.SentimentFloor < -1 || r.SentimentFloor > 1 {
		return fmt.Errorf("%s.sentiment_floor out of range [-1, 1]", where)
	}
	if r.StopLossPct <= 0 || r.StopLossPct >= 0.5 {
		return fmt.Errorf("%s.stop_loss_pct %.4f out of range (0, 0.5)", where, r.StopLossPct)
	}
	switch r.Overlay {
	case "", contracts.StructCoveredCall, contracts.StructCashSecuredPut,
		contracts.StructBullCallSpread, contracts.StructBearPutSpread,
		contracts.StructProtectivePut, contracts.StructCollar, contracts.StructLEAPSCall:
	default:
		return fmt.Errorf("%s.overlay: unknown structure kind %q", where, r.Overlay)
	}
	return nil
}
