package strategyconfig

import "github.com/wonny/quickscope/internal/contracts"

// Default returns the built-in configuration, identical to
// config/strategy/us_equity_v1.yaml. Library callers that do not load a YAML
// file get these values.
func Default() *Config {
	return &Config{
		Meta: Meta{
			ConfigID: "us_equity_v1",
			Version:  "1.0.0",
		},
		Valuation: Valuation{
			DCF: DCF{
				ProjectionYears:    5,
				TerminalGrowthRate: 0.025,
				TaxRate:            0.21,
				CostOfDebt:         0.055,
				MaxGrowthRate:      0.20,
			},
			DDM: DDM{
				DefaultDividendGrowth: 0.04,
			},
			Comparables: Comparables{
				StrongDeviation: 0.30,
				MildDeviation:   0.10,
				SectorMedians: map[string]RatioMedians{
					"default":     {PE: 20, PS: 2.5, PB: 3.0, EVEBITDA: 12},
					"technology":  {PE: 28, PS: 6.0, PB: 8.0, EVEBITDA: 18},
					"financials":  {PE: 13, PS: 2.8, PB: 1.3, EVEBITDA: 10},
					"healthcare":  {PE: 22, PS: 4.0, PB: 4.0, EVEBITDA: 14},
					"energy":      {PE: 11, PS: 1.2, PB: 1.6, EVEBITDA: 6},
					"industrials": {PE: 19, PS: 1.8, PB: 3.5, EVEBITDA: 11},
					"utilities":   {PE: 17, PS: 2.2, PB: 1.8, EVEBITDA: 11},
				},
			},
			Health: Health{
				Weights: map[string]float64{
					"current_ratio":     0.15,
					"quick_ratio":       0.10,
					"debt_to_equity":    0.15,
					"interest_coverage": 0.10,
					"roe":               0.20,
					"roa":               0.10,
					"net_margin":        0.10,
					"operating_margin":  0.10,
				},
				Bands: map[string]MetricBand{
					"current_ratio":     {Unhealthy: 0.8, Healthy: 2.0},
					"quick_ratio":       {Unhealthy: 0.5, Healthy: 1.5},
					"debt_to_equity":    {Unhealthy: 2.5, Healthy: 0.5}, // inverted: lower is better
					"interest_coverage": {Unhealthy: 1.5, Healthy: 8.0},
					"roe":               {Unhealthy: 0.0, Healthy: 0.20},
					"roa":               {Unhealthy: 0.0, Healthy: 0.10},
					"net_margin":        {Unhealthy: 0.0, Healthy: 0.15},
					"operating_margin":  {Unhealthy: 0.0, Healthy: 0.20},
				},
			},
			Reconciliation: Reconciliation{
				Policy:            ReconcileDCFPrimary,
				DCFWeight:         0.6,
				ComparablesWeight: 0.4,
			},
		},
		Sentiment: Sentiment{
			AnalystDecay:         0.3,
			TrendWindowDays:      5,
			TrendSlopeThreshold:  0.02,
			MaxHeadlineAge:       14,
			MaxRecommendationAge: 120,
		},
		Strategy: Strategy{
			EntryBandPct: 0.01,
			Overlays: Overlays{
				PutStrikeOffsetPct:  0.07,
				CallStrikeOffsetPct: 0.07,
				PutPremiumEstPct:    0.015,
				CallPremiumEstPct:   0.02,
				SpreadWidthPct:      0.05,
				LeapsMultiplier:     2.0,
				LeapsDelta:          0.7,
				LeapsMinDays:        365,
				LeapsPremiumEstPct:  0.10,
			},
			Confidence: Confidence{
				UpsideBuckets:    []float64{0.10, 0.25},
				SentimentBuckets: []float64{0.30, 0.60},
				Matrix: [][]contracts.ConfidenceLevel{
					{contracts.ConfidenceLow, contracts.ConfidenceLow, contracts.ConfidenceMedium},
					{contracts.ConfidenceLow, contracts.ConfidenceMedium, contracts.ConfidenceMediumHigh},
					{contracts.ConfidenceMedium, contracts.ConfidenceMediumHigh, contracts.ConfidenceHigh},
				},
			},
			Rules: map[contracts.RiskProfile]map[contracts.StrategyType]Rule{
				contracts.RiskConservative: {
					contracts.StrategyLongOnly:     {PositionCapPct: 0.05, MinUpside: 0.20, SentimentFloor: 0.30, StopLossPct: 0.05},
					contracts.StrategyHedged:       {PositionCapPct: 0.06, MinUpside: 0.20, SentimentFloor: 0.30, StopLossPct: 0.05, Overlay: contracts.StructCollar},
					contracts.StrategyLeveraged:    {PositionCapPct: 0.03, MinUpside: 0.25, SentimentFloor: 0.40, StopLossPct: 0.04},
					contracts.StrategyOptionsBased: {PositionCapPct: 0.04, MinUpside: 0.15, SentimentFloor: 0.30, StopLossPct: 0.05, Overlay: contracts.StructCoveredCall},
				},
				contracts.RiskModerate: {
					contracts.StrategyLongOnly:     {PositionCapPct: 0.10, MinUpside: 0.10, SentimentFloor: 0.20, StopLossPct: 0.08},
					contracts.StrategyHedged:       {PositionCapPct: 0.10, MinUpside: 0.10, SentimentFloor: 0.20, StopLossPct: 0.08, Overlay: contracts.StructProtectivePut},
					contracts.StrategyLeveraged:    {PositionCapPct: 0.06, MinUpside: 0.15, SentimentFloor: 0.30, StopLossPct: 0.07},
					contracts.StrategyOptionsBased: {PositionCapPct: 0.08, MinUpside: 0.10, SentimentFloor: 0.20, StopLossPct: 0.08, Overlay: contracts.StructCashSecuredPut},
				},
				contracts.RiskAggressive: {
					contracts.StrategyLongOnly:     {PositionCapPct: 0.15, MinUpside: 0.05, SentimentFloor: 0.10, StopLossPct: 0.12},
					contracts.StrategyHedged:       {PositionCapPct: 0.15, MinUpside: 0.05, SentimentFloor: 0.10, StopLossPct: 0.12, Overlay: contracts.StructProtectivePut},
					contracts.StrategyLeveraged:    {PositionCapPct: 0.20, MinUpside: 0.10, SentimentFloor: 0.20, StopLossPct: 0.10, Overlay: contracts.StructLEAPSCall},
					contracts.StrategyOptionsBased: {PositionCapPct: 0.15, MinUpside: 0.08, SentimentFloor: 0.15, StopLossPct: 0.12, Overlay: contracts.StructBullCallSpread},
				},
			},
		},
	}
}
