package strategyconfig

import (
	"time"

	"github.com/wonny/quickscope/internal/contracts"
)

// Config is the full engine configuration: valuation assumptions, sector
// median tables, sentiment fusion parameters and the strategy rule table.
// It is injected into the engine components; nothing in the pipeline reads
// configuration from globals.
type Config struct {
	Meta      Meta      `yaml:"meta" json:"meta"`
	Valuation Valuation `yaml:"valuation" json:"valuation"`
	Sentiment Sentiment `yaml:"sentiment" json:"sentiment"`
	Strategy  Strategy  `yaml:"strategy" json:"strategy"`
}

// Meta identifies the configuration for audit purposes.
type Meta struct {
	ConfigID string `yaml:"config_id" json:"config_id"`
	Version  string `yaml:"version" json:"version"`
}

// Valuation groups per-method assumptions.
type Valuation struct {
	DCF            DCF            `yaml:"dcf" json:"dcf"`
	DDM            DDM            `yaml:"ddm" json:"ddm"`
	Comparables    Comparables    `yaml:"comparables" json:"comparables"`
	Health         Health         `yaml:"health" json:"health"`
	Reconciliation Reconciliation `yaml:"reconciliation" json:"reconciliation"`
}

// DCF holds discounted cash flow assumptions.
type DCF struct {
	ProjectionYears    int     `yaml:"projection_years" json:"projection_years"` // 5..10
	TerminalGrowthRate float64 `yaml:"terminal_growth_rate" json:"terminal_growth_rate"`
	TaxRate            float64 `yaml:"tax_rate" json:"tax_rate"`
	CostOfDebt         float64 `yaml:"cost_of_debt" json:"cost_of_debt"` // used when interest expense is unavailable
	MaxGrowthRate      float64 `yaml:"max_growth_rate" json:"max_growth_rate"`
}

// DDM holds dividend discount assumptions.
type DDM struct {
	DefaultDividendGrowth float64 `yaml:"default_dividend_growth" json:"default_dividend_growth"`
}

// Comparables holds the sector median tables and scoring thresholds.
type Comparables struct {
	// Deviation thresholds mapping average deviation to the [-2,+2] score.
	// abs(dev) >= Strong -> +-2, abs(dev) >= Mild -> +-1, else 0.
	StrongDeviation float64 `yaml:"strong_deviation" json:"strong_deviation"`
	MildDeviation   float64 `yaml:"mild_deviation" json:"mild_deviation"`

	// SectorMedians keys are lowercase sector names; "default" is required
	// and used when the ticker's sector is unknown or unlisted.
	SectorMedians map[string]RatioMedians `yaml:"sector_medians" json:"sector_medians"`
}

// RatioMedians is the median multiple set for one sector.
type RatioMedians struct {
	PE       float64 `yaml:"pe" json:"pe"`
	PS       float64 `yaml:"ps" json:"ps"`
	PB       float64 `yaml:"pb" json:"pb"`
	EVEBITDA float64 `yaml:"ev_ebitda" json:"ev_ebitda"`
}

// ForSector returns the median table for a sector, falling back to "default".
func (c Comparables) ForSector(sector string) RatioMedians {
	if m, ok := c.SectorMedians[sector]; ok {
		return m
	}
	return c.SectorMedians["default"]
}

// Health holds the health-score weights and normalization bands.
type Health struct {
	Weights map[string]float64    `yaml:"weights" json:"weights"`
	Bands   map[string]MetricBand `yaml:"bands" json:"bands"`
}

// MetricBand is the linear normalization band for one health sub-metric.
// A value at or below Unhealthy scores 0, at or beyond Healthy scores 1.
// For inverted metrics (lower is better, e.g. debt/equity) Healthy < Unhealthy.
type MetricBand struct {
	Unhealthy float64 `yaml:"unhealthy" json:"unhealthy"`
	Healthy   float64 `yaml:"healthy" json:"healthy"`
}

// ReconciliationPolicy selects how DCF and Comparables are reconciled when
// both succeed. The source material leaves the disagreement case open, so it
// is configuration rather than a hardcoded choice.
type ReconciliationPolicy string

const (
	// ReconcileDCFPrimary uses DCF when it succeeds and falls back to the
	// comparables-implied value otherwise.
	ReconcileDCFPrimary ReconciliationPolicy = "dcf_primary"
	// ReconcileBlend blends both values by the configured weights whenever
	// both succeed, still falling back to whichever one is available.
	ReconcileBlend ReconciliationPolicy = "blend"
)

// Reconciliation configures intrinsic value reconciliation across methods.
type Reconciliation struct {
	Policy            ReconciliationPolicy `yaml:"policy" json:"policy"`
	DCFWeight         float64              `yaml:"dcf_weight" json:"dcf_weight"`
	ComparablesWeight float64              `yaml:"comparables_weight" json:"comparables_weight"`
}

// Sentiment holds fusion parameters.
type Sentiment struct {
	// AnalystDecay is the exponential decay applied per 30 elapsed days when
	// weighting analyst recommendations by recency.
	AnalystDecay float64 `yaml:"analyst_decay" json:"analyst_decay"`

	// Trend detection: slope of combined daily scores over the window.
	TrendWindowDays      int     `yaml:"trend_window_days" json:"trend_window_days"`
	TrendSlopeThreshold  float64 `yaml:"trend_slope_threshold" json:"trend_slope_threshold"`
	MaxHeadlineAge       Days    `yaml:"max_headline_age_days" json:"max_headline_age_days"`
	MaxRecommendationAge Days    `yaml:"max_recommendation_age_days" json:"max_recommendation_age_days"`
}

// Days is a day count carried as an integer in YAML.
type Days int

// Duration converts the day count to a time.Duration.
func (d Days) Duration() time.Duration {
	return time.Duration(d) * 24 * time.Hour
}

// Strategy holds the rule table and overlay/confidence parameters.
type Strategy struct {
	// EntryBandPct is the half-width of the entry range around current price.
	EntryBandPct float64 `yaml:"entry_band_pct" json:"entry_band_pct"`

	Overlays   Overlays   `yaml:"overlays" json:"overlays"`
	Confidence Confidence `yaml:"confidence" json:"confidence"`

	// Rules maps risk profile -> strategy type -> rule cell. Validation
	// requires every (profile, strategy) combination to be present.
	Rules map[contracts.RiskProfile]map[contracts.StrategyType]Rule `yaml:"rules" json:"rules"`
}

// Rule is one cell of the (risk profile x strategy type) rule table.
type Rule struct {
	PositionCapPct float64 `yaml:"position_cap_pct" json:"position_cap_pct"`
	MinUpside      float64 `yaml:"min_upside" json:"min_upside"`
	SentimentFloor float64 `yaml:"sentiment_floor" json:"sentiment_floor"`
	StopLossPct    float64 `yaml:"stop_loss_pct" json:"stop_loss_pct"`

	// Overlay names the mandatory options overlay kind; empty means none.
	Overlay contracts.StructureKind `yaml:"overlay,omitempty" json:"overlay,omitempty"`
}

// RequiresOverlay reports whether the cell mandates an options overlay.
func (r Rule) RequiresOverlay() bool {
	return r.Overlay != ""
}

// Cell returns the rule for a (profile, strategy) pair. The second return is
// false only for tables that bypassed validation.
func (s Strategy) Cell(p contracts.RiskProfile, t contracts.StrategyType) (Rule, bool) {
	row, ok := s.Rules[p]
	if !ok {
		return Rule{}, false
	}
	cell, ok := row[t]
	return cell, ok
}

// Overlays holds overlay construction parameters.
type Overlays struct {
	// Protective put / collar strikes are offset below (put) and above (call)
	// the current price by these fractions, approximating a delta target.
	PutStrikeOffsetPct  float64 `yaml:"put_strike_offset_pct" json:"put_strike_offset_pct"`
	CallStrikeOffsetPct float64 `yaml:"call_strike_offset_pct" json:"call_strike_offset_pct"`

	// Premium estimates (fraction of spot) used when no live options chain
	// is supplied to the engine.
	PutPremiumEstPct  float64 `yaml:"put_premium_est_pct" json:"put_premium_est_pct"`
	CallPremiumEstPct float64 `yaml:"call_premium_est_pct" json:"call_premium_est_pct"`

	// Vertical spread width as a fraction of spot.
	SpreadWidthPct float64 `yaml:"spread_width_pct" json:"spread_width_pct"`

	// LEAPS sizing: leveraged notional = position size x multiplier,
	// contracts = notional / (delta x spot x 100).
	LeapsMultiplier    float64 `yaml:"leaps_multiplier" json:"leaps_multiplier"`
	LeapsDelta         float64 `yaml:"leaps_delta" json:"leaps_delta"`
	LeapsMinDays       int     `yaml:"leaps_min_days" json:"leaps_min_days"`
	LeapsPremiumEstPct float64 `yaml:"leaps_premium_est_pct" json:"leaps_premium_est_pct"`
}

// Confidence is the fixed lookup over |upside| and |combined sentiment|
// buckets. Matrix rows are upside buckets (low to high), columns sentiment
// buckets (low to high); entries are confidence levels.
type Confidence struct {
	UpsideBuckets    []float64                     `yaml:"upside_buckets" json:"upside_buckets"`       // 2 ascending cut points
	SentimentBuckets []float64                     `yaml:"sentiment_buckets" json:"sentiment_buckets"` // 2 ascending cut points
	Matrix           [][]contracts.ConfidenceLevel `yaml:"matrix" json:"matrix"`                       // 3x3
}

// Lookup buckets the two magnitudes and returns the configured level.
func (c Confidence) Lookup(upside, sentiment float64) contracts.ConfidenceLevel {
	row := bucket(abs(upside), c.UpsideBuckets)
	col := bucket(abs(sentiment), c.SentimentBuckets)
	return c.Matrix[row][col]
}

func bucket(v float64, cuts []float64) int {
	idx := 0
	for _, cut := range cuts {
		if v >= cut {
			idx++
		}
	}
	return idx
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
