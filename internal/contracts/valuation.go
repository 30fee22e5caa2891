package contracts

import (
	"encoding/json"
	"time"
)

// ValuationMethod identifies one of the independent valuation methods.
type ValuationMethod string

const (
	MethodDCF         ValuationMethod = "dcf"
	MethodComparables ValuationMethod = "comparables"
	MethodDDM         ValuationMethod = "ddm"
	MethodHealthScore ValuationMethod = "health_score"
	MethodGrowth      ValuationMethod = "growth"
)

// MethodStatus distinguishes "computed", "legitimately skipped" and "failed".
// Skipping is expected control flow (DDM on a non-dividend payer), not an
// error, so it is carried as data rather than as an exception path.
type MethodStatus string

const (
	StatusOK      MethodStatus = "ok"
	StatusSkipped MethodStatus = "skipped"
	StatusFailed  MethodStatus = "failed"
)

// ValuationMethodResult is the tagged per-method outcome. Exactly one of the
// outcome pointers matching Method is set when Status is ok.
type ValuationMethodResult struct {
	Method ValuationMethod `json:"method"`
	Status MethodStatus    `json:"status"`
	Reason string          `json:"reason,omitempty"` // why skipped/failed

	DCF         *DCFOutcome         `json:"dcf,omitempty"`
	Comparables *ComparablesOutcome `json:"comparables,omitempty"`
	DDM         *DDMOutcome         `json:"ddm,omitempty"`
	Health      *HealthOutcome      `json:"health,omitempty"`
	Growth      *GrowthOutcome      `json:"growth,omitempty"`
}

// Applicable reports whether the method produced a usable outcome.
func (r *ValuationMethodResult) Applicable() bool {
	return r.Status == StatusOK
}

// DCFOutcome holds discounted cash flow results.
type DCFOutcome struct {
	IntrinsicValuePerShare float64   `json:"intrinsic_value_per_share"`
	WACC                   float64   `json:"wacc"`
	CostOfEquity           float64   `json:"cost_of_equity"`
	GrowthRate             float64   `json:"growth_rate"`
	TerminalGrowthRate     float64   `json:"terminal_growth_rate"`
	ProjectedFCF           []float64 `json:"projected_fcf"`
	TerminalValue          float64   `json:"terminal_value"`
}

// RatioComparison is one multiple measured against its sector median.
type RatioComparison struct {
	Name         string  `json:"name"` // pe, ps, pb, ev_ebitda
	Value        float64 `json:"value"`
	SectorMedian float64 `json:"sector_median"`
	Deviation    float64 `json:"deviation"` // (value - median) / median
}

// ComparablesOutcome holds relative valuation results. Score is on [-2, +2]:
// negative means the stock trades below sector medians (undervalued).
type ComparablesOutcome struct {
	Score                int               `json:"score"`
	AvgDeviation         float64           `json:"avg_deviation"`
	Ratios               []RatioComparison `json:"ratios"`
	ImpliedValuePerShare float64           `json:"implied_value_per_share,omitempty"`
	HasImpliedValue      bool              `json:"has_implied_value"`
}

// DDMOutcome holds Gordon growth dividend discount results.
type DDMOutcome struct {
	IntrinsicValuePerShare float64 `json:"intrinsic_value_per_share"`
	CostOfEquity           float64 `json:"cost_of_equity"`
	DividendGrowthRate     float64 `json:"dividend_growth_rate"`
	NextDividend           float64 `json:"next_dividend"`
}

// HealthOutcome holds the financial health composite on [0, 100].
type HealthOutcome struct {
	Score      float64            `json:"score"`
	Components map[string]float64 `json:"components"` // sub-metric -> normalized [0,1]
}

// CAGRMetric is one compound annual growth rate; nil when history is too short.
type GrowthOutcome struct {
	Revenue3Y  *float64 `json:"revenue_cagr_3y,omitempty"`
	Revenue5Y  *float64 `json:"revenue_cagr_5y,omitempty"`
	Earnings3Y *float64 `json:"earnings_cagr_3y,omitempty"`
	Earnings5Y *float64 `json:"earnings_cagr_5y,omitempty"`
}

// FundamentalReport aggregates all applicable valuation method results into a
// single reconciled view of the company.
type FundamentalReport struct {
	Ticker       string    `json:"ticker"`
	AsOf         time.Time `json:"as_of"`
	CurrentPrice float64   `json:"current_price"`

	// Reconciled across methods; PrimaryMethod names the method that produced it.
	IntrinsicValuePerShare float64         `json:"intrinsic_value_per_share"`
	PrimaryMethod          ValuationMethod `json:"primary_method"`

	RelativeValuationScore int            `json:"relative_valuation_score"` // [-2, +2]
	HealthScore            float64        `json:"health_score"`             // [0, 100]
	Growth                 *GrowthOutcome `json:"growth,omitempty"`

	Methods []ValuationMethodResult `json:"methods"`
}

// UpsidePct is always derived from the reconciled intrinsic value and the
// current price, never stored, so the figure cannot drift from its inputs.
func (r *FundamentalReport) UpsidePct() float64 {
	if r.CurrentPrice == 0 {
		return 0
	}
	return (r.IntrinsicValuePerShare - r.CurrentPrice) / r.CurrentPrice
}

// MarshalJSON adds the derived upside_pct field for the rendering layer.
func (r *FundamentalReport) MarshalJSON() ([]byte, error) {
	type alias FundamentalReport
	return json.Marshal(struct {
		*alias
		UpsidePct float64 `json:"upside_pct"`
	}{
		alias:     (*alias)(r),
		UpsidePct: r.UpsidePct(),
	})
}
