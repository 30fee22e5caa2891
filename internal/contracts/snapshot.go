package contracts

import "time"

// FundamentalsSnapshot is the immutable per-ticker input to the valuation
// pipeline: financial statement line items, market data and dividend history
// at a single point in time. The engine never mutates it; optional fields are
// pointers and absence is always distinguishable from zero.
type FundamentalsSnapshot struct {
	Ticker string    `json:"ticker"`
	Sector string    `json:"sector,omitempty"`
	AsOf   time.Time `json:"as_of"`

	// Market data
	CurrentPrice      float64  `json:"current_price"`
	SharesOutstanding float64  `json:"shares_outstanding"`
	Beta              *float64 `json:"beta,omitempty"`

	// Income statement (trailing twelve months)
	Revenue         *float64 `json:"revenue,omitempty"`
	GrossProfit     *float64 `json:"gross_profit,omitempty"`
	OperatingIncome *float64 `json:"operating_income,omitempty"`
	NetIncome       *float64 `json:"net_income,omitempty"`
	EPS             *float64 `json:"eps,omitempty"`
	EBITDA          *float64 `json:"ebitda,omitempty"`
	InterestExpense *float64 `json:"interest_expense,omitempty"`

	// Balance sheet
	TotalAssets        *float64 `json:"total_assets,omitempty"`
	TotalLiabilities   *float64 `json:"total_liabilities,omitempty"`
	TotalEquity        *float64 `json:"total_equity,omitempty"`
	Cash               *float64 `json:"cash,omitempty"`
	Inventory          *float64 `json:"inventory,omitempty"`
	TotalDebt          *float64 `json:"total_debt,omitempty"`
	CurrentAssets      *float64 `json:"current_assets,omitempty"`
	CurrentLiabilities *float64 `json:"current_liabilities,omitempty"`

	// Cash flow
	OperatingCashFlow *float64 `json:"operating_cash_flow,omitempty"`
	FreeCashFlow      *float64 `json:"free_cash_flow,omitempty"`

	// Dividends
	DividendPerShareTTM *float64 `json:"dividend_per_share_ttm,omitempty"`
	DividendGrowthRate  *float64 `json:"dividend_growth_rate,omitempty"`

	// Annual history, ordered oldest to newest
	RevenueHistory  []float64 `json:"revenue_history,omitempty"`
	EarningsHistory []float64 `json:"earnings_history,omitempty"`
	FCFHistory      []float64 `json:"fcf_history,omitempty"`
}

// MarketCap returns price times shares outstanding.
func (s *FundamentalsSnapshot) MarketCap() float64 {
	return s.CurrentPrice * s.SharesOutstanding
}

// PaysDividend reports whether trailing twelve month dividends are positive.
func (s *FundamentalsSnapshot) PaysDividend() bool {
	return s.DividendPerShareTTM != nil && *s.DividendPerShareTTM > 0
}

// BaseFCF returns the free cash flow figure DCF projections start from:
// the snapshot's TTM free cash flow, falling back to the newest history entry.
func (s *FundamentalsSnapshot) BaseFCF() (float64, bool) {
	if v, ok := fval(s.FreeCashFlow); ok {
		return v, true
	}
	if n := len(s.FCFHistory); n > 0 {
		return s.FCFHistory[n-1], true
	}
	return 0, false
}

// Ratio accessors. Each returns (value, ok); ok is false when an input is
// missing or a denominator is non-positive, so callers can exclude the metric
// instead of treating a gap as zero.

func (s *FundamentalsSnapshot) CurrentRatio() (float64, bool) {
	ca, ok1 := fval(s.CurrentAssets)
	cl, ok2 := fval(s.CurrentLiabilities)
	if !ok1 || !ok2 || cl <= 0 {
		return 0, false
	}
	return ca / cl, true
}

func (s *FundamentalsSnapshot) QuickRatio() (float64, bool) {
	ca, ok1 := fval(s.CurrentAssets)
	cl, ok2 := fval(s.CurrentLiabilities)
	if !ok1 || !ok2 || cl <= 0 {
		return 0, false
	}
	inv, ok := fval(s.Inventory)
	if !ok {
		return 0, false
	}
	return (ca - inv) / cl, true
}

func (s *FundamentalsSnapshot) DebtToEquity() (float64, bool) {
	debt, ok1 := fval(s.TotalDebt)
	equity, ok2 := fval(s.TotalEquity)
	if !ok1 || !ok2 || equity <= 0 {
		return 0, false
	}
	return debt / equity, true
}

func (s *FundamentalsSnapshot) InterestCoverage() (float64, bool) {
	op, ok1 := fval(s.OperatingIncome)
	ie, ok2 := fval(s.InterestExpense)
	if !ok1 || !ok2 || ie <= 0 {
		return 0, false
	}
	return op / ie, true
}

func (s *FundamentalsSnapshot) ROE() (float64, bool) {
	ni, ok1 := fval(s.NetIncome)
	equity, ok2 := fval(s.TotalEquity)
	if !ok1 || !ok2 || equity <= 0 {
		return 0, false
	}
	return ni / equity, true
}

func (s *FundamentalsSnapshot) ROA() (float64, bool) {
	ni, ok1 := fval(s.NetIncome)
	assets, ok2 := fval(s.TotalAssets)
	if !ok1 || !ok2 || assets <= 0 {
		return 0, false
	}
	return ni / assets, true
}

func (s *FundamentalsSnapshot) NetMargin() (float64, bool) {
	ni, ok1 := fval(s.NetIncome)
	rev, ok2 := fval(s.Revenue)
	if !ok1 || !ok2 || rev <= 0 {
		return 0, false
	}
	return ni / rev, true
}

func (s *FundamentalsSnapshot) OperatingMargin() (float64, bool) {
	op, ok1 := fval(s.OperatingIncome)
	rev, ok2 := fval(s.Revenue)
	if !ok1 || !ok2 || rev <= 0 {
		return 0, false
	}
	return op / rev, true
}

// BetaOrDefault returns the snapshot beta, or 1.0 when unknown (market beta).
func (s *FundamentalsSnapshot) BetaOrDefault() float64 {
	if v, ok := fval(s.Beta); ok && v > 0 {
		return v
	}
	return 1.0
}

func fval(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Float is a convenience for building optional snapshot fields.
func Float(v float64) *float64 { return &v }
