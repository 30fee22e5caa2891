package valuation

import (
	"fmt"
	"strings"

	"github.com/wonny/quickscope/internal/contracts"
	"github.com/wonny/quickscope/internal/strategyconfig"
)

// ComparablesCalculator scores a company's trading multiples against sector
// medians and derives an implied per-share value from them.
type ComparablesCalculator struct {
	cfg strategyconfig.Comparables
}

// NewComparablesCalculator creates a comparables calculator.
func NewComparablesCalculator(cfg strategyconfig.Comparables) *ComparablesCalculator {
	return &ComparablesCalculator{cfg: cfg}
}

// Calculate compares every computable multiple against its sector median and
// maps the average deviation onto the [-2,+2] relative valuation score, where
// negative scores mean the stock trades below its sector (undervalued).
func (c *ComparablesCalculator) Calculate(s *contracts.FundamentalsSnapshot) contracts.ValuationMethodResult {
	outcome, err := c.compute(s)
	if err != nil {
		return contracts.ValuationMethodResult{
			Method: contracts.MethodComparables,
			Status: contracts.StatusFailed,
			Reason: err.Error(),
		}
	}
	return contracts.ValuationMethodResult{
		Method:      contracts.MethodComparables,
		Status:      contracts.StatusOK,
		Comparables: outcome,
	}
}

func (c *ComparablesCalculator) compute(s *contracts.FundamentalsSnapshot) (*contracts.ComparablesOutcome, error) {
	medians := c.cfg.ForSector(strings.ToLower(s.Sector))

	var ratios []contracts.RatioComparison
	add := func(name string, value float64, ok bool, median float64) {
		if !ok || value <= 0 || median <= 0 {
			return
		}
		ratios = append(ratios, contracts.RatioComparison{
			Name:         name,
			Value:        value,
			SectorMedian: median,
			Deviation:    (value - median) / median,
		})
	}

	marketCap := s.MarketCap()

	pe, peOK := peRatio(s)
	add("pe", pe, peOK, medians.PE)
	if s.Revenue != nil && *s.Revenue > 0 {
		add("ps", marketCap / *s.Revenue, true, medians.PS)
	}
	if s.TotalEquity != nil && *s.TotalEquity > 0 {
		add("pb", marketCap / *s.TotalEquity, true, medians.PB)
	}
	if ev, ok := enterpriseValue(s); ok && s.EBITDA != nil && *s.EBITDA > 0 {
		add("ev_ebitda", ev / *s.EBITDA, true, medians.EVEBITDA)
	}

	if len(ratios) == 0 {
		return nil, fmt.Errorf("%w: no computable multiples", contracts.ErrInsufficientData)
	}

	var sum float64
	for _, r := range ratios {
		sum += r.Deviation
	}
	avg := sum / float64(len(ratios))

	outcome := &contracts.ComparablesOutcome{
		Score:        c.score(avg),
		AvgDeviation: avg,
		Ratios:       ratios,
	}

	if implied, ok := impliedValue(s, medians); ok {
		outcome.ImpliedValuePerShare = implied
		outcome.HasImpliedValue = true
	}
	return outcome, nil
}

// score maps the average deviation onto [-2,+2]. Trading above the sector
// median is positive deviation, so expensive stocks score positive.
func (c *ComparablesCalculator) score(avg float64) int {
	switch {
	case avg >= c.cfg.StrongDeviation:
		return 2
	case avg >= c.cfg.MildDeviation:
		return 1
	case avg <= -c.cfg.StrongDeviation:
		return -2
	case avg <= -c.cfg.MildDeviation:
		return -1
	default:
		return 0
	}
}

// impliedValue derives a per-share value from the best available median
// multiple: earnings first, then sales, then book.
func impliedValue(s *contracts.FundamentalsSnapshot, m strategyconfig.RatioMedians) (float64, bool) {
	if s.EPS != nil && *s.EPS > 0 && m.PE > 0 {
		return m.PE * *s.EPS, true
	}
	if s.SharesOutstanding <= 0 {
		return 0, false
	}
	if s.Revenue != nil && *s.Revenue > 0 && m.PS > 0 {
		return m.PS * *s.Revenue / s.SharesOutstanding, true
	}
	if s.TotalEquity != nil && *s.TotalEquity > 0 && m.PB > 0 {
		return m.PB * *s.TotalEquity / s.SharesOutstanding, true
	}
	return 0, false
}

func peRatio(s *contracts.FundamentalsSnapshot) (float64, bool) {
	if s.EPS == nil || *s.EPS <= 0 {
		return 0, false
	}
	return s.CurrentPrice / *s.EPS, true
}

func enterpriseValue(s *contracts.FundamentalsSnapshot) (float64, bool) {
	ev := s.MarketCap()
	if ev <= 0 {
		return 0, false
	}
	if s.TotalDebt != nil {
		ev += *s.TotalDebt
	}
	if s.Cash != nil {
		ev -= *s.Cash
	}
	return ev, true
}
