// Package strategy turns a fundamental report and a sentiment report into an
// actionable recommendation by evaluating the configured rule table. Every
// method is a pure function of its inputs.
package strategy

import (
	"fmt"

	"github.com/wonny/quickscope/internal/contracts"
	"github.com/wonny/quickscope/internal/strategyconfig"
	"github.com/wonny/quickscope/pkg/logger"
)

// Request selects the rule-table cell and sizes the position.
type Request struct {
	Profile       contracts.RiskProfile
	Strategy      contracts.StrategyType
	PortfolioSize float64 // currency amount available for allocation
}

// Engine evaluates the rule table.
type Engine struct {
	log *logger.Logger
	cfg strategyconfig.Strategy
}

// NewEngine creates a strategy engine from validated configuration.
func NewEngine(log *logger.Logger, cfg strategyconfig.Strategy) *Engine {
	return &Engine{log: log, cfg: cfg}
}

// Recommend applies the (profile, strategy) rule cell to the two reports.
//
// The entry condition requires both enough upside and a sentiment floor; a
// miss on either yields wait, never an error. The engine tracks no positions
// across calls, so the no-entry verdict is always wait rather than hold.
func (e *Engine) Recommend(fr *contracts.FundamentalReport, sr *contracts.SentimentReport, req Request) (*contracts.StrategyRecommendation, error) {
	rule, ok := e.cfg.Cell(req.Profile, req.Strategy)
	if !ok {
		return nil, fmt.Errorf("no rule for profile %q strategy %q", req.Profile, req.Strategy)
	}
	if req.PortfolioSize <= 0 {
		return nil, fmt.Errorf("portfolio size must be positive, got %.2f", req.PortfolioSize)
	}

	upside := fr.UpsidePct()
	combined := sr.Combined()

	rec := &contracts.StrategyRecommendation{
		Ticker:     fr.Ticker,
		Profile:    req.Profile,
		Strategy:   req.Strategy,
		Confidence: e.cfg.Confidence.Lookup(upside, combined),
	}

	if upside < rule.MinUpside || combined < rule.SentimentFloor {
		rec.Action = contracts.TradeWait
		rec.Notes = append(rec.Notes, fmt.Sprintf(
			"entry condition unmet: upside %.1f%% (need %.1f%%), sentiment %.2f (floor %.2f)",
			upside*100, rule.MinUpside*100, combined, rule.SentimentFloor))
		return rec, nil
	}

	price := fr.CurrentPrice
	rec.Action = contracts.TradeBuy
	rec.PositionSize = req.PortfolioSize * rule.PositionCapPct
	rec.EntryRange = contracts.PriceRange{
		Low:  price * (1 - e.cfg.EntryBandPct),
		High: price * (1 + e.cfg.EntryBandPct),
	}
	rec.StopLoss = price * (1 - rule.StopLossPct)
	rec.TakeProfit = fr.IntrinsicValuePerShare

	if sr.Trend == contracts.TrendDeteriorating {
		rec.Notes = append(rec.Notes, "sentiment trend is deteriorating; entry condition still met")
	}
	if sr.ReducedConfidence {
		rec.Notes = append(rec.Notes, "sentiment rests on a single source")
	}

	if rule.RequiresOverlay() {
		overlay, err := e.buildOverlay(rule.Overlay, fr, rec)
		if err != nil {
			return nil, fmt.Errorf("overlay %s: %w", rule.Overlay, err)
		}
		rec.Overlay = overlay
	}

	entry := rec.EntryRange.Mid()
	risk := entry - rec.StopLoss
	if risk <= 0 {
		// Intrinsic value and price geometry put the stop at or above entry.
		// The trade has no defined risk, so it degrades to wait.
		e.log.WithField("ticker", fr.Ticker).Warn("Degenerate risk geometry, downgrading to wait")
		return e.degrade(rec, fmt.Sprintf("%v: stop %.2f at or above entry %.2f", contracts.ErrDegenerateRisk, rec.StopLoss, entry)), nil
	}
	rec.RiskRewardRatio = (rec.TakeProfit - entry) / risk

	return rec, nil
}

// degrade strips the sizing fields off a recommendation and turns it into a
// wait with an explanatory note.
func (e *Engine) degrade(rec *contracts.StrategyRecommendation, note string) *contracts.StrategyRecommendation {
	return &contracts.StrategyRecommendation{
		Ticker:     rec.Ticker,
		Action:     contracts.TradeWait,
		Profile:    rec.Profile,
		Strategy:   rec.Strategy,
		Confidence: rec.Confidence,
		Notes:      append(rec.Notes, note),
	}
}
