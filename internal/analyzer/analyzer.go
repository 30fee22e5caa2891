// Package analyzer wires valuation, sentiment fusion and the strategy engine
// into one per-ticker analysis. The core Analyze path takes fully materialized
// inputs and performs no I/O; fetching, caching and persistence sit in the
// surrounding Service.
package analyzer

import (
	"errors"
	"fmt"
	"time"

	"github.com/wonny/quickscope/internal/contracts"
	"github.com/wonny/quickscope/internal/sentiment"
	"github.com/wonny/quickscope/internal/strategy"
	"github.com/wonny/quickscope/internal/strategyconfig"
	"github.com/wonny/quickscope/internal/valuation"
	"github.com/wonny/quickscope/pkg/logger"
)

// Input is everything one analysis call consumes.
type Input struct {
	Snapshot  *contracts.FundamentalsSnapshot
	Headlines []contracts.HeadlineScore
	Analysts  []contracts.AnalystRec

	Profile       contracts.RiskProfile
	Strategy      contracts.StrategyType
	PortfolioSize float64
}

// Analysis is the complete result for one ticker.
type Analysis struct {
	Ticker         string                            `json:"ticker"`
	GeneratedAt    time.Time                         `json:"generated_at"`
	ConfigHash     string                            `json:"config_hash"`
	Fundamental    *contracts.FundamentalReport      `json:"fundamental"`
	Sentiment      *contracts.SentimentReport        `json:"sentiment"`
	Recommendation *contracts.StrategyRecommendation `json:"recommendation"`
}

// Analyzer is the pure per-ticker pipeline.
type Analyzer struct {
	log        *logger.Logger
	aggregator *valuation.Aggregator
	fuser      *sentiment.Fuser
	engine     *strategy.Engine
	configHash string
}

// New builds the analyzer from validated configuration.
func New(log *logger.Logger, market valuation.MarketParams, cfg *strategyconfig.Config) (*Analyzer, error) {
	if err := strategyconfig.Validate(cfg); err != nil {
		return nil, fmt.Errorf("strategy config: %w", err)
	}
	hash, err := strategyconfig.Hash(cfg)
	if err != nil {
		return nil, fmt.Errorf("hash strategy config: %w", err)
	}
	return &Analyzer{
		log:        log,
		aggregator: valuation.NewAggregator(log, market, cfg.Valuation),
		fuser:      sentiment.NewFuser(log, cfg.Sentiment),
		engine:     strategy.NewEngine(log, cfg.Strategy),
		configHash: hash,
	}, nil
}

// Analyze runs valuation, sentiment fusion and the rule engine over one
// ticker's inputs. A valuation failure aborts the analysis; absent sentiment
// degrades to a neutral report so the rule engine can still answer, usually
// with a wait.
func (a *Analyzer) Analyze(in Input) (*Analysis, error) {
	if in.Snapshot == nil {
		return nil, errors.New("analyze: snapshot is required")
	}
	ticker := in.Snapshot.Ticker

	fundamental, err := a.aggregator.Evaluate(in.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("valuation %s: %w", ticker, err)
	}

	sent, err := a.fuser.Fuse(ticker, in.Snapshot.AsOf, in.Headlines, in.Analysts)
	if err != nil {
		if !errors.Is(err, contracts.ErrNoSentimentData) {
			return nil, fmt.Errorf("sentiment %s: %w", ticker, err)
		}
		a.log.WithField("ticker", ticker).Warn("No sentiment data, proceeding neutral")
		sent = &contracts.SentimentReport{
			Ticker:            ticker,
			AsOf:              in.Snapshot.AsOf,
			Trend:             contracts.TrendStable,
			ReducedConfidence: true,
		}
	}

	rec, err := a.engine.Recommend(fundamental, sent, strategy.Request{
		Profile:       in.Profile,
		Strategy:      in.Strategy,
		PortfolioSize: in.PortfolioSize,
	})
	if err != nil {
		return nil, fmt.Errorf("strategy %s: %w", ticker, err)
	}

	return &Analysis{
		Ticker:         ticker,
		GeneratedAt:    in.Snapshot.AsOf,
		ConfigHash:     a.configHash,
		Fundamental:    fundamental,
		Sentiment:      sent,
		Recommendation: rec,
	}, nil
}

// ConfigHash identifies the configuration the analyzer was built with.
func (a *Analyzer) ConfigHash() string {
	return a.configHash
}
