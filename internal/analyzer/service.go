package analyzer

import (
	"context"
	"fmt"
	"sync"

	"github.com/wonny/quickscope/internal/contracts"
	"github.com/wonny/quickscope/pkg/logger"
)

// DataSource supplies the external inputs for one ticker. Implementations
// fetch and cache; the analyzer never talks to the network itself.
type DataSource interface {
	Snapshot(ctx context.Context, ticker string) (*contracts.FundamentalsSnapshot, error)
	Headlines(ctx context.Context, ticker string) ([]contracts.HeadlineScore, error)
	Recommendations(ctx context.Context, ticker string) ([]contracts.AnalystRec, error)
}

// Recorder persists completed analyses for audit. A nil Recorder disables
// persistence.
type Recorder interface {
	RecordAnalysis(ctx context.Context, a *Analysis) error
}

// Selection is the user-facing knobs of a run, shared by every ticker in it.
type Selection struct {
	Profile       contracts.RiskProfile
	Strategy      contracts.StrategyType
	PortfolioSize float64
}

// Result pairs one ticker with its analysis or failure. One bad ticker never
// aborts the others in a batch.
type Result struct {
	Ticker   string
	Analysis *Analysis
	Err      error
}

// Service runs analyses against a data source with bounded concurrency.
type Service struct {
	log      *logger.Logger
	core     *Analyzer
	source   DataSource
	recorder Recorder
	workers  int
}

// NewService wires the analyzer behind a data source. workers bounds batch
// fan-out; values below 1 run sequentially.
func NewService(log *logger.Logger, core *Analyzer, source DataSource, recorder Recorder, workers int) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{log: log, core: core, source: source, recorder: recorder, workers: workers}
}

// Analyze runs the full pipeline for one ticker.
func (s *Service) Analyze(ctx context.Context, ticker string, sel Selection) (*Analysis, error) {
	snapshot, err := s.source.Snapshot(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot %s: %w", ticker, err)
	}

	// Sentiment inputs are best effort: a fetch failure downgrades the run
	// instead of aborting it.
	headlines, err := s.source.Headlines(ctx, ticker)
	if err != nil {
		s.log.WithError(err).WithField("ticker", ticker).Warn("Headline fetch failed")
		headlines = nil
	}
	recs, err := s.source.Recommendations(ctx, ticker)
	if err != nil {
		s.log.WithError(err).WithField("ticker", ticker).Warn("Recommendation fetch failed")
		recs = nil
	}

	analysis, err := s.core.Analyze(Input{
		Snapshot:      snapshot,
		Headlines:     headlines,
		Analysts:      recs,
		Profile:       sel.Profile,
		Strategy:      sel.Strategy,
		PortfolioSize: sel.PortfolioSize,
	})
	if err != nil {
		return nil, err
	}

	if s.recorder != nil {
		if err := s.recorder.RecordAnalysis(ctx, analysis); err != nil {
			s.log.WithError(err).WithField("ticker", ticker).Warn("Audit record failed")
		}
	}
	return analysis, nil
}

// AnalyzeBatch fans tickers out over the worker pool and returns one Result
// per ticker in input order.
func (s *Service) AnalyzeBatch(ctx context.Context, tickers []string, sel Selection) []Result {
	s.log.WithFields(map[string]interface{}{
		"tickers": len(tickers),
		"workers": s.workers,
	}).Info("Starting batch analysis")

	results := make([]Result, len(tickers))
	jobs := make(chan int, len(tickers))

	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					results[i] = Result{Ticker: tickers[i], Err: ctx.Err()}
					continue
				default:
				}
				analysis, err := s.Analyze(ctx, tickers[i], sel)
				results[i] = Result{Ticker: tickers[i], Analysis: analysis, Err: err}
			}
		}()
	}

	for i := range tickers {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	s.log.WithFields(map[string]interface{}{
		"success": len(results) - failed,
		"failed":  failed,
	}).Info("Batch analysis completed")

	return results
}
