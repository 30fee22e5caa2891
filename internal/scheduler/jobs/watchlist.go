// Package jobs holds the concrete scheduled jobs.
package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/quickscope/internal/analyzer"
	"github.com/wonny/quickscope/pkg/logger"
)

// WatchlistWarmJob refreshes the cached market data for a fixed watchlist
// before the trading session so interactive requests hit warm caches.
type WatchlistWarmJob struct {
	source   analyzer.DataSource
	tickers  []string
	schedule string
	logger   *logger.Logger
}

// NewWatchlistWarmJob creates a new watchlist warm job. schedule is a cron
// expression with seconds, e.g. "0 0 13 * * 1-5" for weekdays at 13:00 UTC.
func NewWatchlistWarmJob(source analyzer.DataSource, tickers []string, schedule string, log *logger.Logger) *WatchlistWarmJob {
	return &WatchlistWarmJob{
		source:   source,
		tickers:  tickers,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *WatchlistWarmJob) Name() string {
	return "watchlist_cache_warm"
}

// Schedule returns the cron schedule expression
func (j *WatchlistWarmJob) Schedule() string {
	return j.schedule
}

// Run fetches fundamentals, headlines and analyst actions for every watchlist
// ticker. Fetching populates the cache as a side effect. A single bad ticker
// does not abort the rest; the job fails only if every ticker failed.
func (j *WatchlistWarmJob) Run(ctx context.Context) error {
	j.logger.WithField("tickers", len(j.tickers)).Info("Warming watchlist caches")

	var failed int
	for _, ticker := range j.tickers {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := j.source.Snapshot(ctx, ticker); err != nil {
			j.logger.WithError(err).WithField("ticker", ticker).Warn("Snapshot warm failed")
			failed++
			continue
		}
		if _, err := j.source.Headlines(ctx, ticker); err != nil {
			j.logger.WithError(err).WithField("ticker", ticker).Warn("Headline warm failed")
		}
		if _, err := j.source.Recommendations(ctx, ticker); err != nil {
			j.logger.WithError(err).WithField("ticker", ticker).Warn("Recommendation warm failed")
		}
	}

	if failed == len(j.tickers) && len(j.tickers) > 0 {
		return fmt.Errorf("all %d watchlist tickers failed to warm", failed)
	}

	j.logger.WithFields(map[string]interface{}{
		"warmed": len(j.tickers) - failed,
		"failed": failed,
	}).Info("Watchlist caches warmed")

	return nil
}
