// Package sentiment fuses headline classifications and analyst
// recommendations into a single directional score per ticker. It consumes
// pre-labeled inputs; classification itself happens upstream.
package sentiment

import (
	"fmt"
	"math"
	"time"

	"github.com/wonny/quickscope/internal/contracts"
	"github.com/wonny/quickscope/internal/strategyconfig"
	"github.com/wonny/quickscope/pkg/logger"
)

// Fuser combines news and analyst sentiment under the configured decay and
// trend parameters.
type Fuser struct {
	log *logger.Logger
	cfg strategyconfig.Sentiment
}

// NewFuser creates a sentiment fuser.
func NewFuser(log *logger.Logger, cfg strategyconfig.Sentiment) *Fuser {
	return &Fuser{log: log, cfg: cfg}
}

// Fuse builds the sentiment report for one ticker as of a reference time.
// Headlines older than the headline age limit and recommendations older than
// the recommendation age limit are ignored. It fails only when both sources
// are empty after filtering.
func (f *Fuser) Fuse(ticker string, asOf time.Time, headlines []contracts.HeadlineScore, recs []contracts.AnalystRec) (*contracts.SentimentReport, error) {
	news := f.filterHeadlines(asOf, headlines)
	analysts := f.filterRecs(asOf, recs)

	if len(news) == 0 && len(analysts) == 0 {
		return nil, fmt.Errorf("%w: ticker %s", contracts.ErrNoSentimentData, ticker)
	}

	report := &contracts.SentimentReport{
		Ticker:            ticker,
		AsOf:              asOf,
		NewsCount:         len(news),
		AnalystCount:      len(analysts),
		ReducedConfidence: len(news) == 0 || len(analysts) == 0,
		Trend:             f.trend(asOf, news, analysts),
	}

	if len(news) > 0 {
		report.NewsScore = newsScore(news)
	}
	if len(analysts) > 0 {
		report.AnalystScore = f.analystScore(asOf, analysts)
	}

	f.log.WithFields(map[string]interface{}{
		"ticker":        ticker,
		"news_count":    report.NewsCount,
		"analyst_count": report.AnalystCount,
		"combined":      fmt.Sprintf("%.4f", report.Combined()),
		"trend":         string(report.Trend),
	}).Debug("Sentiment fused")

	return report, nil
}

// newsScore is the confidence-weighted mean polarity of the headlines.
func newsScore(headlines []contracts.HeadlineScore) float64 {
	var weighted, confSum float64
	for _, h := range headlines {
		weighted += h.Label.Polarity() * h.Confidence
		confSum += h.Confidence
	}
	if confSum == 0 {
		return 0
	}
	return clamp(weighted / confSum)
}

// analystScore is the recency-weighted mean of the scaled actions. Each
// recommendation's weight decays exponentially per 30 elapsed days, so a
// month-old strong buy counts less than yesterday's hold.
func (f *Fuser) analystScore(asOf time.Time, recs []contracts.AnalystRec) float64 {
	var weighted, weightSum float64
	for _, r := range recs {
		scale, err := r.Action.Scale()
		if err != nil {
			f.log.WithError(err).WithField("firm", r.Firm).Warn("Skipping analyst recommendation")
			continue
		}
		ageDays := asOf.Sub(r.Date).Hours() / 24
		w := math.Exp(-f.cfg.AnalystDecay * ageDays / 30)
		weighted += scale * w
		weightSum += w
	}
	if weightSum == 0 {
		return 0
	}
	return clamp(weighted / weightSum)
}

func (f *Fuser) filterHeadlines(asOf time.Time, headlines []contracts.HeadlineScore) []contracts.HeadlineScore {
	cutoff := asOf.Add(-f.cfg.MaxHeadlineAge.Duration())
	out := make([]contracts.HeadlineScore, 0, len(headlines))
	for _, h := range headlines {
		if h.PublishedAt.Before(cutoff) || h.PublishedAt.After(asOf) {
			continue
		}
		out = append(out, h)
	}
	return out
}

func (f *Fuser) filterRecs(asOf time.Time, recs []contracts.AnalystRec) []contracts.AnalystRec {
	cutoff := asOf.Add(-f.cfg.MaxRecommendationAge.Duration())
	out := make([]contracts.AnalystRec, 0, len(recs))
	for _, r := range recs {
		if r.Date.Before(cutoff) || r.Date.After(asOf) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
