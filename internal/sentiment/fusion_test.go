package sentiment

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/quickscope/internal/contracts"
	"github.com/wonny/quickscope/internal/strategyconfig"
	"github.com/wonny/quickscope/pkg/logger"
)

var asOf = time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

func newTestFuser() *Fuser {
	return NewFuser(logger.Nop(), strategyconfig.Default().Sentiment)
}

func headline(daysAgo int, label contracts.SentimentLabel, conf float64) contracts.HeadlineScore {
	return contracts.HeadlineScore{
		Title:       "headline",
		PublishedAt: asOf.AddDate(0, 0, -daysAgo),
		Label:       label,
		Confidence:  conf,
	}
}

func rec(daysAgo int, action contracts.AnalystAction) contracts.AnalystRec {
	return contracts.AnalystRec{
		Firm:   "Firm",
		Date:   asOf.AddDate(0, 0, -daysAgo),
		Action: action,
	}
}

func TestFuse_CombinedWeights(t *testing.T) {
	f := newTestFuser()

	// All news positive at full confidence, all analysts strong buy today:
	// news = 1.0, analyst = 1.0, combined = 0.4*1 + 0.6*1 = 1.0.
	report, err := f.Fuse("ACME", asOf,
		[]contracts.HeadlineScore{headline(0, contracts.SentimentPositive, 1.0)},
		[]contracts.AnalystRec{rec(0, contracts.ActionStrongBuy)},
	)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, report.NewsScore, 1e-9)
	assert.InDelta(t, 1.0, report.AnalystScore, 1e-9)
	assert.InDelta(t, 1.0, report.Combined(), 1e-9)
	assert.False(t, report.ReducedConfidence)
}

func TestFuse_ConfidenceWeightedNews(t *testing.T) {
	f := newTestFuser()

	// (1*0.9 + (-1)*0.3 + 0*0.8) / (0.9 + 0.3 + 0.8) = 0.3
	report, err := f.Fuse("ACME", asOf, []contracts.HeadlineScore{
		headline(1, contracts.SentimentPositive, 0.9),
		headline(1, contracts.SentimentNegative, 0.3),
		headline(1, contracts.SentimentNeutral, 0.8),
	}, nil)
	require.NoError(t, err)

	assert.InDelta(t, 0.3, report.NewsScore, 1e-9)
	assert.Equal(t, 3, report.NewsCount)
}

func TestFuse_AnalystRecencyDecay(t *testing.T) {
	f := newTestFuser()

	// A fresh sell must outweigh an equally scaled old buy when recency decay
	// applies, dragging the mean below zero.
	report, err := f.Fuse("ACME", asOf, nil, []contracts.AnalystRec{
		rec(0, contracts.ActionSell),
		rec(90, contracts.ActionBuy),
	})
	require.NoError(t, err)

	assert.Negative(t, report.AnalystScore)
	assert.True(t, report.ReducedConfidence, "news side is empty")
	// Single-source combined rests on the analyst score alone.
	assert.InDelta(t, report.AnalystScore, report.Combined(), 1e-12)
}

func TestFuse_Bounds(t *testing.T) {
	f := newTestFuser()

	report, err := f.Fuse("ACME", asOf,
		[]contracts.HeadlineScore{
			headline(0, contracts.SentimentNegative, 1.0),
			headline(1, contracts.SentimentNegative, 1.0),
		},
		[]contracts.AnalystRec{
			rec(0, contracts.ActionStrongSell),
			rec(1, contracts.ActionStrongSell),
		},
	)
	require.NoError(t, err)

	c := report.Combined()
	assert.GreaterOrEqual(t, c, -1.0)
	assert.LessOrEqual(t, c, 1.0)
	assert.InDelta(t, -1.0, c, 1e-9)
}

func TestFuse_StaleInputsFiltered(t *testing.T) {
	f := newTestFuser()

	// Default limits: headlines 14 days, recommendations 120 days.
	report, err := f.Fuse("ACME", asOf,
		[]contracts.HeadlineScore{
			headline(30, contracts.SentimentNegative, 1.0),
			headline(2, contracts.SentimentPositive, 1.0),
		},
		[]contracts.AnalystRec{
			rec(365, contracts.ActionStrongSell),
			rec(5, contracts.ActionBuy),
		},
	)
	require.NoError(t, err)

	assert.Equal(t, 1, report.NewsCount)
	assert.Equal(t, 1, report.AnalystCount)
	assert.InDelta(t, 1.0, report.NewsScore, 1e-9)
	assert.InDelta(t, 0.5, report.AnalystScore, 1e-9)
}

func TestFuse_BothSourcesEmpty(t *testing.T) {
	f := newTestFuser()

	_, err := f.Fuse("ACME", asOf, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrNoSentimentData))

	// Entirely stale inputs are as empty as no inputs.
	_, err = f.Fuse("ACME", asOf,
		[]contracts.HeadlineScore{headline(200, contracts.SentimentPositive, 1.0)},
		[]contracts.AnalystRec{rec(400, contracts.ActionBuy)},
	)
	assert.True(t, errors.Is(err, contracts.ErrNoSentimentData))
}

func TestFuse_UnknownActionSkipped(t *testing.T) {
	f := newTestFuser()

	report, err := f.Fuse("ACME", asOf, nil, []contracts.AnalystRec{
		rec(0, contracts.AnalystAction("initiate")),
		rec(0, contracts.ActionStrongBuy),
	})
	require.NoError(t, err)

	// The unknown action contributes nothing; the strong buy stands alone.
	assert.InDelta(t, 1.0, report.AnalystScore, 1e-9)
}

func TestTrend(t *testing.T) {
	f := newTestFuser()

	improving := []contracts.HeadlineScore{
		headline(4, contracts.SentimentNegative, 1.0),
		headline(3, contracts.SentimentNegative, 0.5),
		headline(2, contracts.SentimentNeutral, 1.0),
		headline(1, contracts.SentimentPositive, 0.5),
		headline(0, contracts.SentimentPositive, 1.0),
	}
	deteriorating := []contracts.HeadlineScore{
		headline(4, contracts.SentimentPositive, 1.0),
		headline(3, contracts.SentimentPositive, 0.5),
		headline(2, contracts.SentimentNeutral, 1.0),
		headline(1, contracts.SentimentNegative, 0.5),
		headline(0, contracts.SentimentNegative, 1.0),
	}
	flat := []contracts.HeadlineScore{
		headline(3, contracts.SentimentNeutral, 1.0),
		headline(1, contracts.SentimentNeutral, 1.0),
	}

	tests := []struct {
		name      string
		headlines []contracts.HeadlineScore
		want      contracts.SentimentTrend
	}{
		{"improving", improving, contracts.TrendImproving},
		{"deteriorating", deteriorating, contracts.TrendDeteriorating},
		{"flat", flat, contracts.TrendStable},
		{"single day", improving[4:], contracts.TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := f.Fuse("ACME", asOf, tt.headlines, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, report.Trend)
		})
	}
}
