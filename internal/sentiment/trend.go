package sentiment

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/wonny/quickscope/internal/contracts"
)

// trend regresses per-day mean sentiment over the trailing window and labels
// the slope. Fewer than two days with data is always stable: one point has no
// direction.
func (f *Fuser) trend(asOf time.Time, headlines []contracts.HeadlineScore, recs []contracts.AnalystRec) contracts.SentimentTrend {
	window := f.cfg.TrendWindowDays
	if window < 2 {
		return contracts.TrendStable
	}

	type bucket struct {
		sum float64
		n   int
	}
	days := make(map[int]*bucket)

	add := func(ts time.Time, score float64) {
		age := int(asOf.Sub(ts).Hours() / 24)
		if age < 0 || age >= window {
			return
		}
		day := window - 1 - age // oldest day is 0
		b := days[day]
		if b == nil {
			b = &bucket{}
			days[day] = b
		}
		b.sum += score
		b.n++
	}

	for _, h := range headlines {
		add(h.PublishedAt, h.Label.Polarity()*h.Confidence)
	}
	for _, r := range recs {
		scale, err := r.Action.Scale()
		if err != nil {
			continue
		}
		add(r.Date, scale)
	}

	if len(days) < 2 {
		return contracts.TrendStable
	}

	xs := make([]float64, 0, len(days))
	ys := make([]float64, 0, len(days))
	for day := 0; day < window; day++ {
		b, ok := days[day]
		if !ok {
			continue
		}
		xs = append(xs, float64(day))
		ys = append(ys, b.sum/float64(b.n))
	}

	_, slope := stat.LinearRegression(xs, ys, nil, false)
	switch {
	case slope > f.cfg.TrendSlopeThreshold:
		return contracts.TrendImproving
	case slope < -f.cfg.TrendSlopeThreshold:
		return contracts.TrendDeteriorating
	default:
		return contracts.TrendStable
	}
}
