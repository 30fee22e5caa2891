package contracts

import (
	"encoding/json"
	"fmt"
	"time"
)

// SentimentLabel is the classifier's verdict for a single headline.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// Polarity maps a label to its numeric direction.
func (l SentimentLabel) Polarity() float64 {
	switch l {
	case SentimentPositive:
		return 1
	case SentimentNegative:
		return -1
	default:
		return 0
	}
}

// HeadlineScore is one headline with the external classifier's label and
// confidence. The engine only fuses these; it never runs inference itself.
type HeadlineScore struct {
	Title       string         `json:"title"`
	Source      string         `json:"source,omitempty"`
	PublishedAt time.Time      `json:"published_at"`
	Label       SentimentLabel `json:"label"`
	Confidence  float64        `json:"confidence"` // [0, 1]
}

// AnalystAction is a recommendation action on the standard five-step scale.
type AnalystAction string

const (
	ActionStrongBuy  AnalystAction = "strong_buy"
	ActionBuy        AnalystAction = "buy"
	ActionHold       AnalystAction = "hold"
	ActionSell       AnalystAction = "sell"
	ActionStrongSell AnalystAction = "strong_sell"
)

// Scale maps the action to [-1, +1].
func (a AnalystAction) Scale() (float64, error) {
	switch a {
	case ActionStrongBuy:
		return 1, nil
	case ActionBuy:
		return 0.5, nil
	case ActionHold:
		return 0, nil
	case ActionSell:
		return -0.5, nil
	case ActionStrongSell:
		return -1, nil
	default:
		return 0, fmt.Errorf("unknown analyst action %q", a)
	}
}

// AnalystRec is a single dated analyst recommendation.
type AnalystRec struct {
	Firm   string        `json:"firm,omitempty"`
	Date   time.Time     `json:"date"`
	Action AnalystAction `json:"action"`
}

// SentimentTrend is the direction of recent combined sentiment.
type SentimentTrend string

const (
	TrendImproving     SentimentTrend = "improving"
	TrendDeteriorating SentimentTrend = "deteriorating"
	TrendStable        SentimentTrend = "stable"
)

// SentimentReport is the fused directional sentiment view for one ticker.
// NewsScore and AnalystScore are each in [-1, +1].
type SentimentReport struct {
	Ticker string    `json:"ticker"`
	AsOf   time.Time `json:"as_of"`

	NewsScore    float64 `json:"news_sentiment"`
	AnalystScore float64 `json:"analyst_sentiment"`

	NewsCount    int `json:"news_count"`
	AnalystCount int `json:"analyst_count"`

	Trend SentimentTrend `json:"trend"`

	// ReducedConfidence is set when one of the two sources was empty and the
	// combined score rests on the other alone.
	ReducedConfidence bool `json:"reduced_confidence"`
}

// Fixed fusion weights: news 40%, analyst 60%.
const (
	NewsWeight    = 0.4
	AnalystWeight = 0.6
)

// Combined recomputes the fused score from its components on every call; it
// is never stored, so it cannot drift from the inputs that produced it. When
// one source is empty the combined score is the other source alone.
func (r *SentimentReport) Combined() float64 {
	switch {
	case r.NewsCount == 0 && r.AnalystCount == 0:
		return 0
	case r.NewsCount == 0:
		return clamp1(r.AnalystScore)
	case r.AnalystCount == 0:
		return clamp1(r.NewsScore)
	}
	return clamp1(NewsWeight*r.NewsScore + AnalystWeight*r.AnalystScore)
}

func clamp1(c float64) float64 {
	if c > 1 {
		return 1
	}
	if c < -1 {
		return -1
	}
	return c
}

// MarshalJSON adds the derived combined_sentiment field for the rendering layer.
func (r *SentimentReport) MarshalJSON() ([]byte, error) {
	type alias SentimentReport
	return json.Marshal(struct {
		*alias
		Combined float64 `json:"combined_sentiment"`
	}{
		alias:    (*alias)(r),
		Combined: r.Combined(),
	})
}
