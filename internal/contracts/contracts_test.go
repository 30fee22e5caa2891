package contracts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRiskProfile(t *testing.T) {
	p, err := ParseRiskProfile("moderate")
	require.NoError(t, err)
	assert.Equal(t, RiskModerate, p)

	_, err = ParseRiskProfile("yolo")
	assert.Error(t, err)
}

func TestParseStrategyType(t *testing.T) {
	s, err := ParseStrategyType("options_based")
	require.NoError(t, err)
	assert.Equal(t, StrategyOptionsBased, s)

	_, err = ParseStrategyType("martingale")
	assert.Error(t, err)
}

func TestSentimentLabelPolarity(t *testing.T) {
	assert.Equal(t, 1.0, SentimentPositive.Polarity())
	assert.Equal(t, -1.0, SentimentNegative.Polarity())
	assert.Equal(t, 0.0, SentimentNeutral.Polarity())
}

func TestAnalystActionScale(t *testing.T) {
	tests := []struct {
		action AnalystAction
		want   float64
	}{
		{ActionStrongBuy, 1},
		{ActionBuy, 0.5},
		{ActionHold, 0},
		{ActionSell, -0.5},
		{ActionStrongSell, -1},
	}
	for _, tt := range tests {
		got, err := tt.action.Scale()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := AnalystAction("initiate").Scale()
	assert.Error(t, err)
}

func TestCombinedSentiment(t *testing.T) {
	both := &SentimentReport{NewsScore: 0.5, AnalystScore: -0.5, NewsCount: 3, AnalystCount: 2}
	assert.InDelta(t, 0.4*0.5+0.6*-0.5, both.Combined(), 1e-12)

	newsOnly := &SentimentReport{NewsScore: 0.7, NewsCount: 3}
	assert.Equal(t, 0.7, newsOnly.Combined())

	analystOnly := &SentimentReport{AnalystScore: -0.4, AnalystCount: 1}
	assert.Equal(t, -0.4, analystOnly.Combined())

	empty := &SentimentReport{}
	assert.Equal(t, 0.0, empty.Combined())
}

func TestFundamentalReportMarshalAddsUpside(t *testing.T) {
	r := &FundamentalReport{CurrentPrice: 100, IntrinsicValuePerShare: 115}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.InDelta(t, 0.15, out["upside_pct"].(float64), 1e-12)
}

func TestSentimentReportMarshalAddsCombined(t *testing.T) {
	r := &SentimentReport{NewsScore: 1, AnalystScore: 1, NewsCount: 1, AnalystCount: 1}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.InDelta(t, 1.0, out["combined_sentiment"].(float64), 1e-12)
}

func TestUpsidePctZeroPrice(t *testing.T) {
	r := &FundamentalReport{IntrinsicValuePerShare: 50}
	assert.Equal(t, 0.0, r.UpsidePct())
}

func TestPriceRangeMid(t *testing.T) {
	assert.Equal(t, 100.0, PriceRange{Low: 99, High: 101}.Mid())
}
