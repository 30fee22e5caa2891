package contracts

import "fmt"

// RiskProfile is a closed enum of supported risk appetites. It is pure
// configuration selecting a rule-table row, not a behavior hierarchy.
type RiskProfile string

const (
	RiskConservative RiskProfile = "conservative"
	RiskModerate     RiskProfile = "moderate"
	RiskAggressive   RiskProfile = "aggressive"
)

// RiskProfiles lists every profile; rule tables are validated against it.
var RiskProfiles = []RiskProfile{RiskConservative, RiskModerate, RiskAggressive}

// ParseRiskProfile validates a user-supplied profile string.
func ParseRiskProfile(s string) (RiskProfile, error) {
	switch RiskProfile(s) {
	case RiskConservative, RiskModerate, RiskAggressive:
		return RiskProfile(s), nil
	}
	return "", fmt.Errorf("unknown risk profile %q (want conservative|moderate|aggressive)", s)
}

// StrategyType is a closed enum of supported strategy shapes.
type StrategyType string

const (
	StrategyLongOnly     StrategyType = "long_only"
	StrategyHedged       StrategyType = "hedged"
	StrategyLeveraged    StrategyType = "leveraged"
	StrategyOptionsBased StrategyType = "options_based"
)

// StrategyTypes lists every strategy type; rule tables are validated against it.
var StrategyTypes = []StrategyType{StrategyLongOnly, StrategyHedged, StrategyLeveraged, StrategyOptionsBased}

// ParseStrategyType validates a user-supplied strategy string.
func ParseStrategyType(s string) (StrategyType, error) {
	switch StrategyType(s) {
	case StrategyLongOnly, StrategyHedged, StrategyLeveraged, StrategyOptionsBased:
		return StrategyType(s), nil
	}
	return "", fmt.Errorf("unknown strategy type %q (want long_only|hedged|leveraged|options_based)", s)
}

// TradeAction is the engine's verdict.
type TradeAction string

const (
	TradeBuy  TradeAction = "buy"
	TradeSell TradeAction = "sell"
	TradeHold TradeAction = "hold"
	TradeWait TradeAction = "wait"
)

// ConfidenceLevel is the reproducible confidence bucket of a recommendation.
type ConfidenceLevel string

const (
	ConfidenceLow        ConfidenceLevel = "low"
	ConfidenceMedium     ConfidenceLevel = "medium"
	ConfidenceMediumHigh ConfidenceLevel = "medium-high"
	ConfidenceHigh       ConfidenceLevel = "high"
)

// PriceRange is an inclusive low/high price band.
type PriceRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Mid returns the midpoint of the range.
func (p PriceRange) Mid() float64 {
	return (p.Low + p.High) / 2
}

// StrategyRecommendation is the engine's final output for one ticker. When
// Action is wait, sizing and level fields are zero and Notes explains why.
type StrategyRecommendation struct {
	Ticker   string       `json:"ticker"`
	Action   TradeAction  `json:"action"`
	Profile  RiskProfile  `json:"risk_profile"`
	Strategy StrategyType `json:"strategy_type"`

	PositionSize float64    `json:"position_size,omitempty"` // currency amount
	EntryRange   PriceRange `json:"entry_range,omitzero"`
	StopLoss     float64    `json:"stop_loss,omitempty"`
	TakeProfit   float64    `json:"take_profit,omitempty"`

	Overlay *OptionStructure `json:"overlay,omitempty"`

	RiskRewardRatio float64         `json:"risk_reward_ratio,omitempty"`
	Confidence      ConfidenceLevel `json:"confidence"`

	Notes []string `json:"notes,omitempty"`
}
