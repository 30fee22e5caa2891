package contracts

import "time"

// OptionType is the contract type of a single leg.
type OptionType string

const (
	OptionCall OptionType = "call"
	OptionPut  OptionType = "put"
)

// OptionSide is the direction of a single leg.
type OptionSide string

const (
	OptionBuy  OptionSide = "buy"
	OptionSell OptionSide = "sell"
)

// OptionLeg is one contract leg of an options structure. Premium is per share.
type OptionLeg struct {
	Type       OptionType `json:"type"`
	Side       OptionSide `json:"side"`
	Strike     float64    `json:"strike"`
	Premium    float64    `json:"premium"`
	Expiration time.Time  `json:"expiration,omitempty"`
}

// StructureKind identifies a supported options structure.
type StructureKind string

const (
	StructCoveredCall    StructureKind = "covered_call"
	StructCashSecuredPut StructureKind = "cash_secured_put"
	StructBullCallSpread StructureKind = "bull_call_spread"
	StructBearPutSpread  StructureKind = "bear_put_spread"
	StructProtectivePut  StructureKind = "protective_put"
	StructCollar         StructureKind = "collar"
	StructLEAPSCall      StructureKind = "leaps_call"
)

// OptionStructure is an ordered sequence of legs plus the exact derived
// payoff figures. MaxProfit/MaxLoss are per share and non-negative; standard
// vertical spreads carry a single breakeven.
type OptionStructure struct {
	Kind StructureKind `json:"kind"`
	Legs []OptionLeg   `json:"legs"`

	MaxProfit  float64   `json:"max_profit"`
	MaxLoss    float64   `json:"max_loss"`
	Breakevens []float64 `json:"breakeven_prices"`

	// UnboundedProfit marks structures whose upside has no cap (protective
	// put, long LEAPS call); MaxProfit is meaningless when set.
	UnboundedProfit bool `json:"unbounded_profit,omitempty"`

	// Contracts is set for sized overlays (LEAPS); zero means unsized.
	Contracts int `json:"contracts,omitempty"`

	// Warning carries an explicit risk note for leveraged structures.
	Warning string `json:"warning,omitempty"`
}
