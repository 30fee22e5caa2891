package options

import (
	"fmt"
	"time"

	"github.com/wonny/quickscope/internal/contracts"
)

// CoveredCall is long stock at costBasis plus a short call. Profit caps at
// the strike; the downside cushion is the premium collected.
func CoveredCall(costBasis, strike, premium float64, expiration time.Time) (contracts.OptionStructure, error) {
	if err := positive("cost basis", costBasis); err != nil {
		return contracts.OptionStructure{}, err
	}
	if err := positive("strike", strike); err != nil {
		return contracts.OptionStructure{}, err
	}
	if err := positive("premium", premium); err != nil {
		return contracts.OptionStructure{}, err
	}

	return contracts.OptionStructure{
		Kind: contracts.StructCoveredCall,
		Legs: []contracts.OptionLeg{
			{Type: contracts.OptionCall, Side: contracts.OptionSell, Strike: strike, Premium: premium, Expiration: expiration},
		},
		MaxProfit:  (strike - costBasis) + premium,
		MaxLoss:    costBasis - premium,
		Breakevens: []float64{costBasis - premium},
	}, nil
}

// CashSecuredPut is a short put backed by cash to take assignment.
func CashSecuredPut(strike, premium float64, expiration time.Time) (contracts.OptionStructure, error) {
	if err := positive("strike", strike); err != nil {
		return contracts.OptionStructure{}, err
	}
	if err := positive("premium", premium); err != nil {
		return contracts.OptionStructure{}, err
	}

	return contracts.OptionStructure{
		Kind: contracts.StructCashSecuredPut,
		Legs: []contracts.OptionLeg{
			{Type: contracts.OptionPut, Side: contracts.OptionSell, Strike: strike, Premium: premium, Expiration: expiration},
		},
		MaxProfit:  premium,
		MaxLoss:    strike - premium,
		Breakevens: []float64{strike - premium},
	}, nil
}

// BullCallSpread is a long call at the lower strike financed by a short call
// at the upper strike, entered for a net debit.
func BullCallSpread(longStrike, longPremium, shortStrike, shortPremium float64, expiration time.Time) (contracts.OptionStructure, error) {
	if shortStrike <= longStrike {
		return contracts.OptionStructure{}, fmt.Errorf("bull call spread: short strike %.2f must exceed long strike %.2f", shortStrike, longStrike)
	}
	netDebit := longPremium - shortPremium
	if netDebit <= 0 {
		return contracts.OptionStructure{}, fmt.Errorf("bull call spread: net debit %.2f must be positive", netDebit)
	}
	width := shortStrike - longStrike
	if netDebit >= width {
		return contracts.OptionStructure{}, fmt.Errorf("bull call spread: net debit %.2f must be below the %.2f width", netDebit, width)
	}

	return contracts.OptionStructure{
		Kind: contracts.StructBullCallSpread,
		Legs: []contracts.OptionLeg{
			{Type: contracts.OptionCall, Side: contracts.OptionBuy, Strike: longStrike, Premium: longPremium, Expiration: expiration},
			{Type: contracts.OptionCall, Side: contracts.OptionSell, Strike: shortStrike, Premium: shortPremium, Expiration: expiration},
		},
		MaxProfit:  width - netDebit,
		MaxLoss:    netDebit,
		Breakevens: []float64{longStrike + netDebit},
	}, nil
}

// BearPutSpread is a long put at the upper strike financed by a short put at
// the lower strike, entered for a net debit.
func BearPutSpread(longStrike, longPremium, shortStrike, shortPremium float64, expiration time.Time) (contracts.OptionStructure, error) {
	if shortStrike >= longStrike {
		return contracts.OptionStructure{}, fmt.Errorf("bear put spread: short strike %.2f must be below long strike %.2f", shortStrike, longStrike)
	}
	netDebit := longPremium - shortPremium
	if netDebit <= 0 {
		return contracts.OptionStructure{}, fmt.Errorf("bear put spread: net debit %.2f must be positive", netDebit)
	}
	width := longStrike - shortStrike
	if netDebit >= width {
		return contracts.OptionStructure{}, fmt.Errorf("bear put spread: net debit %.2f must be below the %.2f width", netDebit, width)
	}

	return contracts.OptionStructure{
		Kind: contracts.StructBearPutSpread,
		Legs: []contracts.OptionLeg{
			{Type: contracts.OptionPut, Side: contracts.OptionBuy, Strike: longStrike, Premium: longPremium, Expiration: expiration},
			{Type: contracts.OptionPut, Side: contracts.OptionSell, Strike: shortStrike, Premium: shortPremium, Expiration: expiration},
		},
		MaxProfit:  width - netDebit,
		MaxLoss:    netDebit,
		Breakevens: []float64{longStrike - netDebit},
	}, nil
}

// ProtectivePut is long stock plus a long put. The put caps the loss at the
// distance to its strike plus the premium paid; the upside stays open.
func ProtectivePut(costBasis, putStrike, putPremium float64, expiration time.Time) (contracts.OptionStructure, error) {
	if err := positive("cost basis", costBasis); err != nil {
		return contracts.OptionStructure{}, err
	}
	if err := positive("put strike", putStrike); err != nil {
		return contracts.OptionStructure{}, err
	}
	if err := positive("put premium", putPremium); err != nil {
		return contracts.OptionStructure{}, err
	}

	return contracts.OptionStructure{
		Kind: contracts.StructProtectivePut,
		Legs: []contracts.OptionLeg{
			{Type: contracts.OptionPut, Side: contracts.OptionBuy, Strike: putStrike, Premium: putPremium, Expiration: expiration},
		},
		MaxLoss:         costBasis - putStrike + putPremium,
		UnboundedProfit: true,
		Breakevens:      []float64{costBasis + putPremium},
	}, nil
}

// Collar is long stock, a long put below and a short call above. The call
// premium offsets the put cost, bounding payoff on both sides.
func Collar(costBasis, putStrike, putPremium, callStrike, callPremium float64, expiration time.Time) (contracts.OptionStructure, error) {
	if putStrike >= callStrike {
		return contracts.OptionStructure{}, fmt.Errorf("collar: put strike %.2f must be below call strike %.2f", putStrike, callStrike)
	}
	if err := positive("cost basis", costBasis); err != nil {
		return contracts.OptionStructure{}, err
	}

	netPremium := putPremium - callPremium // cost of the hedge, can be negative
	return contracts.OptionStructure{
		Kind: contracts.StructCollar,
		Legs: []contracts.OptionLeg{
			{Type: contracts.OptionPut, Side: contracts.OptionBuy, Strike: putStrike, Premium: putPremium, Expiration: expiration},
			{Type: contracts.OptionCall, Side: contracts.OptionSell, Strike: callStrike, Premium: callPremium, Expiration: expiration},
		},
		MaxProfit:  callStrike - costBasis - netPremium,
		MaxLoss:    costBasis - putStrike + netPremium,
		Breakevens: []float64{costBasis + netPremium},
	}, nil
}

// LEAPSCall is a long-dated call used for leveraged directional exposure.
// Risk is the premium paid; the upside is open above the breakeven.
func LEAPSCall(strike, premium float64, expiration time.Time) (contracts.OptionStructure, error) {
	if err := positive("strike", strike); err != nil {
		return contracts.OptionStructure{}, err
	}
	if err := positive("premium", premium); err != nil {
		return contracts.OptionStructure{}, err
	}

	return contracts.OptionStructure{
		Kind: contracts.StructLEAPSCall,
		Legs: []contracts.OptionLeg{
			{Type: contracts.OptionCall, Side: contracts.OptionBuy, Strike: strike, Premium: premium, Expiration: expiration},
		},
		MaxLoss:         premium,
		UnboundedProfit: true,
		Breakevens:      []float64{strike + premium},
	}, nil
}

func positive(name string, v float64) error {
	if v <= 0 {
		return fmt.Errorf("%s must be positive, got %.4f", name, v)
	}
	return nil
}
