package options

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/quickscope/internal/contracts"
)

var exp = time.Date(2026, 12, 18, 0, 0, 0, 0, time.UTC)

func TestBullCallSpread(t *testing.T) {
	// Strikes 180/190, net debit 3.00.
	s, err := BullCallSpread(180, 5.50, 190, 2.50, exp)
	require.NoError(t, err)

	assert.InDelta(t, 7.00, s.MaxProfit, 1e-9)
	assert.InDelta(t, 3.00, s.MaxLoss, 1e-9)
	require.Len(t, s.Breakevens, 1)
	assert.InDelta(t, 183.00, s.Breakevens[0], 1e-9)

	// The closed-form figures must agree with the payoff curve.
	assert.InDelta(t, -s.MaxLoss, PayoffAt(s.Legs, 0, 0, 170), 1e-9)
	assert.InDelta(t, s.MaxProfit, PayoffAt(s.Legs, 0, 0, 200), 1e-9)
	assert.InDelta(t, 0, PayoffAt(s.Legs, 0, 0, 183), 1e-9)
}

func TestBullCallSpread_Invalid(t *testing.T) {
	_, err := BullCallSpread(190, 5.50, 180, 2.50, exp)
	assert.Error(t, err, "strikes out of order")

	_, err = BullCallSpread(180, 2.00, 190, 2.50, exp)
	assert.Error(t, err, "net credit is not a debit spread")

	_, err = BullCallSpread(180, 13.00, 190, 2.50, exp)
	assert.Error(t, err, "debit above width can never profit")
}

func TestBearPutSpread(t *testing.T) {
	s, err := BearPutSpread(190, 6.00, 180, 2.00, exp)
	require.NoError(t, err)

	assert.InDelta(t, 6.00, s.MaxProfit, 1e-9)
	assert.InDelta(t, 4.00, s.MaxLoss, 1e-9)
	require.Len(t, s.Breakevens, 1)
	assert.InDelta(t, 186.00, s.Breakevens[0], 1e-9)

	assert.InDelta(t, s.MaxProfit, PayoffAt(s.Legs, 0, 0, 170), 1e-9)
	assert.InDelta(t, -s.MaxLoss, PayoffAt(s.Legs, 0, 0, 200), 1e-9)
}

func TestCoveredCall(t *testing.T) {
	s, err := CoveredCall(100, 110, 2.50, exp)
	require.NoError(t, err)

	assert.InDelta(t, 12.50, s.MaxProfit, 1e-9)
	assert.InDelta(t, 97.50, s.MaxLoss, 1e-9)
	require.Len(t, s.Breakevens, 1)
	assert.InDelta(t, 97.50, s.Breakevens[0], 1e-9)

	// Stock plus short call: profit caps above the strike.
	assert.InDelta(t, s.MaxProfit, PayoffAt(s.Legs, 1, 100, 150), 1e-9)
	assert.InDelta(t, 0, PayoffAt(s.Legs, 1, 100, 97.50), 1e-9)
	assert.InDelta(t, -s.MaxLoss, PayoffAt(s.Legs, 1, 100, 0), 1e-9)
}

func TestCashSecuredPut(t *testing.T) {
	s, err := CashSecuredPut(95, 3.00, exp)
	require.NoError(t, err)

	assert.InDelta(t, 3.00, s.MaxProfit, 1e-9)
	assert.InDelta(t, 92.00, s.MaxLoss, 1e-9)
	assert.InDelta(t, 92.00, s.Breakevens[0], 1e-9)

	assert.InDelta(t, s.MaxProfit, PayoffAt(s.Legs, 0, 0, 120), 1e-9)
	assert.InDelta(t, -s.MaxLoss, PayoffAt(s.Legs, 0, 0, 0), 1e-9)
}

func TestProtectivePut(t *testing.T) {
	s, err := ProtectivePut(100, 93, 1.50, exp)
	require.NoError(t, err)

	assert.True(t, s.UnboundedProfit)
	assert.InDelta(t, 8.50, s.MaxLoss, 1e-9)
	assert.InDelta(t, 101.50, s.Breakevens[0], 1e-9)

	// Below the strike the loss stays pinned at MaxLoss.
	assert.InDelta(t, -s.MaxLoss, PayoffAt(s.Legs, 1, 100, 80), 1e-9)
	assert.InDelta(t, -s.MaxLoss, PayoffAt(s.Legs, 1, 100, 0), 1e-9)
}

func TestCollar(t *testing.T) {
	s, err := Collar(100, 93, 1.50, 107, 2.00, exp)
	require.NoError(t, err)

	// Net credit of 0.50 widens the profit cap and narrows the loss.
	assert.InDelta(t, 7.50, s.MaxProfit, 1e-9)
	assert.InDelta(t, 6.50, s.MaxLoss, 1e-9)
	assert.InDelta(t, 99.50, s.Breakevens[0], 1e-9)

	assert.InDelta(t, s.MaxProfit, PayoffAt(s.Legs, 1, 100, 120), 1e-9)
	assert.InDelta(t, -s.MaxLoss, PayoffAt(s.Legs, 1, 100, 70), 1e-9)
}

func TestLEAPSCall(t *testing.T) {
	s, err := LEAPSCall(150, 18.00, exp)
	require.NoError(t, err)

	assert.True(t, s.UnboundedProfit)
	assert.InDelta(t, 18.00, s.MaxLoss, 1e-9)
	assert.InDelta(t, 168.00, s.Breakevens[0], 1e-9)
}

func TestPayoffSymmetry(t *testing.T) {
	legs := []contracts.OptionLeg{
		{Type: contracts.OptionCall, Side: contracts.OptionBuy, Strike: 180, Premium: 5.50},
		{Type: contracts.OptionCall, Side: contracts.OptionSell, Strike: 190, Premium: 2.50},
		{Type: contracts.OptionPut, Side: contracts.OptionBuy, Strike: 170, Premium: 4.00},
	}

	flipped := make([]contracts.OptionLeg, len(legs))
	for i, leg := range legs {
		flipped[i] = leg
		if leg.Side == contracts.OptionBuy {
			flipped[i].Side = contracts.OptionSell
		} else {
			flipped[i].Side = contracts.OptionBuy
		}
	}

	for _, price := range []float64{0, 150, 170, 175, 180, 183, 185, 190, 250} {
		orig := PayoffAt(legs, 0, 0, price)
		neg := PayoffAt(flipped, 0, 0, price)
		assert.InDelta(t, -orig, neg, 1e-9, "price %.2f", price)
	}
}

func TestBreakevens(t *testing.T) {
	// Long straddle: two breakevens, one on each side.
	legs := []contracts.OptionLeg{
		{Type: contracts.OptionCall, Side: contracts.OptionBuy, Strike: 100, Premium: 3.00},
		{Type: contracts.OptionPut, Side: contracts.OptionBuy, Strike: 100, Premium: 2.00},
	}

	bes := Breakevens(legs, 0, 0, 50, 150)
	require.Len(t, bes, 2)
	assert.InDelta(t, 95.00, bes[0], 1e-9)
	assert.InDelta(t, 105.00, bes[1], 1e-9)

	// Each found point must sit on the payoff curve's zero.
	for _, be := range bes {
		assert.InDelta(t, 0, PayoffAt(legs, 0, 0, be), 1e-9)
	}
}
