// Package options holds exact payoff math for the supported options
// structures. Everything here is a pure function of its numeric inputs; no
// pricing model, no I/O.
package options

import (
	"math"
	"sort"

	"github.com/wonny/quickscope/internal/contracts"
)

// LegPayoffAt returns the per-share payoff of a single leg at expiration for
// a given underlying price, premium included. Bought legs pay the premium,
// sold legs collect it, so negating every side negates the payoff.
func LegPayoffAt(leg contracts.OptionLeg, price float64) float64 {
	var intrinsic float64
	switch leg.Type {
	case contracts.OptionCall:
		intrinsic = math.Max(0, price-leg.Strike)
	case contracts.OptionPut:
		intrinsic = math.Max(0, leg.Strike-price)
	}

	if leg.Side == contracts.OptionBuy {
		return intrinsic - leg.Premium
	}
	return leg.Premium - intrinsic
}

// PayoffAt sums the expiration payoff of all legs plus an optional stock
// component. stockShares is the per-structure share count (1 for the covered
// structures here, 0 for pure option positions); costBasis is the per-share
// purchase price of that stock.
func PayoffAt(legs []contracts.OptionLeg, stockShares, costBasis, price float64) float64 {
	total := stockShares * (price - costBasis)
	for _, leg := range legs {
		total += LegPayoffAt(leg, price)
	}
	return total
}

// Breakevens finds the zero crossings of the combined payoff over [lo, hi].
// The payoff is piecewise linear with kinks only at strikes, so scanning the
// segments between sorted strikes is exact, not a numeric approximation.
func Breakevens(legs []contracts.OptionLeg, stockShares, costBasis, lo, hi float64) []float64 {
	kinks := []float64{lo, hi}
	for _, leg := range legs {
		if leg.Strike > lo && leg.Strike < hi {
			kinks = append(kinks, leg.Strike)
		}
	}
	sort.Float64s(kinks)

	var out []float64
	for i := 0; i+1 < len(kinks); i++ {
		a, b := kinks[i], kinks[i+1]
		fa := PayoffAt(legs, stockShares, costBasis, a)
		fb := PayoffAt(legs, stockShares, costBasis, b)
		switch {
		case fa == 0:
			out = append(out, a)
		case fa*fb < 0:
			// Linear within the segment.
			out = append(out, a+(b-a)*(-fa)/(fb-fa))
		}
	}
	if n := len(kinks); n > 1 && PayoffAt(legs, stockShares, costBasis, kinks[n-1]) == 0 {
		out = append(out, kinks[n-1])
	}
	return dedupe(out)
}

func dedupe(xs []float64) []float64 {
	if len(xs) < 2 {
		return xs
	}
	out := xs[:1]
	for _, x := range xs[1:] {
		if math.Abs(x-out[len(out)-1]) > 1e-9 {
			out = append(out, x)
		}
	}
	return out
}
