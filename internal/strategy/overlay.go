package strategy

import (
	"fmt"
	"time"

	"github.com/wonny/quickscope/internal/contracts"
	"github.com/wonny/quickscope/internal/options"
)

// shortDatedTenor is the assumed expiration of non-LEAPS overlay legs.
const shortDatedTenor = 30 * 24 * time.Hour

// buildOverlay constructs the mandated options structure for a buy. Strikes
// are offset from the current price and premiums estimated as a fraction of
// spot; no live options chain feeds the engine.
func (e *Engine) buildOverlay(kind contracts.StructureKind, fr *contracts.FundamentalReport, rec *contracts.StrategyRecommendation) (*contracts.OptionStructure, error) {
	o := e.cfg.Overlays
	price := fr.CurrentPrice
	exp := fr.AsOf.Add(shortDatedTenor)

	putStrike := price * (1 - o.PutStrikeOffsetPct)
	callStrike := price * (1 + o.CallStrikeOffsetPct)
	putPremium := price * o.PutPremiumEstPct
	callPremium := price * o.CallPremiumEstPct

	var (
		s   contracts.OptionStructure
		err error
	)
	switch kind {
	case contracts.StructProtectivePut:
		s, err = options.ProtectivePut(price, putStrike, putPremium, exp)
	case contracts.StructCollar:
		s, err = options.Collar(price, putStrike, putPremium, callStrike, callPremium, exp)
	case contracts.StructCoveredCall:
		s, err = options.CoveredCall(price, callStrike, callPremium, exp)
	case contracts.StructCashSecuredPut:
		s, err = options.CashSecuredPut(putStrike, putPremium, exp)
	case contracts.StructBullCallSpread:
		// Long leg at the money, short leg one spread width above. The short
		// leg is assumed to recover half the long premium.
		s, err = options.BullCallSpread(price, callPremium, price*(1+o.SpreadWidthPct), callPremium/2, exp)
	case contracts.StructBearPutSpread:
		s, err = options.BearPutSpread(price, putPremium, price*(1-o.SpreadWidthPct), putPremium/2, exp)
	case contracts.StructLEAPSCall:
		s, err = e.buildLEAPS(fr, rec)
	default:
		return nil, fmt.Errorf("unsupported overlay kind %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// buildLEAPS sizes a long-dated at-the-money call for leveraged exposure.
// Contract count comes from the leveraged notional divided by the per-contract
// delta-adjusted exposure.
func (e *Engine) buildLEAPS(fr *contracts.FundamentalReport, rec *contracts.StrategyRecommendation) (contracts.OptionStructure, error) {
	o := e.cfg.Overlays
	price := fr.CurrentPrice
	exp := fr.AsOf.AddDate(0, 0, o.LeapsMinDays)

	s, err := options.LEAPSCall(price, price*o.LeapsPremiumEstPct, exp)
	if err != nil {
		return contracts.OptionStructure{}, err
	}

	notional := rec.PositionSize * o.LeapsMultiplier
	perContract := o.LeapsDelta * price * 100
	if perContract <= 0 {
		return contracts.OptionStructure{}, fmt.Errorf("leaps sizing: non-positive per-contract exposure")
	}
	s.Contracts = int(notional / perContract)
	s.Warning = fmt.Sprintf(
		"leveraged exposure: %d LEAPS contracts approximate %.0f notional at delta %.2f; total premium at risk %.0f",
		s.Contracts, notional, o.LeapsDelta, float64(s.Contracts)*s.MaxLoss*100)

	return s, nil
}
