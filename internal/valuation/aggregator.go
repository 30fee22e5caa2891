package valuation

import (
	"fmt"

	"github.com/wonny/quickscope/internal/contracts"
	"github.com/wonny/quickscope/internal/strategyconfig"
	"github.com/wonny/quickscope/pkg/logger"
)

// Aggregator runs every valuation method against a snapshot and reconciles
// their outputs into one FundamentalReport. Individual method failures are
// recorded on the report; the aggregator itself fails only when no method can
// produce an intrinsic value at all.
type Aggregator struct {
	log *logger.Logger

	dcf         *DCFCalculator
	comparables *ComparablesCalculator
	ddm         *DDMCalculator
	health      *HealthCalculator
	growth      *GrowthCalculator

	reconciliation strategyconfig.Reconciliation
}

// NewAggregator wires the five method calculators from configuration.
func NewAggregator(log *logger.Logger, market MarketParams, cfg strategyconfig.Valuation) *Aggregator {
	return &Aggregator{
		log:            log,
		dcf:            NewDCFCalculator(market, cfg.DCF),
		comparables:    NewComparablesCalculator(cfg.Comparables),
		ddm:            NewDDMCalculator(market, cfg.DDM),
		health:         NewHealthCalculator(cfg.Health),
		growth:         NewGrowthCalculator(),
		reconciliation: cfg.Reconciliation,
	}
}

// Evaluate runs all methods and reconciles an intrinsic value per share.
func (a *Aggregator) Evaluate(s *contracts.FundamentalsSnapshot) (*contracts.FundamentalReport, error) {
	methods := []contracts.ValuationMethodResult{
		a.dcf.Calculate(s, nil),
		a.comparables.Calculate(s),
		a.ddm.Calculate(s),
		a.health.Calculate(s),
		a.growth.Calculate(s),
	}

	report := &contracts.FundamentalReport{
		Ticker:       s.Ticker,
		AsOf:         s.AsOf,
		CurrentPrice: s.CurrentPrice,
		Methods:      methods,
	}

	for i := range methods {
		m := &methods[i]
		switch {
		case m.Status == contracts.StatusFailed:
			a.log.WithFields(map[string]interface{}{
				"ticker": s.Ticker,
				"method": string(m.Method),
				"reason": m.Reason,
			}).Warn("Valuation method failed")
		case m.Status == contracts.StatusSkipped:
			a.log.WithFields(map[string]interface{}{
				"ticker": s.Ticker,
				"method": string(m.Method),
				"reason": m.Reason,
			}).Debug("Valuation method skipped")
		}

		switch m.Method {
		case contracts.MethodComparables:
			if m.Applicable() {
				report.RelativeValuationScore = m.Comparables.Score
			}
		case contracts.MethodHealthScore:
			if m.Applicable() {
				report.HealthScore = m.Health.Score
			}
		case contracts.MethodGrowth:
			if m.Applicable() {
				report.Growth = m.Growth
			}
		}
	}

	value, method, err := a.reconcile(methods)
	if err != nil {
		return nil, fmt.Errorf("reconcile %s: %w", s.Ticker, err)
	}
	report.IntrinsicValuePerShare = value
	report.PrimaryMethod = method

	a.log.WithFields(map[string]interface{}{
		"ticker":          s.Ticker,
		"intrinsic_value": fmt.Sprintf("%.2f", value),
		"primary_method":  string(method),
		"upside_pct":      fmt.Sprintf("%.4f", report.UpsidePct()),
	}).Info("Valuation complete")

	return report, nil
}

// reconcile folds the per-method intrinsic values into one number under the
// configured policy. DCF and the comparables-implied value are the candidates;
// DDM stays informational because the Gordon model is too sensitive to its
// growth input to anchor the reconciled figure.
func (a *Aggregator) reconcile(methods []contracts.ValuationMethodResult) (float64, contracts.ValuationMethod, error) {
	var (
		dcfValue, compValue float64
		hasDCF, hasComp     bool
	)
	for i := range methods {
		m := &methods[i]
		if !m.Applicable() {
			continue
		}
		switch m.Method {
		case contracts.MethodDCF:
			dcfValue, hasDCF = m.DCF.IntrinsicValuePerShare, true
		case contracts.MethodComparables:
			if m.Comparables.HasImpliedValue {
				compValue, hasComp = m.Comparables.ImpliedValuePerShare, true
			}
		}
	}

	switch {
	case !hasDCF && !hasComp:
		return 0, "", fmt.Errorf("%w: no method produced an intrinsic value", contracts.ErrInsufficientData)
	case hasDCF && !hasComp:
		return dcfValue, contracts.MethodDCF, nil
	case !hasDCF:
		return compValue, contracts.MethodComparables, nil
	}

	if a.reconciliation.Policy == strategyconfig.ReconcileBlend {
		w1, w2 := a.reconciliation.DCFWeight, a.reconciliation.ComparablesWeight
		blended := (dcfValue*w1 + compValue*w2) / (w1 + w2)
		return blended, contracts.MethodDCF, nil
	}
	return dcfValue, contracts.MethodDCF, nil
}
