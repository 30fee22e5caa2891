package contracts

import "errors"

// Error taxonomy for the analysis pipeline.
//
// Recoverable conditions (a single method skipping or failing its assumption
// check) are absorbed at the component boundary and surface as report fields.
// Only blocking conditions (no valuation possible at all, no sentiment at all)
// propagate to the caller. Defaulting a missing figure to zero is never an
// acceptable fallback anywhere in the pipeline.
var (
	// ErrNotApplicable marks a valuation method that legitimately does not
	// apply, e.g. a dividend discount model on a non-dividend payer. Recorded
	// as "skipped" in the report, never surfaced as a failure.
	ErrNotApplicable = errors.New("method not applicable")

	// ErrInsufficientData means there is not enough history or too many
	// missing fields to compute a required figure.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidAssumption means a model input violates the model's own
	// preconditions, e.g. terminal growth at or above the discount rate.
	ErrInvalidAssumption = errors.New("invalid model assumption")

	// ErrDegenerateRisk means the stop loss sits at or beyond the entry price,
	// making the risk/reward ratio undefined.
	ErrDegenerateRisk = errors.New("degenerate risk setup")

	// ErrNoSentimentData means both news and analyst inputs were empty.
	ErrNoSentimentData = errors.New("no sentiment data")
)
