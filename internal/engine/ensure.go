package engine

import (
	"go.uber.org/zap"

	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/model"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/pricing"
)

// EnsureCompleteResults returns a fully-populated result set for a lead that
// may be missing one. Runs once at the storage boundary so everything past
// it works with trusted, complete values.
//
// A lead with no computed results gets a synthesized set from its (validated)
// inputs and the given rates, so document generation never hard-fails on
// empty data. The condition is logged: showing placeholder numbers is the
// accepted trade against failing loudly.
func EnsureCompleteResults(leadID string, res *model.CalculationResults, raw model.CalculatorInputs, rates pricing.Rates) model.CalculationResults {
	if res != nil && res.TierKey.Valid() {
		return *res
	}

	in := Validate(raw, rates)
	synthesized := Calculate(in, rates)

	zap.L().Warn("engine: synthesized calculator results for lead",
		zap.String("lead_id", leadID),
		zap.String("tier", string(in.AITier)),
	)
	return synthesized
}
