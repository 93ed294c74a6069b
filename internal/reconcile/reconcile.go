// Package reconcile makes a lead's independently-stored voice-minute fields
// agree before anything downstream reads them.
package reconcile

import (
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/model"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/pricing"
)

// A lead's inputs.callVolume and results.additionalVoiceMinutes can drift:
// admin edits touch one path, report generation reads the other. Lead takes
// the first available non-zero candidate as the single source of truth,
// writes it to both sides, and rebuilds the voice cost breakdown from it.
//
// Pure and idempotent: reconcile(reconcile(l)) == reconcile(l). Must run
// immediately before document content is built, so concurrent generations
// from a stale lead converge to the same numbers.
func Lead(lead model.Lead) model.Lead {
	tier := effectiveTier(lead)

	if lead.CalculatorResults == nil {
		// Nothing to rewrite on the results side; still clamp starter inputs.
		if tier == model.TierStarter {
			lead.CalculatorInputs.CallVolume = 0
		}
		return lead
	}

	res := *lead.CalculatorResults

	// Starter never has voice minutes, whatever either side says.
	if tier == model.TierStarter {
		lead.CalculatorInputs.CallVolume = 0
		res.AdditionalVoiceMinutes = 0
		res.AICostMonthly.Voice = 0
		res.AICostMonthly.Total = res.AICostMonthly.Chatbot
		res.BreakEvenPoint.Voice = 0
		lead.CalculatorResults = &res
		return lead
	}

	minutes := lead.CalculatorInputs.CallVolume.Int()
	if minutes == 0 {
		minutes = res.AdditionalVoiceMinutes
	}
	if minutes < 0 {
		minutes = 0
	}

	lead.CalculatorInputs.CallVolume = model.FlexInt(minutes)
	res.AdditionalVoiceMinutes = minutes
	res.BreakEvenPoint.Voice = minutes
	res.AICostMonthly.Voice = float64(minutes) * pricing.DefaultAdditionalVoiceRate
	res.AICostMonthly.Total = res.AICostMonthly.Chatbot + res.AICostMonthly.Voice

	lead.CalculatorResults = &res
	return lead
}

// effectiveTier resolves the tier the lead is actually on: the results'
// provenance wins, then the inputs, then growth.
func effectiveTier(lead model.Lead) model.AITier {
	if lead.CalculatorResults != nil && lead.CalculatorResults.TierKey.Valid() {
		return lead.CalculatorResults.TierKey
	}
	if lead.CalculatorInputs.AITier.Valid() {
		return lead.CalculatorInputs.AITier
	}
	return model.TierGrowth
}
