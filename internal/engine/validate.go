// Package engine turns validated calculator inputs and a rate card into the
// authoritative cost, savings, and ROI figures.
package engine

import (
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/model"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/pricing"
)

// Validate returns a fully-populated, internally-consistent copy of raw. It
// is total: it never fails, whatever arrives.
//
// Tier/type mismatches resolve by upgrading the tier to match the requested
// capability, never by downgrading the capability. (The admin edit dialog
// historically resolved the other way, downgrading type to fit a fixed tier;
// that precedence is not kept. One exception remains structurally forced:
// basic voice requested on premium has no higher tier to move to, so the
// type maps to its conversational equivalent.)
func Validate(raw model.CalculatorInputs, rates pricing.Rates) model.CalculatorInputs {
	in := raw

	if !in.AITier.Valid() {
		in.AITier = model.TierGrowth
	}
	if !in.AIType.Valid() {
		in.AIType = model.TypeChatbot
	}
	if !in.Role.Valid() {
		in.Role = model.RoleCustomerService
	}
	if in.NumEmployees < 1 {
		in.NumEmployees = 1
	}
	if in.CallVolume < 0 {
		in.CallVolume = 0
	}

	// Capability requested above the current tier upgrades the tier and
	// seeds the voice allotment with the new tier's included minutes.
	switch {
	case in.AIType.Conversational() && in.AITier != model.TierPremium:
		in.AITier = model.TierPremium
		in.CallVolume = model.FlexInt(rates.Card(model.TierPremium).IncludedVoiceMinutes)
	case in.AIType.HasVoice() && in.AITier == model.TierStarter:
		in.AITier = model.TierGrowth
		if in.AIType == model.TypeVoice {
			in.AIType = model.TypeBoth
		}
		in.CallVolume = model.FlexInt(rates.Card(model.TierGrowth).IncludedVoiceMinutes)
	}

	// Basic voice on premium: no tier to upgrade to, map the type up.
	if in.AITier == model.TierPremium {
		switch in.AIType {
		case model.TypeVoice:
			in.AIType = model.TypeConversationalVoice
		case model.TypeBoth:
			in.AIType = model.TypeBothPremium
		}
	}

	// Final clamp: starter is text-only, no voice minutes, unconditionally.
	if in.AITier == model.TierStarter {
		in.AIType = model.TypeChatbot
		in.CallVolume = 0
	}

	in.SchemaVersion = model.InputsSchemaVersion
	return in
}
