// Package pricing supplies tier-indexed rate cards for the calculator.
package pricing

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/model"
)

// DefaultAdditionalVoiceRate is the flat per-minute price for voice usage
// beyond a tier's included allotment.
const DefaultAdditionalVoiceRate = 0.12

// Rate is one tier's card.
type Rate struct {
	Base                 float64 `json:"base" yaml:"base"`                                     // monthly chatbot price
	PerMessage           float64 `json:"perMessage" yaml:"per_message"`                        // unused by the canonical engine path
	SetupFee             float64 `json:"setupFee" yaml:"setup_fee"`
	AnnualPrice          float64 `json:"annualPrice" yaml:"annual_price"`
	IncludedVoiceMinutes int     `json:"includedVoiceMinutes" yaml:"included_voice_minutes"`
	AdditionalVoiceRate  float64 `json:"additionalVoiceRate" yaml:"additional_voice_rate"`
}

// Rates maps every tier to its card. A well-formed value always has exactly
// one card per tier.
type Rates map[model.AITier]Rate

// Card returns the card for tier, falling back to the growth default for
// unknown tiers so callers never work with a zero card.
func (r Rates) Card(tier model.AITier) Rate {
	if card, ok := r[tier]; ok {
		return card
	}
	return DefaultRates()[model.TierGrowth]
}

// Clone returns an independent copy. Providers hand out clones so no caller
// can mutate a shared table.
func (r Rates) Clone() Rates {
	out := make(Rates, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Publicly advertised numbers. A configuration override may never move
// these; only setup fee and annual price are allowed to vary from storage.
var pinned = map[model.AITier]struct {
	base            float64
	includedMinutes int
}{
	model.TierStarter: {base: 99, includedMinutes: 0},
	model.TierGrowth:  {base: 229, includedMinutes: 600},
	model.TierPremium: {base: 429, includedMinutes: 600},
}

// DefaultRates returns the hardcoded rate cards used when no configuration
// is available. Every call returns a fresh copy.
func DefaultRates() Rates {
	return Rates{
		model.TierStarter: {
			Base:                 99,
			PerMessage:           0,
			SetupFee:             499,
			AnnualPrice:          990,
			IncludedVoiceMinutes: 0,
			AdditionalVoiceRate:  DefaultAdditionalVoiceRate,
		},
		model.TierGrowth: {
			Base:                 229,
			PerMessage:           0.005,
			SetupFee:             749,
			AnnualPrice:          2290,
			IncludedVoiceMinutes: 600,
			AdditionalVoiceRate:  DefaultAdditionalVoiceRate,
		},
		model.TierPremium: {
			Base:                 429,
			PerMessage:           0.008,
			SetupFee:             1149,
			AnnualPrice:          4290,
			IncludedVoiceMinutes: 600,
			AdditionalVoiceRate:  DefaultAdditionalVoiceRate,
		},
	}
}

// pin overwrites the presentation-layer fields of card with the advertised
// constants for tier.
func pin(tier model.AITier, card Rate) Rate {
	p, ok := pinned[tier]
	if !ok {
		return card
	}
	card.Base = p.base
	card.IncludedVoiceMinutes = p.includedMinutes
	card.AdditionalVoiceRate = DefaultAdditionalVoiceRate
	return card
}

// LoadRatesFile reads a YAML rate override file keyed by tier. Missing tiers
// and missing fields fall back to defaults; pinned fields stay pinned.
func LoadRatesFile(path string) (Rates, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "pricing: read rates file %s", path)
	}
	var file map[string]Rate
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, eris.Wrapf(err, "pricing: parse rates file %s", path)
	}

	rates := DefaultRates()
	for tierName, override := range file {
		tier := model.AITier(tierName)
		if !tier.Valid() {
			return nil, eris.Errorf("pricing: unknown tier %q in %s", tierName, path)
		}
		card := rates[tier]
		if override.SetupFee > 0 {
			card.SetupFee = override.SetupFee
		}
		if override.AnnualPrice > 0 {
			card.AnnualPrice = override.AnnualPrice
		}
		if override.PerMessage > 0 {
			card.PerMessage = override.PerMessage
		}
		rates[tier] = pin(tier, card)
	}
	return rates, nil
}
