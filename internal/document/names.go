package document

import "github.com/jimpav61/ai-human-cost-comparator-sub001/internal/model"

// Display-name lookup tables. Both renderers consume these; nothing else in
// the repo may spell these names independently.

var tierNames = map[model.AITier]string{
	model.TierStarter: "Starter Plan",
	model.TierGrowth:  "Growth Plan",
	model.TierPremium: "Premium Plan",
}

var aiTypeNames = map[model.AIType]string{
	model.TypeChatbot:             "Text Only",
	model.TypeVoice:               "Basic Voice Only",
	model.TypeBoth:                "Text & Basic Voice",
	model.TypeConversationalVoice: "Conversational Voice Only",
	model.TypeBothPremium:         "Text & Conversational Voice",
}

// TierName returns the customer-facing name of a tier.
func TierName(tier model.AITier) string {
	if n, ok := tierNames[tier]; ok {
		return n
	}
	return tierNames[model.TierGrowth]
}

// AITypeName returns the customer-facing name of a capability mix.
func AITypeName(t model.AIType) string {
	if n, ok := aiTypeNames[t]; ok {
		return n
	}
	return aiTypeNames[model.TypeChatbot]
}
