package model

// AITier is the commercial packaging level. It fixes the base price, setup
// fee, annual price, and included voice minutes.
type AITier string

const (
	TierStarter AITier = "starter"
	TierGrowth  AITier = "growth"
	TierPremium AITier = "premium"
)

// Valid reports whether t is one of the three known tiers.
func (t AITier) Valid() bool {
	switch t {
	case TierStarter, TierGrowth, TierPremium:
		return true
	}
	return false
}

// AIType is the capability mix purchased.
type AIType string

const (
	TypeChatbot             AIType = "chatbot"             // text only
	TypeVoice               AIType = "voice"               // basic voice only
	TypeBoth                AIType = "both"                // text + basic voice
	TypeConversationalVoice AIType = "conversationalVoice" // conversational voice only
	TypeBothPremium         AIType = "both-premium"        // text + conversational voice
)

// Valid reports whether a is a known AI type.
func (a AIType) Valid() bool {
	switch a {
	case TypeChatbot, TypeVoice, TypeBoth, TypeConversationalVoice, TypeBothPremium:
		return true
	}
	return false
}

// HasVoice reports whether the type includes any voice capability.
func (a AIType) HasVoice() bool {
	return a != TypeChatbot && a.Valid()
}

// Conversational reports whether the type requires the premium tier's
// conversational voice stack.
func (a AIType) Conversational() bool {
	return a == TypeConversationalVoice || a == TypeBothPremium
}

// Role selects the human comparator's hourly rate.
type Role string

const (
	RoleCustomerService  Role = "customerService"
	RoleSales            Role = "sales"
	RoleTechnicalSupport Role = "technicalSupport"
	RoleGeneralAdmin     Role = "generalAdmin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomerService, RoleSales, RoleTechnicalSupport, RoleGeneralAdmin:
		return true
	}
	return false
}

// CalculatorInputs is the transient, user-owned configuration a calculation
// runs from. It is reconstructed on every render from a Lead or form state.
//
// CallVolume is the number of voice minutes *beyond* the tier's included
// allotment, not a call count. The name survives from an earlier form field.
type CalculatorInputs struct {
	AIType       AIType  `json:"aiType"`
	AITier       AITier  `json:"aiTier"`
	Role         Role    `json:"role"`
	NumEmployees FlexInt `json:"numEmployees"`
	CallVolume   FlexInt `json:"callVolume"`

	// Legacy fields kept for backward compatibility with persisted leads.
	// Not used by the current cost formulas.
	ChatVolume            FlexInt `json:"chatVolume,omitempty"`
	AvgCallDuration       FlexInt `json:"avgCallDuration,omitempty"`
	AvgChatLength         FlexInt `json:"avgChatLength,omitempty"`
	AvgChatResolutionTime FlexInt `json:"avgChatResolutionTime,omitempty"`

	SchemaVersion int `json:"schemaVersion,omitempty"`
}

// InputsSchemaVersion stamps CalculatorInputs written by this codebase.
const InputsSchemaVersion = 2

// DefaultInputs returns the configuration the public calculator opens with.
func DefaultInputs() CalculatorInputs {
	return CalculatorInputs{
		AIType:        TypeChatbot,
		AITier:        TierGrowth,
		Role:          RoleCustomerService,
		NumEmployees:  1,
		CallVolume:    0,
		ChatVolume:    2000,
		SchemaVersion: InputsSchemaVersion,
	}
}
