package model

import "math"

// AICostMonthly breaks the monthly AI cost into its components.
type AICostMonthly struct {
	Voice    float64 `json:"voice"`
	Chatbot  float64 `json:"chatbot"`
	Total    float64 `json:"total"`
	SetupFee float64 `json:"setupFee"`
}

// BreakEvenPoint holds the descriptive break-even figures.
type BreakEvenPoint struct {
	Voice   int `json:"voice"`   // additional voice minutes, echoed for display
	Chatbot int `json:"chatbot"` // months-equivalent on a per-minute human cost basis
}

// HumanHours is the hour basis behind the human cost comparison.
type HumanHours struct {
	DailyPerEmployee float64 `json:"dailyPerEmployee"`
	WeeklyTotal      float64 `json:"weeklyTotal"`
	MonthlyTotal     float64 `json:"monthlyTotal"`
	YearlyTotal      float64 `json:"yearlyTotal"`
}

// CalculationResults is the authoritative output of one calculation. It is a
// value type, immutable once produced, and persisted verbatim on the Lead.
// TierKey and AIType record which tier/type produced the numbers.
type CalculationResults struct {
	AICostMonthly     AICostMonthly  `json:"aiCostMonthly"`
	BasePriceMonthly  float64        `json:"basePriceMonthly"`
	HumanCostMonthly  float64        `json:"humanCostMonthly"`
	MonthlySavings    float64        `json:"monthlySavings"`
	YearlySavings     float64        `json:"yearlySavings"`
	SavingsPercentage float64        `json:"savingsPercentage"`
	BreakEvenPoint    BreakEvenPoint `json:"breakEvenPoint"`
	HumanHours        HumanHours     `json:"humanHours"`
	AnnualPlan        float64        `json:"annualPlan"`

	TierKey AITier `json:"tierKey"`
	AIType  AIType `json:"aiType"`

	IncludedVoiceMinutes   int `json:"includedVoiceMinutes"`
	AdditionalVoiceMinutes int `json:"additionalVoiceMinutes"`

	SchemaVersion int `json:"schemaVersion,omitempty"`
}

// ResultsSchemaVersion stamps CalculationResults written by this codebase.
const ResultsSchemaVersion = 2

// moneyEqual compares two money values within display tolerance.
func moneyEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

// Consistent reports whether the result set still satisfies its internal
// identities: total additivity and the savings chain.
func (r CalculationResults) Consistent() bool {
	if !moneyEqual(r.AICostMonthly.Total, r.AICostMonthly.Voice+r.AICostMonthly.Chatbot) {
		return false
	}
	if !moneyEqual(r.MonthlySavings, r.HumanCostMonthly-r.AICostMonthly.Total) {
		return false
	}
	if !moneyEqual(r.YearlySavings, r.MonthlySavings*12) {
		return false
	}
	return true
}
