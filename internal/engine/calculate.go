package engine

import (
	"math"

	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/model"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/pricing"
)

// Hourly rates for the human comparator, by role, in USD.
var hourlyRates = map[model.Role]float64{
	model.RoleCustomerService:  21.50,
	model.RoleSales:            28.75,
	model.RoleTechnicalSupport: 32.50,
	model.RoleGeneralAdmin:     25.00,
}

// benefitsMultiplier loads base wages with 30% for benefits.
const benefitsMultiplier = 1.3

// Work-pattern constants for one representative employee.
const (
	hoursPerDay  = 8.0
	daysPerWeek  = 5.0
	weeksPerYear = 52.0
)

// HourlyRate returns the base hourly rate for a role, before benefits
// loading. Unknown roles use the customer service rate.
func HourlyRate(role model.Role) float64 {
	if r, ok := hourlyRates[role]; ok {
		return r
	}
	return hourlyRates[model.RoleCustomerService]
}

// savingsPercentage returns savings as a plain number in percent. Zero human
// cost yields 0, never NaN or Inf.
func savingsPercentage(monthlySavings, humanCost float64) float64 {
	if humanCost <= 0 {
		return 0
	}
	return monthlySavings / humanCost * 100
}

// Calculate produces the complete result set for validated inputs against a
// rate table. Pure and deterministic: same arguments, same results, no
// failure for any valid input.
//
// CallVolume is treated as minutes already in excess of the tier's included
// allotment; it is not reduced by IncludedVoiceMinutes here. NumEmployees
// deliberately does not scale the human cost: the comparison is against one
// representative employee, matching the published calculator.
func Calculate(in model.CalculatorInputs, rates pricing.Rates) model.CalculationResults {
	card := rates.Card(in.AITier)

	hourly := HourlyRate(in.Role)
	hourlyLoaded := hourly * benefitsMultiplier

	hours := model.HumanHours{
		DailyPerEmployee: hoursPerDay,
		WeeklyTotal:      hoursPerDay * daysPerWeek,
		MonthlyTotal:     hoursPerDay * daysPerWeek * weeksPerYear / 12,
		YearlyTotal:      hoursPerDay * daysPerWeek * weeksPerYear,
	}
	humanCost := hours.MonthlyTotal * hourlyLoaded

	chatbotCost := card.Base

	voiceRate := card.AdditionalVoiceRate
	if voiceRate <= 0 {
		voiceRate = pricing.DefaultAdditionalVoiceRate
	}
	voiceCost := 0.0
	if in.AITier != model.TierStarter && in.CallVolume > 0 {
		voiceCost = float64(in.CallVolume) * voiceRate
	}

	total := chatbotCost + voiceCost

	monthlySavings := humanCost - total
	yearlySavings := monthlySavings * 12
	savingsPct := savingsPercentage(monthlySavings, humanCost)

	breakEvenChatbot := 0
	if perMinuteHuman := hourlyLoaded / 60; perMinuteHuman > 0 {
		breakEvenChatbot = int(math.Ceil(total / perMinuteHuman))
	}

	return model.CalculationResults{
		AICostMonthly: model.AICostMonthly{
			Voice:    voiceCost,
			Chatbot:  chatbotCost,
			Total:    total,
			SetupFee: card.SetupFee,
		},
		BasePriceMonthly:  card.Base,
		HumanCostMonthly:  humanCost,
		MonthlySavings:    monthlySavings,
		YearlySavings:     yearlySavings,
		SavingsPercentage: savingsPct,
		BreakEvenPoint: model.BreakEvenPoint{
			Voice:   in.CallVolume.Int(),
			Chatbot: breakEvenChatbot,
		},
		HumanHours:             hours,
		AnnualPlan:             card.AnnualPrice,
		TierKey:                in.AITier,
		AIType:                 in.AIType,
		IncludedVoiceMinutes:   card.IncludedVoiceMinutes,
		AdditionalVoiceMinutes: in.CallVolume.Int(),
		SchemaVersion:          model.ResultsSchemaVersion,
	}
}
