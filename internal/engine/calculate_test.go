package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/model"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/pricing"
)

func growthBoth(minutes int) model.CalculatorInputs {
	return model.CalculatorInputs{
		AITier: model.TierGrowth, AIType: model.TypeBoth,
		Role: model.RoleCustomerService, NumEmployees: 1,
		CallVolume: model.FlexInt(minutes),
	}
}

func TestCalculateGrowthWithVoice(t *testing.T) {
	t.Parallel()
	rates := pricing.DefaultRates()

	res := Calculate(growthBoth(200), rates)

	assert.InDelta(t, 229, res.AICostMonthly.Chatbot, 0.001)
	assert.InDelta(t, 24.00, res.AICostMonthly.Voice, 0.001) // 200 x 0.12
	assert.InDelta(t, 253.00, res.AICostMonthly.Total, 0.001)
	assert.InDelta(t, 749, res.AICostMonthly.SetupFee, 0.001)
	assert.Equal(t, 200, res.AdditionalVoiceMinutes)
	assert.Equal(t, 600, res.IncludedVoiceMinutes)
	assert.Equal(t, model.TierGrowth, res.TierKey)
	assert.Equal(t, model.TypeBoth, res.AIType)
}

func TestCalculateUpgradedStarterVoice(t *testing.T) {
	t.Parallel()
	rates := pricing.DefaultRates()

	// starter + voice request upgrades to growth/both with 600 included
	// minutes seeded, then bills them at the additional rate.
	in := Validate(model.CalculatorInputs{
		AITier: model.TierStarter, AIType: model.TypeVoice, CallVolume: 500,
	}, rates)
	require.Equal(t, model.TierGrowth, in.AITier)
	require.Equal(t, model.TypeBoth, in.AIType)
	require.Equal(t, model.FlexInt(600), in.CallVolume)

	res := Calculate(in, rates)
	assert.InDelta(t, 72.00, res.AICostMonthly.Voice, 0.001) // 600 x 0.12
	assert.InDelta(t, 229, res.AICostMonthly.Chatbot, 0.001)
	assert.InDelta(t, 301.00, res.AICostMonthly.Total, 0.001)
}

func TestCalculateStarterHasNoVoiceCost(t *testing.T) {
	t.Parallel()
	rates := pricing.DefaultRates()

	in := Validate(model.CalculatorInputs{
		AITier: model.TierStarter, AIType: model.TypeChatbot, CallVolume: 900,
	}, rates)
	res := Calculate(in, rates)

	assert.Zero(t, res.AICostMonthly.Voice)
	assert.Equal(t, 0, res.AdditionalVoiceMinutes)
	assert.InDelta(t, 99, res.AICostMonthly.Total, 0.001)
}

func TestCalculateIdentities(t *testing.T) {
	t.Parallel()
	rates := pricing.DefaultRates()

	tests := []struct {
		name string
		in   model.CalculatorInputs
	}{
		{"growth chatbot", model.CalculatorInputs{AITier: model.TierGrowth, AIType: model.TypeChatbot, Role: model.RoleSales, NumEmployees: 4}},
		{"growth both with minutes", growthBoth(350)},
		{"premium conversational", model.CalculatorInputs{AITier: model.TierPremium, AIType: model.TypeConversationalVoice, Role: model.RoleTechnicalSupport, NumEmployees: 2, CallVolume: 1200}},
		{"starter chatbot", model.CalculatorInputs{AITier: model.TierStarter, AIType: model.TypeChatbot, Role: model.RoleGeneralAdmin, NumEmployees: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := Calculate(Validate(tt.in, rates), rates)

			assert.InDelta(t, res.AICostMonthly.Voice+res.AICostMonthly.Chatbot, res.AICostMonthly.Total, 0.01)
			assert.InDelta(t, res.HumanCostMonthly-res.AICostMonthly.Total, res.MonthlySavings, 0.01)
			assert.InDelta(t, res.MonthlySavings*12, res.YearlySavings, 0.01)
			if res.HumanCostMonthly > 0 {
				assert.InDelta(t, res.MonthlySavings/res.HumanCostMonthly*100, res.SavingsPercentage, 0.01)
			}
			assert.True(t, res.Consistent())
		})
	}
}

func TestCalculateDeterministic(t *testing.T) {
	t.Parallel()
	rates := pricing.DefaultRates()
	in := growthBoth(275)

	first := Calculate(in, rates)
	for range 10 {
		assert.Equal(t, first, Calculate(in, rates))
	}
}

func TestSavingsPercentageZeroHumanCost(t *testing.T) {
	t.Parallel()

	assert.Zero(t, savingsPercentage(0, 0))
	assert.Zero(t, savingsPercentage(500, 0))
	assert.Zero(t, savingsPercentage(-500, 0))
	assert.InDelta(t, 50, savingsPercentage(500, 1000), 0.001)
}

func TestCalculateHumanHours(t *testing.T) {
	t.Parallel()
	rates := pricing.DefaultRates()

	res := Calculate(growthBoth(0), rates)

	assert.InDelta(t, 8, res.HumanHours.DailyPerEmployee, 0.001)
	assert.InDelta(t, 40, res.HumanHours.WeeklyTotal, 0.001)
	assert.InDelta(t, 173.333, res.HumanHours.MonthlyTotal, 0.01)
	assert.InDelta(t, 2080, res.HumanHours.YearlyTotal, 0.001)

	// customerService: 21.50 x 1.3 benefits x monthly hours
	assert.InDelta(t, 173.3333*21.50*1.3, res.HumanCostMonthly, 0.01)
}

func TestCalculateNumEmployeesDoesNotScale(t *testing.T) {
	t.Parallel()
	rates := pricing.DefaultRates()

	one := growthBoth(100)
	one.NumEmployees = 1
	fifty := growthBoth(100)
	fifty.NumEmployees = 50

	// The comparison is against one representative employee regardless of
	// headcount.
	assert.Equal(t, Calculate(one, rates).HumanCostMonthly, Calculate(fifty, rates).HumanCostMonthly)
}

func TestHourlyRate(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 21.50, HourlyRate(model.RoleCustomerService), 0.001)
	assert.InDelta(t, 28.75, HourlyRate(model.RoleSales), 0.001)
	assert.InDelta(t, 32.50, HourlyRate(model.RoleTechnicalSupport), 0.001)
	assert.InDelta(t, 25.00, HourlyRate(model.RoleGeneralAdmin), 0.001)
	assert.InDelta(t, 21.50, HourlyRate("unknown"), 0.001)
}
