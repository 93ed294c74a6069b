package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/model"
)

func sampleResults() model.CalculationResults {
	return model.CalculationResults{
		AICostMonthly: model.AICostMonthly{
			Voice: 24, Chatbot: 229, Total: 253, SetupFee: 749,
		},
		BasePriceMonthly:       229,
		HumanCostMonthly:       4844.67,
		MonthlySavings:         4591.67,
		YearlySavings:          55100.04,
		SavingsPercentage:      94.78,
		AnnualPlan:             2290,
		TierKey:                model.TierGrowth,
		AIType:                 model.TypeBoth,
		IncludedVoiceMinutes:   600,
		AdditionalVoiceMinutes: 200,
	}
}

func sampleLead() model.Lead {
	return model.Lead{
		ID:          "lead-1",
		Name:        "Dana Smith",
		CompanyName: "Acme Dental",
		Email:       "dana@acmedental.com",
		PhoneNumber: "555-0100",
	}
}

func TestBuildContentSections(t *testing.T) {
	t.Parallel()

	c, err := BuildContent(KindROIReport, sampleLead(), sampleResults())
	require.NoError(t, err)

	require.Len(t, c.Sections, 4)
	assert.Equal(t, "Executive Summary", c.Sections[0].Title)
	assert.Equal(t, "Recommended Solution", c.Sections[1].Title)
	assert.Equal(t, "Financial Impact", c.Sections[2].Title)
	assert.Equal(t, "Implementation Plan", c.Sections[3].Title)
	assert.Equal(t, "Acme Dental", c.CompanyName)
}

func TestBuildContentUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := BuildContent("flyer", sampleLead(), sampleResults())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown kind")
}

// collectValues flattens every table row value for cross-kind comparison.
func collectValues(c Content) map[string]string {
	out := make(map[string]string)
	for _, sec := range c.Sections {
		for _, tbl := range sec.Tables {
			for _, row := range tbl.Rows {
				out[row.Label] = row.Value
			}
		}
	}
	return out
}

func TestBuildContentNumbersIdenticalAcrossKinds(t *testing.T) {
	t.Parallel()

	lead := sampleLead()
	res := sampleResults()

	report, err := BuildContent(KindROIReport, lead, res)
	require.NoError(t, err)
	proposal, err := BuildContent(KindProposal, lead, res)
	require.NoError(t, err)

	// Different titles and framing, byte-identical financial values.
	assert.NotEqual(t, report.Title, proposal.Title)
	assert.Equal(t, collectValues(report), collectValues(proposal))
	assert.Equal(t, report.ROI, proposal.ROI)
}

func TestBuildContentVoiceLineItemPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(*model.CalculationResults)
		wantCost string
	}{
		{
			name: "voice-capable with minutes shows cost and minutes",
			mutate: func(r *model.CalculationResults) {},
			wantCost: "$24.00 (200 minutes)",
		},
		{
			name: "voice-capable with zero minutes shows none requested",
			mutate: func(r *model.CalculationResults) {
				r.AdditionalVoiceMinutes = 0
				r.AICostMonthly.Voice = 0
				r.AICostMonthly.Total = 229
			},
			wantCost: "None requested",
		},
		{
			name: "starter shows not included",
			mutate: func(r *model.CalculationResults) {
				r.TierKey = model.TierStarter
				r.AIType = model.TypeChatbot
				r.AdditionalVoiceMinutes = 0
				r.AICostMonthly = model.AICostMonthly{Chatbot: 99, Total: 99, SetupFee: 499}
			},
			wantCost: "Not included",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := sampleResults()
			tt.mutate(&res)

			c, err := BuildContent(KindROIReport, sampleLead(), res)
			require.NoError(t, err)

			values := collectValues(c)
			assert.Equal(t, tt.wantCost, values["AI Voice Cost (monthly)"])
			// Never a $0.00 voice row.
			assert.NotEqual(t, "$0.00", values["AI Voice Cost (monthly)"])
		})
	}
}

func TestBuildContentEmptyCompanyName(t *testing.T) {
	t.Parallel()

	lead := sampleLead()
	lead.CompanyName = ""

	c, err := BuildContent(KindROIReport, lead, sampleResults())
	require.NoError(t, err)
	assert.Equal(t, "Your Business", c.CompanyName)
}

func TestTierAndTypeNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Starter Plan", TierName(model.TierStarter))
	assert.Equal(t, "Growth Plan", TierName(model.TierGrowth))
	assert.Equal(t, "Premium Plan", TierName(model.TierPremium))
	assert.Equal(t, "Growth Plan", TierName("enterprise"))

	assert.Equal(t, "Text Only", AITypeName(model.TypeChatbot))
	assert.Equal(t, "Text & Basic Voice", AITypeName(model.TypeBoth))
	assert.Equal(t, "Conversational Voice Only", AITypeName(model.TypeConversationalVoice))
	assert.Equal(t, "Text Only", AITypeName("hologram"))
}

func TestMoneyFormatting(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$4,591.67", Money(4591.67))
	assert.Equal(t, "$0.00", Money(0))
	assert.Equal(t, "$1,234,567.89", Money(1234567.894))
	assert.Equal(t, "94.8%", Percent(94.78))
}
