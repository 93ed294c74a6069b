package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/model"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/pricing"
)

func TestValidate(t *testing.T) {
	t.Parallel()
	rates := pricing.DefaultRates()

	tests := []struct {
		name string
		in   model.CalculatorInputs
		want model.CalculatorInputs
	}{
		{
			name: "empty input gets full defaults",
			in:   model.CalculatorInputs{},
			want: model.CalculatorInputs{
				AITier: model.TierGrowth, AIType: model.TypeChatbot,
				Role: model.RoleCustomerService, NumEmployees: 1,
			},
		},
		{
			name: "voice on starter upgrades to growth both with included minutes",
			in: model.CalculatorInputs{
				AITier: model.TierStarter, AIType: model.TypeVoice,
				Role: model.RoleCustomerService, NumEmployees: 3, CallVolume: 500,
			},
			want: model.CalculatorInputs{
				AITier: model.TierGrowth, AIType: model.TypeBoth,
				Role: model.RoleCustomerService, NumEmployees: 3, CallVolume: 600,
			},
		},
		{
			name: "both on starter upgrades to growth",
			in: model.CalculatorInputs{
				AITier: model.TierStarter, AIType: model.TypeBoth,
				Role: model.RoleSales, NumEmployees: 1,
			},
			want: model.CalculatorInputs{
				AITier: model.TierGrowth, AIType: model.TypeBoth,
				Role: model.RoleSales, NumEmployees: 1, CallVolume: 600,
			},
		},
		{
			name: "conversational voice on growth upgrades to premium",
			in: model.CalculatorInputs{
				AITier: model.TierGrowth, AIType: model.TypeConversationalVoice,
				Role: model.RoleGeneralAdmin, NumEmployees: 2, CallVolume: 100,
			},
			want: model.CalculatorInputs{
				AITier: model.TierPremium, AIType: model.TypeConversationalVoice,
				Role: model.RoleGeneralAdmin, NumEmployees: 2, CallVolume: 600,
			},
		},
		{
			name: "both-premium on starter upgrades straight to premium",
			in: model.CalculatorInputs{
				AITier: model.TierStarter, AIType: model.TypeBothPremium,
				Role: model.RoleCustomerService, NumEmployees: 1,
			},
			want: model.CalculatorInputs{
				AITier: model.TierPremium, AIType: model.TypeBothPremium,
				Role: model.RoleCustomerService, NumEmployees: 1, CallVolume: 600,
			},
		},
		{
			name: "basic voice on premium maps to conversational",
			in: model.CalculatorInputs{
				AITier: model.TierPremium, AIType: model.TypeVoice,
				Role: model.RoleTechnicalSupport, NumEmployees: 5, CallVolume: 250,
			},
			want: model.CalculatorInputs{
				AITier: model.TierPremium, AIType: model.TypeConversationalVoice,
				Role: model.RoleTechnicalSupport, NumEmployees: 5, CallVolume: 250,
			},
		},
		{
			name: "both on premium maps to both-premium",
			in: model.CalculatorInputs{
				AITier: model.TierPremium, AIType: model.TypeBoth,
				Role: model.RoleCustomerService, NumEmployees: 1, CallVolume: 50,
			},
			want: model.CalculatorInputs{
				AITier: model.TierPremium, AIType: model.TypeBothPremium,
				Role: model.RoleCustomerService, NumEmployees: 1, CallVolume: 50,
			},
		},
		{
			name: "starter chatbot clamps call volume to zero",
			in: model.CalculatorInputs{
				AITier: model.TierStarter, AIType: model.TypeChatbot,
				Role: model.RoleCustomerService, NumEmployees: 1, CallVolume: 400,
			},
			want: model.CalculatorInputs{
				AITier: model.TierStarter, AIType: model.TypeChatbot,
				Role: model.RoleCustomerService, NumEmployees: 1, CallVolume: 0,
			},
		},
		{
			name: "negative call volume coerced to zero",
			in: model.CalculatorInputs{
				AITier: model.TierGrowth, AIType: model.TypeChatbot,
				Role: model.RoleCustomerService, NumEmployees: 1, CallVolume: -20,
			},
			want: model.CalculatorInputs{
				AITier: model.TierGrowth, AIType: model.TypeChatbot,
				Role: model.RoleCustomerService, NumEmployees: 1, CallVolume: 0,
			},
		},
		{
			name: "unknown tier and type default to growth chatbot",
			in: model.CalculatorInputs{
				AITier: "enterprise", AIType: "hologram",
				Role: "wizard", NumEmployees: -3,
			},
			want: model.CalculatorInputs{
				AITier: model.TierGrowth, AIType: model.TypeChatbot,
				Role: model.RoleCustomerService, NumEmployees: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Validate(tt.in, rates)
			tt.want.SchemaVersion = model.InputsSchemaVersion
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateIdempotent(t *testing.T) {
	t.Parallel()
	rates := pricing.DefaultRates()

	in := model.CalculatorInputs{AITier: model.TierStarter, AIType: model.TypeVoice, CallVolume: 500}
	once := Validate(in, rates)
	twice := Validate(once, rates)
	assert.Equal(t, once, twice)
}
