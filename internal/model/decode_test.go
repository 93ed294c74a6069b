package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInputsObject(t *testing.T) {
	t.Parallel()

	in := DecodeInputs([]byte(`{"aiTier":"growth","aiType":"both","callVolume":"300","numEmployees":4}`))

	assert.Equal(t, TierGrowth, in.AITier)
	assert.Equal(t, TypeBoth, in.AIType)
	assert.Equal(t, FlexInt(300), in.CallVolume)
	assert.Equal(t, FlexInt(4), in.NumEmployees)
}

func TestDecodeInputsDoubleEncoded(t *testing.T) {
	t.Parallel()

	// Historic rows hold a JSON string containing the encoded object.
	inner := `{"aiTier":"premium","aiType":"conversationalVoice","callVolume":120}`
	wrapped, err := json.Marshal(inner)
	require.NoError(t, err)

	in := DecodeInputs(wrapped)
	assert.Equal(t, TierPremium, in.AITier)
	assert.Equal(t, FlexInt(120), in.CallVolume)
}

func TestDecodeInputsGarbage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CalculatorInputs{}, DecodeInputs([]byte(`not json at all`)))
	assert.Equal(t, CalculatorInputs{}, DecodeInputs(nil))
	assert.Equal(t, CalculatorInputs{}, DecodeInputs([]byte(`null`)))
}

func TestDecodeResults(t *testing.T) {
	t.Parallel()

	res, ok := DecodeResults([]byte(`{"tierKey":"growth","aiType":"both","humanCostMonthly":4844.67,"aiCostMonthly":{"voice":24,"chatbot":229,"total":253,"setupFee":749}}`))
	require.True(t, ok)
	assert.Equal(t, TierGrowth, res.TierKey)
	assert.InDelta(t, 253, res.AICostMonthly.Total, 0.001)
}

func TestDecodeResultsDoubleEncoded(t *testing.T) {
	t.Parallel()

	inner := `{"tierKey":"starter","aiCostMonthly":{"chatbot":99,"total":99}}`
	wrapped, err := json.Marshal(inner)
	require.NoError(t, err)

	res, ok := DecodeResults(wrapped)
	require.True(t, ok)
	assert.Equal(t, TierStarter, res.TierKey)
}

func TestDecodeResultsAbsent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		blob []byte
	}{
		{"nil", nil},
		{"null", []byte(`null`)},
		{"empty object", []byte(`{}`)},
		{"garbage", []byte(`{{{`)},
		{"empty string", []byte(`""`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, ok := DecodeResults(tt.blob)
			assert.False(t, ok)
		})
	}
}

func TestConsistent(t *testing.T) {
	t.Parallel()

	good := CalculationResults{
		AICostMonthly:    AICostMonthly{Voice: 24, Chatbot: 229, Total: 253},
		HumanCostMonthly: 1000,
		MonthlySavings:   747,
		YearlySavings:    8964,
	}
	assert.True(t, good.Consistent())

	drifted := good
	drifted.AICostMonthly.Voice = 60
	assert.False(t, drifted.Consistent())

	badSavings := good
	badSavings.MonthlySavings = 500
	assert.False(t, badSavings.Consistent())
}
