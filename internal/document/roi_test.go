package document

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/model"
)

func TestDeriveROI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		monthly       float64
		yearly        float64
		setupFee      float64
		wantBreakEven int
		wantROI       float64
		wantFiveYear  float64
	}{
		{
			name:          "typical growth lead",
			monthly:       4591.67,
			yearly:        55100.04,
			setupFee:      749,
			wantBreakEven: 1,
			wantROI:       (55100.04 - 749) / 749 * 100,
			wantFiveYear:  55100.04*5 - 749,
		},
		{
			name:          "setup fee dwarfs savings",
			monthly:       100,
			yearly:        1200,
			setupFee:      1149,
			wantBreakEven: 12,
			wantROI:       (1200 - 1149) / 1149.0 * 100,
			wantFiveYear:  1200*5 - 1149,
		},
		{
			name:          "non-positive savings pins break-even and roi",
			monthly:       0,
			yearly:        0,
			setupFee:      499,
			wantBreakEven: 1,
			wantROI:       0,
			wantFiveYear:  -499,
		},
		{
			name:          "negative savings pins break-even and roi",
			monthly:       -50,
			yearly:        -600,
			setupFee:      499,
			wantBreakEven: 1,
			wantROI:       0,
			wantFiveYear:  -600*5 - 499,
		},
		{
			name:          "zero setup fee",
			monthly:       200,
			yearly:        2400,
			setupFee:      0,
			wantBreakEven: 1,
			wantROI:       0,
			wantFiveYear:  12000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := model.CalculationResults{
				AICostMonthly:  model.AICostMonthly{SetupFee: tt.setupFee},
				MonthlySavings: tt.monthly,
				YearlySavings:  tt.yearly,
			}

			roi := DeriveROI(res)
			assert.Equal(t, tt.wantBreakEven, roi.BreakEvenMonths)
			assert.InDelta(t, tt.wantROI, roi.FirstYearROI, 0.0001)
			assert.InDelta(t, tt.wantFiveYear, roi.FiveYearSavings, 0.0001)
		})
	}
}

func TestDeriveROIBreakEvenRoundsUp(t *testing.T) {
	t.Parallel()

	res := model.CalculationResults{
		AICostMonthly:  model.AICostMonthly{SetupFee: 1000},
		MonthlySavings: 300,
		YearlySavings:  3600,
	}
	// 1000 / 300 = 3.33 -> 4 months, never truncated down.
	assert.Equal(t, 4, DeriveROI(res).BreakEvenMonths)
}
