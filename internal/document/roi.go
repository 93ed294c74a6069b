package document

import (
	"math"

	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/model"
)

// ROIFigures are the derived display numbers shared by every document page.
// Computed exactly once per document, never re-derived ad hoc per page.
type ROIFigures struct {
	BreakEvenMonths int
	FirstYearROI    float64 // percent
	FiveYearSavings float64
}

// DeriveROI computes the display ROI figures from a result set. Non-positive
// monthly savings would otherwise produce negative or absurd break-even
// values, so that case pins break-even to 1 month and ROI to 0%.
func DeriveROI(res model.CalculationResults) ROIFigures {
	setupFee := res.AICostMonthly.SetupFee

	if res.MonthlySavings <= 0 {
		return ROIFigures{
			BreakEvenMonths: 1,
			FirstYearROI:    0,
			FiveYearSavings: res.YearlySavings*5 - setupFee,
		}
	}

	breakEven := 1
	if setupFee > 0 {
		breakEven = int(math.Ceil(setupFee / res.MonthlySavings))
		if breakEven < 1 {
			breakEven = 1
		}
	}

	roi := 0.0
	if setupFee > 0 {
		roi = (res.YearlySavings - setupFee) / setupFee * 100
	}

	return ROIFigures{
		BreakEvenMonths: breakEven,
		FirstYearROI:    roi,
		FiveYearSavings: res.YearlySavings*5 - setupFee,
	}
}
