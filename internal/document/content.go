// Package document assembles the numeric and textual content of ROI reports
// and sales proposals. Both document kinds are built from the same result
// set and the same lookup tables, so their numbers cannot diverge.
package document

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/model"
)

// Kind distinguishes the two documents generated from one result set.
type Kind string

const (
	KindROIReport Kind = "roi_report" // prospect-facing
	KindProposal  Kind = "proposal"   // internal sales
)

// Row is one label/value line in a financial table.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Table is a titled list of rows.
type Table struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

// Section is one titled block of a document: paragraphs, then tables.
type Section struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs,omitempty"`
	Tables     []Table  `json:"tables,omitempty"`
}

// Content is everything a renderer needs to emit a paginated document.
type Content struct {
	Kind        Kind       `json:"kind"`
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle"`
	ContactName string     `json:"contact_name"`
	CompanyName string     `json:"company_name"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	BrandColor  [3]int     `json:"brand_color"`
	Sections    []Section  `json:"sections"`
	ROI         ROIFigures `json:"-"`
}

// Renderer turns assembled content into a paginated document. Render
// failures surface to the caller as-is; retry policy belongs to the calling
// endpoint, not here.
type Renderer interface {
	Render(c Content) ([]byte, error)
}

// brandColor is the house accent color (RGB).
var brandColor = [3]int{30, 58, 138}

// BuildContent assembles a document of the given kind for a lead. The result
// set must already be reconciled; BuildContent recomputes nothing, it only
// formats.
func BuildContent(kind Kind, lead model.Lead, res model.CalculationResults) (Content, error) {
	if kind != KindROIReport && kind != KindProposal {
		return Content{}, eris.Errorf("document: unknown kind %q", kind)
	}

	roi := DeriveROI(res)

	company := lead.CompanyName
	if company == "" {
		company = "Your Business"
	}

	title := "AI Integration Cost Savings Report"
	subtitle := fmt.Sprintf("Prepared for %s", company)
	if kind == KindProposal {
		title = "AI Solution Proposal"
		subtitle = fmt.Sprintf("%s — %s", company, TierName(res.TierKey))
	}

	c := Content{
		Kind:        kind,
		Title:       title,
		Subtitle:    subtitle,
		ContactName: lead.Name,
		CompanyName: company,
		Email:       lead.Email,
		PhoneNumber: lead.PhoneNumber,
		BrandColor:  brandColor,
	}

	c.Sections = append(c.Sections,
		executiveSummary(company, res, roi),
		recommendedSolution(res),
		financialImpact(res, roi),
		implementationPlan(res),
	)
	c.ROI = roi
	return c, nil
}

func executiveSummary(company string, res model.CalculationResults, roi ROIFigures) Section {
	return Section{
		Title: "Executive Summary",
		Paragraphs: []string{
			fmt.Sprintf(
				"%s can reduce monthly operating costs from %s to %s by adopting the %s with %s capability, a saving of %s per month (%s).",
				company,
				Money(res.HumanCostMonthly),
				Money(res.AICostMonthly.Total),
				TierName(res.TierKey),
				AITypeName(res.AIType),
				Money(res.MonthlySavings),
				Percent(res.SavingsPercentage),
			),
			fmt.Sprintf(
				"Projected first-year savings are %s, with the one-time setup investment of %s recovered in approximately %d %s.",
				Money(res.YearlySavings),
				Money(res.AICostMonthly.SetupFee),
				roi.BreakEvenMonths,
				plural(roi.BreakEvenMonths, "month", "months"),
			),
		},
	}
}

func recommendedSolution(res model.CalculationResults) Section {
	rows := []Row{
		{Label: "Plan", Value: TierName(res.TierKey)},
		{Label: "Capability", Value: AITypeName(res.AIType)},
		{Label: "Monthly Base Price", Value: Money(res.BasePriceMonthly)},
		{Label: "Included Voice Minutes", Value: includedMinutesValue(res)},
		{Label: "Additional Voice Minutes", Value: additionalMinutesValue(res)},
		{Label: "Annual Plan (12 months)", Value: Money(res.AnnualPlan)},
	}
	return Section{
		Title: "Recommended Solution",
		Tables: []Table{
			{Title: "Your Configuration", Rows: rows},
		},
	}
}

func financialImpact(res model.CalculationResults, roi ROIFigures) Section {
	costRows := []Row{
		{Label: "Current Human Staff Cost (monthly)", Value: Money(res.HumanCostMonthly)},
		{Label: "AI Chatbot Cost (monthly)", Value: Money(res.AICostMonthly.Chatbot)},
		{Label: "AI Voice Cost (monthly)", Value: voiceCostValue(res)},
		{Label: "Total AI Cost (monthly)", Value: Money(res.AICostMonthly.Total)},
		{Label: "One-Time Setup Fee", Value: Money(res.AICostMonthly.SetupFee)},
	}
	savingsRows := []Row{
		{Label: "Monthly Savings", Value: Money(res.MonthlySavings)},
		{Label: "Annual Savings", Value: Money(res.YearlySavings)},
		{Label: "Savings Percentage", Value: Percent(res.SavingsPercentage)},
		{Label: "Break-Even Point", Value: fmt.Sprintf("%d %s", roi.BreakEvenMonths, plural(roi.BreakEvenMonths, "month", "months"))},
		{Label: "First-Year ROI", Value: Percent(roi.FirstYearROI)},
		{Label: "Five-Year Savings", Value: Money(roi.FiveYearSavings)},
	}
	return Section{
		Title: "Financial Impact",
		Tables: []Table{
			{Title: "Cost Comparison", Rows: costRows},
			{Title: "Savings & Return", Rows: savingsRows},
		},
	}
}

func implementationPlan(res model.CalculationResults) Section {
	return Section{
		Title: "Implementation Plan",
		Paragraphs: []string{
			"Week 1: Discovery and configuration. We map your current workflows, connect your knowledge base, and configure the assistant's tone and escalation rules.",
			fmt.Sprintf("Week 2: Training and integration. The %s assistant is trained on your content and integrated with your existing channels.", AITypeName(res.AIType)),
			"Week 3: Supervised launch. The assistant handles live traffic with human review of every escalation.",
			"Week 4: Full deployment. Routine volume shifts to the assistant; your team keeps the exceptions.",
		},
	}
}

// Voice line-item policy: starter tiers show "Not included" (the tier has no
// voice at all); voice-capable tiers with zero additional minutes show
// "None requested" rather than a $0.00 cost row.

func voiceCostValue(res model.CalculationResults) string {
	if res.TierKey == model.TierStarter {
		return "Not included"
	}
	if res.AdditionalVoiceMinutes == 0 {
		return "None requested"
	}
	return fmt.Sprintf("%s (%s)", Money(res.AICostMonthly.Voice), Minutes(res.AdditionalVoiceMinutes))
}

func includedMinutesValue(res model.CalculationResults) string {
	if res.TierKey == model.TierStarter {
		return "Not included"
	}
	return Minutes(res.IncludedVoiceMinutes)
}

func additionalMinutesValue(res model.CalculationResults) string {
	if res.TierKey == model.TierStarter {
		return "Not included"
	}
	if res.AdditionalVoiceMinutes == 0 {
		return "None requested"
	}
	return Minutes(res.AdditionalVoiceMinutes)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
