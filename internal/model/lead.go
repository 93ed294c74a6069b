package model

import "time"

// Lead is a sales prospect: contact identity, the calculator configuration
// they chose, and the savings numbers computed from it. Created at the first
// funnel step, mutated by later steps, recalculation, and admin edits; never
// deleted. The store is the sole persistence authority; in-memory copies are
// disposable projections scoped to one request.
type Lead struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CompanyName  string `json:"company_name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	Website      string `json:"website,omitempty"`
	Industry     string `json:"industry,omitempty"`
	EmployeeCount int   `json:"employee_count,omitempty"`

	CalculatorInputs  CalculatorInputs    `json:"calculator_inputs"`
	CalculatorResults *CalculationResults `json:"calculator_results,omitempty"`

	FormCompleted bool `json:"form_completed"`
	ProposalSent  bool `json:"proposal_sent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GeneratedReport is a versioned snapshot of a lead's inputs, results, and
// contact fields at the moment a document was produced. It supports
// re-download without recomputation and drift detection against the lead's
// current state.
type GeneratedReport struct {
	ID          string `json:"id"`
	LeadID      string `json:"lead_id"`
	Version     int    `json:"version"`
	ContactName string `json:"contact_name"`
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`

	CalculatorInputs  CalculatorInputs   `json:"calculator_inputs"`
	CalculatorResults CalculationResults `json:"calculator_results"`

	DocumentKind string    `json:"document_kind"` // "roi_report" or "proposal"
	CreatedAt    time.Time `json:"created_at"`
}
