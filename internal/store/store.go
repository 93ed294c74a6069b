// Package store persists leads, pricing configuration, and generated report
// snapshots behind a driver-neutral interface.
package store

import (
	"context"

	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/model"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/pricing"
)

// LeadFilter specifies criteria for listing leads.
type LeadFilter struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// Store defines the persistence interface for the calculator funnel and the
// admin back office. Concurrent lead updates are last-writer-wins at the
// record level; no optimistic locking is offered.
type Store interface {
	// Leads
	InsertLead(ctx context.Context, lead model.Lead) (*model.Lead, error)
	UpdateLead(ctx context.Context, lead model.Lead) error
	GetLead(ctx context.Context, id string) (*model.Lead, error)
	ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, error)

	// Pricing configuration
	ListPricing(ctx context.Context) ([]pricing.ConfigRow, error)
	UpsertPricing(ctx context.Context, row pricing.ConfigRow) error

	// Generated report history
	InsertReport(ctx context.Context, rep model.GeneratedReport) (*model.GeneratedReport, error)
	ListReports(ctx context.Context, leadID string) ([]model.GeneratedReport, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
