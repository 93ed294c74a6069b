// Package generator orchestrates document generation: reconcile, complete,
// build content, render, snapshot. Both the HTTP endpoints and the CLI
// commands go through it, so every document path applies the same rules in
// the same order.
package generator

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/document"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/engine"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/model"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/pricing"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/reconcile"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/store"
)

// Mode selects whether a generation is a throwaway preview or the real thing.
type Mode string

const (
	ModePreview Mode = "preview"
	ModeFinal   Mode = "final"
)

// Output is one finished generation.
type Output struct {
	PDF      []byte
	Snapshot *model.GeneratedReport // nil in preview mode
	Lead     model.Lead             // the reconciled lead the document was built from
}

// Generator wires the store, rate provider, and renderer together.
type Generator struct {
	store    store.Store
	rates    pricing.Provider
	renderer document.Renderer
}

// New creates a Generator.
func New(st store.Store, rates pricing.Provider, renderer document.Renderer) *Generator {
	return &Generator{store: st, rates: rates, renderer: renderer}
}

// GenerateByID generates a document for a persisted lead. Final mode records
// a version snapshot and, for proposals, flags the lead as sent; the
// reconciled lead is written back so both sides of the voice-minute fields
// stay agreed in storage.
func (g *Generator) GenerateByID(ctx context.Context, leadID string, kind document.Kind, mode Mode) (*Output, error) {
	lead, err := g.store.GetLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	return g.generate(ctx, *lead, kind, mode, true)
}

// GenerateForLead generates a document for a caller-supplied lead record
// (the server-side proposal endpoint's path). The same validator and
// reconciler rules run as for persisted leads; nothing is recomputed
// independently. Snapshots are only recorded when the lead is persisted
// (has an id) and mode is final.
func (g *Generator) GenerateForLead(ctx context.Context, lead model.Lead, kind document.Kind, mode Mode) (*Output, error) {
	return g.generate(ctx, lead, kind, mode, lead.ID != "")
}

func (g *Generator) generate(ctx context.Context, lead model.Lead, kind document.Kind, mode Mode, persisted bool) (*Output, error) {
	rates, err := g.rates.Rates(ctx)
	if err != nil {
		// Provider contract says fall back rather than fail; belt and braces.
		rates = pricing.DefaultRates()
	}

	// Order matters: complete first (a missing result set synthesizes from
	// inputs), then reconcile so drifted voice minutes agree before any
	// number reaches a page.
	results := engine.EnsureCompleteResults(lead.ID, lead.CalculatorResults, lead.CalculatorInputs, rates)
	lead.CalculatorResults = &results
	lead = reconcile.Lead(lead)

	content, err := document.BuildContent(kind, lead, *lead.CalculatorResults)
	if err != nil {
		return nil, err
	}

	pdf, err := g.renderer.Render(content)
	if err != nil {
		return nil, eris.Wrapf(err, "generator: render %s for lead %s", kind, lead.ID)
	}

	out := &Output{PDF: pdf, Lead: lead}

	if mode != ModeFinal || !persisted {
		return out, nil
	}

	snapshot := model.GeneratedReport{
		LeadID:            lead.ID,
		ContactName:       lead.Name,
		CompanyName:       lead.CompanyName,
		Email:             lead.Email,
		PhoneNumber:       lead.PhoneNumber,
		CalculatorInputs:  lead.CalculatorInputs,
		CalculatorResults: *lead.CalculatorResults,
		DocumentKind:      string(kind),
	}
	saved, err := g.store.InsertReport(ctx, snapshot)
	if err != nil {
		return nil, eris.Wrapf(err, "generator: snapshot %s for lead %s", kind, lead.ID)
	}
	out.Snapshot = saved

	if kind == document.KindProposal {
		lead.ProposalSent = true
	}
	if err := g.store.UpdateLead(ctx, lead); err != nil {
		// The document already exists; a failed write-back is logged, not fatal.
		zap.L().Error("generator: write back reconciled lead",
			zap.String("lead_id", lead.ID), zap.Error(err))
	}
	out.Lead = lead

	return out, nil
}
