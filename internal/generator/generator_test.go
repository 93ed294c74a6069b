package generator

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/document"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/model"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/pricing"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/store"
)

// fakeRenderer records the content it was asked to render.
type fakeRenderer struct {
	lastContent document.Content
	err         error
}

func (r *fakeRenderer) Render(c document.Content) ([]byte, error) {
	r.lastContent = c
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

func newTestGenerator(t *testing.T) (*Generator, store.Store, *fakeRenderer) {
	t.Helper()
	st, err := store.NewSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() { st.Close() })

	renderer := &fakeRenderer{}
	g := New(st, pricing.NewStaticProvider(nil), renderer)
	return g, st, renderer
}

func seedLead(t *testing.T, st store.Store) *model.Lead {
	t.Helper()
	lead, err := st.InsertLead(context.Background(), model.Lead{
		Name:        "Dana Smith",
		CompanyName: "Acme Dental",
		Email:       "dana@acmedental.com",
		CalculatorInputs: model.CalculatorInputs{
			AIType:       model.TypeBoth,
			AITier:       model.TierGrowth,
			Role:         model.RoleCustomerService,
			NumEmployees: 1,
			CallVolume:   200,
		},
	})
	require.NoError(t, err)
	return lead
}

func TestGenerateByIDFinalSnapshotsAndWritesBack(t *testing.T) {
	g, st, _ := newTestGenerator(t)
	ctx := context.Background()
	lead := seedLead(t, st)

	out, err := g.GenerateByID(ctx, lead.ID, document.KindProposal, ModeFinal)
	require.NoError(t, err)
	assert.NotEmpty(t, out.PDF)
	require.NotNil(t, out.Snapshot)
	assert.Equal(t, 1, out.Snapshot.Version)
	assert.Equal(t, string(document.KindProposal), out.Snapshot.DocumentKind)
	assert.True(t, out.Lead.ProposalSent)

	// The reconciled lead and the proposal flag reached storage.
	stored, err := st.GetLead(ctx, lead.ID)
	require.NoError(t, err)
	assert.True(t, stored.ProposalSent)
	require.NotNil(t, stored.CalculatorResults)
	assert.Equal(t, 200, stored.CalculatorResults.AdditionalVoiceMinutes)

	reports, err := st.ListReports(ctx, lead.ID)
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestGenerateByIDPreviewLeavesNoTrace(t *testing.T) {
	g, st, _ := newTestGenerator(t)
	ctx := context.Background()
	lead := seedLead(t, st)

	out, err := g.GenerateByID(ctx, lead.ID, document.KindROIReport, ModePreview)
	require.NoError(t, err)
	assert.NotEmpty(t, out.PDF)
	assert.Nil(t, out.Snapshot)

	stored, err := st.GetLead(ctx, lead.ID)
	require.NoError(t, err)
	assert.False(t, stored.ProposalSent)

	reports, err := st.ListReports(ctx, lead.ID)
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestGenerateByIDSynthesizesMissingResults(t *testing.T) {
	g, st, renderer := newTestGenerator(t)
	ctx := context.Background()
	lead := seedLead(t, st) // inserted without results

	out, err := g.GenerateByID(ctx, lead.ID, document.KindROIReport, ModeFinal)
	require.NoError(t, err)

	// The engine computed a full result set before the page was built.
	require.NotNil(t, out.Lead.CalculatorResults)
	assert.Equal(t, 253.0, out.Lead.CalculatorResults.AICostMonthly.Total)
	assert.Equal(t, model.TierGrowth, out.Lead.CalculatorResults.TierKey)
	assert.Equal(t, "Acme Dental", renderer.lastContent.CompanyName)
}

func TestGenerateByIDReconcilesDriftedMinutes(t *testing.T) {
	g, st, _ := newTestGenerator(t)
	ctx := context.Background()
	lead := seedLead(t, st)

	// Drift: results carry stale zero voice figures against inputs of 200.
	lead.CalculatorResults = &model.CalculationResults{
		AICostMonthly:    model.AICostMonthly{Chatbot: 229, Total: 229, SetupFee: 749},
		BasePriceMonthly: 229,
		TierKey:          model.TierGrowth,
		AIType:           model.TypeBoth,
	}
	require.NoError(t, st.UpdateLead(ctx, *lead))

	out, err := g.GenerateByID(ctx, lead.ID, document.KindROIReport, ModeFinal)
	require.NoError(t, err)

	res := out.Lead.CalculatorResults
	require.NotNil(t, res)
	assert.Equal(t, 200, res.AdditionalVoiceMinutes)
	assert.InDelta(t, 24.0, res.AICostMonthly.Voice, 0.001)
	assert.InDelta(t, 253.0, res.AICostMonthly.Total, 0.001)
}

func TestGenerateByIDLeadNotFound(t *testing.T) {
	g, _, _ := newTestGenerator(t)

	_, err := g.GenerateByID(context.Background(), "no-such-lead", document.KindROIReport, ModePreview)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGenerateRenderFailure(t *testing.T) {
	g, st, renderer := newTestGenerator(t)
	ctx := context.Background()
	lead := seedLead(t, st)
	renderer.err = eris.New("render: out of ink")

	_, err := g.GenerateByID(ctx, lead.ID, document.KindProposal, ModeFinal)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render")

	// A failed render records nothing.
	reports, err := st.ListReports(ctx, lead.ID)
	require.NoError(t, err)
	assert.Empty(t, reports)
	stored, err := st.GetLead(ctx, lead.ID)
	require.NoError(t, err)
	assert.False(t, stored.ProposalSent)
}

func TestGenerateForLeadUnpersisted(t *testing.T) {
	g, st, _ := newTestGenerator(t)
	ctx := context.Background()

	lead := model.Lead{
		Name:        "Walk-in Prospect",
		CompanyName: "Fresh Co",
		CalculatorInputs: model.CalculatorInputs{
			AIType: model.TypeChatbot,
			AITier: model.TierStarter,
			Role:   model.RoleCustomerService,
		},
	}

	out, err := g.GenerateForLead(ctx, lead, document.KindProposal, ModeFinal)
	require.NoError(t, err)
	assert.NotEmpty(t, out.PDF)
	// No id means no snapshot even in final mode.
	assert.Nil(t, out.Snapshot)

	leads, err := st.ListLeads(ctx, store.LeadFilter{})
	require.NoError(t, err)
	assert.Empty(t, leads)
}
