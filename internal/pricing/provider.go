package pricing

import (
	"context"

	"go.uber.org/zap"

	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/model"
)

// Provider supplies a rate snapshot. Every call returns a fresh immutable
// copy; callers must not assume freshness beyond their current call, and no
// provider keeps package-level mutable state.
type Provider interface {
	Rates(ctx context.Context) (Rates, error)
}

// StaticProvider always returns the same table.
type StaticProvider struct {
	table Rates
}

// NewStaticProvider returns a provider over a fixed table. A nil table means
// the hardcoded defaults.
func NewStaticProvider(table Rates) *StaticProvider {
	if table == nil {
		table = DefaultRates()
	}
	return &StaticProvider{table: table}
}

// Rates returns a copy of the fixed table.
func (p *StaticProvider) Rates(context.Context) (Rates, error) {
	return p.table.Clone(), nil
}

// ConfigRow is one persisted pricing configuration row, as stored by the
// admin back office.
type ConfigRow struct {
	Tier                 model.AITier `json:"tier"`
	VoicePerMinute       float64      `json:"voice_per_minute"`
	ChatbotBasePrice     float64      `json:"chatbot_base_price"`
	ChatbotPerMessage    float64      `json:"chatbot_per_message"`
	SetupFee             float64      `json:"setup_fee"`
	AnnualPrice          float64      `json:"annual_price"`
	IncludedVoiceMinutes int          `json:"included_voice_minutes"`
}

// ConfigSource lists persisted pricing configuration rows.
type ConfigSource interface {
	ListPricing(ctx context.Context) ([]ConfigRow, error)
}

// StoreProvider builds rate snapshots from persisted configuration, falling
// back field-by-field to the defaults when rows are missing or incomplete.
// Advertised fields (base price, included minutes, additional-voice rate)
// are pinned to constants regardless of what a row says.
type StoreProvider struct {
	source ConfigSource
}

// NewStoreProvider wraps a configuration source.
func NewStoreProvider(source ConfigSource) *StoreProvider {
	return &StoreProvider{source: source}
}

// Rates returns a snapshot merged from storage over the defaults. Source
// failure is not an error to the calculation path: it logs and falls back to
// the full default table.
func (p *StoreProvider) Rates(ctx context.Context) (Rates, error) {
	rates := DefaultRates()

	rows, err := p.source.ListPricing(ctx)
	if err != nil {
		zap.L().Warn("pricing: config source unavailable, using defaults", zap.Error(err))
		return rates, nil
	}

	for _, row := range rows {
		if !row.Tier.Valid() {
			zap.L().Warn("pricing: skipping config row with unknown tier", zap.String("tier", string(row.Tier)))
			continue
		}
		card := rates[row.Tier]
		if row.SetupFee > 0 {
			card.SetupFee = row.SetupFee
		}
		if row.AnnualPrice > 0 {
			card.AnnualPrice = row.AnnualPrice
		}
		if row.ChatbotPerMessage > 0 {
			card.PerMessage = row.ChatbotPerMessage
		}
		rates[row.Tier] = pin(row.Tier, card)
	}

	return rates, nil
}
