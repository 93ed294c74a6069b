package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/document/pdf"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/generator"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/pricing"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/store"
)

// appEnv holds the initialized store, rate provider, and generator the
// serve/leads/report commands share.
type appEnv struct {
	Store     store.Store
	Rates     pricing.Provider
	Generator *generator.Generator
}

// Close releases resources held by the environment.
func (e *appEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initStore opens the configured store backend.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		poolCfg := &store.PoolConfig{MaxConns: cfg.Store.MaxConns, MinConns: cfg.Store.MinConns}
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, poolCfg)
	case "sqlite", "":
		return store.NewSQLite(cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// initRates builds the configured rate provider. A rates file beats the
// store source; with neither, the hardcoded defaults apply.
func initRates(st store.Store) (pricing.Provider, error) {
	if cfg.Pricing.RatesFile != "" {
		rates, err := pricing.LoadRatesFile(cfg.Pricing.RatesFile)
		if err != nil {
			return nil, err
		}
		return pricing.NewStaticProvider(rates), nil
	}
	if cfg.Pricing.Source == "static" {
		return pricing.NewStaticProvider(nil), nil
	}
	return pricing.NewStoreProvider(st), nil
}

// initEnv sets up the store, runs migrations, and wires the generator.
// Callers should defer env.Close().
func initEnv(ctx context.Context) (*appEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	rates, err := initRates(st)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	gen := generator.New(st, rates, pdf.New())

	return &appEnv{Store: st, Rates: rates, Generator: gen}, nil
}
