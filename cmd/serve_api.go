package main

import (
	"encoding/base64"
	"encoding/json"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/document"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/engine"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/generator"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/model"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/pricing"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/store"
)

// api holds the HTTP handler set over the shared environment.
type api struct {
	env *appEnv

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newAPI(env *appEnv) *api {
	return &api{env: env, limiters: make(map[string]*rate.Limiter)}
}

func (a *api) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// rateLimit applies a per-client-IP token bucket to public endpoints.
func (a *api) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}

		a.mu.Lock()
		lim, ok := a.limiters[host]
		if !ok {
			lim = rate.NewLimiter(rate.Limit(cfg.Server.RateLimitRPS), cfg.Server.RateLimitBurst)
			a.limiters[host] = lim
		}
		a.mu.Unlock()

		if !lim.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// calculate runs the validator and engine over posted inputs. Nothing is
// persisted.
func (a *api) calculate(w http.ResponseWriter, r *http.Request) {
	var raw model.CalculatorInputs
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rates := a.currentRates(r)
	in := engine.Validate(raw, rates)
	res := engine.Calculate(in, rates)

	writeJSON(w, http.StatusOK, map[string]any{
		"inputs":  in,
		"results": res,
	})
}

type leadRequest struct {
	Name          string                 `json:"name"`
	CompanyName   string                 `json:"company_name"`
	Email         string                 `json:"email"`
	PhoneNumber   string                 `json:"phone_number"`
	Website       string                 `json:"website"`
	Industry      string                 `json:"industry"`
	EmployeeCount int                    `json:"employee_count"`
	Inputs        model.CalculatorInputs `json:"calculator_inputs"`
	FormCompleted *bool                  `json:"form_completed"`
}

func (a *api) createLead(w http.ResponseWriter, r *http.Request) {
	var req leadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "name and email are required")
		return
	}

	rates := a.currentRates(r)
	in := engine.Validate(req.Inputs, rates)
	res := engine.Calculate(in, rates)

	lead := model.Lead{
		Name:              req.Name,
		CompanyName:       req.CompanyName,
		Email:             req.Email,
		PhoneNumber:       req.PhoneNumber,
		Website:           req.Website,
		Industry:          req.Industry,
		EmployeeCount:     req.EmployeeCount,
		CalculatorInputs:  in,
		CalculatorResults: &res,
		FormCompleted:     req.FormCompleted != nil && *req.FormCompleted,
	}

	saved, err := a.env.Store.InsertLead(r.Context(), lead)
	if err != nil {
		zap.L().Error("create lead", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not save lead")
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (a *api) updateLead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	lead, err := a.env.Store.GetLead(r.Context(), id)
	if err != nil {
		a.leadError(w, err, id)
		return
	}

	var req leadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name != "" {
		lead.Name = req.Name
	}
	if req.CompanyName != "" {
		lead.CompanyName = req.CompanyName
	}
	if req.Email != "" {
		lead.Email = req.Email
	}
	if req.PhoneNumber != "" {
		lead.PhoneNumber = req.PhoneNumber
	}
	if req.Website != "" {
		lead.Website = req.Website
	}
	if req.Industry != "" {
		lead.Industry = req.Industry
	}
	if req.EmployeeCount > 0 {
		lead.EmployeeCount = req.EmployeeCount
	}
	if req.FormCompleted != nil {
		lead.FormCompleted = *req.FormCompleted
	}

	// Admin edits re-validate and re-calculate so the persisted results
	// always match the persisted inputs.
	rates := a.currentRates(r)
	merged := lead.CalculatorInputs
	if req.Inputs != (model.CalculatorInputs{}) {
		merged = req.Inputs
	}
	in := engine.Validate(merged, rates)
	res := engine.Calculate(in, rates)
	lead.CalculatorInputs = in
	lead.CalculatorResults = &res

	if err := a.env.Store.UpdateLead(r.Context(), *lead); err != nil {
		a.leadError(w, err, id)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (a *api) getLead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	lead, err := a.env.Store.GetLead(r.Context(), id)
	if err != nil {
		a.leadError(w, err, id)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (a *api) listLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := a.env.Store.ListLeads(r.Context(), store.LeadFilter{})
	if err != nil {
		zap.L().Error("list leads", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not list leads")
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

type generateRequest struct {
	Mode string      `json:"mode"`
	Lead *model.Lead `json:"lead"`
}

func (a *api) generateProposal(w http.ResponseWriter, r *http.Request) {
	a.generateByID(w, r, document.KindProposal)
}

func (a *api) generateReport(w http.ResponseWriter, r *http.Request) {
	a.generateByID(w, r, document.KindROIReport)
}

func (a *api) generateByID(w http.ResponseWriter, r *http.Request, kind document.Kind) {
	id := chi.URLParam(r, "id")

	var req generateRequest
	_ = json.NewDecoder(r.Body).Decode(&req) // empty body means final mode

	out, err := a.env.Generator.GenerateByID(r.Context(), id, kind, parseMode(req.Mode))
	if err != nil {
		if eris.Is(err, store.ErrNotFound) {
			a.leadError(w, err, id)
			return
		}
		zap.L().Error("generate document", zap.String("lead_id", id), zap.String("kind", string(kind)), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"success": false,
			"error":   "could not generate " + kindLabel(kind),
		})
		return
	}

	a.writeGenerated(w, out)
}

// generateInline serves the standalone proposal endpoint: the caller posts a
// full lead record and gets a PDF back. Missing calculator fields are
// re-derived with the same validator and reconciler rules as every other
// path.
func (a *api) generateInline(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Lead == nil {
		writeError(w, http.StatusBadRequest, "lead is required")
		return
	}

	out, err := a.env.Generator.GenerateForLead(r.Context(), *req.Lead, document.KindProposal, parseMode(req.Mode))
	if err != nil {
		zap.L().Error("generate inline proposal", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"success": false,
			"error":   "could not generate proposal",
		})
		return
	}

	a.writeGenerated(w, out)
}

func (a *api) writeGenerated(w http.ResponseWriter, out *generator.Output) {
	resp := map[string]any{
		"success": true,
		"pdf":     base64.StdEncoding.EncodeToString(out.PDF),
	}
	if out.Snapshot != nil {
		resp["version"] = out.Snapshot.Version
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *api) listReports(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	reports, err := a.env.Store.ListReports(r.Context(), id)
	if err != nil {
		zap.L().Error("list reports", zap.String("lead_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not list reports")
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (a *api) listPricing(w http.ResponseWriter, r *http.Request) {
	rates := a.currentRates(r)
	writeJSON(w, http.StatusOK, rates)
}

func (a *api) upsertPricing(w http.ResponseWriter, r *http.Request) {
	var row pricing.ConfigRow
	if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !row.Tier.Valid() {
		writeError(w, http.StatusBadRequest, "unknown tier")
		return
	}
	if err := a.env.Store.UpsertPricing(r.Context(), row); err != nil {
		zap.L().Error("upsert pricing", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not save pricing")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// currentRates fetches a rate snapshot; provider failures degrade to
// defaults by contract, so this never blocks a request.
func (a *api) currentRates(r *http.Request) pricing.Rates {
	rates, err := a.env.Rates.Rates(r.Context())
	if err != nil {
		return pricing.DefaultRates()
	}
	return rates
}

func (a *api) leadError(w http.ResponseWriter, err error, id string) {
	if eris.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}
	zap.L().Error("lead store", zap.String("lead_id", id), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "store error")
}

func parseMode(s string) generator.Mode {
	if s == string(generator.ModePreview) {
		return generator.ModePreview
	}
	return generator.ModeFinal
}

func kindLabel(kind document.Kind) string {
	if kind == document.KindProposal {
		return "proposal"
	}
	return "report"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
