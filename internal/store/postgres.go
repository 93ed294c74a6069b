package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/db"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/model"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/pricing"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool db.Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for the
// hottest store operations.
var preparedStatements = map[string]string{
	"insert_lead": `INSERT INTO leads (id, name, company_name, email, phone_number, website, industry, employee_count, calculator_inputs, calculator_results, form_completed, proposal_sent, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
	"get_lead":    `SELECT id, name, company_name, email, phone_number, website, industry, employee_count, calculator_inputs, calculator_results, form_completed, proposal_sent, created_at, updated_at FROM leads WHERE id = $1`,
	"update_lead": `UPDATE leads SET name = $1, company_name = $2, email = $3, phone_number = $4, website = $5, industry = $6, employee_count = $7, calculator_inputs = $8, calculator_results = $9, form_completed = $10, proposal_sent = $11, updated_at = $12 WHERE id = $13`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS leads (
	id                 TEXT PRIMARY KEY,
	name               TEXT NOT NULL,
	company_name       TEXT NOT NULL DEFAULT '',
	email              TEXT NOT NULL DEFAULT '',
	phone_number       TEXT NOT NULL DEFAULT '',
	website            TEXT NOT NULL DEFAULT '',
	industry           TEXT NOT NULL DEFAULT '',
	employee_count     INTEGER NOT NULL DEFAULT 0,
	calculator_inputs  JSONB NOT NULL DEFAULT '{}',
	calculator_results JSONB,
	form_completed     BOOLEAN NOT NULL DEFAULT FALSE,
	proposal_sent      BOOLEAN NOT NULL DEFAULT FALSE,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS pricing_config (
	tier                   TEXT PRIMARY KEY,
	voice_per_minute       DOUBLE PRECISION NOT NULL DEFAULT 0,
	chatbot_base_price     DOUBLE PRECISION NOT NULL DEFAULT 0,
	chatbot_per_message    DOUBLE PRECISION NOT NULL DEFAULT 0,
	setup_fee              DOUBLE PRECISION NOT NULL DEFAULT 0,
	annual_price           DOUBLE PRECISION NOT NULL DEFAULT 0,
	included_voice_minutes INTEGER NOT NULL DEFAULT 0,
	updated_at             TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS generated_reports (
	id                 TEXT PRIMARY KEY,
	lead_id            TEXT NOT NULL REFERENCES leads(id),
	version            INTEGER NOT NULL,
	contact_name       TEXT NOT NULL DEFAULT '',
	company_name       TEXT NOT NULL DEFAULT '',
	email              TEXT NOT NULL DEFAULT '',
	phone_number       TEXT NOT NULL DEFAULT '',
	calculator_inputs  JSONB NOT NULL DEFAULT '{}',
	calculator_results JSONB NOT NULL DEFAULT '{}',
	document_kind      TEXT NOT NULL,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (lead_id, version)
);

CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at);
CREATE INDEX IF NOT EXISTS idx_leads_email ON leads(email);
CREATE INDEX IF NOT EXISTS idx_generated_reports_lead_id ON generated_reports(lead_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) InsertLead(ctx context.Context, lead model.Lead) (*model.Lead, error) {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	inputsJSON, resultsJSON, err := marshalCalculator(lead)
	if err != nil {
		return nil, err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO leads (id, name, company_name, email, phone_number, website, industry, employee_count,
			calculator_inputs, calculator_results, form_completed, proposal_sent, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		lead.ID, lead.Name, lead.CompanyName, lead.Email, lead.PhoneNumber, lead.Website,
		lead.Industry, lead.EmployeeCount, inputsJSON, resultsJSON,
		lead.FormCompleted, lead.ProposalSent, now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert lead")
	}
	return &lead, nil
}

func (s *PostgresStore) UpdateLead(ctx context.Context, lead model.Lead) error {
	lead.UpdatedAt = time.Now().UTC()

	inputsJSON, resultsJSON, err := marshalCalculator(lead)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE leads SET name = $1, company_name = $2, email = $3, phone_number = $4, website = $5,
			industry = $6, employee_count = $7, calculator_inputs = $8, calculator_results = $9,
			form_completed = $10, proposal_sent = $11, updated_at = $12
		 WHERE id = $13`,
		lead.Name, lead.CompanyName, lead.Email, lead.PhoneNumber, lead.Website,
		lead.Industry, lead.EmployeeCount, inputsJSON, resultsJSON,
		lead.FormCompleted, lead.ProposalSent, lead.UpdatedAt, lead.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update lead %s", lead.ID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "lead %s", lead.ID)
	}
	return nil
}

func (s *PostgresStore) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, company_name, email, phone_number, website, industry, employee_count,
			calculator_inputs, calculator_results, form_completed, proposal_sent, created_at, updated_at
		 FROM leads WHERE id = $1`, id)

	lead, err := scanPgLead(row)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, eris.Wrapf(ErrNotFound, "lead %s", id)
		}
		return nil, eris.Wrapf(err, "postgres: get lead %s", id)
	}
	return lead, nil
}

func (s *PostgresStore) ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, name, company_name, email, phone_number, website, industry, employee_count,
			calculator_inputs, calculator_results, form_completed, proposal_sent, created_at, updated_at
		 FROM leads ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, filter.Offset)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		lead, err := scanPgLead(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan lead")
		}
		leads = append(leads, *lead)
	}
	return leads, eris.Wrap(rows.Err(), "postgres: list leads rows")
}

func (s *PostgresStore) ListPricing(ctx context.Context) ([]pricing.ConfigRow, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT tier, voice_per_minute, chatbot_base_price, chatbot_per_message, setup_fee,
			annual_price, included_voice_minutes
		 FROM pricing_config ORDER BY tier`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list pricing")
	}
	defer rows.Close()

	var out []pricing.ConfigRow
	for rows.Next() {
		var r pricing.ConfigRow
		if err := rows.Scan(&r.Tier, &r.VoicePerMinute, &r.ChatbotBasePrice, &r.ChatbotPerMessage,
			&r.SetupFee, &r.AnnualPrice, &r.IncludedVoiceMinutes); err != nil {
			return nil, eris.Wrap(err, "postgres: scan pricing row")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list pricing rows")
}

func (s *PostgresStore) UpsertPricing(ctx context.Context, row pricing.ConfigRow) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO pricing_config (tier, voice_per_minute, chatbot_base_price, chatbot_per_message,
			setup_fee, annual_price, included_voice_minutes, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (tier) DO UPDATE SET
			voice_per_minute = EXCLUDED.voice_per_minute,
			chatbot_base_price = EXCLUDED.chatbot_base_price,
			chatbot_per_message = EXCLUDED.chatbot_per_message,
			setup_fee = EXCLUDED.setup_fee,
			annual_price = EXCLUDED.annual_price,
			included_voice_minutes = EXCLUDED.included_voice_minutes,
			updated_at = EXCLUDED.updated_at`,
		string(row.Tier), row.VoicePerMinute, row.ChatbotBasePrice, row.ChatbotPerMessage,
		row.SetupFee, row.AnnualPrice, row.IncludedVoiceMinutes, time.Now().UTC(),
	)
	return eris.Wrapf(err, "postgres: upsert pricing %s", row.Tier)
}

func (s *PostgresStore) InsertReport(ctx context.Context, rep model.GeneratedReport) (*model.GeneratedReport, error) {
	if rep.ID == "" {
		rep.ID = uuid.New().String()
	}
	rep.CreatedAt = time.Now().UTC()

	var maxVersion *int
	err := s.pool.QueryRow(ctx,
		`SELECT MAX(version) FROM generated_reports WHERE lead_id = $1`, rep.LeadID).Scan(&maxVersion)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: next report version for lead %s", rep.LeadID)
	}
	rep.Version = 1
	if maxVersion != nil {
		rep.Version = *maxVersion + 1
	}

	inputsJSON, err := json.Marshal(rep.CalculatorInputs)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal report inputs")
	}
	resultsJSON, err := json.Marshal(rep.CalculatorResults)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal report results")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO generated_reports (id, lead_id, version, contact_name, company_name, email,
			phone_number, calculator_inputs, calculator_results, document_kind, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		rep.ID, rep.LeadID, rep.Version, rep.ContactName, rep.CompanyName, rep.Email,
		rep.PhoneNumber, string(inputsJSON), string(resultsJSON), rep.DocumentKind, rep.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert report")
	}
	return &rep, nil
}

func (s *PostgresStore) ListReports(ctx context.Context, leadID string) ([]model.GeneratedReport, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, lead_id, version, contact_name, company_name, email, phone_number,
			calculator_inputs, calculator_results, document_kind, created_at
		 FROM generated_reports WHERE lead_id = $1 ORDER BY version DESC`, leadID)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list reports for lead %s", leadID)
	}
	defer rows.Close()

	var out []model.GeneratedReport
	for rows.Next() {
		var rep model.GeneratedReport
		var inputsJSON, resultsJSON []byte
		if err := rows.Scan(&rep.ID, &rep.LeadID, &rep.Version, &rep.ContactName, &rep.CompanyName,
			&rep.Email, &rep.PhoneNumber, &inputsJSON, &resultsJSON, &rep.DocumentKind, &rep.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan report")
		}
		rep.CalculatorInputs = model.DecodeInputs(inputsJSON)
		if res, ok := model.DecodeResults(resultsJSON); ok {
			rep.CalculatorResults = res
		}
		out = append(out, rep)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list reports rows")
}

// pgScanner abstracts pgx.Row and pgx.Rows.
type pgScanner interface {
	Scan(dest ...any) error
}

func scanPgLead(row pgScanner) (*model.Lead, error) {
	var lead model.Lead
	var inputsJSON []byte
	var resultsJSON []byte

	err := row.Scan(&lead.ID, &lead.Name, &lead.CompanyName, &lead.Email, &lead.PhoneNumber,
		&lead.Website, &lead.Industry, &lead.EmployeeCount, &inputsJSON, &resultsJSON,
		&lead.FormCompleted, &lead.ProposalSent, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return nil, err
	}

	lead.CalculatorInputs = model.DecodeInputs(inputsJSON)
	if len(resultsJSON) > 0 {
		if res, ok := model.DecodeResults(resultsJSON); ok {
			lead.CalculatorResults = &res
		}
	}
	return &lead, nil
}
