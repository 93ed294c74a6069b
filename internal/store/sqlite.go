package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/model"
	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/pricing"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = eris.New("store: not found")

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS leads (
	id                 TEXT PRIMARY KEY,
	name               TEXT NOT NULL,
	company_name       TEXT NOT NULL DEFAULT '',
	email              TEXT NOT NULL DEFAULT '',
	phone_number       TEXT NOT NULL DEFAULT '',
	website            TEXT NOT NULL DEFAULT '',
	industry           TEXT NOT NULL DEFAULT '',
	employee_count     INTEGER NOT NULL DEFAULT 0,
	calculator_inputs  TEXT NOT NULL DEFAULT '{}',
	calculator_results TEXT,
	form_completed     INTEGER NOT NULL DEFAULT 0,
	proposal_sent      INTEGER NOT NULL DEFAULT 0,
	created_at         DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at         DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS pricing_config (
	tier                   TEXT PRIMARY KEY,
	voice_per_minute       REAL NOT NULL DEFAULT 0,
	chatbot_base_price     REAL NOT NULL DEFAULT 0,
	chatbot_per_message    REAL NOT NULL DEFAULT 0,
	setup_fee              REAL NOT NULL DEFAULT 0,
	annual_price           REAL NOT NULL DEFAULT 0,
	included_voice_minutes INTEGER NOT NULL DEFAULT 0,
	updated_at             DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS generated_reports (
	id                 TEXT PRIMARY KEY,
	lead_id            TEXT NOT NULL REFERENCES leads(id),
	version            INTEGER NOT NULL,
	contact_name       TEXT NOT NULL DEFAULT '',
	company_name       TEXT NOT NULL DEFAULT '',
	email              TEXT NOT NULL DEFAULT '',
	phone_number       TEXT NOT NULL DEFAULT '',
	calculator_inputs  TEXT NOT NULL DEFAULT '{}',
	calculator_results TEXT NOT NULL DEFAULT '{}',
	document_kind      TEXT NOT NULL,
	created_at         DATETIME NOT NULL DEFAULT (datetime('now')),
	UNIQUE (lead_id, version)
);

CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at);
CREATE INDEX IF NOT EXISTS idx_leads_email ON leads(email);
CREATE INDEX IF NOT EXISTS idx_generated_reports_lead_id ON generated_reports(lead_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) InsertLead(ctx context.Context, lead model.Lead) (*model.Lead, error) {
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

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO leads (id, name, company_name, email, phone_number, website, industry, employee_count,
			calculator_inputs, calculator_results, form_completed, proposal_sent, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lead.ID, lead.Name, lead.CompanyName, lead.Email, lead.PhoneNumber, lead.Website,
		lead.Industry, lead.EmployeeCount, inputsJSON, resultsJSON,
		boolToInt(lead.FormCompleted), boolToInt(lead.ProposalSent), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert lead")
	}
	return &lead, nil
}

func (s *SQLiteStore) UpdateLead(ctx context.Context, lead model.Lead) error {
	lead.UpdatedAt = time.Now().UTC()

	inputsJSON, resultsJSON, err := marshalCalculator(lead)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE leads SET name = ?, company_name = ?, email = ?, phone_number = ?, website = ?,
			industry = ?, employee_count = ?, calculator_inputs = ?, calculator_results = ?,
			form_completed = ?, proposal_sent = ?, updated_at = ?
		 WHERE id = ?`,
		lead.Name, lead.CompanyName, lead.Email, lead.PhoneNumber, lead.Website,
		lead.Industry, lead.EmployeeCount, inputsJSON, resultsJSON,
		boolToInt(lead.FormCompleted), boolToInt(lead.ProposalSent), lead.UpdatedAt, lead.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update lead %s", lead.ID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "lead %s", lead.ID)
	}
	return nil
}

func (s *SQLiteStore) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, company_name, email, phone_number, website, industry, employee_count,
			calculator_inputs, calculator_results, form_completed, proposal_sent, created_at, updated_at
		 FROM leads WHERE id = ?`, id)

	lead, err := scanLead(row)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, eris.Wrapf(ErrNotFound, "lead %s", id)
		}
		return nil, eris.Wrapf(err, "sqlite: get lead %s", id)
	}
	return lead, nil
}

func (s *SQLiteStore) ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, company_name, email, phone_number, website, industry, employee_count,
			calculator_inputs, calculator_results, form_completed, proposal_sent, created_at, updated_at
		 FROM leads ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		limit, filter.Offset)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan lead")
		}
		leads = append(leads, *lead)
	}
	return leads, eris.Wrap(rows.Err(), "sqlite: list leads rows")
}

func (s *SQLiteStore) ListPricing(ctx context.Context) ([]pricing.ConfigRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tier, voice_per_minute, chatbot_base_price, chatbot_per_message, setup_fee,
			annual_price, included_voice_minutes
		 FROM pricing_config ORDER BY tier`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list pricing")
	}
	defer rows.Close()

	var out []pricing.ConfigRow
	for rows.Next() {
		var r pricing.ConfigRow
		if err := rows.Scan(&r.Tier, &r.VoicePerMinute, &r.ChatbotBasePrice, &r.ChatbotPerMessage,
			&r.SetupFee, &r.AnnualPrice, &r.IncludedVoiceMinutes); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan pricing row")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list pricing rows")
}

func (s *SQLiteStore) UpsertPricing(ctx context.Context, row pricing.ConfigRow) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pricing_config (tier, voice_per_minute, chatbot_base_price, chatbot_per_message,
			setup_fee, annual_price, included_voice_minutes, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (tier) DO UPDATE SET
			voice_per_minute = excluded.voice_per_minute,
			chatbot_base_price = excluded.chatbot_base_price,
			chatbot_per_message = excluded.chatbot_per_message,
			setup_fee = excluded.setup_fee,
			annual_price = excluded.annual_price,
			included_voice_minutes = excluded.included_voice_minutes,
			updated_at = excluded.updated_at`,
		string(row.Tier), row.VoicePerMinute, row.ChatbotBasePrice, row.ChatbotPerMessage,
		row.SetupFee, row.AnnualPrice, row.IncludedVoiceMinutes, time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: upsert pricing %s", row.Tier)
}

func (s *SQLiteStore) InsertReport(ctx context.Context, rep model.GeneratedReport) (*model.GeneratedReport, error) {
	if rep.ID == "" {
		rep.ID = uuid.New().String()
	}
	rep.CreatedAt = time.Now().UTC()

	var maxVersion sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(version) FROM generated_reports WHERE lead_id = ?`, rep.LeadID).Scan(&maxVersion)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: next report version for lead %s", rep.LeadID)
	}
	rep.Version = int(maxVersion.Int64) + 1

	inputsJSON, err := json.Marshal(rep.CalculatorInputs)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal report inputs")
	}
	resultsJSON, err := json.Marshal(rep.CalculatorResults)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal report results")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO generated_reports (id, lead_id, version, contact_name, company_name, email,
			phone_number, calculator_inputs, calculator_results, document_kind, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.ID, rep.LeadID, rep.Version, rep.ContactName, rep.CompanyName, rep.Email,
		rep.PhoneNumber, string(inputsJSON), string(resultsJSON), rep.DocumentKind, rep.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert report")
	}
	return &rep, nil
}

func (s *SQLiteStore) ListReports(ctx context.Context, leadID string) ([]model.GeneratedReport, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, lead_id, version, contact_name, company_name, email, phone_number,
			calculator_inputs, calculator_results, document_kind, created_at
		 FROM generated_reports WHERE lead_id = ? ORDER BY version DESC`, leadID)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list reports for lead %s", leadID)
	}
	defer rows.Close()

	var out []model.GeneratedReport
	for rows.Next() {
		var rep model.GeneratedReport
		var inputsJSON, resultsJSON string
		if err := rows.Scan(&rep.ID, &rep.LeadID, &rep.Version, &rep.ContactName, &rep.CompanyName,
			&rep.Email, &rep.PhoneNumber, &inputsJSON, &resultsJSON, &rep.DocumentKind, &rep.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan report")
		}
		rep.CalculatorInputs = model.DecodeInputs([]byte(inputsJSON))
		if res, ok := model.DecodeResults([]byte(resultsJSON)); ok {
			rep.CalculatorResults = res
		}
		out = append(out, rep)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list reports rows")
}

// rowScanner abstracts *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*model.Lead, error) {
	var lead model.Lead
	var inputsJSON string
	var resultsJSON sql.NullString
	var formCompleted, proposalSent int

	err := row.Scan(&lead.ID, &lead.Name, &lead.CompanyName, &lead.Email, &lead.PhoneNumber,
		&lead.Website, &lead.Industry, &lead.EmployeeCount, &inputsJSON, &resultsJSON,
		&formCompleted, &proposalSent, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return nil, err
	}

	// Persisted blobs may be double-encoded or incomplete; decode defensively.
	lead.CalculatorInputs = model.DecodeInputs([]byte(inputsJSON))
	if resultsJSON.Valid {
		if res, ok := model.DecodeResults([]byte(resultsJSON.String)); ok {
			lead.CalculatorResults = &res
		}
	}
	lead.FormCompleted = formCompleted != 0
	lead.ProposalSent = proposalSent != 0
	return &lead, nil
}

func marshalCalculator(lead model.Lead) (inputsJSON string, resultsJSON *string, err error) {
	in, err := json.Marshal(lead.CalculatorInputs)
	if err != nil {
		return "", nil, eris.Wrap(err, "store: marshal calculator inputs")
	}
	inputsJSON = string(in)

	if lead.CalculatorResults != nil {
		out, err := json.Marshal(lead.CalculatorResults)
		if err != nil {
			return "", nil, eris.Wrap(err, "store: marshal calculator results")
		}
		s := string(out)
		resultsJSON = &s
	}
	return inputsJSON, resultsJSON, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
