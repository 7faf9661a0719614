package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rcardo11/leadpilot/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, first_name, last_name, email, phone, linkedin_url, title, company,
	website, industry, company_size, country, estimated_revenue, source,
	status, stage, follow_up_count, last_contact_at, next_follow_up_at,
	notes, created_at, updated_at
`

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	return scanLead(row)
}

// FindByEmail returns the oldest lead with this address. Email is not
// unique across time, reply matching is first-match-wins.
func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE lower(email) = lower($1) ORDER BY created_at LIMIT 1`,
		email,
	)
	return scanLead(row)
}

func (r *LeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLeads(rows)
}

func (r *LeadRepository) FindDueFollowUps(ctx context.Context, now time.Time) ([]*entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+leadColumns+` FROM leads
		 WHERE stage = $1 AND next_follow_up_at IS NOT NULL AND next_follow_up_at <= $2
		 ORDER BY next_follow_up_at`,
		entity.StageAwaitingFollowUp, now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLeads(rows)
}

// Upsert inserts a discovered lead, or refreshes the enrichment fields when
// the address is already known. The original id and campaign state survive
// re-discovery; the lead keeps its canonical values on return.
func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (
			id, first_name, last_name, email, phone, linkedin_url, title,
			company, website, industry, company_size, country,
			estimated_revenue, source, status, stage, follow_up_count,
			notes, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,NOW(),NOW())
		ON CONFLICT (email)
		DO UPDATE SET
			first_name = COALESCE(NULLIF(EXCLUDED.first_name, ''), leads.first_name),
			last_name  = COALESCE(NULLIF(EXCLUDED.last_name, ''), leads.last_name),
			phone      = COALESCE(NULLIF(EXCLUDED.phone, ''), leads.phone),
			company    = COALESCE(NULLIF(EXCLUDED.company, ''), leads.company),
			industry   = COALESCE(NULLIF(EXCLUDED.industry, ''), leads.industry),
			updated_at = NOW()
		RETURNING id, status, stage, follow_up_count
	`

	return r.DB.QueryRowContext(ctx, query,
		lead.ID, lead.FirstName, lead.LastName, lead.Email, lead.Phone,
		lead.LinkedinURL, lead.Title, lead.Company, lead.Website,
		lead.Industry, lead.CompanySize, lead.Country, lead.EstimatedRevenue,
		lead.Source, lead.Status, lead.Stage, lead.FollowUpCount, lead.Notes,
	).Scan(&lead.ID, &lead.Status, &lead.Stage, &lead.FollowUpCount)
}

func (r *LeadRepository) UpdateCampaign(ctx context.Context, lead *entity.Lead, note string) error {
	query := `
		UPDATE leads SET
			status = $2,
			stage = $3,
			follow_up_count = $4,
			last_contact_at = $5,
			next_follow_up_at = $6,
			notes = CASE WHEN notes = '' THEN $7 ELSE notes || E'\n' || $7 END,
			updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		lead.ID, lead.Status, lead.Stage, lead.FollowUpCount,
		nullTime(lead.LastContactAt), nullTime(lead.NextFollowUpAt), note,
	)
	if err != nil {
		return err
	}
	return oneRow(res)
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id, status, note string) error {
	query := `
		UPDATE leads SET
			status = $2,
			notes = CASE WHEN notes = '' THEN $3 ELSE notes || E'\n' || $3 END,
			updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, id, status, note)
	if err != nil {
		return err
	}
	return oneRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var lastContact, nextFollowUp sql.NullTime

	err := row.Scan(
		&lead.ID, &lead.FirstName, &lead.LastName, &lead.Email, &lead.Phone,
		&lead.LinkedinURL, &lead.Title, &lead.Company, &lead.Website,
		&lead.Industry, &lead.CompanySize, &lead.Country,
		&lead.EstimatedRevenue, &lead.Source, &lead.Status, &lead.Stage,
		&lead.FollowUpCount, &lastContact, &nextFollowUp, &lead.Notes,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}

	if lastContact.Valid {
		lead.LastContactAt = &lastContact.Time
	}
	if nextFollowUp.Valid {
		lead.NextFollowUpAt = &nextFollowUp.Time
	}
	return &lead, nil
}

func collectLeads(rows *sql.Rows) ([]*entity.Lead, error) {
	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func oneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}
