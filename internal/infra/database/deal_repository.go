package database

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rcardo11/leadpilot/internal/entity"
)

var ErrDealNotFound = errors.New("deal not found")

type DealRepository struct {
	DB *sql.DB
}

func NewDealRepository(db *sql.DB) *DealRepository {
	return &DealRepository{DB: db}
}

func (r *DealRepository) Create(ctx context.Context, deal *entity.Deal) error {
	query := `
		INSERT INTO deals (
			id, lead_id, package, amount, currency, status, processor,
			payment_link_id, url, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`
	_, err := r.DB.ExecContext(ctx, query,
		deal.ID, deal.LeadID, deal.Package, deal.Amount, deal.Currency,
		deal.Status, deal.Processor, deal.PaymentLinkID, deal.URL,
		deal.CreatedAt, deal.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			// FK violation: deal references a lead the store never saw.
			return entity.ErrLeadNotFound
		}
		log.Printf("deal repository: insert failed: %v", err)
		return err
	}
	return nil
}

func (r *DealRepository) FindByID(ctx context.Context, id string) (*entity.Deal, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, lead_id, package, amount, currency, status, processor,
		       payment_link_id, url, created_at, updated_at
		FROM deals WHERE id = $1
	`, id)

	var deal entity.Deal
	err := row.Scan(
		&deal.ID, &deal.LeadID, &deal.Package, &deal.Amount, &deal.Currency,
		&deal.Status, &deal.Processor, &deal.PaymentLinkID, &deal.URL,
		&deal.CreatedAt, &deal.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDealNotFound
	}
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *DealRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE deals SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrDealNotFound
	}
	return nil
}
