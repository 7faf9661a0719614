package entity

import (
	"time"

	"github.com/google/uuid"
)

// Deal statuses. Only webhook results move a deal out of PENDING; the
// expiration worker sweeps the ones nobody ever paid.
const (
	DealPending   = "PENDING"
	DealCompleted = "COMPLETED"
	DealFailed    = "FAILED"
	DealExpired   = "EXPIRED"
)

type Deal struct {
	ID            string    `json:"id"`
	LeadID        string    `json:"lead_id"`
	Package       string    `json:"package"`
	Amount        int64     `json:"amount"` // minor units (cents / paise)
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	Processor     string    `json:"processor"`
	PaymentLinkID string    `json:"payment_link_id"`
	URL           string    `json:"url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewDeal(leadID, pkg string, amount int64, currency, processor string) *Deal {
	return &Deal{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		Package:   pkg,
		Amount:    amount,
		Currency:  currency,
		Status:    DealPending,
		Processor: processor,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
