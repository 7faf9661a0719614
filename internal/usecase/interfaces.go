package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rcardo11/leadpilot/internal/entity"
)

// LeadRepositoryInterface is the store boundary for leads. The store is the
// source of truth for campaign state; use cases always re-read through it
// after taking the per-lead lock.
type LeadRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*entity.Lead, error)
	// FindByEmail returns the first match. Email is not guaranteed unique,
	// reply matching is best effort.
	FindByEmail(ctx context.Context, email string) (*entity.Lead, error)
	List(ctx context.Context) ([]*entity.Lead, error)
	FindDueFollowUps(ctx context.Context, now time.Time) ([]*entity.Lead, error)
	Upsert(ctx context.Context, lead *entity.Lead) error
	// UpdateCampaign persists status, stage, counters, timestamps and
	// appends the note to the lead's log.
	UpdateCampaign(ctx context.Context, lead *entity.Lead, note string) error
	// UpdateStatus sets the status and appends a note without touching
	// campaign state. Manual edits from the dashboard go through here.
	UpdateStatus(ctx context.Context, id, status, note string) error
}

type DealRepositoryInterface interface {
	Create(ctx context.Context, deal *entity.Deal) error
	FindByID(ctx context.Context, id string) (*entity.Deal, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// MessageDispatcher sends one rendered message. One implementation per
// regional provider; the region policy decides which one a lead gets.
type MessageDispatcher interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Dispatchers maps a provider name from the region policy to its sender.
type Dispatchers map[string]MessageDispatcher

// PaymentLinkInput carries everything a processor needs to mint a link.
// LeadID and DealID travel in the processor metadata and come back on the
// webhook, which is how a payment finds its way home.
type PaymentLinkInput struct {
	Amount      int64
	Currency    string
	Description string
	LeadID      string
	DealID      string
	Name        string
	Email       string
	Contact     string
}

type PaymentLinkOutput struct {
	ID  string
	URL string
}

type PaymentGateway interface {
	CreateLink(ctx context.Context, input PaymentLinkInput) (PaymentLinkOutput, error)
}

// Gateways maps a processor name from the region policy to its client.
type Gateways map[string]PaymentGateway

// PaymentEvent is a processor webhook payload reduced to what the core
// cares about. Kind is EventPaymentSucceeded for the deliveries that
// convert a lead; anything else is logged and dropped at the boundary.
type PaymentEvent struct {
	PaymentID string
	LeadID    string
	DealID    string
	Amount    int64
	Currency  string
	Kind      string
}

const EventPaymentSucceeded = "payment_succeeded"

// ErrUnrecognizedWebhook marks payloads that parse but mean nothing to us.
// Webhook endpoints still answer 200 so the processor stops retrying.
var ErrUnrecognizedWebhook = errors.New("unrecognized webhook payload")

// WebhookParser turns a raw processor payload into a typed event.
type WebhookParser interface {
	VerifySignature(payload []byte, signature string) bool
	ParseWebhook(payload []byte) (*PaymentEvent, error)
}

// LeadSearcher is the enrichment boundary (Apollo).
type LeadSearcher interface {
	Search(ctx context.Context, country, industry, revenue string) ([]*entity.Lead, error)
}

// ProcessedEventCache deduplicates payment webhook deliveries.
// MarkProcessed returns false when the id was already seen. Release undoes
// a claim when the conversion fails after it, so a redelivery can retry
// instead of being swallowed as a duplicate.
type ProcessedEventCache interface {
	MarkProcessed(ctx context.Context, paymentID string) (bool, error)
	Release(ctx context.Context, paymentID string) error
}
