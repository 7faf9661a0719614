package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrLeadNotFound = errors.New("lead not found")

// Lead statuses follow the spreadsheet vocabulary the sales team already uses.
const (
	StatusNew             = "NEW"
	StatusInitialContact  = "INITIAL_CONTACT"
	StatusFollowUp        = "FOLLOW_UP"
	StatusReplied         = "REPLIED"
	StatusCallRequested   = "CALL_REQUESTED"
	StatusPaymentLinkSent = "PAYMENT_LINK_SENT"
	StatusPaymentReceived = "PAYMENT_RECEIVED"
	StatusNoResponse      = "NO_RESPONSE"
	StatusOnboarding      = "ONBOARDING"
)

// Campaign stages. A lead is in an active campaign only while the stage is
// StageAwaitingFollowUp; every other stage means no automatic sends happen.
const (
	StageNotContacted     = "NOT_CONTACTED"
	StageAwaitingFollowUp = "AWAITING_FOLLOW_UP"
	StageReplied          = "REPLIED"
	StageConverted        = "CONVERTED"
	StageExhausted        = "EXHAUSTED"
)

type Lead struct {
	ID               string     `json:"id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name,omitempty"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone,omitempty"`
	LinkedinURL      string     `json:"linkedin_url,omitempty"`
	Title            string     `json:"title,omitempty"`
	Company          string     `json:"company,omitempty"`
	Website          string     `json:"website,omitempty"`
	Industry         string     `json:"industry,omitempty"`
	CompanySize      int        `json:"company_size,omitempty"`
	Country          string     `json:"country"`
	EstimatedRevenue string     `json:"estimated_revenue,omitempty"`
	Source           string     `json:"source,omitempty"`
	Status           string     `json:"status"`
	Stage            string     `json:"stage"`
	FollowUpCount    int        `json:"follow_up_count"`
	LastContactAt    *time.Time `json:"last_contact_at,omitempty"`
	NextFollowUpAt   *time.Time `json:"next_follow_up_at,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// NewLead assigns the stable id the rest of the pipeline keys on. Leads are
// never deleted afterwards, only moved through statuses.
func NewLead(firstName, lastName, email, country string) (*Lead, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}
	return &Lead{
		ID:        uuid.New().String(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Country:   country,
		Status:    StatusNew,
		Stage:     StageNotContacted,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

// InActiveCampaign reports whether the follow-up tick still owns this lead.
func (l *Lead) InActiveCampaign() bool {
	return l.Stage == StageAwaitingFollowUp
}

// CloseCampaign takes the lead out of follow-up tracking. Safe to call on a
// lead that was never in a campaign.
func (l *Lead) CloseCampaign(stage string) {
	l.Stage = stage
	l.NextFollowUpAt = nil
}

func (l *Lead) FullName() string {
	if l.LastName == "" {
		return l.FirstName
	}
	return l.FirstName + " " + l.LastName
}
