package usecase

import (
	"context"
	"log"
	"time"

	"github.com/rcardo11/leadpilot/internal/entity"
	"github.com/rcardo11/leadpilot/internal/region"
	"github.com/rcardo11/leadpilot/internal/template"
)

// StartCampaignUseCase sends the initial outreach email to a batch of leads
// and enters each one into follow-up tracking. One dispatch failure never
// aborts the batch; every lead gets its own result entry.
type StartCampaignUseCase struct {
	Leads        LeadRepositoryInterface
	Dispatchers  Dispatchers
	Locks        *LeadLocker
	CalendlyLink string
	FollowUpGap  time.Duration

	now func() time.Time
}

func NewStartCampaignUseCase(
	leads LeadRepositoryInterface,
	dispatchers Dispatchers,
	locks *LeadLocker,
	calendlyLink string,
	followUpGap time.Duration,
) *StartCampaignUseCase {
	return &StartCampaignUseCase{
		Leads:        leads,
		Dispatchers:  dispatchers,
		Locks:        locks,
		CalendlyLink: calendlyLink,
		FollowUpGap:  followUpGap,
		now:          time.Now,
	}
}

type LeadResult struct {
	ID           string     `json:"id"`
	Status       string     `json:"status"` // "Success" / "Failed"
	Reason       string     `json:"reason,omitempty"`
	NextFollowUp *time.Time `json:"next_follow_up,omitempty"`
}

type CampaignResult struct {
	Success int          `json:"success"`
	Failed  int          `json:"failed"`
	Leads   []LeadResult `json:"leads"`
}

func (uc *StartCampaignUseCase) Execute(ctx context.Context, leadIDs []string) (*CampaignResult, error) {
	result := &CampaignResult{}

	for _, id := range leadIDs {
		res := uc.startOne(ctx, id)
		if res.Status == "Success" {
			result.Success++
		} else {
			result.Failed++
		}
		result.Leads = append(result.Leads, res)
	}

	return result, nil
}

func (uc *StartCampaignUseCase) startOne(ctx context.Context, leadID string) LeadResult {
	unlock := uc.Locks.Lock(leadID)
	defer unlock()

	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		log.Printf("start campaign: lead %s not found: %v", leadID, err)
		return LeadResult{ID: leadID, Status: "Failed", Reason: "lead not found"}
	}

	if lead.Email == "" {
		log.Printf("start campaign: lead %s has no email, skipping", leadID)
		return LeadResult{ID: leadID, Status: "Failed", Reason: "no email address"}
	}

	// Initial contact happens once. Re-running the batch with the same ids
	// must not send twice.
	if lead.Stage != entity.StageNotContacted {
		return LeadResult{ID: leadID, Status: "Failed", Reason: "campaign already started"}
	}

	policy := region.Resolve(lead.Country)
	msg, err := template.Render(template.StageInitial, policy.TemplateSet, templateVars(lead, uc.CalendlyLink))
	if err != nil {
		log.Printf("start campaign: render failed for lead %s: %v", leadID, err)
		return LeadResult{ID: leadID, Status: "Failed", Reason: "template error"}
	}

	dispatcher, ok := uc.Dispatchers[policy.Provider]
	if !ok {
		log.Printf("start campaign: no dispatcher for provider %s", policy.Provider)
		return LeadResult{ID: leadID, Status: "Failed", Reason: "no dispatcher for region"}
	}

	if err := dispatcher.Send(ctx, lead.Email, msg.Subject, msg.Body); err != nil {
		// Lead stays NOT_CONTACTED; the caller may retry the whole start.
		log.Printf("start campaign: dispatch to %s failed: %v", lead.Email, err)
		return LeadResult{ID: leadID, Status: "Failed", Reason: "email sending failed"}
	}

	now := uc.now()
	next := now.Add(uc.FollowUpGap)
	lead.Status = entity.StatusInitialContact
	lead.Stage = entity.StageAwaitingFollowUp
	lead.FollowUpCount = 0
	lead.LastContactAt = &now
	lead.NextFollowUpAt = &next

	if err := uc.Leads.UpdateCampaign(ctx, lead, "Initial email sent"); err != nil {
		log.Printf("start campaign: persist failed for lead %s: %v", leadID, err)
		return LeadResult{ID: leadID, Status: "Failed", Reason: "database error"}
	}

	return LeadResult{ID: leadID, Status: "Success", NextFollowUp: &next}
}
