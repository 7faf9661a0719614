package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/rcardo11/leadpilot/internal/entity"
	"github.com/rcardo11/leadpilot/internal/region"
	"github.com/rcardo11/leadpilot/internal/template"
)

// FollowUpTickUseCase is the externally triggered sweep over leads whose
// follow-up is due. It is idempotent for a given instant: after a successful
// send the next follow-up moves FollowUpGap into the future, so running the
// tick twice with the same now finds nothing left to do.
type FollowUpTickUseCase struct {
	Leads        LeadRepositoryInterface
	Dispatchers  Dispatchers
	Locks        *LeadLocker
	CalendlyLink string
	FollowUpGap  time.Duration
	MaxFollowUps int
}

func NewFollowUpTickUseCase(
	leads LeadRepositoryInterface,
	dispatchers Dispatchers,
	locks *LeadLocker,
	calendlyLink string,
	followUpGap time.Duration,
	maxFollowUps int,
) *FollowUpTickUseCase {
	return &FollowUpTickUseCase{
		Leads:        leads,
		Dispatchers:  dispatchers,
		Locks:        locks,
		CalendlyLink: calendlyLink,
		FollowUpGap:  followUpGap,
		MaxFollowUps: maxFollowUps,
	}
}

type TickResult struct {
	Due       int `json:"due"`
	Sent      int `json:"sent"`
	Exhausted int `json:"exhausted"`
	Failed    int `json:"failed"`
}

func (uc *FollowUpTickUseCase) Execute(ctx context.Context, now time.Time) (*TickResult, error) {
	due, err := uc.Leads.FindDueFollowUps(ctx, now)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to list due follow-ups: " + err.Error()}
	}

	result := &TickResult{Due: len(due)}

	for _, stale := range due {
		switch uc.tickOne(ctx, stale.ID, now) {
		case tickSent:
			result.Sent++
		case tickExhausted:
			result.Exhausted++
		case tickFailed:
			result.Failed++
		}
	}

	return result, nil
}

type tickOutcome int

const (
	tickSkipped tickOutcome = iota
	tickSent
	tickExhausted
	tickFailed
)

func (uc *FollowUpTickUseCase) tickOne(ctx context.Context, leadID string, now time.Time) tickOutcome {
	unlock := uc.Locks.Lock(leadID)
	defer unlock()

	// Re-read under the lock: a reply or conversion may have closed the
	// campaign between the listing and this point.
	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		log.Printf("tick: lead %s vanished: %v", leadID, err)
		return tickFailed
	}
	if !lead.InActiveCampaign() || lead.NextFollowUpAt == nil || lead.NextFollowUpAt.After(now) {
		return tickSkipped
	}

	if lead.FollowUpCount >= uc.MaxFollowUps {
		lead.CloseCampaign(entity.StageExhausted)
		lead.Status = entity.StatusNoResponse
		note := fmt.Sprintf("Completed %d follow-ups with no response", lead.FollowUpCount)
		if err := uc.Leads.UpdateCampaign(ctx, lead, note); err != nil {
			log.Printf("tick: persist exhausted lead %s failed: %v", leadID, err)
			return tickFailed
		}
		return tickExhausted
	}

	n := lead.FollowUpCount + 1
	policy := region.Resolve(lead.Country)
	msg, err := template.Render(template.FollowUpStage(n), policy.TemplateSet, templateVars(lead, uc.CalendlyLink))
	if err != nil {
		log.Printf("tick: render follow_up_%d failed for lead %s: %v", n, leadID, err)
		return tickFailed
	}

	dispatcher, ok := uc.Dispatchers[policy.Provider]
	if !ok {
		log.Printf("tick: no dispatcher for provider %s", policy.Provider)
		return tickFailed
	}

	if err := dispatcher.Send(ctx, lead.Email, msg.Subject, msg.Body); err != nil {
		// State untouched: the same follow-up is retried on the next tick.
		log.Printf("tick: follow-up #%d to %s failed: %v", n, lead.Email, err)
		return tickFailed
	}

	next := now.Add(uc.FollowUpGap)
	lead.FollowUpCount = n
	lead.Status = entity.StatusFollowUp
	lead.LastContactAt = &now
	lead.NextFollowUpAt = &next

	note := fmt.Sprintf("Follow-up email #%d sent", n)
	if err := uc.Leads.UpdateCampaign(ctx, lead, note); err != nil {
		log.Printf("tick: persist follow-up for lead %s failed: %v", leadID, err)
		return tickFailed
	}

	return tickSent
}
