package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/rcardo11/leadpilot/internal/entity"
	"github.com/rcardo11/leadpilot/internal/region"
	"github.com/rcardo11/leadpilot/internal/template"
)

// callKeywords is the heuristic for "this person wants to talk". False
// positives just mean an extra Calendly email, so the set stays loose.
var callKeywords = []string{"call", "meeting", "schedule", "calendly", "available", "time"}

// HandleReplyUseCase processes an inbound email reply. Whatever the reply
// says, the lead leaves follow-up tracking immediately; the only question is
// whether we answer with a call invite or go quiet.
type HandleReplyUseCase struct {
	Leads        LeadRepositoryInterface
	Dispatchers  Dispatchers
	Locks        *LeadLocker
	CalendlyLink string
}

func NewHandleReplyUseCase(
	leads LeadRepositoryInterface,
	dispatchers Dispatchers,
	locks *LeadLocker,
	calendlyLink string,
) *HandleReplyUseCase {
	return &HandleReplyUseCase{
		Leads:        leads,
		Dispatchers:  dispatchers,
		Locks:        locks,
		CalendlyLink: calendlyLink,
	}
}

type ReplyInput struct {
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (uc *HandleReplyUseCase) Execute(ctx context.Context, input ReplyInput) error {
	// First match wins; two leads sharing an address is accepted ambiguity.
	lead, err := uc.Leads.FindByEmail(ctx, input.From)
	if err != nil {
		return entity.ErrLeadNotFound
	}

	unlock := uc.Locks.Lock(lead.ID)
	defer unlock()

	lead, err = uc.Leads.FindByID(ctx, lead.ID)
	if err != nil {
		return entity.ErrLeadNotFound
	}

	// A redelivered webhook finds the campaign already closed; whatever
	// the first delivery sent must not go out again.
	wasActive := lead.InActiveCampaign()
	lead.CloseCampaign(entity.StageReplied)

	if wantsCall(input.Body) {
		if !wasActive {
			log.Printf("reply: campaign for %s already closed, not re-sending invite", lead.Email)
			return nil
		}
		return uc.sendCallInvite(ctx, lead)
	}

	lead.Status = entity.StatusReplied
	note := "Lead replied: " + input.Subject
	if err := uc.Leads.UpdateCampaign(ctx, lead, note); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to record reply: " + err.Error()}
	}
	return nil
}

func (uc *HandleReplyUseCase) sendCallInvite(ctx context.Context, lead *entity.Lead) error {
	policy := region.Resolve(lead.Country)
	msg, err := template.Render(template.StageCallInvite, policy.TemplateSet, templateVars(lead, uc.CalendlyLink))
	if err != nil {
		return &DomainError{Code: "TEMPLATE_NOT_FOUND", Message: err.Error()}
	}

	note := "Lead requested a call, sent Calendly link"
	lead.Status = entity.StatusCallRequested

	dispatcher, ok := uc.Dispatchers[policy.Provider]
	if !ok || dispatcher.Send(ctx, lead.Email, msg.Subject, msg.Body) != nil {
		// The reply itself is still recorded; only the invite failed.
		log.Printf("reply: call invite to %s failed", lead.Email)
		lead.Status = entity.StatusReplied
		note = "Lead requested a call, invite dispatch failed"
	}

	if err := uc.Leads.UpdateCampaign(ctx, lead, note); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to record reply: " + err.Error()}
	}
	return nil
}

func wantsCall(body string) bool {
	lower := strings.ToLower(body)
	for _, kw := range callKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
