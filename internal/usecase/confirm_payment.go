package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/rcardo11/leadpilot/internal/entity"
	"github.com/rcardo11/leadpilot/internal/region"
	"github.com/rcardo11/leadpilot/internal/template"
)

// ConfirmPaymentUseCase finishes the funnel: a processor told us (via
// webhook, through the queue) that a payment went through. The deal is
// completed and the lead converts no matter what stage it was in, which
// also kills any pending follow-up.
type ConfirmPaymentUseCase struct {
	Leads        LeadRepositoryInterface
	Deals        DealRepositoryInterface
	Dispatchers  Dispatchers
	Locks        *LeadLocker
	Processed    ProcessedEventCache
	CalendlyLink string
}

func NewConfirmPaymentUseCase(
	leads LeadRepositoryInterface,
	deals DealRepositoryInterface,
	dispatchers Dispatchers,
	locks *LeadLocker,
	processed ProcessedEventCache,
	calendlyLink string,
) *ConfirmPaymentUseCase {
	return &ConfirmPaymentUseCase{
		Leads:        leads,
		Deals:        deals,
		Dispatchers:  dispatchers,
		Locks:        locks,
		Processed:    processed,
		CalendlyLink: calendlyLink,
	}
}

type ConfirmPaymentInput struct {
	PaymentID string
	LeadID    string
	DealID    string
	Amount    int64
	Currency  string
	Processor string
}

func (uc *ConfirmPaymentUseCase) Execute(ctx context.Context, input ConfirmPaymentInput) error {
	// Processors redeliver webhooks aggressively; the payment id gates the
	// whole transition.
	first, err := uc.Processed.MarkProcessed(ctx, input.PaymentID)
	if err != nil {
		return &TechnicalError{Code: "CACHE_ERROR", Message: "dedup check failed: " + err.Error()}
	}
	if !first {
		log.Printf("confirm payment: %s already processed, skipping", input.PaymentID)
		return nil
	}

	if err := uc.Deals.UpdateStatus(ctx, input.DealID, entity.DealCompleted); err != nil {
		uc.release(ctx, input.PaymentID)
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to complete deal: " + err.Error()}
	}

	unlock := uc.Locks.Lock(input.LeadID)
	defer unlock()

	lead, err := uc.Leads.FindByID(ctx, input.LeadID)
	if err != nil {
		uc.release(ctx, input.PaymentID)
		return &DomainError{Code: "LEAD_NOT_FOUND", Message: "payment for unknown lead: " + input.LeadID}
	}

	lead.CloseCampaign(entity.StageConverted)
	lead.Status = entity.StatusPaymentReceived

	price := formatPrice(input.Amount, input.Currency)
	note := fmt.Sprintf("Received %s payment of %s %s", input.Processor, input.Currency, price)
	if err := uc.Leads.UpdateCampaign(ctx, lead, note); err != nil {
		uc.release(ctx, input.PaymentID)
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to convert lead: " + err.Error()}
	}

	uc.sendOnboarding(ctx, lead)
	return nil
}

// release frees the dedup claim after a failed conversion so the queue
// redelivery is not swallowed as a duplicate.
func (uc *ConfirmPaymentUseCase) release(ctx context.Context, paymentID string) {
	if err := uc.Processed.Release(ctx, paymentID); err != nil {
		log.Printf("confirm payment: release claim for %s failed: %v", paymentID, err)
	}
}

func (uc *ConfirmPaymentUseCase) sendOnboarding(ctx context.Context, lead *entity.Lead) {
	policy := region.Resolve(lead.Country)
	msg, err := template.Render(template.StageOnboarding, policy.TemplateSet, templateVars(lead, uc.CalendlyLink))
	if err != nil {
		log.Printf("confirm payment: render onboarding failed: %v", err)
		return
	}

	dispatcher, ok := uc.Dispatchers[policy.Provider]
	if !ok {
		return
	}
	if err := dispatcher.Send(ctx, lead.Email, msg.Subject, msg.Body); err != nil {
		log.Printf("confirm payment: onboarding email to %s failed: %v", lead.Email, err)
		return
	}

	lead.Status = entity.StatusOnboarding
	if err := uc.Leads.UpdateCampaign(ctx, lead, "Sent onboarding email"); err != nil {
		log.Printf("confirm payment: persist onboarding status failed: %v", err)
	}
}
