package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/rcardo11/leadpilot/internal/entity"
	"github.com/rcardo11/leadpilot/internal/region"
	"github.com/rcardo11/leadpilot/internal/template"
)

// CreatePaymentLinkUseCase mints a payment link for a lead through the
// region's processor, records the pending deal and emails the lead the
// pricing details. Campaign stage is untouched here; only the confirmed
// payment webhook converts a lead.
type CreatePaymentLinkUseCase struct {
	Leads        LeadRepositoryInterface
	Deals        DealRepositoryInterface
	Gateways     Gateways
	Dispatchers  Dispatchers
	Locks        *LeadLocker
	CalendlyLink string
}

func NewCreatePaymentLinkUseCase(
	leads LeadRepositoryInterface,
	deals DealRepositoryInterface,
	gateways Gateways,
	dispatchers Dispatchers,
	locks *LeadLocker,
	calendlyLink string,
) *CreatePaymentLinkUseCase {
	return &CreatePaymentLinkUseCase{
		Leads:        leads,
		Deals:        deals,
		Gateways:     gateways,
		Dispatchers:  dispatchers,
		Locks:        locks,
		CalendlyLink: calendlyLink,
	}
}

type CreatePaymentLinkInput struct {
	LeadID    string `json:"lead_id"`
	PackageID string `json:"package"`
}

type CreatePaymentLinkOutput struct {
	DealID    string `json:"deal_id"`
	URL       string `json:"payment_link"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Processor string `json:"processor"`
}

func (uc *CreatePaymentLinkUseCase) Execute(ctx context.Context, input CreatePaymentLinkInput) (*CreatePaymentLinkOutput, error) {
	unlock := uc.Locks.Lock(input.LeadID)
	defer unlock()

	lead, err := uc.Leads.FindByID(ctx, input.LeadID)
	if err != nil {
		return nil, &DomainError{Code: "LEAD_NOT_FOUND", Message: "lead not found: " + input.LeadID}
	}

	policy := region.Resolve(lead.Country)
	pkg, amount, err := entity.FindPackage(input.PackageID, policy.Currency)
	if err != nil {
		return nil, &DomainError{Code: "UNKNOWN_PACKAGE", Message: "unknown package: " + input.PackageID}
	}

	gateway, ok := uc.Gateways[policy.Processor]
	if !ok {
		return nil, &TechnicalError{Code: "NO_PROCESSOR", Message: "no gateway configured for " + policy.Processor}
	}

	deal := entity.NewDeal(lead.ID, pkg.ID, amount, policy.Currency, policy.Processor)

	link, err := gateway.CreateLink(ctx, PaymentLinkInput{
		Amount:      amount,
		Currency:    policy.Currency,
		Description: "Consulting Services for " + companyOr(lead),
		LeadID:      lead.ID,
		DealID:      deal.ID,
		Name:        lead.FullName(),
		Email:       lead.Email,
		Contact:     lead.Phone,
	})
	if err != nil {
		// Not retried here: the caller decides whether to try again.
		return nil, &DomainError{Code: "PAYMENT_LINK_FAILED", Message: policy.Processor + " refused the link: " + err.Error()}
	}

	deal.PaymentLinkID = link.ID
	deal.URL = link.URL
	if err := uc.Deals.Create(ctx, deal); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to persist deal: " + err.Error()}
	}

	price := formatPrice(amount, policy.Currency)
	lead.Status = entity.StatusPaymentLinkSent
	note := fmt.Sprintf("Created %s payment link: %s for %s", policy.Processor, link.URL, price)
	if err := uc.Leads.UpdateCampaign(ctx, lead, note); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update lead: " + err.Error()}
	}

	uc.sendPricingEmail(ctx, lead, policy, price, link.URL)

	return &CreatePaymentLinkOutput{
		DealID:    deal.ID,
		URL:       link.URL,
		Amount:    amount,
		Currency:  policy.Currency,
		Processor: policy.Processor,
	}, nil
}

// sendPricingEmail is best effort. The link already exists and is recorded
// on the lead, so a send failure only costs us the nudge email.
func (uc *CreatePaymentLinkUseCase) sendPricingEmail(ctx context.Context, lead *entity.Lead, policy region.Policy, price, url string) {
	vars := templateVars(lead, uc.CalendlyLink)
	vars["price"] = price
	vars["payment_link"] = url

	msg, err := template.Render(template.StagePricingInfo, policy.TemplateSet, vars)
	if err != nil {
		log.Printf("payment link: render pricing_info failed: %v", err)
		return
	}

	dispatcher, ok := uc.Dispatchers[policy.Provider]
	if !ok {
		log.Printf("payment link: no dispatcher for provider %s", policy.Provider)
		return
	}
	if err := dispatcher.Send(ctx, lead.Email, msg.Subject, msg.Body); err != nil {
		log.Printf("payment link: pricing email to %s failed: %v", lead.Email, err)
	}
}

func companyOr(lead *entity.Lead) string {
	if lead.Company != "" {
		return lead.Company
	}
	return "Your Business"
}
