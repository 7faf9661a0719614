package usecase

import (
	"context"
	"log"
)

// SearchLeadsUseCase pulls leads from the enrichment API and lands them in
// the store with fresh ids. Discovery is the only way leads enter the
// system besides manual capture.
type SearchLeadsUseCase struct {
	Leads    LeadRepositoryInterface
	Searcher LeadSearcher
}

func NewSearchLeadsUseCase(leads LeadRepositoryInterface, searcher LeadSearcher) *SearchLeadsUseCase {
	return &SearchLeadsUseCase{Leads: leads, Searcher: searcher}
}

type SearchLeadsInput struct {
	Country  string `json:"country"`
	Industry string `json:"industry"`
	Revenue  string `json:"revenue"`
}

type SearchLeadsOutput struct {
	Stored int      `json:"stored"`
	Failed int      `json:"failed"`
	IDs    []string `json:"ids"`
}

func (uc *SearchLeadsUseCase) Execute(ctx context.Context, input SearchLeadsInput) (*SearchLeadsOutput, error) {
	found, err := uc.Searcher.Search(ctx, input.Country, input.Industry, input.Revenue)
	if err != nil {
		return nil, &TechnicalError{Code: "ENRICHMENT_ERROR", Message: "lead search failed: " + err.Error()}
	}

	out := &SearchLeadsOutput{}
	for _, lead := range found {
		if err := uc.Leads.Upsert(ctx, lead); err != nil {
			log.Printf("search leads: upsert %s failed: %v", lead.Email, err)
			out.Failed++
			continue
		}
		out.Stored++
		out.IDs = append(out.IDs, lead.ID)
	}

	return out, nil
}
