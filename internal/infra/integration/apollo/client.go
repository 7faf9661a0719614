// Package apollo finds new leads through the Apollo.io people search.
// Without an API key the client serves a small canned sample so the rest
// of the pipeline can be exercised locally.
package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/rcardo11/leadpilot/internal/entity"
	"github.com/rcardo11/leadpilot/internal/infra/http/middleware"
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Search(ctx context.Context, country, industry, revenue string) ([]*entity.Lead, error) {
	if c.apiKey == "" {
		log.Println("apollo: no API key configured, serving sample leads")
		return sampleLeads(country), nil
	}

	payload := searchRequest{
		APIKey:                   c.apiKey,
		Page:                     1,
		PerPage:                  25,
		PersonTitles:             []string{"CEO", "Founder", "Owner", "Managing Director"},
		QKeywords:                industry,
		OrganizationNumEmployees: employeeRanges(revenue),
	}
	if country != "" {
		payload.PersonLocations = []string{country}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("apollo marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/mixed_people/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		middleware.RecordIntegrationError("apollo")
		return nil, fmt.Errorf("apollo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		middleware.RecordIntegrationError("apollo")
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("apollo rejected (status %d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("apollo decode: %w", err)
	}

	leads := make([]*entity.Lead, 0, len(result.People))
	for _, p := range result.People {
		lead, err := toLead(p, country, industry, revenue)
		if err != nil {
			// People without an email cannot enter the outreach pipeline.
			continue
		}
		leads = append(leads, lead)
	}
	return leads, nil
}

func toLead(p person, country, industry, revenue string) (*entity.Lead, error) {
	if p.Country != "" {
		country = p.Country
	}
	lead, err := entity.NewLead(p.FirstName, p.LastName, p.Email, country)
	if err != nil {
		return nil, err
	}
	lead.Title = p.Title
	lead.LinkedinURL = p.LinkedinURL
	lead.Company = p.Organization.Name
	lead.Website = p.Organization.WebsiteURL
	lead.Industry = firstNonEmpty(p.Organization.Industry, industry)
	lead.CompanySize = p.Organization.EstimatedNumEmployee
	lead.EstimatedRevenue = revenue
	lead.Source = "Apollo.io"
	if len(p.PhoneNumbers) > 0 {
		lead.Phone = p.PhoneNumbers[0].SanitizedNumber
	}
	return lead, nil
}

// employeeRanges approximates a revenue bracket with Apollo's headcount
// filter, which is the closest signal its search exposes.
func employeeRanges(revenue string) []string {
	switch strings.ToLower(strings.TrimSpace(revenue)) {
	case "", "any":
		return nil
	case "under_1m", "<1m":
		return []string{"1,10"}
	case "1m_10m", "1m-10m":
		return []string{"11,50", "51,200"}
	default:
		return []string{"201,500", "501,1000", "1001,5000"}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func sampleLeads(country string) []*entity.Lead {
	type sample struct {
		first, last, email, company, industry string
	}
	var rows []sample
	if strings.Contains(strings.ToLower(country), "india") {
		rows = []sample{
			{"Arjun", "Mehta", "arjun@growthlabs.in", "GrowthLabs", "Marketing Agency"},
			{"Priya", "Sharma", "priya@scaleup.co.in", "ScaleUp Consulting", "Business Consulting"},
		}
	} else {
		rows = []sample{
			{"John", "Carter", "john@apexmedia.com", "Apex Media", "Marketing Agency"},
			{"Sarah", "Lopez", "sarah@brightpath.io", "BrightPath Coaching", "Business Coaching"},
		}
	}

	leads := make([]*entity.Lead, 0, len(rows))
	for _, r := range rows {
		lead, err := entity.NewLead(r.first, r.last, r.email, country)
		if err != nil {
			continue
		}
		lead.Company = r.company
		lead.Industry = r.industry
		lead.Source = "Apollo.io (sample)"
		leads = append(leads, lead)
	}
	return leads
}
