package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rcardo11/leadpilot/internal/entity"
	"github.com/rcardo11/leadpilot/internal/region"
)

// Funnel thresholds. Strictly below triggers a suggestion; at or above
// stays quiet.
const (
	conversionRateFloor  = 5.0
	replyRateFloor       = 10.0
	callRateFloor        = 5.0
	linkConversionFloor  = 30.0
	regionGapCeiling     = 10.0
	regionLeadVolumeMin  = 20
)

// AnalyticsUseCase is pure read-side reporting over the current lead
// snapshot. It changes nothing and is safe to call on any schedule.
type AnalyticsUseCase struct {
	Leads LeadRepositoryInterface
}

func NewAnalyticsUseCase(leads LeadRepositoryInterface) *AnalyticsUseCase {
	return &AnalyticsUseCase{Leads: leads}
}

type RegionStats struct {
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"by_status"`
	ReplyRate      float64        `json:"reply_rate"`
	CallRate       float64        `json:"call_rate"`
	PaymentRate    float64        `json:"payment_rate"`
	ConversionRate float64        `json:"conversion_rate"`
}

type OverallStats struct {
	TotalLeads     int     `json:"total_leads"`
	ReplyRate      float64 `json:"reply_rate"`
	CallRate       float64 `json:"call_rate"`
	PaymentRate    float64 `json:"payment_rate"`
	ConversionRate float64 `json:"conversion_rate"`
	USShare        float64 `json:"us_percentage"`
	IndiaShare     float64 `json:"india_percentage"`
}

type Suggestion struct {
	Priority string `json:"priority"` // high / medium / low
	Area     string `json:"area"`
	Text     string `json:"suggestion"`
}

type AnalyticsReport struct {
	US          *RegionStats `json:"us_leads"`
	India       *RegionStats `json:"india_leads"`
	Overall     OverallStats `json:"overall"`
	Suggestions []Suggestion `json:"suggestions"`
	GeneratedAt time.Time    `json:"generated_at"`
}

func (uc *AnalyticsUseCase) Execute(ctx context.Context) (*AnalyticsReport, error) {
	leads, err := uc.Leads.List(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to list leads: " + err.Error()}
	}

	us := newRegionStats()
	india := newRegionStats()

	for _, lead := range leads {
		bucket := us
		if region.Resolve(lead.Country).TemplateSet == "india" {
			bucket = india
		}
		bucket.Total++
		bucket.ByStatus[lead.Status]++
	}

	us.computeRates()
	india.computeRates()

	total := us.Total + india.Total
	overall := OverallStats{
		TotalLeads:     total,
		ReplyRate:      percentage(us.replied()+india.replied(), total),
		CallRate:       percentage(us.calls()+india.calls(), total),
		PaymentRate:    percentage(us.paymentsSent()+india.paymentsSent(), total),
		ConversionRate: percentage(us.conversions()+india.conversions(), total),
		USShare:        percentage(us.Total, total),
		IndiaShare:     percentage(india.Total, total),
	}

	report := &AnalyticsReport{
		US:          us,
		India:       india,
		Overall:     overall,
		GeneratedAt: time.Now(),
	}
	report.Suggestions = suggest(us, india, overall)
	return report, nil
}

func newRegionStats() *RegionStats {
	return &RegionStats{ByStatus: make(map[string]int)}
}

func (s *RegionStats) replied() int {
	return s.ByStatus[entity.StatusReplied] + s.ByStatus[entity.StatusCallRequested]
}

func (s *RegionStats) calls() int {
	return s.ByStatus[entity.StatusCallRequested]
}

func (s *RegionStats) paymentsSent() int {
	return s.ByStatus[entity.StatusPaymentLinkSent] + s.ByStatus[entity.StatusPaymentReceived]
}

func (s *RegionStats) conversions() int {
	return s.ByStatus[entity.StatusPaymentReceived] + s.ByStatus[entity.StatusOnboarding]
}

func (s *RegionStats) computeRates() {
	s.ReplyRate = percentage(s.replied(), s.Total)
	s.CallRate = percentage(s.calls(), s.Total)
	s.PaymentRate = percentage(s.paymentsSent(), s.Total)
	s.ConversionRate = percentage(s.conversions(), s.Total)
}

// percentage is part/total as a percent, two decimals, 0 for an empty total.
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}

func suggest(us, india *RegionStats, overall OverallStats) []Suggestion {
	var out []Suggestion

	if overall.ConversionRate < conversionRateFloor {
		out = append(out, Suggestion{
			Priority: "high",
			Area:     "Conversion",
			Text:     "Your overall conversion rate is below 5%. Consider revising your entire funnel, starting with initial outreach messaging and call process.",
		})
	}

	gap := math.Abs(us.ConversionRate - india.ConversionRate)
	if gap > regionGapCeiling {
		better, worse := "US", "India"
		if india.ConversionRate > us.ConversionRate {
			better, worse = "India", "US"
		}
		out = append(out, Suggestion{
			Priority: "medium",
			Area:     "Regional Performance",
			Text:     fmt.Sprintf("%s leads are converting %.2f%% better than %s leads. Review messaging and pricing strategy for %s.", better, gap, worse, worse),
		})
	}

	if overall.ReplyRate < replyRateFloor {
		out = append(out, Suggestion{
			Priority: "high",
			Area:     "Email Engagement",
			Text:     "Your email reply rate is below 10%. Test new subject lines and email content to increase engagement.",
		})
	}

	if overall.CallRate < callRateFloor {
		out = append(out, Suggestion{
			Priority: "medium",
			Area:     "Call Booking",
			Text:     "Your call booking rate is low. Consider making it easier to book calls or offer incentives for scheduling.",
		})
	}

	linksSent := us.ByStatus[entity.StatusPaymentLinkSent] + india.ByStatus[entity.StatusPaymentLinkSent]
	linksPaid := us.ByStatus[entity.StatusPaymentReceived] + india.ByStatus[entity.StatusPaymentReceived]
	if linksSent > 0 {
		linkConversion := percentage(linksPaid, linksSent+linksPaid)
		if linkConversion < linkConversionFloor {
			out = append(out, Suggestion{
				Priority: "high",
				Area:     "Payment Process",
				Text:     fmt.Sprintf("Only %.2f%% of payment links are converting. Consider offering payment plans, different payment methods, or follow up personally after sending payment links.", linkConversion),
			})
		}
	}

	if us.Total < regionLeadVolumeMin {
		out = append(out, Suggestion{
			Priority: "medium",
			Area:     "Lead Volume - US",
			Text:     "You have fewer than 20 US leads. Increase your lead generation efforts for this market.",
		})
	}
	if india.Total < regionLeadVolumeMin {
		out = append(out, Suggestion{
			Priority: "medium",
			Area:     "Lead Volume - India",
			Text:     "You have fewer than 20 India leads. Increase your lead generation efforts for this market.",
		})
	}

	return out
}
