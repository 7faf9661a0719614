package usecase

import (
	"strconv"
	"strings"

	"github.com/rcardo11/leadpilot/internal/entity"
	"github.com/rcardo11/leadpilot/internal/region"
)

// templateVars builds the substitution map for a lead. Keys that stay empty
// are simply left out; the template engine keeps unknown tokens verbatim.
func templateVars(lead *entity.Lead, calendlyLink string) map[string]string {
	country := "the United States"
	if region.Resolve(lead.Country).TemplateSet == "india" {
		country = "India"
	}

	firstName := lead.FirstName
	if firstName == "" {
		firstName = "there"
	}
	company := lead.Company
	if company == "" {
		company = "your business"
	}

	return map[string]string{
		"first_name":    firstName,
		"last_name":     lead.LastName,
		"company":       company,
		"business_type": businessType(lead),
		"country":       country,
		"calendly_link": calendlyLink,
	}
}

// businessType guesses a readable descriptor for the template copy. It is a
// heuristic for nicer emails, nothing downstream depends on it.
func businessType(lead *entity.Lead) string {
	industry := strings.TrimSpace(lead.Industry)
	if industry != "" && !strings.EqualFold(industry, "n/a") {
		return industry
	}
	switch {
	case strings.Contains(strings.ToLower(lead.Company), "agency"):
		return "digital agency"
	case strings.Contains(strings.ToLower(lead.Title), "coach"):
		return "coaching business"
	case strings.Contains(strings.ToLower(lead.Title), "consult"):
		return "consulting business"
	default:
		return "business"
	}
}

// formatPrice renders a minor-unit amount the way the region writes prices:
// USD with cents ("2,500.00"), INR as whole rupees ("40,000").
func formatPrice(amount int64, currency string) string {
	whole := amount / 100
	if currency == "INR" {
		return groupThousands(whole)
	}
	cents := amount % 100
	return groupThousands(whole) + "." + pad2(cents)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
