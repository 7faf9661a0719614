// Package region is the single source of truth for country-based routing.
// Email provider, payment processor, currency and template set all come from
// here; no other component is allowed to branch on country itself.
package region

import "strings"

const (
	ProviderOutlook = "outlook"
	ProviderGmail   = "gmail"

	ProcessorStripe   = "stripe"
	ProcessorRazorpay = "razorpay"
)

type Policy struct {
	Provider    string
	Processor   string
	Currency    string
	TemplateSet string
}

var (
	usPolicy = Policy{
		Provider:    ProviderOutlook,
		Processor:   ProcessorStripe,
		Currency:    "USD",
		TemplateSet: "us",
	}
	indiaPolicy = Policy{
		Provider:    ProviderGmail,
		Processor:   ProcessorRazorpay,
		Currency:    "INR",
		TemplateSet: "india",
	}
)

// Resolve maps a lead's country to its routing policy. Anything that is not
// recognizably India falls back to the US policy, including empty input.
func Resolve(country string) Policy {
	c := strings.ToLower(strings.TrimSpace(country))
	if c == "in" || c == "ind" || strings.Contains(c, "india") {
		return indiaPolicy
	}
	return usPolicy
}
