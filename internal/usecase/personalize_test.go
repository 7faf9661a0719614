package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcardo11/leadpilot/internal/entity"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "2,500.00", formatPrice(250000, "USD"))
	assert.Equal(t, "3,500.00", formatPrice(350000, "USD"))
	assert.Equal(t, "5,000.00", formatPrice(500000, "USD"))
	assert.Equal(t, "0.50", formatPrice(50, "USD"))

	// INR drops the paise and shows whole rupees.
	assert.Equal(t, "40,000", formatPrice(4000000, "INR"))
	assert.Equal(t, "85,000", formatPrice(8500000, "INR"))
	assert.Equal(t, "1,500,000", formatPrice(150000000, "INR"))
	assert.Equal(t, "999", formatPrice(99900, "INR"))
}

func TestTemplateVarsDefaults(t *testing.T) {
	vars := templateVars(&entity.Lead{Country: "US"}, "https://calendly.com/x")

	assert.Equal(t, "there", vars["first_name"])
	assert.Equal(t, "your business", vars["company"])
	assert.Equal(t, "the United States", vars["country"])
	assert.Equal(t, "https://calendly.com/x", vars["calendly_link"])
}

func TestTemplateVarsIndiaCountry(t *testing.T) {
	lead := &entity.Lead{FirstName: "Arjun", Company: "GrowthLabs", Country: "India"}
	vars := templateVars(lead, "")

	assert.Equal(t, "Arjun", vars["first_name"])
	assert.Equal(t, "India", vars["country"])
}

func TestBusinessType(t *testing.T) {
	assert.Equal(t, "SaaS", businessType(&entity.Lead{Industry: "SaaS"}))
	assert.Equal(t, "digital agency", businessType(&entity.Lead{Company: "Apex Agency"}))
	assert.Equal(t, "coaching business", businessType(&entity.Lead{Title: "Executive Coach"}))
	assert.Equal(t, "consulting business", businessType(&entity.Lead{Title: "Principal Consultant"}))
	assert.Equal(t, "business", businessType(&entity.Lead{Industry: "N/A"}))
	assert.Equal(t, "business", businessType(&entity.Lead{}))
}
