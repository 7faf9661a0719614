package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewLead(t *testing.T) {
	lead, err := NewLead("Jane", "Doe", "jane@example.com", "US")

	assert.NoError(t, err)
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, StatusNew, lead.Status)
	assert.Equal(t, StageNotContacted, lead.Stage)
	assert.Equal(t, "Jane Doe", lead.FullName())
}

func TestNewLeadRequiresEmail(t *testing.T) {
	_, err := NewLead("Jane", "Doe", "", "US")
	assert.Error(t, err)
}

func TestFullNameWithoutLastName(t *testing.T) {
	lead := &Lead{FirstName: "Jane"}
	assert.Equal(t, "Jane", lead.FullName())
}

func TestCloseCampaignClearsFollowUp(t *testing.T) {
	next := time.Now().Add(time.Hour)
	lead := &Lead{Stage: StageAwaitingFollowUp, NextFollowUpAt: &next}

	assert.True(t, lead.InActiveCampaign())

	lead.CloseCampaign(StageReplied)

	assert.False(t, lead.InActiveCampaign())
	assert.Equal(t, StageReplied, lead.Stage)
	assert.Nil(t, lead.NextFollowUpAt)
}

func TestFindPackage(t *testing.T) {
	pkg, amount, err := FindPackage("standard", "USD")
	assert.NoError(t, err)
	assert.Equal(t, "standard", pkg.ID)
	assert.Equal(t, int64(250000), amount)

	_, amount, err = FindPackage("standard", "INR")
	assert.NoError(t, err)
	assert.Equal(t, int64(4000000), amount)

	_, _, err = FindPackage("platinum", "USD")
	assert.ErrorIs(t, err, ErrUnknownPackage)
}
