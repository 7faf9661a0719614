package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rcardo11/leadpilot/internal/entity"
)

func campaignLead(id string, count int, next time.Time) *entity.Lead {
	return &entity.Lead{
		ID:             id,
		FirstName:      "Jane",
		Email:          "jane@example.com",
		Country:        "US",
		Status:         entity.StatusInitialContact,
		Stage:          entity.StageAwaitingFollowUp,
		FollowUpCount:  count,
		NextFollowUpAt: &next,
	}
}

func newTickUC(repo *MockLeadRepository, d *MockDispatcher) *FollowUpTickUseCase {
	return NewFollowUpTickUseCase(repo,
		Dispatchers{"outlook": d, "gmail": d},
		NewLeadLocker(), "https://calendly.com/test", 3*24*time.Hour, 3)
}

func TestTickSendsDueFollowUp(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2026, 8, 4, 9, 0, 0, 0, time.UTC)

	mockRepo := new(MockLeadRepository)
	dispatcher := new(MockDispatcher)

	lead := campaignLead("lead-1", 0, t0.Add(-time.Hour))
	mockRepo.On("FindDueFollowUps", ctx, t0).Return([]*entity.Lead{lead}, nil)
	mockRepo.On("FindByID", ctx, "lead-1").Return(lead, nil)
	dispatcher.On("Send", ctx, "jane@example.com", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("UpdateCampaign", ctx, mock.Anything, "Follow-up email #1 sent").Return(nil)

	uc := newTickUC(mockRepo, dispatcher)
	result, err := uc.Execute(ctx, t0)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Due)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, lead.FollowUpCount)
	assert.Equal(t, entity.StatusFollowUp, lead.Status)
	assert.Equal(t, t0.Add(3*24*time.Hour), *lead.NextFollowUpAt)
}

func TestTickTwiceSameInstantSendsOnce(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2026, 8, 4, 9, 0, 0, 0, time.UTC)

	mockRepo := new(MockLeadRepository)
	dispatcher := new(MockDispatcher)

	lead := campaignLead("lead-1", 0, t0.Add(-time.Hour))
	// The listing still returns the lead the second time; the re-read under
	// the lock is what catches the already-advanced timer.
	mockRepo.On("FindDueFollowUps", ctx, t0).Return([]*entity.Lead{lead}, nil)
	mockRepo.On("FindByID", ctx, "lead-1").Return(lead, nil)
	dispatcher.On("Send", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("UpdateCampaign", ctx, mock.Anything, mock.Anything).Return(nil)

	uc := newTickUC(mockRepo, dispatcher)

	first, err := uc.Execute(ctx, t0)
	assert.NoError(t, err)
	assert.Equal(t, 1, first.Sent)

	second, err := uc.Execute(ctx, t0)
	assert.NoError(t, err)
	assert.Equal(t, 0, second.Sent)

	dispatcher.AssertNumberOfCalls(t, "Send", 1)
}

func TestTickExhaustsAfterMaxFollowUps(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2026, 8, 13, 9, 0, 0, 0, time.UTC)

	mockRepo := new(MockLeadRepository)
	dispatcher := new(MockDispatcher)

	lead := campaignLead("lead-1", 3, t0.Add(-time.Hour))
	mockRepo.On("FindDueFollowUps", ctx, t0).Return([]*entity.Lead{lead}, nil)
	mockRepo.On("FindByID", ctx, "lead-1").Return(lead, nil)
	mockRepo.On("UpdateCampaign", ctx, mock.Anything, "Completed 3 follow-ups with no response").Return(nil)

	uc := newTickUC(mockRepo, dispatcher)
	result, err := uc.Execute(ctx, t0)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Exhausted)
	assert.Equal(t, entity.StageExhausted, lead.Stage)
	assert.Equal(t, entity.StatusNoResponse, lead.Status)
	assert.Nil(t, lead.NextFollowUpAt)
	dispatcher.AssertNotCalled(t, "Send")
}

// TestTickFullCampaignLifecycle walks one lead through the whole schedule:
// three follow-ups three days apart, then exhaustion on the fourth sweep.
func TestTickFullCampaignLifecycle(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	mockRepo := new(MockLeadRepository)
	dispatcher := new(MockDispatcher)

	lead := campaignLead("lead-1", 0, t0.Add(3*24*time.Hour))
	mockRepo.On("FindDueFollowUps", ctx, mock.Anything).Return([]*entity.Lead{lead}, nil)
	mockRepo.On("FindByID", ctx, "lead-1").Return(lead, nil)
	dispatcher.On("Send", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("UpdateCampaign", ctx, mock.Anything, mock.Anything).Return(nil)

	uc := newTickUC(mockRepo, dispatcher)

	for i, day := range []int{3, 6, 9} {
		now := t0.Add(time.Duration(day) * 24 * time.Hour)
		result, err := uc.Execute(ctx, now)
		assert.NoError(t, err)
		assert.Equal(t, 1, result.Sent, "day %d", day)
		assert.Equal(t, i+1, lead.FollowUpCount, "day %d", day)
	}

	result, err := uc.Execute(ctx, t0.Add(12*24*time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Exhausted)
	assert.Equal(t, entity.StageExhausted, lead.Stage)
	dispatcher.AssertNumberOfCalls(t, "Send", 3)
}

func TestTickSkipsClosedCampaign(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2026, 8, 4, 9, 0, 0, 0, time.UTC)

	mockRepo := new(MockLeadRepository)
	dispatcher := new(MockDispatcher)

	stale := campaignLead("lead-1", 1, t0.Add(-time.Hour))
	replied := campaignLead("lead-1", 1, t0.Add(-time.Hour))
	replied.CloseCampaign(entity.StageReplied)

	// The lead replied between the listing and the lock.
	mockRepo.On("FindDueFollowUps", ctx, t0).Return([]*entity.Lead{stale}, nil)
	mockRepo.On("FindByID", ctx, "lead-1").Return(replied, nil)

	uc := newTickUC(mockRepo, dispatcher)
	result, err := uc.Execute(ctx, t0)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Sent)
	assert.Equal(t, 0, result.Failed)
	dispatcher.AssertNotCalled(t, "Send")
}

func TestTickDispatchFailureRetriesNextSweep(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2026, 8, 4, 9, 0, 0, 0, time.UTC)

	mockRepo := new(MockLeadRepository)
	dispatcher := new(MockDispatcher)

	lead := campaignLead("lead-1", 0, t0.Add(-time.Hour))
	mockRepo.On("FindDueFollowUps", ctx, t0).Return([]*entity.Lead{lead}, nil)
	mockRepo.On("FindByID", ctx, "lead-1").Return(lead, nil)
	dispatcher.On("Send", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	uc := newTickUC(mockRepo, dispatcher)
	result, err := uc.Execute(ctx, t0)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Failed)

	// Nothing advanced, so the next sweep picks it up again.
	assert.Equal(t, 0, lead.FollowUpCount)
	assert.Equal(t, t0.Add(-time.Hour), *lead.NextFollowUpAt)
	mockRepo.AssertNotCalled(t, "UpdateCampaign")
}
