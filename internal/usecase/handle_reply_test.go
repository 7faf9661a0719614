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

func repliedSetup(country string) (*MockLeadRepository, *entity.Lead) {
	next := time.Now().Add(24 * time.Hour)
	lead := &entity.Lead{
		ID:             "lead-1",
		FirstName:      "Jane",
		Email:          "jane@example.com",
		Country:        country,
		Status:         entity.StatusFollowUp,
		Stage:          entity.StageAwaitingFollowUp,
		FollowUpCount:  1,
		NextFollowUpAt: &next,
	}

	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(lead, nil)
	mockRepo.On("FindByID", mock.Anything, "lead-1").Return(lead, nil)
	return mockRepo, lead
}

func TestHandleReplyCallRequest(t *testing.T) {
	ctx := context.Background()

	mockRepo, lead := repliedSetup("US")
	dispatcher := new(MockDispatcher)
	dispatcher.On("Send", ctx, "jane@example.com", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("UpdateCampaign", ctx, mock.Anything, "Lead requested a call, sent Calendly link").Return(nil)

	uc := NewHandleReplyUseCase(mockRepo, Dispatchers{"outlook": dispatcher},
		NewLeadLocker(), "https://calendly.com/test")

	err := uc.Execute(ctx, ReplyInput{
		From:    "jane@example.com",
		Subject: "Re: Quick question",
		Body:    "Sounds interesting, can we schedule a call next week?",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusCallRequested, lead.Status)
	assert.Equal(t, entity.StageReplied, lead.Stage)
	assert.Nil(t, lead.NextFollowUpAt)
	dispatcher.AssertCalled(t, "Send", ctx, "jane@example.com", mock.Anything, mock.Anything)
}

func TestHandleReplyGenericReply(t *testing.T) {
	ctx := context.Background()

	mockRepo, lead := repliedSetup("US")
	dispatcher := new(MockDispatcher)
	mockRepo.On("UpdateCampaign", ctx, mock.Anything, "Lead replied: Re: Quick question").Return(nil)

	uc := NewHandleReplyUseCase(mockRepo, Dispatchers{"outlook": dispatcher},
		NewLeadLocker(), "https://calendly.com/test")

	err := uc.Execute(ctx, ReplyInput{
		From:    "jane@example.com",
		Subject: "Re: Quick question",
		Body:    "Not right now, thanks.",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusReplied, lead.Status)
	assert.Equal(t, entity.StageReplied, lead.Stage)
	assert.Nil(t, lead.NextFollowUpAt)
	dispatcher.AssertNotCalled(t, "Send")
}

func TestHandleReplyRedeliveredCallWebhookSendsOneInvite(t *testing.T) {
	ctx := context.Background()

	mockRepo, lead := repliedSetup("US")
	dispatcher := new(MockDispatcher)
	dispatcher.On("Send", ctx, "jane@example.com", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("UpdateCampaign", ctx, mock.Anything, "Lead requested a call, sent Calendly link").Return(nil)

	uc := NewHandleReplyUseCase(mockRepo, Dispatchers{"outlook": dispatcher},
		NewLeadLocker(), "https://calendly.com/test")

	input := ReplyInput{
		From:    "jane@example.com",
		Subject: "Re: Quick question",
		Body:    "can we schedule a call?",
	}

	assert.NoError(t, uc.Execute(ctx, input))
	assert.NoError(t, uc.Execute(ctx, input))

	// The second delivery finds the campaign closed and stays quiet.
	dispatcher.AssertNumberOfCalls(t, "Send", 1)
	mockRepo.AssertNumberOfCalls(t, "UpdateCampaign", 1)
	assert.Equal(t, entity.StatusCallRequested, lead.Status)
}

func TestHandleReplyUnknownSender(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindByEmail", ctx, "stranger@example.com").Return(nil, entity.ErrLeadNotFound)

	uc := NewHandleReplyUseCase(mockRepo, Dispatchers{},
		NewLeadLocker(), "https://calendly.com/test")

	err := uc.Execute(ctx, ReplyInput{From: "stranger@example.com", Subject: "hi", Body: "hi"})

	assert.ErrorIs(t, err, entity.ErrLeadNotFound)
	mockRepo.AssertNotCalled(t, "UpdateCampaign")
}

func TestHandleReplyInviteDispatchFailureStillRecordsReply(t *testing.T) {
	ctx := context.Background()

	mockRepo, lead := repliedSetup("India")
	dispatcher := new(MockDispatcher)
	dispatcher.On("Send", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	mockRepo.On("UpdateCampaign", ctx, mock.Anything, "Lead requested a call, invite dispatch failed").Return(nil)

	uc := NewHandleReplyUseCase(mockRepo, Dispatchers{"gmail": dispatcher},
		NewLeadLocker(), "https://calendly.com/test")

	err := uc.Execute(ctx, ReplyInput{
		From:    "jane@example.com",
		Subject: "Re: Growth",
		Body:    "I'm available Tuesday for a meeting",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusReplied, lead.Status)
	assert.Equal(t, entity.StageReplied, lead.Stage)
}

func TestWantsCallKeywords(t *testing.T) {
	assert.True(t, wantsCall("Could we jump on a CALL tomorrow?"))
	assert.True(t, wantsCall("here is my calendly"))
	assert.True(t, wantsCall("what time works for you"))
	assert.False(t, wantsCall("please remove me from your list"))
	assert.False(t, wantsCall(""))
}
