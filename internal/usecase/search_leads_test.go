package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcardo11/leadpilot/internal/entity"
)

func TestSearchLeadsStoresResults(t *testing.T) {
	ctx := context.Background()

	found := []*entity.Lead{
		{ID: "a", Email: "a@example.com", Country: "US"},
		{ID: "b", Email: "b@example.com", Country: "US"},
	}

	mockRepo := new(MockLeadRepository)
	searcher := new(MockSearcher)
	searcher.On("Search", ctx, "US", "Marketing", "1m_10m").Return(found, nil)
	mockRepo.On("Upsert", ctx, found[0]).Return(nil)
	mockRepo.On("Upsert", ctx, found[1]).Return(nil)

	uc := NewSearchLeadsUseCase(mockRepo, searcher)
	out, err := uc.Execute(ctx, SearchLeadsInput{Country: "US", Industry: "Marketing", Revenue: "1m_10m"})

	assert.NoError(t, err)
	assert.Equal(t, 2, out.Stored)
	assert.Equal(t, 0, out.Failed)
	assert.Equal(t, []string{"a", "b"}, out.IDs)
}

func TestSearchLeadsPartialStoreFailure(t *testing.T) {
	ctx := context.Background()

	found := []*entity.Lead{
		{ID: "a", Email: "a@example.com"},
		{ID: "b", Email: "b@example.com"},
	}

	mockRepo := new(MockLeadRepository)
	searcher := new(MockSearcher)
	searcher.On("Search", ctx, "US", "", "").Return(found, nil)
	mockRepo.On("Upsert", ctx, found[0]).Return(errors.New("constraint violation"))
	mockRepo.On("Upsert", ctx, found[1]).Return(nil)

	uc := NewSearchLeadsUseCase(mockRepo, searcher)
	out, err := uc.Execute(ctx, SearchLeadsInput{Country: "US"})

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Stored)
	assert.Equal(t, 1, out.Failed)
	assert.Equal(t, []string{"b"}, out.IDs)
}

func TestSearchLeadsEnrichmentFailure(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockLeadRepository)
	searcher := new(MockSearcher)
	searcher.On("Search", ctx, "US", "", "").Return(nil, errors.New("apollo timeout"))

	uc := NewSearchLeadsUseCase(mockRepo, searcher)
	out, err := uc.Execute(ctx, SearchLeadsInput{Country: "US"})

	assert.Nil(t, out)
	assert.True(t, IsTechnicalError(err))
	mockRepo.AssertNotCalled(t, "Upsert")
}
