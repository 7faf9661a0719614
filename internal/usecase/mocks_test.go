package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rcardo11/leadpilot/internal/entity"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindDueFollowUps(ctx context.Context, now time.Time) ([]*entity.Lead, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateCampaign(ctx context.Context, lead *entity.Lead, note string) error {
	args := m.Called(ctx, lead, note)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id, status, note string) error {
	args := m.Called(ctx, id, status, note)
	return args.Error(0)
}

// MockDealRepository
type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) Create(ctx context.Context, deal *entity.Deal) error {
	args := m.Called(ctx, deal)
	return args.Error(0)
}

func (m *MockDealRepository) FindByID(ctx context.Context, id string) (*entity.Deal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Deal), args.Error(1)
}

func (m *MockDealRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockDispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateLink(ctx context.Context, input PaymentLinkInput) (PaymentLinkOutput, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(PaymentLinkOutput), args.Error(1)
}

// MockSearcher
type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Search(ctx context.Context, country, industry, revenue string) ([]*entity.Lead, error) {
	args := m.Called(ctx, country, industry, revenue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

// MockProcessedCache
type MockProcessedCache struct {
	mock.Mock
}

func (m *MockProcessedCache) MarkProcessed(ctx context.Context, paymentID string) (bool, error) {
	args := m.Called(ctx, paymentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProcessedCache) Release(ctx context.Context, paymentID string) error {
	args := m.Called(ctx, paymentID)
	return args.Error(0)
}
