package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockRepository) GetProfile(ctx context.Context, userId uuid.UUID) (Profile, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).(Profile), args.Error(1)
}
func (m *MockRepository) CreateProfile(ctx context.Context, params CreateProfileParams) (Profile, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(Profile), args.Error(1)
}
func (m *MockRepository) UpdateProfile(ctx context.Context, userId uuid.UUID, params UpdateProfileParams) (Profile, error) {
	args := m.Called(ctx, userId, params)
	return args.Get(0).(Profile), args.Error(1)
}
func (m *MockRepository) SetupProfile(ctx context.Context, userId uuid.UUID, params UpdateProfileParams) (Profile, error) {
	args := m.Called(ctx, userId, params)
	return args.Get(0).(Profile), args.Error(1)
}
func (m *MockRepository) GetRenterData(ctx context.Context, userId uuid.UUID) (RenterData, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).(RenterData), args.Error(1)
}
func (m *MockRepository) UpsertRenterData(ctx context.Context, data RenterData) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}
func (m *MockRepository) GetBuyerData(ctx context.Context, userId uuid.UUID) (BuyerData, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).(BuyerData), args.Error(1)
}
func (m *MockRepository) UpsertBuyerData(ctx context.Context, data BuyerData) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}
func (m *MockRepository) CreateRentCalculation(ctx context.Context, calc RentCalculation) (RentCalculation, error) {
	args := m.Called(ctx, calc)
	return args.Get(0).(RentCalculation), args.Error(1)
}
func (m *MockRepository) ListRentCalculations(ctx context.Context, userId uuid.UUID, limit int) ([]RentCalculation, error) {
	args := m.Called(ctx, userId, limit)
	if calcs, ok := args.Get(0).([]RentCalculation); ok {
		return calcs, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockRepository) AppendChatMessages(ctx context.Context, userId uuid.UUID, state string, msgs []ChatMessage) error {
	args := m.Called(ctx, userId, state, msgs)
	return args.Error(0)
}
func (m *MockRepository) ListChatHistory(ctx context.Context, userId uuid.UUID, state string) ([]ChatHistory, error) {
	args := m.Called(ctx, userId, state)
	if history, ok := args.Get(0).([]ChatHistory); ok {
		return history, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockRepository) CreateCampaign(ctx context.Context, params CreateCampaignParams) (Campaign, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(Campaign), args.Error(1)
}
func (m *MockRepository) ListCampaigns(ctx context.Context, filter CampaignFilter) ([]Campaign, error) {
	args := m.Called(ctx, filter)
	if campaigns, ok := args.Get(0).([]Campaign); ok {
		return campaigns, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockRepository) GetCampaign(ctx context.Context, idOrExternalId string) (Campaign, error) {
	args := m.Called(ctx, idOrExternalId)
	return args.Get(0).(Campaign), args.Error(1)
}
func (m *MockRepository) CreateSignature(ctx context.Context, params CreateSignatureParams) (Signature, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(Signature), args.Error(1)
}
