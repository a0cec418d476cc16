package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadySigned = errors.New("campaign already signed")
)

type Repository interface {
	Ping(ctx context.Context) error

	GetProfile(ctx context.Context, userId uuid.UUID) (Profile, error)
	CreateProfile(ctx context.Context, params CreateProfileParams) (Profile, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, params UpdateProfileParams) (Profile, error)
	SetupProfile(ctx context.Context, userId uuid.UUID, params UpdateProfileParams) (Profile, error)

	GetRenterData(ctx context.Context, userId uuid.UUID) (RenterData, error)
	UpsertRenterData(ctx context.Context, data RenterData) error
	GetBuyerData(ctx context.Context, userId uuid.UUID) (BuyerData, error)
	UpsertBuyerData(ctx context.Context, data BuyerData) error

	CreateRentCalculation(ctx context.Context, calc RentCalculation) (RentCalculation, error)
	ListRentCalculations(ctx context.Context, userId uuid.UUID, limit int) ([]RentCalculation, error)

	AppendChatMessages(ctx context.Context, userId uuid.UUID, state string, msgs []ChatMessage) error
	ListChatHistory(ctx context.Context, userId uuid.UUID, state string) ([]ChatHistory, error)

	CreateCampaign(ctx context.Context, params CreateCampaignParams) (Campaign, error)
	ListCampaigns(ctx context.Context, filter CampaignFilter) ([]Campaign, error)
	GetCampaign(ctx context.Context, idOrExternalId string) (Campaign, error)
	CreateSignature(ctx context.Context, params CreateSignatureParams) (Signature, error)
}
