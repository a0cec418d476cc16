package database

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Mode string

const (
	ModeRenter Mode = "renter"
	ModeBuyer  Mode = "buyer"
	ModeOwner  Mode = "owner"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeRenter, ModeBuyer, ModeOwner:
		return true
	}
	return false
}

type Profile struct {
	Id                 uuid.UUID
	UserId             uuid.UUID
	FullName           string
	IsRenter           bool
	IsBuyer            bool
	IsOwner            bool
	IsAdvocate         bool
	CurrentMode        Mode
	AnnualIncome       *float64
	LocationCity       string
	LocationState      string
	LocationZip        string
	SavedSearches      json.RawMessage
	EmailNotifications bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type CreateProfileParams struct {
	UserId   uuid.UUID
	FullName string
}

// UpdateProfileParams is a partial update; nil fields are left unchanged.
type UpdateProfileParams struct {
	FullName           *string
	IsRenter           *bool
	IsBuyer            *bool
	IsOwner            *bool
	IsAdvocate         *bool
	CurrentMode        *Mode
	AnnualIncome       *float64
	LocationCity       *string
	LocationState      *string
	LocationZip        *string
	SavedSearches      json.RawMessage
	EmailNotifications *bool
}

func (p UpdateProfileParams) Empty() bool {
	return p.FullName == nil && p.IsRenter == nil && p.IsBuyer == nil && p.IsOwner == nil &&
		p.IsAdvocate == nil && p.CurrentMode == nil && p.AnnualIncome == nil && p.LocationCity == nil &&
		p.LocationState == nil && p.LocationZip == nil && p.SavedSearches == nil && p.EmailNotifications == nil
}

type RenterData struct {
	UserId          uuid.UUID
	CurrentRent     *float64
	LeaseEndDate    *time.Time
	LandlordName    string
	PropertyAddress string
	UpdatedAt       time.Time
}

type BuyerData struct {
	UserId             uuid.UUID
	DownPaymentSaved   *float64
	CreditScore        *int
	DebtAmount         *float64
	TargetPurchaseDate *time.Time
	UpdatedAt          time.Time
}

type RentCalculation struct {
	Id                 uuid.UUID
	UserId             uuid.UUID
	AnnualIncome       float64
	MonthlyRent        float64
	Utilities          float64
	LocationCity       string
	LocationState      string
	BurdenPercentage   float64
	RecommendedRent    float64
	MonthlyOverpayment float64
	AnnualOverpayment  float64
	AIAnalysis         string
	CreatedAt          time.Time
}

type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatHistory struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	State     string
	Messages  []ChatMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Campaign struct {
	Id             uuid.UUID
	ExternalId     string
	CreatorId      uuid.UUID
	Title          string
	Description    string
	LocationCity   string
	LocationState  string
	LocationZip    string
	GoalSignatures int
	Status         string
	SignatureCount int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CreateCampaignParams struct {
	ExternalId     string
	CreatorId      uuid.UUID
	Title          string
	Description    string
	LocationCity   string
	LocationState  string
	LocationZip    string
	GoalSignatures int
}

type CampaignFilter struct {
	City   string
	State  string
	Status string
}

type Signature struct {
	Id          uuid.UUID
	CampaignId  uuid.UUID
	UserId      uuid.UUID
	IsAnonymous bool
	FullName    string
	CreatedAt   time.Time
}

type CreateSignatureParams struct {
	CampaignId  uuid.UUID
	UserId      uuid.UUID
	IsAnonymous bool
	FullName    string
}
