package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shelterrights/shelterrights-api/internal/database"
)

// Profile is the camelCase view of a user profile.
type Profile struct {
	Id                 uuid.UUID       `json:"id"`
	UserId             uuid.UUID       `json:"userId"`
	FullName           *string         `json:"fullName"`
	IsRenter           bool            `json:"isRenter"`
	IsBuyer            bool            `json:"isBuyer"`
	IsOwner            bool            `json:"isOwner"`
	IsAdvocate         bool            `json:"isAdvocate"`
	CurrentMode        database.Mode   `json:"currentMode"`
	AnnualIncome       *float64        `json:"annualIncome"`
	LocationCity       *string         `json:"locationCity"`
	LocationState      *string         `json:"locationState"`
	LocationZip        *string         `json:"locationZip"`
	SavedSearches      json.RawMessage `json:"savedSearches"`
	EmailNotifications bool            `json:"emailNotifications"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// PlaceholderProfile stands in for a profile that could not be created.
type PlaceholderProfile struct {
	UserId      uuid.UUID     `json:"userId"`
	FullName    string        `json:"fullName"`
	IsRenter    bool          `json:"isRenter"`
	IsBuyer     bool          `json:"isBuyer"`
	IsOwner     bool          `json:"isOwner"`
	CurrentMode database.Mode `json:"currentMode"`
	NeedsSetup  bool          `json:"needsSetup"`
}

type RenterData struct {
	UserId          uuid.UUID  `json:"user_id"`
	CurrentRent     *float64   `json:"current_rent"`
	LeaseEndDate    *time.Time `json:"lease_end_date"`
	LandlordName    string     `json:"landlord_name"`
	PropertyAddress string     `json:"property_address"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type BuyerData struct {
	UserId             uuid.UUID  `json:"user_id"`
	DownPaymentSaved   *float64   `json:"down_payment_saved"`
	CreditScore        *int       `json:"credit_score"`
	DebtAmount         *float64   `json:"debt_amount"`
	TargetPurchaseDate *time.Time `json:"target_purchase_date"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type RentCalculation struct {
	Id                 uuid.UUID `json:"id"`
	UserId             uuid.UUID `json:"user_id"`
	AnnualIncome       float64   `json:"annual_income"`
	MonthlyRent        float64   `json:"monthly_rent"`
	Utilities          float64   `json:"utilities"`
	LocationCity       string    `json:"location_city"`
	LocationState      string    `json:"location_state"`
	BurdenPercentage   float64   `json:"burden_percentage"`
	RecommendedRent    float64   `json:"recommended_rent"`
	MonthlyOverpayment float64   `json:"monthly_overpayment"`
	AnnualOverpayment  float64   `json:"annual_overpayment"`
	AIAnalysis         string    `json:"ai_analysis"`
	CreatedAt          time.Time `json:"created_at"`
}

type ChatHistory struct {
	Id        uuid.UUID              `json:"id"`
	UserId    uuid.UUID              `json:"user_id"`
	State     string                 `json:"state"`
	Messages  []database.ChatMessage `json:"messages"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

type Campaign struct {
	Id             uuid.UUID `json:"id"`
	ExternalId     string    `json:"external_id"`
	CreatorId      uuid.UUID `json:"creator_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	LocationCity   string    `json:"location_city"`
	LocationState  string    `json:"location_state"`
	LocationZip    string    `json:"location_zip"`
	GoalSignatures int       `json:"goal_signatures"`
	Status         string    `json:"status"`
	SignatureCount int       `json:"signature_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Signature struct {
	Id          uuid.UUID `json:"id"`
	CampaignId  uuid.UUID `json:"campaign_id"`
	UserId      uuid.UUID `json:"user_id"`
	IsAnonymous bool      `json:"is_anonymous"`
	FullName    string    `json:"full_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewProfile(p database.Profile) Profile {
	saved := p.SavedSearches
	if len(saved) == 0 {
		saved = json.RawMessage(`{}`)
	}
	mode := p.CurrentMode
	if mode == "" {
		mode = database.ModeRenter
	}

	return Profile{
		Id:                 p.Id,
		UserId:             p.UserId,
		FullName:           nullable(p.FullName),
		IsRenter:           p.IsRenter,
		IsBuyer:            p.IsBuyer,
		IsOwner:            p.IsOwner,
		IsAdvocate:         p.IsAdvocate,
		CurrentMode:        mode,
		AnnualIncome:       p.AnnualIncome,
		LocationCity:       nullable(p.LocationCity),
		LocationState:      nullable(p.LocationState),
		LocationZip:        nullable(p.LocationZip),
		SavedSearches:      saved,
		EmailNotifications: p.EmailNotifications,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func NewPlaceholderProfile(userId uuid.UUID) PlaceholderProfile {
	return PlaceholderProfile{
		UserId:      userId,
		IsRenter:    true,
		IsBuyer:     true,
		IsOwner:     true,
		CurrentMode: database.ModeRenter,
		NeedsSetup:  true,
	}
}

func NewRenterData(d *database.RenterData) *RenterData {
	if d == nil {
		return nil
	}
	return &RenterData{
		UserId:          d.UserId,
		CurrentRent:     d.CurrentRent,
		LeaseEndDate:    d.LeaseEndDate,
		LandlordName:    d.LandlordName,
		PropertyAddress: d.PropertyAddress,
		UpdatedAt:       d.UpdatedAt,
	}
}

func NewBuyerData(d *database.BuyerData) *BuyerData {
	if d == nil {
		return nil
	}
	return &BuyerData{
		UserId:             d.UserId,
		DownPaymentSaved:   d.DownPaymentSaved,
		CreditScore:        d.CreditScore,
		DebtAmount:         d.DebtAmount,
		TargetPurchaseDate: d.TargetPurchaseDate,
		UpdatedAt:          d.UpdatedAt,
	}
}

func NewRentCalculations(calcs []database.RentCalculation) []RentCalculation {
	out := make([]RentCalculation, 0, len(calcs))
	for _, c := range calcs {
		out = append(out, RentCalculation{
			Id:                 c.Id,
			UserId:             c.UserId,
			AnnualIncome:       c.AnnualIncome,
			MonthlyRent:        c.MonthlyRent,
			Utilities:          c.Utilities,
			LocationCity:       c.LocationCity,
			LocationState:      c.LocationState,
			BurdenPercentage:   c.BurdenPercentage,
			RecommendedRent:    c.RecommendedRent,
			MonthlyOverpayment: c.MonthlyOverpayment,
			AnnualOverpayment:  c.AnnualOverpayment,
			AIAnalysis:         c.AIAnalysis,
			CreatedAt:          c.CreatedAt,
		})
	}
	return out
}

func NewChatHistory(hs []database.ChatHistory) []ChatHistory {
	out := make([]ChatHistory, 0, len(hs))
	for _, h := range hs {
		msgs := h.Messages
		if msgs == nil {
			msgs = []database.ChatMessage{}
		}
		out = append(out, ChatHistory{
			Id:        h.Id,
			UserId:    h.UserId,
			State:     h.State,
			Messages:  msgs,
			CreatedAt: h.CreatedAt,
			UpdatedAt: h.UpdatedAt,
		})
	}
	return out
}

func NewCampaign(c database.Campaign) Campaign {
	return Campaign{
		Id:             c.Id,
		ExternalId:     c.ExternalId,
		CreatorId:      c.CreatorId,
		Title:          c.Title,
		Description:    c.Description,
		LocationCity:   c.LocationCity,
		LocationState:  c.LocationState,
		LocationZip:    c.LocationZip,
		GoalSignatures: c.GoalSignatures,
		Status:         c.Status,
		SignatureCount: c.SignatureCount,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func NewCampaigns(cs []database.Campaign) []Campaign {
	out := make([]Campaign, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewCampaign(c))
	}
	return out
}

func NewSignature(s database.Signature) Signature {
	return Signature{
		Id:          s.Id,
		CampaignId:  s.CampaignId,
		UserId:      s.UserId,
		IsAnonymous: s.IsAnonymous,
		FullName:    s.FullName,
		CreatedAt:   s.CreatedAt,
	}
}

// nullable maps the empty string to JSON null.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
