package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shelterrights/shelterrights-api/internal/database"
	"github.com/shelterrights/shelterrights-api/internal/types"
	"go.uber.org/zap"
)

type UpdateProfileRequest struct {
	FullName           *string         `json:"fullName"`
	AnnualIncome       *float64        `json:"annualIncome"`
	LocationCity       *string         `json:"locationCity"`
	LocationState      *string         `json:"locationState"`
	LocationZip        *string         `json:"locationZip"`
	IsRenter           *bool           `json:"isRenter"`
	IsBuyer            *bool           `json:"isBuyer"`
	IsOwner            *bool           `json:"isOwner"`
	IsAdvocate         *bool           `json:"isAdvocate"`
	CurrentMode        *database.Mode  `json:"currentMode"`
	SavedSearches      json.RawMessage `json:"savedSearches"`
	EmailNotifications *bool           `json:"emailNotifications"`
}

func (req UpdateProfileRequest) params() (database.UpdateProfileParams, error) {
	if req.CurrentMode != nil && !req.CurrentMode.Valid() {
		return database.UpdateProfileParams{}, fmt.Errorf("invalid mode %q", *req.CurrentMode)
	}
	if req.AnnualIncome != nil && *req.AnnualIncome < 0 {
		return database.UpdateProfileParams{}, fmt.Errorf("annual income must not be negative")
	}

	saved := req.SavedSearches
	if string(saved) == "null" {
		saved = nil
	}

	return database.UpdateProfileParams{
		FullName:           req.FullName,
		IsRenter:           req.IsRenter,
		IsBuyer:            req.IsBuyer,
		IsOwner:            req.IsOwner,
		IsAdvocate:         req.IsAdvocate,
		CurrentMode:        req.CurrentMode,
		AnnualIncome:       req.AnnualIncome,
		LocationCity:       req.LocationCity,
		LocationState:      req.LocationState,
		LocationZip:        req.LocationZip,
		SavedSearches:      saved,
		EmailNotifications: req.EmailNotifications,
	}, nil
}

type SetupProfileRequest struct {
	FullName      string            `json:"fullName"`
	AnnualIncome  *float64          `json:"annualIncome"`
	LocationCity  string            `json:"locationCity"`
	LocationState string            `json:"locationState"`
	LocationZip   string            `json:"locationZip"`
	IsRenter      *bool             `json:"isRenter"`
	IsBuyer       *bool             `json:"isBuyer"`
	IsOwner       *bool             `json:"isOwner"`
	CurrentMode   database.Mode     `json:"currentMode"`
	RenterData    *RenterDataRecord `json:"renterData"`
	BuyerData     *BuyerDataRecord  `json:"buyerData"`
}

type RenterDataRecord struct {
	CurrentRent     *float64 `json:"current_rent"`
	LeaseEndDate    *Date    `json:"lease_end_date"`
	LandlordName    string   `json:"landlord_name"`
	PropertyAddress string   `json:"property_address"`
}

type BuyerDataRecord struct {
	DownPaymentSaved   *float64 `json:"down_payment_saved"`
	CreditScore        *int     `json:"credit_score"`
	DebtAmount         *float64 `json:"debt_amount"`
	TargetPurchaseDate *Date    `json:"target_purchase_date"`
}

// Date accepts either a calendar date or an RFC 3339 timestamp.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

func (d *Date) timePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

type SwitchModeRequest struct {
	Mode database.Mode `json:"mode"`
}

func (s *App) getProfile(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	res, err := s.profiles.Fetch(r.Context(), userId)
	if err != nil {
		s.writeError(w, NewInternalServerError(err).WithMessage("failed to get profile"))
		return
	}

	switch res.Kind {
	case ProfileFound:
		renter, buyer := s.profiles.RoleData(r.Context(), res.Profile)
		s.writeJson(w, http.StatusOK, map[string]any{
			"profile":    types.NewProfile(res.Profile),
			"renterData": types.NewRenterData(renter),
			"buyerData":  types.NewBuyerData(buyer),
		})
	case ProfileCreated:
		s.writeJson(w, http.StatusOK, map[string]any{
			"profile":    types.NewProfile(res.Profile),
			"renterData": nil,
			"buyerData":  nil,
		})
	case ProfileDegraded:
		s.writeJson(w, http.StatusOK, map[string]any{
			"profile":    types.NewPlaceholderProfile(userId),
			"renterData": nil,
			"buyerData":  nil,
		})
	default:
		s.writeError(w, NewInternalServerError(fmt.Errorf("unexpected profile result %s", res.Kind)))
	}
}

func (s *App) updateProfile(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req UpdateProfileRequest
	if err := decodeJson(r, &req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	params, err := req.params()
	if err != nil {
		errResp := NewBadRequestError().WithMessage(err.Error())
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	profile, err := s.profiles.Upsert(r.Context(), userId, params)
	if err != nil {
		s.writeError(w, NewInternalServerError(err).WithMessage("failed to update profile"))
		return
	}

	s.writeJson(w, http.StatusOK, map[string]any{"profile": types.NewProfile(profile)})
}

func (s *App) setupProfile(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req SetupProfileRequest
	if err := decodeJson(r, &req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	mode := req.CurrentMode
	if mode == "" {
		mode = database.ModeRenter
	}
	if !mode.Valid() {
		errResp := NewBadRequestError().WithMessage("invalid mode")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	isRenter := boolOr(req.IsRenter, true)
	isBuyer := boolOr(req.IsBuyer, true)
	isOwner := boolOr(req.IsOwner, true)
	fullName := strings.TrimSpace(req.FullName)
	params := database.UpdateProfileParams{
		FullName:      &fullName,
		AnnualIncome:  req.AnnualIncome,
		LocationCity:  &req.LocationCity,
		LocationState: &req.LocationState,
		LocationZip:   &req.LocationZip,
		IsRenter:      &isRenter,
		IsBuyer:       &isBuyer,
		IsOwner:       &isOwner,
		CurrentMode:   &mode,
	}

	profile, err := s.db.SetupProfile(r.Context(), userId, params)
	if err != nil {
		s.writeError(w, NewInternalServerError(err).WithMessage("failed to setup profile"))
		return
	}

	if isRenter && req.RenterData != nil {
		err := s.db.UpsertRenterData(r.Context(), database.RenterData{
			UserId:          userId,
			CurrentRent:     req.RenterData.CurrentRent,
			LeaseEndDate:    req.RenterData.LeaseEndDate.timePtr(),
			LandlordName:    req.RenterData.LandlordName,
			PropertyAddress: req.RenterData.PropertyAddress,
		})
		if err != nil {
			s.log.Warn("could not save renter data", zap.String("user_id", userId.String()), zap.Error(err))
		}
	}

	if isBuyer && req.BuyerData != nil {
		err := s.db.UpsertBuyerData(r.Context(), database.BuyerData{
			UserId:             userId,
			DownPaymentSaved:   req.BuyerData.DownPaymentSaved,
			CreditScore:        req.BuyerData.CreditScore,
			DebtAmount:         req.BuyerData.DebtAmount,
			TargetPurchaseDate: req.BuyerData.TargetPurchaseDate.timePtr(),
		})
		if err != nil {
			s.log.Warn("could not save buyer data", zap.String("user_id", userId.String()), zap.Error(err))
		}
	}

	s.writeJson(w, http.StatusOK, map[string]any{
		"success": true,
		"profile": types.NewProfile(profile),
	})
}

func (s *App) switchMode(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req SwitchModeRequest
	if err := decodeJson(r, &req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if !req.Mode.Valid() {
		errResp := NewBadRequestError().WithMessage("invalid mode")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	profile, err := s.profiles.Upsert(r.Context(), userId, database.UpdateProfileParams{CurrentMode: &req.Mode})
	if err != nil {
		s.writeError(w, NewInternalServerError(err).WithMessage("failed to switch mode"))
		return
	}

	s.writeJson(w, http.StatusOK, map[string]any{"profile": types.NewProfile(profile)})
}
