package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shelterrights/shelterrights-api/internal/affordability"
	"github.com/shelterrights/shelterrights-api/internal/database"
	"github.com/shelterrights/shelterrights-api/internal/export"
	"github.com/shelterrights/shelterrights-api/internal/genai"
	"github.com/shelterrights/shelterrights-api/internal/stats"
	"github.com/shelterrights/shelterrights-api/internal/types"
	"go.uber.org/zap"
)

const defaultGoalSignatures = 100

type CalculateRentRequest struct {
	AnnualIncome  float64 `json:"annualIncome"`
	MonthlyRent   float64 `json:"monthlyRent"`
	Utilities     float64 `json:"utilities"`
	LocationCity  string  `json:"locationCity"`
	LocationState string  `json:"locationState"`
}

type CalculateRentResponse struct {
	BurdenPercentage   float64 `json:"burdenPercentage"`
	RecommendedRent    float64 `json:"recommendedRent"`
	MonthlyOverpayment float64 `json:"monthlyOverpayment"`
	AnnualOverpayment  float64 `json:"annualOverpayment"`
	MonthlyHousingCost float64 `json:"monthlyHousingCost"`
	AIAnalysis         string  `json:"aiAnalysis"`
	IsHealthy          bool    `json:"isHealthy"`
}

type ChatRequest struct {
	Message string `json:"message"`
	State   string `json:"state"`
}

type CreateCampaignRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	LocationCity   string `json:"locationCity"`
	LocationState  string `json:"locationState"`
	LocationZip    string `json:"locationZip"`
	GoalSignatures int    `json:"goalSignatures"`
}

type SignCampaignRequest struct {
	IsAnonymous bool   `json:"isAnonymous"`
	FullName    string `json:"fullName"`
}

func orUnknown(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func (s *App) calculateRent(w http.ResponseWriter, r *http.Request) {
	var req CalculateRentRequest
	if err := decodeJson(r, &req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.AnnualIncome == 0 || req.MonthlyRent == 0 {
		errResp := NewBadRequestError().WithMessage("income and rent are required")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	res, err := affordability.RentBurden(affordability.RentInput{
		AnnualIncome: req.AnnualIncome,
		MonthlyRent:  req.MonthlyRent,
		Utilities:    req.Utilities,
	})
	if err != nil {
		s.writeError(w, NewValidationError(err))
		return
	}

	analysis := s.advisor.AnalyzeRentBurden(r.Context(), genai.RentFacts{
		Income:           req.AnnualIncome,
		Rent:             req.MonthlyRent,
		Location:         fmt.Sprintf("%s, %s", orUnknown(req.LocationCity, "Unknown City"), orUnknown(req.LocationState, "Unknown State")),
		BurdenPercentage: res.BurdenPercentage,
	})

	if userId, ok := UserId(r.Context()); ok {
		_, err := s.db.CreateRentCalculation(r.Context(), database.RentCalculation{
			UserId:             userId,
			AnnualIncome:       req.AnnualIncome,
			MonthlyRent:        req.MonthlyRent,
			Utilities:          req.Utilities,
			LocationCity:       req.LocationCity,
			LocationState:      req.LocationState,
			BurdenPercentage:   res.BurdenPercentage,
			RecommendedRent:    res.RecommendedRent,
			MonthlyOverpayment: res.MonthlyOverpayment,
			AnnualOverpayment:  res.AnnualOverpayment,
			AIAnalysis:         analysis,
		})
		if err != nil {
			s.log.Warn("failed to save calculation", zap.String("user_id", userId.String()), zap.Error(err))
		}
	}

	s.writeJson(w, http.StatusOK, CalculateRentResponse{
		BurdenPercentage:   affordability.Round(res.BurdenPercentage, 1),
		RecommendedRent:    affordability.Round(res.RecommendedRent, 0),
		MonthlyOverpayment: affordability.Round(res.MonthlyOverpayment, 0),
		AnnualOverpayment:  affordability.Round(res.AnnualOverpayment, 0),
		MonthlyHousingCost: affordability.Round(res.MonthlyHousingCost, 2),
		AIAnalysis:         analysis,
		IsHealthy:          res.IsHealthy,
	})
}

func (s *App) listCalculations(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	calcs, err := s.db.ListRentCalculations(r.Context(), userId, calculationHistoryLimit)
	if err != nil {
		s.writeError(w, NewInternalServerError(err).WithMessage("failed to get history"))
		return
	}

	s.writeJson(w, http.StatusOK, map[string]any{"calculations": types.NewRentCalculations(calcs)})
}

func (s *App) exportCalculations(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	calcs, err := s.db.ListRentCalculations(r.Context(), userId, calculationHistoryLimit)
	if err != nil {
		s.writeError(w, NewInternalServerError(err).WithMessage("failed to get history"))
		return
	}

	data, err := export.RentCalculations(calcs)
	if err != nil {
		s.writeError(w, NewInternalServerError(err).WithMessage("failed to export history"))
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+export.FileName)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *App) chatTenantRights(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decodeJson(r, &req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if strings.TrimSpace(req.Message) == "" || strings.TrimSpace(req.State) == "" {
		errResp := NewBadRequestError().WithMessage("message and state are required")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	userId, _ := UserId(r.Context())
	response, err := s.chat.Answer(r.Context(), userId, req.State, req.Message)
	if err != nil {
		s.writeError(w, NewInternalServerError(err).WithMessage("failed to chat"))
		return
	}

	s.writeJson(w, http.StatusOK, map[string]any{"response": response})
}

func (s *App) chatHistory(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	history, err := s.db.ListChatHistory(r.Context(), userId, r.URL.Query().Get("state"))
	if err != nil {
		s.writeError(w, NewInternalServerError(err).WithMessage("failed to get history"))
		return
	}

	s.writeJson(w, http.StatusOK, map[string]any{"history": types.NewChatHistory(history)})
}

func (s *App) listCampaigns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := database.CampaignFilter{
		City:   q.Get("city"),
		State:  q.Get("state"),
		Status: orUnknown(q.Get("status"), "active"),
	}

	campaigns, err := s.db.ListCampaigns(r.Context(), filter)
	if err != nil {
		s.writeError(w, NewInternalServerError(err).WithMessage("failed to get campaigns"))
		return
	}

	s.writeJson(w, http.StatusOK, map[string]any{"campaigns": types.NewCampaigns(campaigns)})
}

func (s *App) createCampaign(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req CreateCampaignRequest
	if err := decodeJson(r, &req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		errResp := NewBadRequestError().WithMessage("title is required")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}
	if req.GoalSignatures < 0 {
		errResp := NewBadRequestError().WithMessage("goal signatures must not be negative")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = s.advisor.CampaignDescription(r.Context(), title,
			fmt.Sprintf("%s, %s", req.LocationCity, req.LocationState))
	}

	goal := req.GoalSignatures
	if goal == 0 {
		goal = defaultGoalSignatures
	}

	sid, err := s.generateShortId()
	if err != nil {
		s.writeError(w, NewInternalServerError(fmt.Errorf("generate short id: %w", err)))
		return
	}

	campaign, err := s.db.CreateCampaign(r.Context(), database.CreateCampaignParams{
		ExternalId:     sid,
		CreatorId:      userId,
		Title:          title,
		Description:    description,
		LocationCity:   req.LocationCity,
		LocationState:  req.LocationState,
		LocationZip:    req.LocationZip,
		GoalSignatures: goal,
	})
	if err != nil {
		s.writeError(w, NewInternalServerError(err).WithMessage("failed to create campaign"))
		return
	}

	s.stats.Incr(stats.CampaignsCreated)
	s.writeJson(w, http.StatusOK, map[string]any{"campaign": types.NewCampaign(campaign)})
}

func (s *App) signCampaign(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req SignCampaignRequest
	if err := decodeJson(r, &req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	campaign, err := s.db.GetCampaign(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeSignatureError(w, userId, err)
		return
	}

	sig, err := s.db.CreateSignature(r.Context(), database.CreateSignatureParams{
		CampaignId:  campaign.Id,
		UserId:      userId,
		IsAnonymous: req.IsAnonymous,
		FullName:    strings.TrimSpace(req.FullName),
	})
	if err != nil {
		s.writeSignatureError(w, userId, err)
		return
	}

	s.stats.Incr(stats.SignaturesCreated)
	s.writeJson(w, http.StatusOK, map[string]any{"signature": types.NewSignature(sig)})
}

func (s *App) writeSignatureError(w http.ResponseWriter, userId uuid.UUID, err error) {
	var errResp *ApiError
	switch {
	case errors.Is(err, database.ErrNotFound):
		errResp = NewNotFoundError().WithMessage("campaign not found")
	case errors.Is(err, database.ErrAlreadySigned):
		s.log.Debug("duplicate signature", zap.String("user_id", userId.String()))
		errResp = NewBadRequestError().WithMessage("already signed this campaign")
	default:
		errResp = NewInternalServerError(err).WithMessage("failed to sign campaign")
	}
	s.writeError(w, errResp)
}
