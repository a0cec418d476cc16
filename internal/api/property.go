package api

import (
	"net/http"

	"github.com/shelterrights/shelterrights-api/internal/listings"
)

type PropertySearchRequest struct {
	SearchType  string  `json:"searchType"`
	MaxAmount   float64 `json:"maxAmount"`
	Bedrooms    int     `json:"bedrooms"`
	Income      float64 `json:"income"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	DownPayment float64 `json:"downPayment"`
}

type PropertySearchResponse struct {
	Properties []listings.Listing `json:"properties"`
	TopPicks   []listings.Listing `json:"topPicks"`
	AvoidList  []listings.Listing `json:"avoidList"`
	AIAnalysis string             `json:"aiAnalysis"`
	TotalFound int                `json:"totalFound"`
}

func (s *App) searchProperties(w http.ResponseWriter, r *http.Request) {
	var req PropertySearchRequest
	if err := decodeJson(r, &req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	kind, err := listings.ParseKind(req.SearchType)
	if err != nil {
		errResp := NewBadRequestError().WithMessage("searchType must be rental or purchase")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	res, err := listings.Search(listings.SearchParams{
		Kind:        kind,
		MaxAmount:   req.MaxAmount,
		Bedrooms:    req.Bedrooms,
		Income:      req.Income,
		City:        req.City,
		State:       req.State,
		DownPayment: req.DownPayment,
	})
	if err != nil {
		s.writeError(w, NewValidationError(err))
		return
	}

	analysis := s.advisor.AnalyzeListings(r.Context(), listings.Prompt(res), listings.Analysis(res))

	s.writeJson(w, http.StatusOK, PropertySearchResponse{
		Properties: nonNil(res.Properties),
		TopPicks:   nonNil(res.TopPicks),
		AvoidList:  nonNil(res.AvoidList),
		AIAnalysis: analysis,
		TotalFound: len(res.Properties),
	})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
