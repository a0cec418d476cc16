package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shelterrights/shelterrights-api/internal/database"
	"github.com/shelterrights/shelterrights-api/internal/listings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_searchProperties(t *testing.T) {
	tcases := []struct {
		name       string
		body       any
		statusCode int
		errMsg     string
		kind       listings.Kind
	}{
		{
			name:       "rental search",
			body:       PropertySearchRequest{SearchType: "rental", MaxAmount: 2200, Income: 85000, City: "Oakland", State: "CA"},
			statusCode: http.StatusOK,
			kind:       listings.Rental,
		},
		{
			name:       "search type defaults to rental",
			body:       PropertySearchRequest{MaxAmount: 2200, Income: 85000},
			statusCode: http.StatusOK,
			kind:       listings.Rental,
		},
		{
			name:       "purchase search",
			body:       PropertySearchRequest{SearchType: "purchase", MaxAmount: 450000, Income: 120000, DownPayment: 60000, City: "Austin", State: "TX"},
			statusCode: http.StatusOK,
			kind:       listings.Purchase,
		},
		{
			name:       "unknown search type",
			body:       PropertySearchRequest{SearchType: "condo", MaxAmount: 2200, Income: 85000},
			statusCode: http.StatusBadRequest,
			errMsg:     "searchType must be rental or purchase",
		},
		{
			name:       "missing income",
			body:       PropertySearchRequest{SearchType: "rental", MaxAmount: 2200},
			statusCode: http.StatusBadRequest,
			errMsg:     "income: annual income is required",
		},
		{
			name:       "missing max price",
			body:       PropertySearchRequest{SearchType: "purchase", Income: 120000},
			statusCode: http.StatusBadRequest,
			errMsg:     "maxAmount: max price is required for home purchase search",
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t, &database.MockRepository{}, nil, nil)
			rr := doRequest(t, app.Handler(), http.MethodPost, "/api/property/search", tc.body, userToken(t, uuid.New()))

			assert.Equal(t, tc.statusCode, rr.Code)
			if tc.errMsg != "" {
				assert.Equal(t, tc.errMsg, decodeBody[ApiError](t, rr).Message)
				return
			}

			body := decodeBody[PropertySearchResponse](t, rr)
			require.NotEmpty(t, body.Properties)
			assert.Equal(t, len(body.Properties), body.TotalFound)
			assert.LessOrEqual(t, len(body.TopPicks), len(body.Properties))
			assert.NotNil(t, body.AvoidList)
			assert.Equal(t, "generated text", body.AIAnalysis)
			for _, p := range body.Properties {
				assert.True(t, p.Demo, "listings are demo data")
				if tc.kind == listings.Purchase {
					assert.NotZero(t, p.Price)
				} else {
					assert.NotZero(t, p.Rent)
				}
			}
		})
	}
}

func TestApp_searchProperties_FallbackAnalysis(t *testing.T) {
	app := newTestApp(t, &database.MockRepository{}, newTestAdvisor(nil), nil)
	req := PropertySearchRequest{SearchType: "rental", MaxAmount: 2200, Income: 85000, City: "Oakland", State: "CA"}

	rr := doRequest(t, app.Handler(), http.MethodPost, "/api/property/search", req, userToken(t, uuid.New()))

	require.Equal(t, http.StatusOK, rr.Code)
	res, err := listings.Search(listings.SearchParams{
		Kind:      listings.Rental,
		MaxAmount: req.MaxAmount,
		Income:    req.Income,
		City:      req.City,
		State:     req.State,
	})
	require.NoError(t, err)
	assert.Equal(t, listings.Analysis(res), decodeBody[PropertySearchResponse](t, rr).AIAnalysis)
}
