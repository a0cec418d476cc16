package api

import (
	"net/http"
	"testing"

	"github.com/shelterrights/shelterrights-api/internal/affordability"
	"github.com/shelterrights/shelterrights-api/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_calculators(t *testing.T) {
	tcases := []struct {
		name       string
		path       string
		body       string
		statusCode int
		keys       []string
		errMsg     string
	}{
		{
			name:       "mortgage",
			path:       "/api/buyer/mortgage",
			body:       `{"homePrice":400000,"downPayment":80000,"annualIncome":120000,"propertyTax":400,"insurance":150,"maintenance":200}`,
			statusCode: http.StatusOK,
			keys:       []string{"loanAmount", "monthlyPrincipalInterest", "totalMonthlyCost", "affordabilityPercentage"},
		},
		{
			name:       "mortgage without income",
			path:       "/api/buyer/mortgage",
			body:       `{"homePrice":400000,"downPayment":80000}`,
			statusCode: http.StatusBadRequest,
			errMsg:     "annualIncome: must be greater than zero",
		},
		{
			name:       "rent vs buy with defaults",
			path:       "/api/buyer/rent-vs-buy",
			body:       `{"monthlyRent":2000,"homePrice":400000,"downPayment":80000}`,
			statusCode: http.StatusOK,
			keys:       []string{"points", "breakEvenYear", "breaksEven", "recommendation", "monthlyBuyCost"},
		},
		{
			name:       "rent vs buy without rent",
			path:       "/api/buyer/rent-vs-buy",
			body:       `{"homePrice":400000}`,
			statusCode: http.StatusBadRequest,
			errMsg:     "monthlyRent: must be greater than zero",
		},
		{
			name:       "buying power",
			path:       "/api/buyer/buying-power",
			body:       `{"annualIncome":90000,"savings":30000,"monthlyDebts":400}`,
			statusCode: http.StatusOK,
			keys:       []string{"bankApprovedPrice", "realisticPrice", "breakdown"},
		},
		{
			name:       "buying power with negative savings",
			path:       "/api/buyer/buying-power",
			body:       `{"annualIncome":90000,"savings":-1}`,
			statusCode: http.StatusBadRequest,
			errMsg:     "savings: must not be negative",
		},
		{
			name:       "assistance",
			path:       "/api/buyer/assistance",
			body:       `{"homePrice":350000,"firstTimeBuyer":true,"veteran":true,"location":"CA"}`,
			statusCode: http.StatusOK,
			keys:       []string{"programs", "totalAssistance"},
		},
		{
			name:       "property tax",
			path:       "/api/owner/property-tax",
			body:       `{"currentTax":6000,"years":5,"increaseRate":3}`,
			statusCode: http.StatusOK,
			keys:       []string{"projectedTax", "totalIncrease", "monthlyTax"},
		},
		{
			name:       "property tax without years",
			path:       "/api/owner/property-tax",
			body:       `{"currentTax":6000}`,
			statusCode: http.StatusBadRequest,
			errMsg:     "years: must be greater than zero",
		},
		{
			name:       "refinance",
			path:       "/api/owner/refinance",
			body:       `{"currentPayment":2200,"currentRate":7,"newRate":5.5}`,
			statusCode: http.StatusOK,
			keys:       []string{"newPayment", "monthlySavings", "fiveYearSavings"},
		},
		{
			name:       "hoa",
			path:       "/api/owner/hoa",
			body:       `{"currentFee":450,"previousFee":400}`,
			statusCode: http.StatusOK,
			keys:       []string{"monthlyIncrease", "increasePercentage", "annualIncrease"},
		},
		{
			name:       "foreclosure",
			path:       "/api/owner/foreclosure",
			body:       `{"missedPayments":2}`,
			statusCode: http.StatusOK,
			keys:       []string{"daysUntilForeclosure", "urgent"},
		},
		{
			name:       "foreclosure with negative payments",
			path:       "/api/owner/foreclosure",
			body:       `{"missedPayments":-1}`,
			statusCode: http.StatusBadRequest,
			errMsg:     "missedPayments: must not be negative",
		},
		{
			name:       "mortgage share out of range",
			path:       "/api/buyer/mortgage",
			body:       `{"homePrice":1e308,"annualIncome":1e-300}`,
			statusCode: http.StatusBadRequest,
			errMsg:     "input: values are out of range",
		},
		{
			name:       "refinance savings out of range",
			path:       "/api/owner/refinance",
			body:       `{"currentPayment":1e308,"currentRate":1e-300,"newRate":5}`,
			statusCode: http.StatusBadRequest,
			errMsg:     "input: values are out of range",
		},
		{
			name:       "malformed body",
			path:       "/api/owner/hoa",
			body:       `{"currentFee":"a lot"}`,
			statusCode: http.StatusBadRequest,
			errMsg:     "bad request",
		},
	}

	app := newTestApp(t, &database.MockRepository{}, nil, nil)

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(t, app.Handler(), http.MethodPost, tc.path, tc.body, "")

			assert.Equal(t, tc.statusCode, rr.Code, rr.Body.String())
			if tc.errMsg != "" {
				assert.Equal(t, tc.errMsg, decodeBody[ApiError](t, rr).Message)
				return
			}

			body := decodeBody[map[string]any](t, rr)
			for _, key := range tc.keys {
				assert.Contains(t, body, key)
			}
		})
	}
}

func TestApp_foreclosure(t *testing.T) {
	app := newTestApp(t, &database.MockRepository{}, nil, nil)

	rr := doRequest(t, app.Handler(), http.MethodPost, "/api/owner/foreclosure", `{"missedPayments":2}`, "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, affordability.ForeclosureResult{DaysUntilForeclosure: 30, Urgent: true},
		decodeBody[affordability.ForeclosureResult](t, rr))
}

func Test_rentVsBuyRequest_input(t *testing.T) {
	years := 10
	rate := 6.5

	defaults := rentVsBuyRequest{MonthlyRent: 2000, HomePrice: 400000}.input()
	assert.Equal(t, affordability.DefaultRentVsBuyInput().Years, defaults.Years)
	assert.Equal(t, affordability.DefaultRentVsBuyInput().InterestRate, defaults.InterestRate)

	in := rentVsBuyRequest{MonthlyRent: 2000, HomePrice: 400000, YearsPlanning: &years, InterestRate: &rate}.input()
	assert.Equal(t, 10, in.Years)
	assert.Equal(t, 6.5, in.InterestRate)
	assert.Equal(t, 2000.0, in.MonthlyRent)
	assert.Equal(t, defaults.LoanTermYears, in.LoanTermYears)
}
