package affordability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatRentVsBuy(rent, price, down float64, years int) RentVsBuyInput {
	return RentVsBuyInput{
		MonthlyRent:   rent,
		HomePrice:     price,
		DownPayment:   down,
		LoanTermYears: 30,
		Years:         years,
	}
}

func TestRentVsBuy(t *testing.T) {
	tcases := []struct {
		name       string
		input      RentVsBuyInput
		breakEven  int
		breaksEven bool
		verdict    string
	}{
		{
			name:       "cheap home breaks even immediately",
			input:      flatRentVsBuy(3000, 100000, 0, 10),
			breakEven:  1,
			breaksEven: true,
			verdict:    "Buy Now",
		},
		{
			name:       "large down payment never breaks even",
			input:      flatRentVsBuy(500, 300000, 60000, 10),
			breakEven:  10,
			breaksEven: false,
			verdict:    "Keep Renting",
		},
		{
			name:       "never breaks even on a short horizon",
			input:      flatRentVsBuy(500, 300000, 60000, 2),
			breakEven:  2,
			breaksEven: false,
			verdict:    "Keep Renting",
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := RentVsBuy(tc.input)
			require.NoError(t, err)

			assert.Equal(t, tc.breakEven, res.BreakEvenYear)
			assert.Equal(t, tc.breaksEven, res.BreaksEven)
			assert.Equal(t, tc.verdict, res.Recommendation.Verdict)
			assert.Len(t, res.Points, tc.input.Years+1)
			assert.Equal(t, 0, res.Points[0].Year)
			assert.Equal(t, tc.input.DownPayment, res.Points[0].BuyCost)
		})
	}
}

func TestRentVsBuy_Defaults(t *testing.T) {
	in := DefaultRentVsBuyInput()
	in.MonthlyRent = 2000
	in.HomePrice = 350000
	in.DownPayment = 70000

	res, err := RentVsBuy(in)
	require.NoError(t, err)

	assert.InDelta(t, 1862.85, res.MonthlyMortgage, 0.01)
	assert.InDelta(t, 350.0, res.MonthlyPropertyTax, 1e-9)
	assert.InDelta(t, 291.67, res.MonthlyMaintenance, 0.01)
	assert.InDelta(t, res.MonthlyMortgage+350+res.MonthlyMaintenance+100, res.MonthlyBuyCost, 1e-9)
	// Year one: 12 months of rent, no increase applied yet.
	assert.Equal(t, 24000.0, res.Points[1].RentCost)
	assert.Equal(t, 360500.0, res.Points[1].HomeValue)
}

func TestRentVsBuy_Invalid(t *testing.T) {
	tcases := []struct {
		name   string
		mutate func(*RentVsBuyInput)
		field  string
	}{
		{name: "no rent", mutate: func(in *RentVsBuyInput) { in.MonthlyRent = 0 }, field: "monthlyRent"},
		{name: "down over price", mutate: func(in *RentVsBuyInput) { in.DownPayment = in.HomePrice + 1 }, field: "downPayment"},
		{name: "zero horizon", mutate: func(in *RentVsBuyInput) { in.Years = 0 }, field: "yearsPlanning"},
		{name: "horizon too long", mutate: func(in *RentVsBuyInput) { in.Years = 51 }, field: "yearsPlanning"},
		{name: "negative appreciation", mutate: func(in *RentVsBuyInput) { in.HomeAppreciation = -1 }, field: "homeAppreciation"},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			in := flatRentVsBuy(2000, 300000, 60000, 10)
			tc.mutate(&in)

			_, err := RentVsBuy(in)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestRecommend(t *testing.T) {
	tcases := []struct {
		year       int
		breaksEven bool
		horizon    int
		verdict    string
	}{
		{year: 1, breaksEven: true, horizon: 10, verdict: "Buy Now"},
		{year: 3, breaksEven: true, horizon: 10, verdict: "Buy Now"},
		{year: 4, breaksEven: true, horizon: 10, verdict: "Buy Soon"},
		{year: 5, breaksEven: true, horizon: 10, verdict: "Buy Soon"},
		{year: 6, breaksEven: true, horizon: 10, verdict: "Consider Buying"},
		{year: 10, breaksEven: true, horizon: 10, verdict: "Keep Renting"},
		{year: 2, breaksEven: false, horizon: 2, verdict: "Keep Renting"},
	}

	for _, tc := range tcases {
		assert.Equal(t, tc.verdict, Recommend(tc.year, tc.breaksEven, tc.horizon).Verdict,
			"year=%d breaksEven=%v horizon=%d", tc.year, tc.breaksEven, tc.horizon)
	}
}
