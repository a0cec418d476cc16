package affordability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func programIDs(matches []ProgramMatch) []string {
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestEligiblePrograms(t *testing.T) {
	tcases := []struct {
		name  string
		input EligibilityInput
		ids   []string
		total float64
	}{
		{
			name:  "no flags gets universal federal programs",
			input: EligibilityInput{HomePrice: 200000},
			ids:   []string{"fha", "usda", "native-american"},
			total: 7000,
		},
		{
			name:  "veteran first time buyer in texas",
			input: EligibilityInput{HomePrice: 200000, Veteran: true, FirstTimeBuyer: true, Location: "Austin, Texas"},
			ids:   []string{"fha", "va", "usda", "state-texas", "native-american"},
			total: 13000,
		},
		{
			name:  "california match is case insensitive",
			input: EligibilityInput{HomePrice: 400000, Location: "CALIFORNIA"},
			ids:   []string{"fha", "usda", "state-california", "native-american"},
			total: 14000 + 14000,
		},
		{
			name:  "employer assistance is capped",
			input: EligibilityInput{HomePrice: 1000000, EmployerProgram: true},
			ids:   []string{"fha", "usda", "employer", "native-american"},
			total: 35000 + 25000,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := EligiblePrograms(tc.input)
			require.NoError(t, err)

			assert.Equal(t, tc.ids, programIDs(res.Programs))
			assert.InDelta(t, tc.total, res.TotalAssistance, 1e-6)
		})
	}
}

func TestEligiblePrograms_Invalid(t *testing.T) {
	_, err := EligiblePrograms(EligibilityInput{HomePrice: -1})
	assert.Error(t, err)
}

func TestPrograms_ReturnsCopy(t *testing.T) {
	p := Programs()
	require.Len(t, p, 7)
	p[0].Name = "changed"
	assert.Equal(t, "FHA Loan", Programs()[0].Name)
}
