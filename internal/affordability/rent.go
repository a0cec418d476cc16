package affordability

// RentGuideline is the share of gross income, in percent, above which a
// household counts as rent burdened.
const RentGuideline = 30.0

const (
	recommendedShare = RentGuideline / 100
	burdenTolerance  = 1e-9
)

type RentInput struct {
	AnnualIncome float64
	MonthlyRent  float64
	Utilities    float64
}

type RentResult struct {
	MonthlyHousingCost float64 `json:"monthlyHousingCost"`
	BurdenPercentage   float64 `json:"burdenPercentage"`
	RecommendedRent    float64 `json:"recommendedRent"`
	MonthlyOverpayment float64 `json:"monthlyOverpayment"`
	AnnualOverpayment  float64 `json:"annualOverpayment"`
	IsHealthy          bool    `json:"isHealthy"`
}

// RentBurden computes the rent burden of a household. A household paying
// exactly the guideline share is not burdened.
func RentBurden(in RentInput) (RentResult, error) {
	if err := requirePositive("annualIncome", in.AnnualIncome); err != nil {
		return RentResult{}, err
	}
	if err := requirePositive("monthlyRent", in.MonthlyRent); err != nil {
		return RentResult{}, err
	}
	if err := requireNonNegative("utilities", in.Utilities); err != nil {
		return RentResult{}, err
	}

	housing := in.MonthlyRent + in.Utilities
	burden := BurdenPercentage(housing, in.AnnualIncome)
	recommended := in.AnnualIncome * recommendedShare / 12
	over := max(0, housing-recommended)
	if err := CheckResult(housing, burden, recommended, over*12); err != nil {
		return RentResult{}, err
	}

	return RentResult{
		MonthlyHousingCost: housing,
		BurdenPercentage:   burden,
		RecommendedRent:    recommended,
		MonthlyOverpayment: over,
		AnnualOverpayment:  over * 12,
		IsHealthy:          !IsBurdened(burden),
	}, nil
}

// BurdenPercentage annualizes a monthly housing cost against annual income.
func BurdenPercentage(monthlyCost, annualIncome float64) float64 {
	return monthlyCost * 12 / annualIncome * 100
}

// IsBurdened reports whether burden exceeds the guideline. Values within
// floating point noise of the guideline are treated as on it.
func IsBurdened(burden float64) bool {
	return burden > RentGuideline+burdenTolerance
}
