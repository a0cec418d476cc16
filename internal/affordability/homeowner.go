package affordability

import "math"

type PropertyTaxInput struct {
	CurrentTax   float64 // annual
	Years        float64
	IncreaseRate float64 // percent per year
}

type PropertyTaxResult struct {
	ProjectedTax       float64 `json:"projectedTax"`
	TotalIncrease      float64 `json:"totalIncrease"`
	IncreasePercentage float64 `json:"increasePercentage"`
	MonthlyTax         float64 `json:"monthlyTax"`
	IncomeNeeded       float64 `json:"incomeNeeded"` // income at which the projected tax stays within the guideline share
}

func PropertyTaxProjection(in PropertyTaxInput) (PropertyTaxResult, error) {
	if err := requirePositive("currentTax", in.CurrentTax); err != nil {
		return PropertyTaxResult{}, err
	}
	if err := requirePositive("years", in.Years); err != nil {
		return PropertyTaxResult{}, err
	}
	if err := requireNonNegative("increaseRate", in.IncreaseRate); err != nil {
		return PropertyTaxResult{}, err
	}

	projected := in.CurrentTax * math.Pow(1+in.IncreaseRate/100, in.Years)
	increase := projected - in.CurrentTax
	if err := CheckResult(projected, increase/in.CurrentTax, projected/recommendedShare); err != nil {
		return PropertyTaxResult{}, err
	}

	return PropertyTaxResult{
		ProjectedTax:       projected,
		TotalIncrease:      increase,
		IncreasePercentage: increase / in.CurrentTax * 100,
		MonthlyTax:         projected / 12,
		IncomeNeeded:       projected / recommendedShare,
	}, nil
}

type RefinanceInput struct {
	CurrentPayment float64
	CurrentRate    float64 // percent
	NewRate        float64 // percent
}

type RefinanceResult struct {
	NewPayment      float64 `json:"newPayment"`
	MonthlySavings  float64 `json:"monthlySavings"`
	AnnualSavings   float64 `json:"annualSavings"`
	FiveYearSavings float64 `json:"fiveYearSavings"`
}

// RefinanceSavings scales the current payment by the rate ratio. It is a
// rough estimate, not a re-amortization.
func RefinanceSavings(in RefinanceInput) (RefinanceResult, error) {
	if err := requirePositive("currentPayment", in.CurrentPayment); err != nil {
		return RefinanceResult{}, err
	}
	if err := requirePositive("currentRate", in.CurrentRate); err != nil {
		return RefinanceResult{}, err
	}
	if err := requireNonNegative("newRate", in.NewRate); err != nil {
		return RefinanceResult{}, err
	}

	newPayment := in.CurrentPayment * (in.NewRate / in.CurrentRate)
	monthly := in.CurrentPayment - newPayment
	if err := CheckResult(newPayment, monthly*12*5); err != nil {
		return RefinanceResult{}, err
	}

	return RefinanceResult{
		NewPayment:      newPayment,
		MonthlySavings:  monthly,
		AnnualSavings:   monthly * 12,
		FiveYearSavings: monthly * 12 * 5,
	}, nil
}

type HOAInput struct {
	CurrentFee  float64 // monthly
	PreviousFee float64 // monthly
}

type HOAResult struct {
	MonthlyIncrease    float64 `json:"monthlyIncrease"`
	IncreasePercentage float64 `json:"increasePercentage"`
	AnnualIncrease     float64 `json:"annualIncrease"`
}

func HOAIncrease(in HOAInput) (HOAResult, error) {
	if err := requireNonNegative("currentFee", in.CurrentFee); err != nil {
		return HOAResult{}, err
	}
	if err := requireNonNegative("previousFee", in.PreviousFee); err != nil {
		return HOAResult{}, err
	}

	increase := in.CurrentFee - in.PreviousFee
	var pct float64
	if in.PreviousFee > 0 {
		pct = increase / in.PreviousFee * 100
	}
	if err := CheckResult(increase*12, pct); err != nil {
		return HOAResult{}, err
	}

	return HOAResult{
		MonthlyIncrease:    increase,
		IncreasePercentage: pct,
		AnnualIncrease:     increase * 12,
	}, nil
}

const foreclosureNoticeDays = 90

type ForeclosureResult struct {
	DaysUntilForeclosure int  `json:"daysUntilForeclosure"`
	Urgent               bool `json:"urgent"`
}

// ForeclosureTimeline estimates the days left before foreclosure
// proceedings, assuming a 90 day notice window and 30 days per missed
// payment.
func ForeclosureTimeline(missedPayments int) (ForeclosureResult, error) {
	if missedPayments < 0 {
		return ForeclosureResult{}, invalid("missedPayments", "must not be negative")
	}

	days := max(0, foreclosureNoticeDays-missedPayments*30)
	return ForeclosureResult{
		DaysUntilForeclosure: days,
		Urgent:               days <= 30,
	}, nil
}
