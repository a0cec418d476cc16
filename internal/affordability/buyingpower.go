package affordability

const (
	backEndRatio  = 0.43
	frontEndRatio = 0.28
	// paymentToPrice approximates the home price supported per dollar of
	// monthly payment.
	paymentToPrice = 150
)

type BuyingPowerInput struct {
	AnnualIncome float64
	Savings      float64
	MonthlyDebts float64
}

type BudgetBreakdown struct {
	PrincipalInterest float64 `json:"principalInterest"`
	TaxesInsurance    float64 `json:"taxesInsurance"`
	Maintenance       float64 `json:"maintenance"`
}

type BuyingPowerResult struct {
	MonthlyGross      float64         `json:"monthlyGross"`
	BankApproval      float64         `json:"bankApproval"`
	RealisticBudget   float64         `json:"realisticBudget"`
	BankApprovedPrice float64         `json:"bankApprovedPrice"`
	RealisticPrice    float64         `json:"realisticPrice"`
	Breakdown         BudgetBreakdown `json:"breakdown"`
}

// BuyingPower contrasts what a lender approves under the 43% debt-to-income
// rule with the 28% front-end budget.
func BuyingPower(in BuyingPowerInput) (BuyingPowerResult, error) {
	if err := requirePositive("annualIncome", in.AnnualIncome); err != nil {
		return BuyingPowerResult{}, err
	}
	if err := requireNonNegative("savings", in.Savings); err != nil {
		return BuyingPowerResult{}, err
	}
	if err := requireNonNegative("monthlyDebts", in.MonthlyDebts); err != nil {
		return BuyingPowerResult{}, err
	}

	gross := in.AnnualIncome / 12
	bank := gross*backEndRatio - in.MonthlyDebts
	realistic := gross * frontEndRatio
	bankPrice := bank*paymentToPrice + in.Savings
	realisticPrice := realistic*paymentToPrice + in.Savings
	if err := CheckResult(bankPrice, realisticPrice); err != nil {
		return BuyingPowerResult{}, err
	}

	return BuyingPowerResult{
		MonthlyGross:      gross,
		BankApproval:      bank,
		RealisticBudget:   realistic,
		BankApprovedPrice: bankPrice,
		RealisticPrice:    realisticPrice,
		Breakdown: BudgetBreakdown{
			PrincipalInterest: realistic * 0.7,
			TaxesInsurance:    realistic * 0.2,
			Maintenance:       realistic * 0.1,
		},
	}, nil
}
