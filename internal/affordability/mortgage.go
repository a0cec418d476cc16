package affordability

import "math"

const (
	DefaultAnnualRate       = 0.06
	DefaultTermYears        = 30
	DefaultDownPaymentShare = 0.20
)

type MortgageInput struct {
	Price       float64
	DownPayment float64 // <= 0 means 20% of Price
	AnnualRate  float64 // fraction, 0 means DefaultAnnualRate
	TermYears   int     // 0 means DefaultTermYears
}

type MortgageResult struct {
	Price                    float64 `json:"price"`
	DownPayment              float64 `json:"downPayment"`
	LoanAmount               float64 `json:"loanAmount"`
	AnnualRate               float64 `json:"annualRate"`
	TermYears                int     `json:"termYears"`
	Payments                 int     `json:"payments"`
	MonthlyPrincipalInterest float64 `json:"monthlyPrincipalInterest"`
	TotalInterest            float64 `json:"totalInterest"`
}

func Mortgage(in MortgageInput) (MortgageResult, error) {
	if err := requirePositive("price", in.Price); err != nil {
		return MortgageResult{}, err
	}
	if err := requireFinite("downPayment", in.DownPayment); err != nil {
		return MortgageResult{}, err
	}
	if err := requireNonNegative("annualRate", in.AnnualRate); err != nil {
		return MortgageResult{}, err
	}
	if in.TermYears < 0 {
		return MortgageResult{}, invalid("termYears", "must not be negative")
	}

	down := in.DownPayment
	if down <= 0 {
		down = in.Price * DefaultDownPaymentShare
	}
	if down > in.Price {
		return MortgageResult{}, invalid("downPayment", "must not exceed the price")
	}

	rate := in.AnnualRate
	if rate == 0 {
		rate = DefaultAnnualRate
	}
	term := in.TermYears
	if term == 0 {
		term = DefaultTermYears
	}

	loan := in.Price - down
	n := term * 12
	payment := MonthlyPayment(loan, rate, term)
	total := payment*float64(n) - loan
	if err := CheckResult(payment, total); err != nil {
		return MortgageResult{}, err
	}

	return MortgageResult{
		Price:                    in.Price,
		DownPayment:              down,
		LoanAmount:               loan,
		AnnualRate:               rate,
		TermYears:                term,
		Payments:                 n,
		MonthlyPrincipalInterest: payment,
		TotalInterest:            total,
	}, nil
}

// MonthlyPayment is the fixed-rate amortized principal and interest payment.
func MonthlyPayment(loan, annualRate float64, termYears int) float64 {
	n := float64(termYears * 12)
	if n == 0 || loan == 0 {
		return 0
	}
	r := annualRate / 12
	if r == 0 {
		return loan / n
	}
	growth := math.Pow(1+r, n)
	return loan * (r * growth) / (growth - 1)
}

type PurchaseInput struct {
	Price        float64
	DownPayment  float64
	AnnualIncome float64
	PropertyTax  float64
	Insurance    float64
	Maintenance  float64
}

type PurchaseResult struct {
	MortgageResult
	PropertyTax             float64 `json:"propertyTax"`
	Insurance               float64 `json:"insurance"`
	Maintenance             float64 `json:"maintenance"`
	TotalMonthlyCost        float64 `json:"totalMonthlyCost"`
	AffordabilityPercentage float64 `json:"affordabilityPercentage"`
}

// PurchaseCost is the monthly cost of owning a home at the default rate and
// term, expressed against monthly income.
func PurchaseCost(in PurchaseInput) (PurchaseResult, error) {
	if err := requirePositive("annualIncome", in.AnnualIncome); err != nil {
		return PurchaseResult{}, err
	}
	if err := requireNonNegative("propertyTax", in.PropertyTax); err != nil {
		return PurchaseResult{}, err
	}
	if err := requireNonNegative("insurance", in.Insurance); err != nil {
		return PurchaseResult{}, err
	}
	if err := requireNonNegative("maintenance", in.Maintenance); err != nil {
		return PurchaseResult{}, err
	}

	m, err := Mortgage(MortgageInput{Price: in.Price, DownPayment: in.DownPayment})
	if err != nil {
		return PurchaseResult{}, err
	}

	total := m.MonthlyPrincipalInterest + in.PropertyTax + in.Insurance + in.Maintenance
	share := total / (in.AnnualIncome / 12) * 100
	if err := CheckResult(total, share); err != nil {
		return PurchaseResult{}, err
	}

	return PurchaseResult{
		MortgageResult:          m,
		PropertyTax:             in.PropertyTax,
		Insurance:               in.Insurance,
		Maintenance:             in.Maintenance,
		TotalMonthlyCost:        total,
		AffordabilityPercentage: share,
	}, nil
}
