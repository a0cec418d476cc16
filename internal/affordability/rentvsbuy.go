package affordability

import "math"

// Rates in RentVsBuyInput are percentages (3 means 3%).
type RentVsBuyInput struct {
	MonthlyRent      float64
	HomePrice        float64
	DownPayment      float64
	LoanTermYears    int
	Years            int
	RentIncrease     float64
	HomeAppreciation float64
	InterestRate     float64
	PropertyTaxRate  float64
	MaintenanceRate  float64
	MonthlyInsurance float64
}

// DefaultRentVsBuyInput holds the assumptions used when a caller does not
// supply them.
func DefaultRentVsBuyInput() RentVsBuyInput {
	return RentVsBuyInput{
		LoanTermYears:    30,
		Years:            10,
		RentIncrease:     3,
		HomeAppreciation: 3,
		InterestRate:     7,
		PropertyTaxRate:  1.2,
		MaintenanceRate:  1,
		MonthlyInsurance: 100,
	}
}

type YearPoint struct {
	Year         int     `json:"year"`
	RentCost     float64 `json:"rentCost"`
	BuyCost      float64 `json:"buyCost"`
	HomeValue    float64 `json:"homeValue"`
	NetWorthRent float64 `json:"netWorthRent"`
	NetWorthBuy  float64 `json:"netWorthBuy"`
}

type Recommendation struct {
	Verdict string `json:"verdict"`
	Advice  string `json:"advice"`
}

type RentVsBuyResult struct {
	LoanAmount         float64        `json:"loanAmount"`
	MonthlyMortgage    float64        `json:"monthlyMortgage"`
	MonthlyPropertyTax float64        `json:"monthlyPropertyTax"`
	MonthlyMaintenance float64        `json:"monthlyMaintenance"`
	MonthlyBuyCost     float64        `json:"monthlyBuyCost"`
	Points             []YearPoint    `json:"points"`
	BreakEvenYear      int            `json:"breakEvenYear"`
	BreaksEven         bool           `json:"breaksEven"`
	Recommendation     Recommendation `json:"recommendation"`
}

const maxHorizonYears = 50

func RentVsBuy(in RentVsBuyInput) (RentVsBuyResult, error) {
	if err := requirePositive("monthlyRent", in.MonthlyRent); err != nil {
		return RentVsBuyResult{}, err
	}
	if err := requirePositive("homePrice", in.HomePrice); err != nil {
		return RentVsBuyResult{}, err
	}
	if err := requireNonNegative("downPayment", in.DownPayment); err != nil {
		return RentVsBuyResult{}, err
	}
	if in.DownPayment > in.HomePrice {
		return RentVsBuyResult{}, invalid("downPayment", "must not exceed the home price")
	}
	if in.LoanTermYears <= 0 {
		return RentVsBuyResult{}, invalid("loanTerm", "must be greater than zero")
	}
	if in.Years <= 0 || in.Years > maxHorizonYears {
		return RentVsBuyResult{}, invalid("yearsPlanning", "must be between 1 and 50")
	}
	for _, r := range []struct {
		field string
		v     float64
	}{
		{"rentIncrease", in.RentIncrease},
		{"homeAppreciation", in.HomeAppreciation},
		{"interestRate", in.InterestRate},
		{"propertyTaxRate", in.PropertyTaxRate},
		{"maintenanceRate", in.MaintenanceRate},
		{"monthlyInsurance", in.MonthlyInsurance},
	} {
		if err := requireNonNegative(r.field, r.v); err != nil {
			return RentVsBuyResult{}, err
		}
	}

	loan := in.HomePrice - in.DownPayment
	mortgage := MonthlyPayment(loan, in.InterestRate/100, in.LoanTermYears)
	tax := in.HomePrice * (in.PropertyTaxRate / 100) / 12
	maintenance := in.HomePrice * (in.MaintenanceRate / 100) / 12
	monthlyBuy := mortgage + tax + maintenance + in.MonthlyInsurance

	var (
		points   = make([]YearPoint, 0, in.Years+1)
		rentCost float64
		buyCost  = in.DownPayment
		rent     = in.MonthlyRent
		value    = in.HomePrice
	)
	for year := 0; year <= in.Years; year++ {
		if year > 0 {
			rentCost += rent * 12
			rent *= 1 + in.RentIncrease/100

			buyCost += monthlyBuy * 12
			value *= 1 + in.HomeAppreciation/100
		}

		points = append(points, YearPoint{
			Year:         year,
			RentCost:     math.Round(rentCost),
			BuyCost:      math.Round(buyCost),
			HomeValue:    math.Round(value),
			NetWorthRent: math.Round(-rentCost),
			NetWorthBuy:  math.Round(value - buyCost),
		})
	}

	last := points[len(points)-1]
	if err := CheckResult(monthlyBuy, last.RentCost, last.BuyCost, last.HomeValue, last.NetWorthBuy); err != nil {
		return RentVsBuyResult{}, err
	}

	breakEven, ok := BreakEvenYear(points)
	if !ok {
		breakEven = in.Years
	}

	return RentVsBuyResult{
		LoanAmount:         loan,
		MonthlyMortgage:    mortgage,
		MonthlyPropertyTax: tax,
		MonthlyMaintenance: maintenance,
		MonthlyBuyCost:     monthlyBuy,
		Points:             points,
		BreakEvenYear:      breakEven,
		BreaksEven:         ok,
		Recommendation:     Recommend(breakEven, ok, in.Years),
	}, nil
}

// BreakEvenYear is the first year after purchase in which cumulative buying
// cost drops below cumulative rent.
func BreakEvenYear(points []YearPoint) (int, bool) {
	for _, p := range points {
		if p.Year > 0 && p.BuyCost < p.RentCost {
			return p.Year, true
		}
	}
	return 0, false
}

func Recommend(breakEvenYear int, breaksEven bool, horizon int) Recommendation {
	switch {
	case !breaksEven:
		return keepRenting
	case breakEvenYear <= 3:
		return Recommendation{Verdict: "Buy Now", Advice: "Buying makes financial sense immediately."}
	case breakEvenYear <= 5:
		return Recommendation{Verdict: "Buy Soon", Advice: "Buying is better if you stay 5+ years."}
	case breakEvenYear < horizon:
		return Recommendation{Verdict: "Consider Buying", Advice: "Buying becomes advantageous later."}
	default:
		return keepRenting
	}
}

var keepRenting = Recommendation{Verdict: "Keep Renting", Advice: "Buying never breaks even within your planning horizon."}
