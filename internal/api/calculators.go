package api

import (
	"net/http"

	"github.com/shelterrights/shelterrights-api/internal/affordability"
)

type calculatorRequest[In any] interface {
	input() In
}

// calculate serves a pure calculator: decode Req, run compute on its input
// and write the result. Input errors become 400s.
func calculate[Req calculatorRequest[In], In, Out any](s *App, compute func(In) (Out, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Req
		if err := decodeJson(r, &req); err != nil {
			errResp := NewBadRequestError()
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}

		out, err := compute(req.input())
		if err != nil {
			s.writeError(w, NewValidationError(err))
			return
		}

		s.writeJson(w, http.StatusOK, out)
	}
}

type mortgageRequest struct {
	HomePrice    float64 `json:"homePrice"`
	DownPayment  float64 `json:"downPayment"`
	AnnualIncome float64 `json:"annualIncome"`
	PropertyTax  float64 `json:"propertyTax"`
	Insurance    float64 `json:"insurance"`
	Maintenance  float64 `json:"maintenance"`
}

func (r mortgageRequest) input() affordability.PurchaseInput {
	return affordability.PurchaseInput{
		Price:        r.HomePrice,
		DownPayment:  r.DownPayment,
		AnnualIncome: r.AnnualIncome,
		PropertyTax:  r.PropertyTax,
		Insurance:    r.Insurance,
		Maintenance:  r.Maintenance,
	}
}

// rentVsBuyRequest leaves assumptions nil to take the defaults.
type rentVsBuyRequest struct {
	MonthlyRent      float64  `json:"monthlyRent"`
	HomePrice        float64  `json:"homePrice"`
	DownPayment      float64  `json:"downPayment"`
	LoanTerm         *int     `json:"loanTerm"`
	YearsPlanning    *int     `json:"yearsPlanning"`
	RentIncrease     *float64 `json:"rentIncrease"`
	HomeAppreciation *float64 `json:"homeAppreciation"`
	InterestRate     *float64 `json:"interestRate"`
	PropertyTaxRate  *float64 `json:"propertyTaxRate"`
	MaintenanceRate  *float64 `json:"maintenanceRate"`
	MonthlyInsurance *float64 `json:"monthlyInsurance"`
}

func (r rentVsBuyRequest) input() affordability.RentVsBuyInput {
	in := affordability.DefaultRentVsBuyInput()
	in.MonthlyRent = r.MonthlyRent
	in.HomePrice = r.HomePrice
	in.DownPayment = r.DownPayment

	setInt(&in.LoanTermYears, r.LoanTerm)
	setInt(&in.Years, r.YearsPlanning)
	setFloat(&in.RentIncrease, r.RentIncrease)
	setFloat(&in.HomeAppreciation, r.HomeAppreciation)
	setFloat(&in.InterestRate, r.InterestRate)
	setFloat(&in.PropertyTaxRate, r.PropertyTaxRate)
	setFloat(&in.MaintenanceRate, r.MaintenanceRate)
	setFloat(&in.MonthlyInsurance, r.MonthlyInsurance)
	return in
}

type buyingPowerRequest struct {
	AnnualIncome float64 `json:"annualIncome"`
	Savings      float64 `json:"savings"`
	MonthlyDebts float64 `json:"monthlyDebts"`
}

func (r buyingPowerRequest) input() affordability.BuyingPowerInput {
	return affordability.BuyingPowerInput{
		AnnualIncome: r.AnnualIncome,
		Savings:      r.Savings,
		MonthlyDebts: r.MonthlyDebts,
	}
}

type assistanceRequest struct {
	HomePrice       float64 `json:"homePrice"`
	FirstTimeBuyer  bool    `json:"firstTimeBuyer"`
	Veteran         bool    `json:"veteran"`
	EmployerProgram bool    `json:"employerProgram"`
	Location        string  `json:"location"`
}

func (r assistanceRequest) input() affordability.EligibilityInput {
	return affordability.EligibilityInput{
		HomePrice:       r.HomePrice,
		FirstTimeBuyer:  r.FirstTimeBuyer,
		Veteran:         r.Veteran,
		EmployerProgram: r.EmployerProgram,
		Location:        r.Location,
	}
}

type propertyTaxRequest struct {
	CurrentTax   float64 `json:"currentTax"`
	Years        float64 `json:"years"`
	IncreaseRate float64 `json:"increaseRate"`
}

func (r propertyTaxRequest) input() affordability.PropertyTaxInput {
	return affordability.PropertyTaxInput{
		CurrentTax:   r.CurrentTax,
		Years:        r.Years,
		IncreaseRate: r.IncreaseRate,
	}
}

type refinanceRequest struct {
	CurrentPayment float64 `json:"currentPayment"`
	CurrentRate    float64 `json:"currentRate"`
	NewRate        float64 `json:"newRate"`
}

func (r refinanceRequest) input() affordability.RefinanceInput {
	return affordability.RefinanceInput{
		CurrentPayment: r.CurrentPayment,
		CurrentRate:    r.CurrentRate,
		NewRate:        r.NewRate,
	}
}

type hoaRequest struct {
	CurrentFee  float64 `json:"currentFee"`
	PreviousFee float64 `json:"previousFee"`
}

func (r hoaRequest) input() affordability.HOAInput {
	return affordability.HOAInput{
		CurrentFee:  r.CurrentFee,
		PreviousFee: r.PreviousFee,
	}
}

type foreclosureRequest struct {
	MissedPayments int `json:"missedPayments"`
}

func (r foreclosureRequest) input() int {
	return r.MissedPayments
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
