package listings

import (
	"fmt"
	"strings"
)

type Kind string

const (
	Rental   Kind = "rental"
	Purchase Kind = "purchase"
)

// ParseKind maps a search type to a Kind. An empty string means Rental.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", Rental:
		return Rental, nil
	case Purchase:
		return Purchase, nil
	}
	return "", fmt.Errorf("unknown search type %q", s)
}

func (k Kind) Label() string {
	if k == Purchase {
		return "Home Purchase"
	}
	return "Rental"
}

// Listing is a demo property. Rental and purchase listings share the type;
// fields that do not apply to a kind stay zero and are omitted from JSON.
type Listing struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Rent      float64 `json:"rent,omitempty"`
	Price     float64 `json:"price,omitempty"`
	Bedrooms  int     `json:"bedrooms"`
	Bathrooms float64 `json:"bathrooms"`
	Sqft      int     `json:"sqft,omitempty"`
	Location  string  `json:"location"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	URL       string  `json:"url"`
	Demo      bool    `json:"isDemoData"`

	EstimatedUtilities float64 `json:"estimatedUtilities,omitempty"`
	CommuteMinutes     int     `json:"commuteMinutes,omitempty"`
	LandlordRating     float64 `json:"landlordRating,omitempty"`

	YearBuilt               int     `json:"yearBuilt,omitempty"`
	PropertyType            string  `json:"propertyType,omitempty"`
	EstimatedMonthlyPayment float64 `json:"estimatedMonthlyPayment,omitempty"`
	EstimatedPropertyTax    float64 `json:"estimatedPropertyTax,omitempty"`
	EstimatedInsurance      float64 `json:"estimatedInsurance,omitempty"`
	EstimatedMaintenance    float64 `json:"estimatedMaintenance,omitempty"`

	// Derived by Search.
	TrueMonthlyCost          float64 `json:"trueMonthlyCost,omitempty"`
	RentBurdenPercentage     float64 `json:"rentBurdenPercentage,omitempty"`
	DownPayment              float64 `json:"downPayment,omitempty"`
	LoanAmount               float64 `json:"loanAmount,omitempty"`
	MonthlyPrincipalInterest float64 `json:"monthlyPrincipalInterest,omitempty"`
	TotalMonthlyCost         float64 `json:"totalMonthlyCost,omitempty"`
	AffordabilityPercentage  float64 `json:"affordabilityPercentage,omitempty"`
	ExceedsBudget            bool    `json:"exceedsBudget"`
}

// Amount is the rent for rentals and the price for homes.
func (l Listing) Amount() float64 {
	if l.Price > 0 {
		return l.Price
	}
	return l.Rent
}
