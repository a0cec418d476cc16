package listings

import (
	"cmp"
	"slices"

	"github.com/shelterrights/shelterrights-api/internal/affordability"
)

const (
	rentalBuffer   = 1.20
	purchaseBuffer = 1.15

	commuteThreshold = 20
	commuteSurcharge = 100

	topPickCount = 3
	avoidCount   = 2
)

type SearchParams struct {
	Kind        Kind
	MaxAmount   float64
	Bedrooms    int
	Income      float64
	City        string
	State       string
	DownPayment float64
}

type Result struct {
	Params     SearchParams
	Properties []Listing
	TopPicks   []Listing
	AvoidList  []Listing
}

func (p SearchParams) validate() error {
	if !(p.Income > 0) {
		return &affordability.ValidationError{Field: "income", Message: "annual income is required"}
	}
	if !(p.MaxAmount > 0) {
		msg := "max rent is required for rental search"
		if p.Kind == Purchase {
			msg = "max price is required for home purchase search"
		}
		return &affordability.ValidationError{Field: "maxAmount", Message: msg}
	}
	if p.DownPayment < 0 {
		return &affordability.ValidationError{Field: "downPayment", Message: "must not be negative"}
	}
	if err := affordability.CheckResult(p.Income, p.MaxAmount, p.DownPayment); err != nil {
		return err
	}
	if p.Kind != Rental && p.Kind != Purchase {
		return &affordability.ValidationError{Field: "searchType", Message: "must be rental or purchase"}
	}
	return nil
}

// Search filters, prices and ranks the demo listings for the given
// constraints. The result is never empty: when nothing fits the budget the
// whole table is considered instead.
func Search(p SearchParams) (Result, error) {
	if err := p.validate(); err != nil {
		return Result{}, err
	}

	found := filterBudget(Render(p.Kind, p.City, p.State), p.Kind, p.MaxAmount)
	if p.Bedrooms > 0 {
		found = slices.DeleteFunc(found, func(l Listing) bool { return l.Bedrooms < p.Bedrooms })
	}

	for i := range found {
		if err := derive(&found[i], p); err != nil {
			return Result{}, err
		}
	}
	rank(found, p.Kind)

	var avoid []Listing
	for _, l := range found {
		if len(avoid) == avoidCount {
			break
		}
		if shouldAvoid(l, p) {
			avoid = append(avoid, l)
		}
	}

	return Result{
		Params:     p,
		Properties: found,
		TopPicks:   found[:min(topPickCount, len(found))],
		AvoidList:  avoid,
	}, nil
}

// filterBudget keeps listings within the buffer above max. When none
// qualify it returns all of them ordered by amount.
func filterBudget(all []Listing, kind Kind, maxAmount float64) []Listing {
	limit := maxAmount * rentalBuffer
	if kind == Purchase {
		limit = maxAmount * purchaseBuffer
	}

	kept := make([]Listing, 0, len(all))
	for _, l := range all {
		if l.Amount() <= limit {
			kept = append(kept, l)
		}
	}
	if len(kept) > 0 {
		return kept
	}

	kept = append(kept, all...)
	slices.SortStableFunc(kept, func(a, b Listing) int {
		return cmp.Compare(a.Amount(), b.Amount())
	})
	return kept
}

func derive(l *Listing, p SearchParams) error {
	if p.Kind == Rental {
		l.TrueMonthlyCost = l.Rent + l.EstimatedUtilities
		if l.CommuteMinutes > commuteThreshold {
			l.TrueMonthlyCost += commuteSurcharge
		}
		l.RentBurdenPercentage = affordability.BurdenPercentage(l.Rent+l.EstimatedUtilities, p.Income)
		l.ExceedsBudget = l.Rent > p.MaxAmount
		return affordability.CheckResult(l.RentBurdenPercentage)
	}

	cost, err := affordability.PurchaseCost(affordability.PurchaseInput{
		Price:        l.Price,
		DownPayment:  min(p.DownPayment, l.Price),
		AnnualIncome: p.Income,
		PropertyTax:  l.EstimatedPropertyTax,
		Insurance:    l.EstimatedInsurance,
		Maintenance:  l.EstimatedMaintenance,
	})
	if err != nil {
		return err
	}

	l.DownPayment = cost.DownPayment
	l.LoanAmount = cost.LoanAmount
	l.MonthlyPrincipalInterest = affordability.Round(cost.MonthlyPrincipalInterest, 0)
	l.TotalMonthlyCost = affordability.Round(cost.TotalMonthlyCost, 0)
	l.AffordabilityPercentage = affordability.Round(cost.AffordabilityPercentage, 1)
	l.ExceedsBudget = l.Price > p.MaxAmount
	return nil
}

// score orders listings best first; lower is better.
func score(l Listing, kind Kind) float64 {
	if kind == Purchase {
		return l.AffordabilityPercentage*0.8 - l.Price/10000
	}
	return l.RentBurdenPercentage*0.7 - l.LandlordRating*10
}

// rank sorts in place. Equal scores keep their relative order.
func rank(ls []Listing, kind Kind) {
	slices.SortStableFunc(ls, func(a, b Listing) int {
		return cmp.Compare(score(a, kind), score(b, kind))
	})
}

func shouldAvoid(l Listing, p SearchParams) bool {
	if p.Kind == Purchase {
		return l.AffordabilityPercentage > 40 || l.Price > p.MaxAmount*1.1
	}
	return l.RentBurdenPercentage > 35 || l.LandlordRating < 3.8
}

// OverBudget reports whether any listing in the result exceeds the stated
// maximum.
func (r Result) OverBudget() bool {
	return slices.ContainsFunc(r.Properties, func(l Listing) bool { return l.ExceedsBudget })
}
