package affordability

import (
	"math"
	"slices"
	"strings"
)

type Program struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Type               string   `json:"type"`
	DownPaymentPercent float64  `json:"downPaymentPercent"`
	MaxAmount          float64  `json:"maxAmount"`
	Eligibility        []string `json:"eligibility"`
	Description        string   `json:"description"`
	Requirements       []string `json:"requirements"`
	ApplicationURL     string   `json:"applicationUrl"`
}

var programs = []Program{
	{
		ID:                 "fha",
		Name:               "FHA Loan",
		Type:               "Federal",
		DownPaymentPercent: 3.5,
		MaxAmount:          50000,
		Eligibility:        []string{"first-time", "low-income"},
		Description:        "Federal Housing Administration loan with low down payment requirement",
		Requirements:       []string{"Credit score 580+", "Debt-to-income ratio <43%", "Property must be primary residence"},
		ApplicationURL:     "https://www.hud.gov/buying/loans",
	},
	{
		ID:                 "va",
		Name:               "VA Loan",
		Type:               "Federal",
		DownPaymentPercent: 0,
		MaxAmount:          100000,
		Eligibility:        []string{"veteran", "military"},
		Description:        "Zero down payment loan for eligible veterans and active military",
		Requirements:       []string{"Certificate of Eligibility (COE)", "Qualifying military service", "Meet lender credit/income standards"},
		ApplicationURL:     "https://www.va.gov/housing-assistance/home-loans/",
	},
	{
		ID:                 "usda",
		Name:               "USDA Rural Development Loan",
		Type:               "Federal",
		DownPaymentPercent: 0,
		MaxAmount:          75000,
		Eligibility:        []string{"rural", "low-income"},
		Description:        "Zero down for rural and suburban homebuyers",
		Requirements:       []string{"Property in eligible rural area", "Income at/below area median", "US citizenship or permanent residency"},
		ApplicationURL:     "https://www.rd.usda.gov/programs-services/single-family-housing-programs",
	},
	{
		ID:                 "state-texas",
		Name:               "Texas First Time Homebuyer Program",
		Type:               "State",
		DownPaymentPercent: 3,
		MaxAmount:          15000,
		Eligibility:        []string{"first-time", "texas"},
		Description:        "Down payment assistance for first-time buyers in Texas",
		Requirements:       []string{"First-time homebuyer", "Income limits apply", "Complete homebuyer education course"},
		ApplicationURL:     "https://www.tsahc.org/",
	},
	{
		ID:                 "state-california",
		Name:               "CalHFA MyHome Assistance Program",
		Type:               "State",
		DownPaymentPercent: 3.5,
		MaxAmount:          20000,
		Eligibility:        []string{"first-time", "california"},
		Description:        "California Housing Finance Agency assistance program",
		Requirements:       []string{"First-time homebuyer or not owned in 3 years", "Income limits by county", "CalHFA approved lender"},
		ApplicationURL:     "https://www.calhfa.ca.gov/",
	},
	{
		ID:                 "employer",
		Name:               "Employer-Sponsored Programs",
		Type:               "Private",
		DownPaymentPercent: 5,
		MaxAmount:          25000,
		Eligibility:        []string{"employer"},
		Description:        "Many employers offer homebuying assistance to employees",
		Requirements:       []string{"Employment tenure requirements vary", "May require staying with company", "Check with HR department"},
		ApplicationURL:     "#",
	},
	{
		ID:                 "native-american",
		Name:               "Native American Direct Loan",
		Type:               "Federal",
		DownPaymentPercent: 0,
		MaxAmount:          80000,
		Eligibility:        []string{"native-american"},
		Description:        "HUD program for Native Americans on federal trust land",
		Requirements:       []string{"Native American or Alaska Native", "Land must be in federal trust", "Income limits apply"},
		ApplicationURL:     "https://www.hud.gov/program_offices/public_indian_housing/ih/homeownership/184",
	},
}

// Programs returns a copy of the assistance program table.
func Programs() []Program {
	return slices.Clone(programs)
}

type EligibilityInput struct {
	HomePrice       float64
	FirstTimeBuyer  bool
	Veteran         bool
	EmployerProgram bool
	Location        string
}

type ProgramMatch struct {
	Program
	EstimatedAssistance float64 `json:"estimatedAssistance"`
}

type EligibilityResult struct {
	Programs        []ProgramMatch `json:"programs"`
	TotalAssistance float64        `json:"totalAssistance"`
}

func EligiblePrograms(in EligibilityInput) (EligibilityResult, error) {
	if err := requireNonNegative("homePrice", in.HomePrice); err != nil {
		return EligibilityResult{}, err
	}

	res := EligibilityResult{Programs: []ProgramMatch{}}
	for _, p := range programs {
		if !eligible(p, in) {
			continue
		}
		amount := math.Min(p.MaxAmount, in.HomePrice*(p.DownPaymentPercent/100))
		res.Programs = append(res.Programs, ProgramMatch{Program: p, EstimatedAssistance: amount})
		res.TotalAssistance += amount
	}

	return res, nil
}

func eligible(p Program, in EligibilityInput) bool {
	has := func(tag string) bool { return slices.Contains(p.Eligibility, tag) }
	location := strings.ToLower(in.Location)
	militaryOnly := has("veteran") || has("military")

	switch {
	case in.Veteran && militaryOnly:
		return true
	case in.FirstTimeBuyer && has("first-time"):
		return true
	case in.EmployerProgram && has("employer"):
		return true
	case strings.Contains(location, "texas") && has("texas"):
		return true
	case strings.Contains(location, "california") && has("california"):
		return true
	case p.Type == "Federal" && !militaryOnly:
		return true
	}
	return false
}
