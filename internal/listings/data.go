package listings

import (
	"fmt"
	"strings"
)

const demoURL = "#demo-property"

// template is one row of the demo table. Title and location are format
// strings taking the city, or the fallback area name when no city is set.
type template struct {
	id           string
	title        string
	titleArea    string
	location     string
	locationArea string
	amount       float64
	bedrooms     int
	bathrooms    float64
	sqft         int
	utilities    float64
	commute      int
	rating       float64
	yearBuilt    int
	propertyType string
	monthlyPay   float64
	propertyTax  float64
	insurance    float64
	maintenance  float64
}

var rentalTemplates = []template{
	{id: "1", title: "2BR Apartment Near Downtown %s", titleArea: "", location: "Central %s", locationArea: "Area", amount: 1650, bedrooms: 2, bathrooms: 1, utilities: 120, commute: 15, rating: 4.2},
	{id: "2", title: "Modern Studio in %s", titleArea: "Tech District", location: "%s District", locationArea: "Tech", amount: 1200, bedrooms: 1, bathrooms: 1, utilities: 80, commute: 25, rating: 3.8},
	{id: "3", title: "Spacious 3BR Family Home in %s", titleArea: "Suburbs", location: "%s Area", locationArea: "Suburban", amount: 2400, bedrooms: 3, bathrooms: 2, utilities: 180, commute: 35, rating: 4.7},
	{id: "4", title: "Renovated 1BR Loft in %s", titleArea: "Downtown", location: "%s District", locationArea: "Arts", amount: 1400, bedrooms: 1, bathrooms: 1, utilities: 95, commute: 20, rating: 4.0},
	{id: "5", title: "Budget-Friendly 2BR in %s", titleArea: "East Side", location: "%s Side", locationArea: "East", amount: 1100, bedrooms: 2, bathrooms: 1, utilities: 110, commute: 30, rating: 3.5},
	{id: "6", title: "Luxury 2BR with Pool in %s", titleArea: "Lakefront", location: "%s Area", locationArea: "Lakefront", amount: 2800, bedrooms: 2, bathrooms: 2, utilities: 150, commute: 40, rating: 4.9},
}

var saleTemplates = []template{
	{id: "s1", title: "Charming 3BR Starter Home in %s", titleArea: "Suburbs", location: "%s Neighborhood", locationArea: "Suburban", amount: 280000, bedrooms: 3, bathrooms: 2, sqft: 1500, yearBuilt: 1995, propertyType: "Single Family", monthlyPay: 1850, propertyTax: 350, insurance: 120, maintenance: 200},
	{id: "s2", title: "Modern 2BR Condo in %s", titleArea: "Downtown", location: "%s District", locationArea: "Downtown", amount: 220000, bedrooms: 2, bathrooms: 2, sqft: 1200, yearBuilt: 2010, propertyType: "Condo", monthlyPay: 1450, propertyTax: 280, insurance: 100, maintenance: 150},
	{id: "s3", title: "Spacious 4BR Family Home in %s", titleArea: "Family Area", location: "%s Area", locationArea: "Family-Friendly", amount: 380000, bedrooms: 4, bathrooms: 3, sqft: 2200, yearBuilt: 2005, propertyType: "Single Family", monthlyPay: 2500, propertyTax: 500, insurance: 180, maintenance: 300},
	{id: "s4", title: "Cozy 2BR Townhouse in %s", titleArea: "Quiet Community", location: "%s Community", locationArea: "Quiet", amount: 195000, bedrooms: 2, bathrooms: 1.5, sqft: 1100, yearBuilt: 2000, propertyType: "Townhouse", monthlyPay: 1280, propertyTax: 240, insurance: 90, maintenance: 120},
	{id: "s5", title: "Luxury 5BR Estate in %s", titleArea: "Upscale Area", location: "%s Neighborhood", locationArea: "Upscale", amount: 650000, bedrooms: 5, bathrooms: 4, sqft: 3500, yearBuilt: 2015, propertyType: "Single Family", monthlyPay: 4280, propertyTax: 850, insurance: 300, maintenance: 500},
	{id: "s6", title: "Affordable 1BR Starter in %s", titleArea: "First-Time Buyer Area", location: "%s Area", locationArea: "First-Time Buyer", amount: 150000, bedrooms: 1, bathrooms: 1, sqft: 800, yearBuilt: 1985, propertyType: "Condo", monthlyPay: 990, propertyTax: 190, insurance: 70, maintenance: 100},
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Render fills the demo table for a city and state. The result is a fresh
// slice; callers may modify it.
func Render(kind Kind, city, state string) []Listing {
	rows := rentalTemplates
	if kind == Purchase {
		rows = saleTemplates
	}

	out := make([]Listing, 0, len(rows))
	for _, t := range rows {
		l := Listing{
			ID:        t.id,
			Title:     strings.TrimSpace(fmt.Sprintf(t.title, orDefault(city, t.titleArea))),
			Bedrooms:  t.bedrooms,
			Bathrooms: t.bathrooms,
			Location:  fmt.Sprintf(t.location, orDefault(city, t.locationArea)),
			City:      orDefault(city, "Unknown"),
			State:     orDefault(state, "Unknown"),
			URL:       demoURL,
			Demo:      true,
		}
		if kind == Purchase {
			l.Price = t.amount
			l.Sqft = t.sqft
			l.YearBuilt = t.yearBuilt
			l.PropertyType = t.propertyType
			l.EstimatedMonthlyPayment = t.monthlyPay
			l.EstimatedPropertyTax = t.propertyTax
			l.EstimatedInsurance = t.insurance
			l.EstimatedMaintenance = t.maintenance
		} else {
			l.Rent = t.amount
			l.EstimatedUtilities = t.utilities
			l.CommuteMinutes = t.commute
			l.LandlordRating = t.rating
		}
		out = append(out, l)
	}
	return out
}
