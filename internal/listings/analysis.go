package listings

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Place renders the searched location, or "" when neither city nor state
// was given.
func Place(city, state string) string {
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	default:
		return state
	}
}

func dollars(v float64) string {
	return printer.Sprintf("$%d", int64(math.Round(v)))
}

// Analysis is the deterministic summary shown when no generated analysis
// is available.
func Analysis(r Result) string {
	p := r.Params
	place := Place(p.City, p.State)

	var b strings.Builder
	b.WriteString("**" + p.Kind.Label() + " Property Search Analysis")
	if place != "" {
		b.WriteString(" for " + place)
	}
	b.WriteString(" (Demo Data)**\n\n")

	if len(r.TopPicks) == 0 {
		label := "max rent"
		if p.Kind == Purchase {
			label = "max price"
		}
		b.WriteString("No properties found in your budget range")
		if place != "" {
			b.WriteString(" in " + place)
		}
		printer.Fprintf(&b, ". Try increasing your %s or expanding your search area.", label)
		writeDemoNote(&b, place)
		return b.String()
	}

	if r.OverBudget() {
		budget := dollars(p.MaxAmount)
		if p.Kind == Rental {
			budget += "/month"
		}
		printer.Fprintf(&b, "⚠️ **Note:** Some properties shown exceed your stated budget of %s. "+
			"These are included to show available options, but may require budget adjustments.\n\n", budget)
	}

	top := r.TopPicks[0]
	b.WriteString("**Best Match: " + top.Title + "**\n")

	if p.Kind == Rental {
		printer.Fprintf(&b, "✅ At %s/month true cost, this represents %.1f%% of your income.\n\n",
			dollars(top.TrueMonthlyCost), top.RentBurdenPercentage)
		switch {
		case top.RentBurdenPercentage < 30:
			b.WriteString("This is an excellent choice - well within the 30% guideline. You'll have good financial flexibility.")
		case top.RentBurdenPercentage < 40:
			b.WriteString("This is manageable but slightly elevated. Consider negotiating or looking for a roommate.")
		default:
			b.WriteString("⚠️ This may strain your budget. I recommend continuing your search or increasing income.")
		}
	} else {
		printer.Fprintf(&b, "✅ At %s with %s down payment, monthly cost is %s/month (%.1f%% of income).\n\n",
			dollars(top.Price), dollars(top.DownPayment), dollars(top.TotalMonthlyCost), top.AffordabilityPercentage)
		switch {
		case top.AffordabilityPercentage < 28:
			b.WriteString("Excellent affordability - well within recommended guidelines. This home fits comfortably in your budget.")
		case top.AffordabilityPercentage < 35:
			b.WriteString("Good affordability. Make sure you have emergency savings and can handle maintenance costs.")
		default:
			b.WriteString("⚠️ This may stretch your budget. Consider a lower-priced home or increasing your down payment.")
		}
	}

	b.WriteString("\n\n**General Tips:**\n")
	if p.Kind == Rental {
		b.WriteString("• Always visit properties in person before signing\n" +
			"• Research the landlord's reputation\n" +
			"• Get everything in writing\n" +
			"• Calculate true cost including utilities and commute")
	} else {
		b.WriteString("• Get pre-approved for a mortgage before making offers\n" +
			"• Factor in closing costs (2-5% of home price)\n" +
			"• Budget for maintenance (1% of home value annually)\n" +
			"• Consider property taxes and insurance in your monthly budget")
	}
	if place != "" {
		b.WriteString("\n• Research local market rates in " + place + " to ensure you're getting a fair price")
	}

	writeDemoNote(&b, place)
	return b.String()
}

func writeDemoNote(b *strings.Builder, place string) {
	b.WriteString("\n\n*Note: These are demo properties for illustration. For AI-powered analysis of real listings")
	if place != "" {
		b.WriteString(" in " + place)
	}
	b.WriteString(", configure the Gemini API key.*")
}

// Prompt asks the text generator to comment on the ranked result.
func Prompt(r Result) string {
	p := r.Params
	place := Place(p.City, p.State)

	var b strings.Builder
	what := "rental properties"
	if p.Kind == Purchase {
		what = "homes for sale"
	}
	printer.Fprintf(&b, "Analyze these %d %s for someone earning %s/year", len(r.TopPicks), what, dollars(p.Income))
	if place != "" {
		b.WriteString(" searching in " + place)
	}
	b.WriteString(":\n\nTOP MATCHES:\n")

	for i, l := range r.TopPicks {
		if p.Kind == Rental {
			printer.Fprintf(&b, "%d. %s - %s/mo + %s utilities = %s true cost (%.1f%% of income)\n",
				i+1, l.Title, dollars(l.Rent), dollars(l.EstimatedUtilities), dollars(l.TrueMonthlyCost), l.RentBurdenPercentage)
		} else {
			printer.Fprintf(&b, "%d. %s - %s (%dBR/%gBA, %d sqft) - %s/mo total (%.1f%% of income, %s down)\n",
				i+1, l.Title, dollars(l.Price), l.Bedrooms, l.Bathrooms, l.Sqft, dollars(l.TotalMonthlyCost),
				l.AffordabilityPercentage, dollars(l.DownPayment))
		}
	}

	if len(r.AvoidList) > 0 {
		b.WriteString("\nAVOID LIST:\n")
		for _, l := range r.AvoidList {
			if p.Kind == Rental {
				printer.Fprintf(&b, "- %s (%.1f%% burden, %g/5 rating)\n", l.Title, l.RentBurdenPercentage, l.LandlordRating)
			} else {
				printer.Fprintf(&b, "- %s (%.1f%% burden, %s)\n", l.Title, l.AffordabilityPercentage, dollars(l.Price))
			}
		}
	}

	b.WriteString("\n")
	if place != "" {
		b.WriteString("Searching in " + place + ". ")
	}
	tip := "Negotiation tip"
	if p.Kind == Purchase {
		tip = "Homebuying tip"
	}
	b.WriteString("Provide:\n1. Why the #1 pick is best\n2. Any red flags to watch for\n3. " + tip)
	if place != "" {
		b.WriteString("\n4. Local market insights for " + place)
	}
	b.WriteString("\n\nKeep it under 200 words, practical and actionable.")
	return b.String()
}
