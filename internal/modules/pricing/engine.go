// Package pricing computes stay and package charges. Every function is a pure
// computation over its inputs; nothing here touches storage or the clock.
package pricing

import (
	"math"
	"time"

	"tourstay/internal/domain"
)

// TaxRate is the flat GST-style tax applied to room charges. Not configurable.
const TaxRate = 0.18

// Nights returns ceil((checkOut - checkIn) / 1 day).
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// EffectiveNightlyRate applies the room type's discount only while now is
// inside the validity window; otherwise the base price stands unmodified.
func EffectiveNightlyRate(rt *domain.RoomType, now time.Time) float64 {
	d := rt.Discount
	if d.Percentage > 0 && d.ValidFrom != nil && d.ValidTo != nil &&
		!now.Before(*d.ValidFrom) && !now.After(*d.ValidTo) {
		return round2(rt.BasePrice * (1 - d.Percentage/100))
	}
	return rt.BasePrice
}

// Line is one room selection priced at its frozen nightly rate.
type Line struct {
	Rate     float64
	Quantity int
}

type StayQuote struct {
	RoomCharges   float64
	TaxesAndFees  float64
	TotalPrice    float64
	PerNightPrice float64
	Nights        int
}

// QuoteStay totals the lines over the stay: lineTotal = rate * nights * qty,
// taxes are 18% of room charges.
func QuoteStay(lines []Line, nights int) StayQuote {
	var charges float64
	for _, l := range lines {
		charges += l.Rate * float64(nights) * float64(l.Quantity)
	}
	charges = round2(charges)
	taxes := round2(charges * TaxRate)

	q := StayQuote{
		RoomCharges:  charges,
		TaxesAndFees: taxes,
		TotalPrice:   round2(charges + taxes),
		Nights:       nights,
	}
	if nights > 0 {
		q.PerNightPrice = round2(charges / float64(nights))
	}
	return q
}

// LineTotal prices a single selection over the stay.
func LineTotal(rate float64, nights, quantity int) float64 {
	return round2(rate * float64(nights) * float64(quantity))
}

type PackageQuote struct {
	GroupSize          int     `json:"group_size"`
	PerPersonPrice     float64 `json:"per_person_price"`
	TotalPrice         float64 `json:"total_price"`
	DiscountPercentage float64 `json:"discount_percentage"`
}

// QuotePackage applies the group-size discount band where
// minPeople <= groupSize <= maxPeople. Bands are evaluated in declaration
// order and the first match wins; when none matches, the package's flat
// discount percentage applies.
func QuotePackage(p *domain.TourPackage, groupSize int) PackageQuote {
	pct := p.DiscountPercentage
	for _, band := range p.GroupDiscounts {
		if band.MinPeople <= groupSize && groupSize <= band.MaxPeople {
			pct = band.DiscountPercentage
			break
		}
	}

	perPerson := round2(p.BasePrice * (1 - pct/100))
	if perPerson < 0 {
		perPerson = 0
	}

	total := perPerson
	if p.PricePerPerson {
		total = round2(perPerson * float64(groupSize))
	}

	return PackageQuote{
		GroupSize:          groupSize,
		PerPersonPrice:     perPerson,
		TotalPrice:         total,
		DiscountPercentage: pct,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
