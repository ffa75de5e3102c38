package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tourstay/internal/domain"
)

func TestNights(t *testing.T) {
	base := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		checkOut time.Time
		want     int
	}{
		{"exact three days", base.AddDate(0, 0, 3), 3},
		{"partial day rounds up", base.Add(26 * time.Hour), 2},
		{"under one day is one night", base.Add(5 * time.Hour), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Nights(base, tt.checkOut))
		})
	}
}

func TestEffectiveNightlyRate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	before := now.AddDate(0, 0, -5)
	after := now.AddDate(0, 0, 5)
	past := now.AddDate(0, 0, -1)

	rt := &domain.RoomType{BasePrice: 2000}

	assert.Equal(t, 2000.0, EffectiveNightlyRate(rt, now), "no discount configured")

	rt.Discount = domain.Discount{Percentage: 25, ValidFrom: &before, ValidTo: &after}
	assert.Equal(t, 1500.0, EffectiveNightlyRate(rt, now), "inside the window")

	rt.Discount = domain.Discount{Percentage: 25, ValidFrom: &before, ValidTo: &past}
	assert.Equal(t, 2000.0, EffectiveNightlyRate(rt, now), "expired window")

	rt.Discount = domain.Discount{Percentage: 25}
	assert.Equal(t, 2000.0, EffectiveNightlyRate(rt, now), "open-ended window never applies")
}

func TestQuoteStay(t *testing.T) {
	// 2 rooms at 1500/night for 2 nights: charges 6000, tax 1080, total 7080.
	q := QuoteStay([]Line{{Rate: 1500, Quantity: 2}}, 2)

	assert.Equal(t, 6000.0, q.RoomCharges)
	assert.Equal(t, 1080.0, q.TaxesAndFees)
	assert.Equal(t, 7080.0, q.TotalPrice)
	assert.Equal(t, 3000.0, q.PerNightPrice)
	assert.Equal(t, 2, q.Nights)
}

func TestQuoteStayMultipleLines(t *testing.T) {
	q := QuoteStay([]Line{
		{Rate: 4500, Quantity: 1},
		{Rate: 2800, Quantity: 2},
	}, 3)

	assert.Equal(t, 30300.0, q.RoomCharges)
	assert.Equal(t, 5454.0, q.TaxesAndFees)
	assert.Equal(t, 35754.0, q.TotalPrice)
	assert.Equal(t, 10100.0, q.PerNightPrice)
}

func TestQuotePackageBands(t *testing.T) {
	p := &domain.TourPackage{
		BasePrice:          1000,
		DiscountPercentage: 5,
		PricePerPerson:     true,
		GroupDiscounts: []domain.GroupDiscount{
			{Position: 0, MinPeople: 4, MaxPeople: 6, DiscountPercentage: 10},
			{Position: 1, MinPeople: 5, MaxPeople: 10, DiscountPercentage: 20},
		},
	}

	tests := []struct {
		name      string
		groupSize int
		wantPct   float64
		wantTotal float64
	}{
		{"below all bands falls back to flat discount", 2, 5, 1900},
		{"first band", 4, 10, 3600},
		{"overlap resolves to first declared band", 5, 10, 4500},
		{"second band", 8, 20, 6400},
		{"above all bands falls back to flat discount", 12, 5, 11400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuotePackage(p, tt.groupSize)
			assert.Equal(t, tt.wantPct, q.DiscountPercentage)
			assert.Equal(t, tt.wantTotal, q.TotalPrice)
		})
	}
}

func TestQuotePackageFlatPricing(t *testing.T) {
	p := &domain.TourPackage{
		BasePrice:      5000,
		PricePerPerson: false,
	}
	q := QuotePackage(p, 6)

	assert.Equal(t, 5000.0, q.PerPersonPrice)
	assert.Equal(t, 5000.0, q.TotalPrice, "group size does not multiply a flat-priced package")
}
