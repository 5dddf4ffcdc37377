package engine

import (
	"strings"

	"github.com/adityakr/cctracker/internal/catalog"
)

// Recommendation compares what one hypothetical spend earns on each card
// given the live remaining caps.
type Recommendation struct {
	Winner           catalog.Card
	AirtelCategory   string
	FlipkartCategory string
	AirtelRate       float64
	FlipkartRate     float64
	AirtelEarn       float64
	FlipkartEarn     float64
}

// airtelCategory maps a recommender merchant option to the Airtel catalog.
func airtelCategory(merchant string) string {
	switch merchant {
	case "swiggy", "zomato", "bigbasket", "blinkit":
		return "preferred"
	case "airtel_bill":
		return "airtel_svcs"
	case "utility":
		return "utilities"
	}
	return "other"
}

// flipkartCategory maps the same option to the Flipkart catalog. Zomato is
// not in Flipkart's preferred set, so it earns the base rate there.
func flipkartCategory(merchant string) string {
	switch merchant {
	case "swiggy", "uber", "pvr", "cult":
		return "preferred_fk"
	case "myntra":
		return "myntra"
	case "flipkart":
		return "flipkart"
	}
	return "other"
}

// Recommend picks the better card for spending amount at merchant, using
// the snapshot's remaining caps. Must be called against a fresh snapshot,
// never a cached one. A non-positive amount computes nothing.
func Recommend(s *Snapshot, merchant string, amount float64) Recommendation {
	m := strings.ToLower(strings.TrimSpace(merchant))
	rec := Recommendation{
		Winner:           catalog.Airtel,
		AirtelCategory:   airtelCategory(m),
		FlipkartCategory: flipkartCategory(m),
	}
	if amount <= 0 {
		return rec
	}

	aStat, _ := s.Stat(catalog.Airtel, rec.AirtelCategory)
	fStat, _ := s.Stat(catalog.Flipkart, rec.FlipkartCategory)
	rec.AirtelRate = blendedRate(aStat, amount)
	rec.FlipkartRate = blendedRate(fStat, amount)
	rec.AirtelEarn = amount * rec.AirtelRate
	rec.FlipkartEarn = amount * rec.FlipkartRate

	// >= keeps ties on the monthly-cap card.
	if rec.AirtelEarn >= rec.FlipkartEarn {
		rec.Winner = catalog.Airtel
	} else {
		rec.Winner = catalog.Flipkart
	}
	return rec
}

// blendedRate is the effective rate for a spend that may straddle the
// category's remaining cap: the covered portion earns the category rate,
// the overflow earns the 1% fallback.
func blendedRate(stat *CategoryStat, amount float64) float64 {
	if stat == nil {
		return catalog.FallbackRate
	}
	if stat.Uncapped() {
		return stat.Rate
	}
	remaining := stat.Cap - stat.Cashback
	if remaining <= 0 {
		return catalog.FallbackRate
	}
	if amount*stat.Rate <= remaining {
		return stat.Rate
	}
	atFullRate := remaining / stat.Rate
	return (remaining + (amount-atFullRate)*catalog.FallbackRate) / amount
}
