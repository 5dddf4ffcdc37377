package engine

import (
	"sort"

	"github.com/adityakr/cctracker/internal/catalog"
	"github.com/adityakr/cctracker/internal/ledger"
	"github.com/adityakr/cctracker/internal/period"
)

// Bucket is one billing cycle's approximate cashback, keyed by the cycle's
// start month.
type Bucket struct {
	Key      string // "2026-01"
	Label    string // "Jan 26"
	Cashback float64
}

// Trend is the historical view: the most recent six cycles for charting
// plus the lifetime total across all of them.
type Trend struct {
	Chart    []Bucket
	Lifetime float64
}

// History buckets every transaction by its billing cycle and sums a
// flat-rate cashback estimate per bucket. The estimate deliberately
// ignores caps and quarterly reconstruction; it is a documented
// approximation, cheap enough to run over the whole ledger. Categories
// missing from the catalog count at the fallback rate.
func History(txns []ledger.Transaction) Trend {
	buckets := make(map[string]*Bucket)
	for _, t := range txns {
		start := period.MonthlyCycle(t.Date).Start
		key := start.Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &Bucket{Key: key, Label: start.Format("Jan 06")}
			buckets[key] = b
		}
		rate := catalog.FallbackRate
		if r, found := catalog.RuleFor(t.Card, t.Category); found {
			rate = r.Rate
		}
		b.Cashback += t.Amount * rate
	}

	ordered := make([]Bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, *b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Key < ordered[j].Key })

	var trend Trend
	for _, b := range ordered {
		trend.Lifetime += b.Cashback
	}
	if len(ordered) > 6 {
		ordered = ordered[len(ordered)-6:]
	}
	trend.Chart = ordered
	return trend
}
