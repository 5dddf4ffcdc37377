// Package engine computes cashback from the raw ledger. Everything here is
// a pure function of (transactions, reference date); nothing is cached or
// persisted, so recomputation is always safe.
package engine

import (
	"math"
	"time"

	"github.com/adityakr/cctracker/internal/catalog"
	"github.com/adityakr/cctracker/internal/ledger"
	"github.com/adityakr/cctracker/internal/period"
)

// CategoryStat is a catalog rule plus the spend accrued in its accounting
// period and the capped cashback that spend earns.
type CategoryStat struct {
	catalog.Rule
	Spend    float64
	Cashback float64
}

// AirtelSummary is the monthly rollup for the monthly-only card.
type AirtelSummary struct {
	TotalSpend    float64
	TotalCashback float64
}

// FlipkartSummary is the rollup for the hybrid card: quarter figures for
// the capped categories plus the current statement's spend and cashback.
type FlipkartSummary struct {
	QuarterSpend    float64
	QuarterCashback float64
	MonthSpend      float64
	MonthCashback   float64
}

// Snapshot is one full accrual pass over the ledger at a reference date.
type Snapshot struct {
	Cycle    period.Window
	Quarter  period.Window
	Airtel   map[string]*CategoryStat
	Flipkart map[string]*CategoryStat

	AirtelSummary   AirtelSummary
	FlipkartSummary FlipkartSummary
}

func newStats(card catalog.Card) map[string]*CategoryStat {
	stats := make(map[string]*CategoryStat)
	for _, r := range catalog.CategoriesFor(card) {
		stats[r.ID] = &CategoryStat{Rule: r}
	}
	return stats
}

// Compute aggregates the ledger into per-category stats and card summaries
// for the billing cycle and quarter containing today. Every catalog
// category appears in the output even with zero spend; transactions whose
// category is no longer in the catalog contribute nothing.
func Compute(txns []ledger.Transaction, today time.Time) *Snapshot {
	s := &Snapshot{
		Cycle:    period.MonthlyCycle(today),
		Quarter:  period.QuarterlyWindow(today),
		Airtel:   newStats(catalog.Airtel),
		Flipkart: newStats(catalog.Flipkart),
	}

	// Flipkart spend inside the current cycle, per category, kept aside
	// for the current-bill cashback reconstruction below.
	cycleSpend := make(map[string]float64)

	for _, t := range txns {
		inCycle := period.InRange(t.Date, s.Cycle.Start, s.Cycle.End)
		switch t.Card {
		case catalog.Airtel:
			stat, ok := s.Airtel[t.Category]
			if !ok {
				continue
			}
			if inCycle {
				stat.Spend += t.Amount
			}
		case catalog.Flipkart:
			stat, ok := s.Flipkart[t.Category]
			if !ok {
				continue
			}
			if stat.Period == catalog.Quarterly {
				if period.InRange(t.Date, s.Quarter.Start, s.Quarter.End) {
					stat.Spend += t.Amount
					s.FlipkartSummary.QuarterSpend += t.Amount
				}
			} else if inCycle {
				stat.Spend += t.Amount
			}
			// The statement bills everything in the cycle, whichever
			// window the category accrues in.
			if inCycle {
				s.FlipkartSummary.MonthSpend += t.Amount
				cycleSpend[t.Category] += t.Amount
			}
		}
	}

	for _, r := range catalog.CategoriesFor(catalog.Airtel) {
		stat := s.Airtel[r.ID]
		stat.Cashback = math.Min(stat.Spend*r.Rate, r.Cap)
		s.AirtelSummary.TotalSpend += stat.Spend
		s.AirtelSummary.TotalCashback += stat.Cashback
	}
	for _, r := range catalog.CategoriesFor(catalog.Flipkart) {
		stat := s.Flipkart[r.ID]
		stat.Cashback = math.Min(stat.Spend*r.Rate, r.Cap)
		if r.Period == catalog.Quarterly {
			s.FlipkartSummary.QuarterCashback += stat.Cashback
		}
	}

	// Current-bill cashback for the hybrid card. For quarterly categories
	// the cap may already be partly consumed by earlier months of the same
	// quarter, so this month only earns against what is left of it.
	for _, r := range catalog.CategoriesFor(catalog.Flipkart) {
		month := cycleSpend[r.ID]
		if month <= 0 {
			continue
		}
		if r.Period == catalog.Quarterly {
			prevSpend := math.Max(0, s.Flipkart[r.ID].Spend-month)
			prevCashback := math.Min(prevSpend*r.Rate, r.Cap)
			remaining := r.Cap - prevCashback
			if remaining > 0 {
				s.FlipkartSummary.MonthCashback += math.Min(month*r.Rate, remaining)
			}
		} else {
			s.FlipkartSummary.MonthCashback += month * r.Rate
		}
	}

	return s
}

// Stat returns the live stat for a card's category, if the catalog has it.
func (s *Snapshot) Stat(card catalog.Card, id string) (*CategoryStat, bool) {
	stats := s.Airtel
	if card == catalog.Flipkart {
		stats = s.Flipkart
	}
	stat, ok := stats[id]
	return stat, ok
}

// Categories returns the card's stats in catalog order.
func (s *Snapshot) Categories(card catalog.Card) []CategoryStat {
	rules := catalog.CategoriesFor(card)
	out := make([]CategoryStat, 0, len(rules))
	for _, r := range rules {
		stat, _ := s.Stat(card, r.ID)
		out = append(out, *stat)
	}
	return out
}

// Preview estimates the cashback one more spend would earn right now,
// against the category's remaining cap. A non-positive amount computes
// nothing. capped reports that some or all of the spend fell past the cap.
func (s *Snapshot) Preview(card catalog.Card, category string, amount float64) (earn float64, capped bool) {
	if amount <= 0 {
		return 0, false
	}
	stat, ok := s.Stat(card, category)
	if !ok {
		return 0, false
	}
	raw := amount * stat.Rate
	if stat.Uncapped() {
		return raw, false
	}
	remaining := stat.Cap - stat.Cashback
	if remaining <= 0 {
		return 0, true
	}
	if raw > remaining {
		return remaining, true
	}
	return raw, false
}
