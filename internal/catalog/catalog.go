// Package catalog holds the static reward rules for both cards. Every other
// package consults these tables; nothing duplicates them.
package catalog

import (
	"fmt"
	"math"
)

// Card identifies one of the two tracked credit cards.
type Card int

const (
	Airtel Card = iota
	Flipkart
)

// FallbackRate is the baseline uncapped rate every spend earns once a
// category cap is exhausted (or when no category applies).
const FallbackRate = 0.01

func (c Card) String() string {
	switch c {
	case Airtel:
		return "Airtel Axis"
	case Flipkart:
		return "Flipkart Axis"
	}
	return fmt.Sprintf("Card(%d)", int(c))
}

// key is the stable identifier used in the persisted ledger and on the CLI.
func (c Card) key() string {
	if c == Flipkart {
		return "flipkart"
	}
	return "airtel"
}

func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.key()), nil
}

func (c *Card) UnmarshalText(text []byte) error {
	card, ok := ParseCard(string(text))
	if !ok {
		return fmt.Errorf("unknown card %q", text)
	}
	*c = card
	return nil
}

// ParseCard maps a stable card key ("airtel", "flipkart") to its Card.
func ParseCard(s string) (Card, bool) {
	switch s {
	case "airtel":
		return Airtel, true
	case "flipkart":
		return Flipkart, true
	}
	return Airtel, false
}

// AllCards returns both cards in display order.
func AllCards() []Card {
	return []Card{Airtel, Flipkart}
}

// PeriodType says which accounting window a category's cap lives in.
type PeriodType int

const (
	Monthly PeriodType = iota
	Quarterly
)

// Rule is one reward category of a card's catalog. Cap is a cashback
// ceiling, not a spend ceiling; math.Inf(1) means uncapped.
type Rule struct {
	ID     string
	Name   string
	Rate   float64
	Cap    float64
	Period PeriodType
}

// Uncapped reports whether the rule's cashback has no ceiling.
func (r Rule) Uncapped() bool {
	return math.IsInf(r.Cap, 1)
}

var airtelRules = []Rule{
	{ID: "airtel_svcs", Name: "Airtel Services (App)", Rate: 0.25, Cap: 250, Period: Monthly},
	{ID: "utilities", Name: "Utilities (Airtel App)", Rate: 0.10, Cap: 250, Period: Monthly},
	{ID: "preferred", Name: "Preferred (Zomato/Swiggy/BB)", Rate: 0.10, Cap: 500, Period: Monthly},
	{ID: "other", Name: "Other Spends", Rate: 0.01, Cap: math.Inf(1), Period: Monthly},
}

var flipkartRules = []Rule{
	{ID: "myntra", Name: "Myntra", Rate: 0.075, Cap: 4000, Period: Quarterly},
	{ID: "flipkart", Name: "Flipkart", Rate: 0.05, Cap: 4000, Period: Quarterly},
	{ID: "cleartrip", Name: "Cleartrip", Rate: 0.05, Cap: 4000, Period: Quarterly},
	{ID: "preferred_fk", Name: "Preferred (Swiggy/Uber/PVR)", Rate: 0.04, Cap: math.Inf(1), Period: Monthly},
	{ID: "other", Name: "Other Spends", Rate: 0.01, Cap: math.Inf(1), Period: Monthly},
}

// CategoriesFor returns the card's reward categories in catalog order.
// Callers get a copy; the tables are immutable.
func CategoriesFor(card Card) []Rule {
	if card == Flipkart {
		return append([]Rule(nil), flipkartRules...)
	}
	return append([]Rule(nil), airtelRules...)
}

// RuleFor looks up a single category by id.
func RuleFor(card Card, id string) (Rule, bool) {
	rules := airtelRules
	if card == Flipkart {
		rules = flipkartRules
	}
	for _, r := range rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}
