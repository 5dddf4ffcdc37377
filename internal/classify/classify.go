// Package classify guesses a reward category from free-text merchant names.
package classify

import (
	"strings"

	"github.com/adityakr/cctracker/internal/catalog"
)

// rule pairs a keyword set with the category it selects. Chains are
// evaluated in order and the first match wins, so brand-specific rules
// must come before broader ones.
type rule struct {
	keywords []string
	category string
}

var airtelChain = []rule{
	{keywords: []string{"swiggy", "zomato", "bigbasket", "blinkit"}, category: "preferred"},
	{keywords: []string{"airtel"}, category: "airtel_svcs"},
	{keywords: []string{"power", "bescom", "gas", "water", "bill"}, category: "utilities"},
}

var flipkartChain = []rule{
	{keywords: []string{"myntra"}, category: "myntra"},
	{keywords: []string{"flipkart"}, category: "flipkart"},
	{keywords: []string{"cleartrip"}, category: "cleartrip"},
	{keywords: []string{"swiggy", "uber", "pvr", "cult"}, category: "preferred_fk"},
}

// Classify maps a merchant string to a category id of the card's catalog.
// Matching is case-insensitive substring; no match falls back to "other".
func Classify(merchant string, card catalog.Card) string {
	m := strings.ToLower(merchant)
	chain := airtelChain
	if card == catalog.Flipkart {
		chain = flipkartChain
	}
	for _, r := range chain {
		for _, kw := range r.keywords {
			if strings.Contains(m, kw) {
				return r.category
			}
		}
	}
	return "other"
}
