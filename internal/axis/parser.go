// Package axis extracts transaction fields from Axis Bank card alert SMS
// text. Parsing is best-effort: any field may be absent and absence is not
// an error; callers apply their own defaults.
package axis

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/adityakr/cctracker/internal/catalog"
)

var (
	// "Spent INR 1,234.00" / "Spent Rs. 450"
	amountRe = regexp.MustCompile(`(?i)Spent\s+(?:INR|Rs\.?)\s*([\d,]+(?:\.\d{2})?)`)
	// "Card no. XX5214"
	cardRe = regexp.MustCompile(`(?i)Card\s+no\.\s+XX(\d{4})`)
	// "17-01-26" (DD-MM-YY, century assumed 2000s)
	dateRe = regexp.MustCompile(`(\d{2})-(\d{2})-(\d{2})`)
	// Fallback merchant phrase: "at SWIGGY on", "to MYNTRA using", ...
	merchantRe = regexp.MustCompile(`(?i)(?:at|to|via)\s+([A-Za-z0-9\s&*]+?)(?:\s+(?:on|using|with|txn)|$)`)
)

// Parsed is the partial record extracted from one SMS. Zero values mean
// the field was not found.
type Parsed struct {
	Amount   float64
	Last4    string
	Date     time.Time
	Merchant string
}

// Parse pulls whatever fields it can confidently extract out of raw SMS
// text. It never fails; unmatched fields stay zero.
func Parse(text string) Parsed {
	var p Parsed

	if m := amountRe.FindStringSubmatch(text); m != nil {
		if amt, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			p.Amount = amt
		}
	}

	if m := cardRe.FindStringSubmatch(text); m != nil {
		p.Last4 = m[1]
	}

	if m := dateRe.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		p.Date = time.Date(2000+year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	}

	// Merchant is usually the line right after the date line.
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	for i, line := range lines {
		if dateRe.MatchString(line) {
			if i+1 < len(lines) {
				p.Merchant = lines[i+1]
			}
			break
		}
	}
	if p.Merchant == "" {
		if m := merchantRe.FindStringSubmatch(text); m != nil {
			p.Merchant = strings.TrimSpace(m[1])
		}
	}

	return p
}

// DetectCard picks the card for a parsed SMS: the last-4 mapping first,
// then a card-name keyword in the text, then the caller's previous
// selection.
func DetectCard(text string, p Parsed, mapping map[string]catalog.Card, fallback catalog.Card) catalog.Card {
	if p.Last4 != "" {
		if card, ok := mapping[p.Last4]; ok {
			return card
		}
	}
	lower := strings.ToLower(text)
	if strings.Contains(lower, "airtel") {
		return catalog.Airtel
	}
	if strings.Contains(lower, "flipkart") {
		return catalog.Flipkart
	}
	return fallback
}
