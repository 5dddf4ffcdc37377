package axis

import (
	"testing"
	"time"

	"github.com/adityakr/cctracker/internal/catalog"
)

func TestParseVariants(t *testing.T) {
	cases := []struct {
		name         string
		msg          string
		wantAmount   float64
		wantLast4    string
		wantDate     string
		wantMerchant string
	}{
		{
			name: "multiline alert",
			msg: "Spent INR 1,299.00\nCard no. XX5214\n17-01-26 12:30:45\nMYNTRA DESIGNS\nAvl Lmt INR 42,000.00",
			wantAmount: 1299,
			wantLast4: "5214",
			wantDate: "2026-01-17",
			wantMerchant: "MYNTRA DESIGNS",
		},
		{
			name: "single line with Rs and preposition merchant",
			msg: "Spent Rs. 450 at SWIGGY on 18-09-25 using Card no. XX8316",
			wantAmount: 450,
			wantLast4: "8316",
			wantDate: "2025-09-18",
			wantMerchant: "SWIGGY",
		},
		{
			name: "no decimals, blank lines",
			msg: "Spent INR 250\n\nCard no. XX8316\n03-04-26 08:15:00\nAIRTEL PAYMENTS\n",
			wantAmount: 250,
			wantLast4: "8316",
			wantDate: "2026-04-03",
			wantMerchant: "AIRTEL PAYMENTS",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := Parse(c.msg)
			if p.Amount != c.wantAmount {
				t.Errorf("Amount = %v, want %v", p.Amount, c.wantAmount)
			}
			if p.Last4 != c.wantLast4 {
				t.Errorf("Last4 = %q, want %q", p.Last4, c.wantLast4)
			}
			if got := p.Date.Format(time.DateOnly); got != c.wantDate {
				t.Errorf("Date = %s, want %s", got, c.wantDate)
			}
			if p.Merchant != c.wantMerchant {
				t.Errorf("Merchant = %q, want %q", p.Merchant, c.wantMerchant)
			}
		})
	}
}

func TestParsePartialAndGarbage(t *testing.T) {
	// Arbitrary text must never fail; unmatched fields stay zero.
	p := Parse("hello, is this the merchant support line?")
	if p.Amount != 0 || p.Last4 != "" || !p.Date.IsZero() || p.Merchant != "" {
		t.Errorf("garbage input should parse to a zero record, got %+v", p)
	}

	// Amount alone is still worth returning.
	p = Parse("Spent INR 99.00 somewhere unusual")
	if p.Amount != 99 {
		t.Errorf("Amount = %v, want 99", p.Amount)
	}
	if p.Last4 != "" || !p.Date.IsZero() {
		t.Errorf("unexpected extra fields: %+v", p)
	}
}

func TestDetectCard(t *testing.T) {
	mapping := map[string]catalog.Card{
		"8316": catalog.Airtel,
		"5214": catalog.Flipkart,
	}

	cases := []struct {
		name string
		text string
		p    Parsed
		want catalog.Card
	}{
		{"mapped last4 wins", "Spent INR 10 Card no. XX5214", Parsed{Last4: "5214"}, catalog.Flipkart},
		{"unmapped last4 falls to keyword", "Airtel Axis Bank Card no. XX9999", Parsed{Last4: "9999"}, catalog.Airtel},
		{"keyword flipkart", "your Flipkart Axis card was used", Parsed{}, catalog.Flipkart},
		{"nothing matches, caller fallback", "Spent INR 10", Parsed{}, catalog.Airtel},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := DetectCard(c.text, c.p, mapping, catalog.Airtel); got != c.want {
				t.Errorf("DetectCard = %s, want %s", got, c.want)
			}
		})
	}
}
