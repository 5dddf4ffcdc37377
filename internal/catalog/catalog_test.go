package catalog

import (
	"encoding/json"
	"testing"
)

func TestCategoriesFor(t *testing.T) {
	airtel := CategoriesFor(Airtel)
	if len(airtel) != 4 {
		t.Fatalf("airtel catalog has %d rules, want 4", len(airtel))
	}
	for _, r := range airtel {
		if r.Period != Monthly {
			t.Errorf("%s: airtel is always monthly", r.ID)
		}
	}

	flipkart := CategoriesFor(Flipkart)
	if len(flipkart) != 5 {
		t.Fatalf("flipkart catalog has %d rules, want 5", len(flipkart))
	}
	quarterly := 0
	for _, r := range flipkart {
		if r.Period == Quarterly {
			quarterly++
		}
		if r.Rate <= 0 || r.Rate > 1 {
			t.Errorf("%s: rate %v out of (0,1]", r.ID, r.Rate)
		}
	}
	if quarterly != 3 {
		t.Errorf("flipkart has %d quarterly rules, want 3", quarterly)
	}

	// Tables are immutable: mutating the returned slice must not leak.
	airtel[0].Rate = 0.99
	if fresh := CategoriesFor(Airtel); fresh[0].Rate == 0.99 {
		t.Error("CategoriesFor must return a copy")
	}
}

func TestRuleFor(t *testing.T) {
	r, ok := RuleFor(Flipkart, "myntra")
	if !ok || r.Rate != 0.075 || r.Cap != 4000 || r.Period != Quarterly {
		t.Errorf("myntra rule = %+v, ok=%v", r, ok)
	}
	if _, ok := RuleFor(Airtel, "myntra"); ok {
		t.Error("myntra should not exist on the airtel card")
	}
	if _, ok := RuleFor(Airtel, "ghost"); ok {
		t.Error("unknown id should not resolve")
	}
}

func TestCardJSONRoundTrip(t *testing.T) {
	for _, card := range AllCards() {
		raw, err := json.Marshal(card)
		if err != nil {
			t.Fatalf("marshal %s: %v", card, err)
		}
		var back Card
		if err := json.Unmarshal(raw, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if back != card {
			t.Errorf("round trip changed %s into %s", card, back)
		}
	}

	var c Card
	if err := json.Unmarshal([]byte(`"amex"`), &c); err == nil {
		t.Error("unknown card key should fail to unmarshal")
	}
}
