package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCharmRound(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"13.40", "12.9"},
		{"13.50", "12.9"}, // one half rounds a full unit down
		{"13.51", "13.9"},
		{"13.52", "13.9"},
		{"14.00", "13.9"},
		{"20.00", "19.9"},
		{"19.90", "19.9"},
		{"5.01", "4.9"},
	}
	for _, c := range cases {
		got := CharmRound(dec(c.in))
		if !got.Equal(dec(c.want)) {
			t.Fatalf("CharmRound(%s): got %s want %s", c.in, got, c.want)
		}
	}
}

func TestCharmRoundAlwaysEndsInNinety(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"4.50", "7.31", "11.99", "100.00", "54.49"} {
		got := CharmRound(dec(in))
		cents := got.Mul(decimal.NewFromInt(10)).Mod(decimal.NewFromInt(10))
		if !cents.Equal(decimal.NewFromInt(9)) {
			t.Fatalf("CharmRound(%s)=%s does not end in .90", in, got)
		}
	}
}

func TestFinalThreshold(t *testing.T) {
	t.Parallel()

	p := Params{Markup: dec("1.25"), Shipping: dec("7.50")}

	price, ok := Final(dec("10.00"), p)
	if !ok {
		t.Fatalf("10.00 should clear the threshold")
	}
	if !price.Equal(dec("19.9")) {
		t.Fatalf("price: got %s want 19.9", price)
	}

	// 3.00 * 1.25 = 3.75, below the minimum.
	if _, ok := Final(dec("3.00"), p); ok {
		t.Fatalf("3.00 should be rejected")
	}

	// 3.60 * 1.25 = 4.50, exactly on the boundary.
	if _, ok := Final(dec("3.60"), p); !ok {
		t.Fatalf("boundary cost should pass")
	}
}

func TestFinalDualGatesOnHomePrice(t *testing.T) {
	t.Parallel()

	p := DualParams{
		MarkupHome:  dec("1.25"),
		ShipHome:    dec("7.50"),
		MarkupOther: dec("1.25"),
		ShipOther:   dec("10.50"),
	}

	home, other, ok := FinalDual(dec("10.00"), p)
	if !ok {
		t.Fatalf("10.00 should clear the threshold")
	}
	if !home.Equal(dec("19.9")) {
		t.Fatalf("home price: got %s want 19.9", home)
	}
	// 12.50 + 10.50 = 23.00, fraction 0 rounds a unit down.
	if !other.Equal(dec("22.9")) {
		t.Fatalf("other price: got %s want 22.9", other)
	}

	// The home base decides rejection for both markets.
	if _, _, ok := FinalDual(dec("3.00"), p); ok {
		t.Fatalf("3.00 should be rejected for both markets")
	}
}
