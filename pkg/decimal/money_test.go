package decimal

import (
	"encoding/json"
	"math"
	"testing"

	stddec "github.com/shopspring/decimal"
)

func TestMax0(t *testing.T) {
	if got := Max0(stddec.NewFromInt(-5)); !got.IsZero() {
		t.Fatalf("Max0(-5) got %s", got)
	}
	if got := Max0(stddec.NewFromInt(7)); !got.Equal(stddec.NewFromInt(7)) {
		t.Fatalf("Max0(7) got %s", got)
	}
}

func TestCoerce(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "0"},
		{"nan", math.NaN(), "0"},
		{"inf", math.Inf(1), "0"},
		{"float", 1500.5, "1500.5"},
		{"int", 42, "42"},
		{"int64", int64(-3), "-3"},
		{"string", " 1200.75 ", "1200.75"},
		{"string with separators", "$1,234.50", "1234.5"},
		{"empty string", "", "0"},
		{"garbage", "abc", "0"},
		{"json number", json.Number("99.9"), "99.9"},
		{"bool", true, "0"},
		{"decimal", stddec.NewFromInt(8), "8"},
	}
	for _, c := range cases {
		got := Coerce(c.in)
		want := stddec.RequireFromString(c.want)
		if !got.Equal(want) {
			t.Fatalf("%s: Coerce(%v) got %s want %s", c.name, c.in, got, want)
		}
	}
}

func TestFormatMXN(t *testing.T) {
	cases := []struct{ in, out string }{
		{"0", "$0.00"},
		{"5", "$5.00"},
		{"123", "$123.00"},
		{"1234.5", "$1,234.50"},
		{"1234567.891", "$1,234,567.89"},
		{"-98765.4", "-$98,765.40"},
		{"-0.001", "$0.00"},
	}
	for _, c := range cases {
		got := FormatMXN(stddec.RequireFromString(c.in))
		if got != c.out {
			t.Fatalf("FormatMXN(%s) got %s want %s", c.in, got, c.out)
		}
	}
}
