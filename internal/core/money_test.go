package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{"1.004", 100, true},
		{" 2.50 ", 250, true},
		{"1e2", 10000, true},
		{"-1", -100, true},
		{"0", 0, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"1e40", 0, false}, // out of range
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error, got %d", tc.in, got.Cents)
		}
	}
}

func TestCoerceAmount(t *testing.T) {
	if got := CoerceAmount("abc"); got.Cents != 0 {
		t.Fatalf("expected 0 for non-numeric input, got %d", got.Cents)
	}
	if got := CoerceAmount(""); got.Cents != 0 {
		t.Fatalf("expected 0 for empty input, got %d", got.Cents)
	}
	if got := CoerceAmount("60"); got.Cents != 6000 {
		t.Fatalf("expected 6000, got %d", got.Cents)
	}
}

func TestSignedAmount(t *testing.T) {
	cases := []struct {
		typ  TransactionType
		in   int64
		want int64
	}{
		{Income, 500, 500},
		{Income, -500, 500},
		{Expense, 500, -500},
		{Expense, -500, -500},
		{Expense, 0, 0},
	}
	for _, tc := range cases {
		got := SignedAmount(tc.typ, Money{Cents: tc.in})
		if got.Cents != tc.want {
			t.Fatalf("SignedAmount(%s, %d) = %d, want %d", tc.typ, tc.in, got.Cents, tc.want)
		}
	}
}

func TestMoneyString(t *testing.T) {
	if s := (Money{Cents: 123456}).String(); s != "1234.56" {
		t.Fatalf("unexpected string %q", s)
	}
	if s := (Money{Cents: -5}).String(); s != "-0.05" {
		t.Fatalf("unexpected string %q", s)
	}
}
