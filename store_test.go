package main

import (
	"testing"
	"time"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"100", 100},
		{"99.50", 99.5},
		{"$1,234.50", 1234.5},
		{" $20 ", 20},
		{"", 0},
		{"abc", 0},
		{"-10", 0},
	}
	for _, c := range cases {
		if got := parseAmount(c.in); got != c.want {
			t.Fatalf("parseAmount(%q): expected %f, got %f", c.in, c.want, got)
		}
	}
}

func TestParseDepositTime(t *testing.T) {
	got := parseDepositTime("2026-08-20T07:05:09Z")
	want := time.Date(2026, 8, 20, 7, 5, 9, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if !parseDepositTime("2026-08-20 07:05:09").Equal(want) {
		t.Fatal("expected space-separated layout to parse")
	}

	dateOnly := parseDepositTime("2026-08-20")
	if dateOnly.IsZero() {
		t.Fatal("expected date-only layout to parse")
	}

	if !parseDepositTime("garbage").IsZero() {
		t.Fatal("expected unparseable timestamp to yield zero time")
	}
	if !parseDepositTime("").IsZero() {
		t.Fatal("expected empty timestamp to yield zero time")
	}
}
