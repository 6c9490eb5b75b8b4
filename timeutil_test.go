package main

import (
	"testing"
	"time"
)

func TestDayBucketKeyMidnightStraddle(t *testing.T) {
	// 20:30 UTC is already past midnight in the display zone.
	late := time.Date(2026, 8, 19, 20, 30, 0, 0, time.UTC)
	if key := dayBucketKey(late); key != "2026-08-20" {
		t.Fatalf("expected bucket 2026-08-20, got %s", key)
	}

	early := time.Date(2026, 8, 19, 18, 0, 0, 0, time.UTC)
	if key := dayBucketKey(early); key != "2026-08-19" {
		t.Fatalf("expected bucket 2026-08-19, got %s", key)
	}
}

func TestFractionalDaysBetweenFloorsHours(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	almostDay := from.Add(23*time.Hour + 59*time.Minute)
	if got := fractionalDaysBetween(from, almostDay); got != 23.0/24 {
		t.Fatalf("expected 23/24 days, got %f", got)
	}

	overDay := from.Add(25 * time.Hour)
	if got := fractionalDaysBetween(from, overDay); got != 25.0/24 {
		t.Fatalf("expected 25/24 days, got %f", got)
	}
}

func TestFormatDisplayTime(t *testing.T) {
	if got := formatDisplayTime(time.Time{}); got != "N/A" {
		t.Fatalf("expected N/A for zero time, got %s", got)
	}

	instant := time.Date(2026, 8, 20, 7, 5, 9, 0, time.UTC)
	if got := formatDisplayTime(instant); got != "20/08/2026, 12:05:09 PM" {
		t.Fatalf("unexpected display time: %s", got)
	}
}

func TestFormatTimeSince(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		last time.Time
		want string
	}{
		{time.Time{}, "N/A"},
		{now.Add(10 * time.Minute), "Just now"},
		{now.Add(-30 * time.Minute), "30 minutes ago"},
		{now.Add(-5*time.Hour - 20*time.Minute), "5 hours 20 minutes ago"},
		{now.Add(-24 * time.Hour), "1 day 0 hours ago"},
		{now.Add(-51 * time.Hour), "2 days 3 hours ago"},
	}
	for _, c := range cases {
		if got := formatTimeSince(now, c.last); got != c.want {
			t.Fatalf("formatTimeSince(%v): expected %q, got %q", c.last, c.want, got)
		}
	}
}

func TestStartOfDisplayDay(t *testing.T) {
	instant := time.Date(2026, 8, 19, 20, 30, 0, 0, time.UTC)
	start := startOfDisplayDay(instant)
	if start.Hour() != 0 || start.Minute() != 0 {
		t.Fatalf("expected midnight, got %v", start)
	}
	if start.Day() != 20 {
		t.Fatalf("expected display day 20, got %d", start.Day())
	}
}
