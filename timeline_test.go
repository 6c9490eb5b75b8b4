package main

import (
	"testing"
	"time"
)

func TestBuildPlayerHistoryCollapsesInactiveRuns(t *testing.T) {
	now := time.Date(2026, 8, 5, 12, 0, 0, 0, displayZone)
	deposits := []Deposit{
		{Player: "Ann", Amount: 20, Instant: time.Date(2026, 8, 1, 10, 0, 0, 0, displayZone)},
		{Player: "Ann", Amount: 30, Instant: time.Date(2026, 8, 5, 9, 0, 0, 0, displayZone)},
	}

	history := buildPlayerHistory(deposits, now)

	if len(history.Entries) != 3 {
		t.Fatalf("expected 3 timeline entries, got %d", len(history.Entries))
	}

	first := history.Entries[0]
	if !first.IsDepositDay || first.DateRange != "01/08/2026" {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	if first.Activity != "1 deposit ($20.00)" || first.ActivityLevel != "Single" {
		t.Fatalf("unexpected first entry activity: %+v", first)
	}

	run := history.Entries[1]
	if run.IsDepositDay {
		t.Fatalf("expected inactive run, got deposit day: %+v", run)
	}
	if run.DateRange != "02/08/2026 - 04/08/2026" || run.InactiveGap != 3 {
		t.Fatalf("unexpected inactive run: %+v", run)
	}
	if run.Activity != "No deposits" || run.ActivityLevel != "None" {
		t.Fatalf("unexpected inactive run fields: %+v", run)
	}

	last := history.Entries[2]
	if !last.IsDepositDay || last.DateRange != "05/08/2026" {
		t.Fatalf("unexpected last entry: %+v", last)
	}

	if history.CurrentStatus != "Active" {
		t.Fatalf("expected Active status, got %s", history.CurrentStatus)
	}
	if history.RawDeposits != 2 || history.DepositDays != 2 {
		t.Fatalf("unexpected totals: %d deposits across %d days", history.RawDeposits, history.DepositDays)
	}
	if history.TotalAmount != 50 {
		t.Fatalf("expected total 50, got %f", history.TotalAmount)
	}
}

func TestBuildPlayerHistorySingleInactiveDay(t *testing.T) {
	now := time.Date(2026, 8, 3, 12, 0, 0, 0, displayZone)
	deposits := []Deposit{
		{Player: "Bob", Amount: 10, Instant: time.Date(2026, 8, 1, 10, 0, 0, 0, displayZone)},
		{Player: "Bob", Amount: 10, Instant: time.Date(2026, 8, 3, 10, 0, 0, 0, displayZone)},
	}

	history := buildPlayerHistory(deposits, now)
	if len(history.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(history.Entries))
	}

	// A one-day run keeps the single-date label, no range.
	run := history.Entries[1]
	if run.DateRange != "02/08/2026" || run.InactiveGap != 1 {
		t.Fatalf("unexpected single-day run: %+v", run)
	}
}

func TestBuildPlayerHistoryTrailingRun(t *testing.T) {
	now := time.Date(2026, 8, 10, 12, 0, 0, 0, displayZone)
	deposits := []Deposit{
		{Player: "Cy", Amount: 15, Instant: time.Date(2026, 8, 1, 10, 0, 0, 0, displayZone)},
	}

	history := buildPlayerHistory(deposits, now)
	if len(history.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history.Entries))
	}

	trailing := history.Entries[1]
	if trailing.DateRange != "02/08/2026 - 10/08/2026" || trailing.InactiveGap != 9 {
		t.Fatalf("unexpected trailing run: %+v", trailing)
	}
	if history.CurrentStatus != "Inactive" {
		t.Fatalf("expected Inactive status, got %s", history.CurrentStatus)
	}
}

func TestBuildPlayerHistoryMultipleSameDay(t *testing.T) {
	now := time.Date(2026, 8, 1, 20, 0, 0, 0, displayZone)
	deposits := []Deposit{
		{Player: "Dee", Amount: 100, Instant: time.Date(2026, 8, 1, 9, 0, 0, 0, displayZone)},
		{Player: "Dee", Amount: 50, Instant: time.Date(2026, 8, 1, 15, 0, 0, 0, displayZone)},
	}

	history := buildPlayerHistory(deposits, now)
	if len(history.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(history.Entries))
	}

	day := history.Entries[0]
	if day.Activity != "2 deposits ($150.00)" || day.ActivityLevel != "Multiple" {
		t.Fatalf("unexpected same-day entry: %+v", day)
	}
	if day.DepositCount != 2 || day.TotalAmount != 150 {
		t.Fatalf("unexpected same-day totals: %+v", day)
	}
}

func TestBuildPlayerHistoryNoData(t *testing.T) {
	history := buildPlayerHistory([]Deposit{{Player: "Eve", Amount: 5}}, time.Now())
	if history.Message != "No data found for this player" {
		t.Fatalf("unexpected message: %s", history.Message)
	}
	if len(history.Entries) != 0 || history.CurrentStatus != "Inactive" {
		t.Fatalf("unexpected empty history: %+v", history)
	}
}
