package main

import (
	"testing"
	"time"
)

func TestBuildMonthlyDepositsCurrentMonth(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, displayZone)
	deposits := []Deposit{
		{Player: "Ann", Amount: 100, Instant: time.Date(2026, 8, 5, 10, 0, 0, 0, displayZone)},
		{Player: "Bob", Amount: 50, Instant: time.Date(2026, 8, 6, 11, 0, 0, 0, displayZone)},
		{Player: "Ann", Amount: 200, Instant: time.Date(2026, 7, 10, 10, 0, 0, 0, displayZone)},
	}

	result := buildMonthlyDeposits(deposits, 0, now)
	if !result.Success {
		t.Fatalf("expected success, got %s", result.Message)
	}

	// The current month is truncated at today.
	if result.TotalDaysInPeriod != 20 || len(result.DailyDeposits) != 20 {
		t.Fatalf("expected 20 days, got %d", len(result.DailyDeposits))
	}
	if result.TotalAmount != 150 || result.TotalTransactions != 2 {
		t.Fatalf("unexpected totals: %f across %d transactions", result.TotalAmount, result.TotalTransactions)
	}
	if result.CurrentMonth != "Aug 2026" {
		t.Fatalf("unexpected current month: %s", result.CurrentMonth)
	}
	if len(result.AvailableMonths) != 2 || result.AvailableMonths[0].Month != "2026-08" {
		t.Fatalf("unexpected available months: %+v", result.AvailableMonths)
	}

	// Newest day first.
	if result.DailyDeposits[0].Date != "2026-08-20" {
		t.Fatalf("expected newest day first, got %s", result.DailyDeposits[0].Date)
	}

	var aug6 *DailyDeposit
	for i := range result.DailyDeposits {
		if result.DailyDeposits[i].Date == "2026-08-06" {
			aug6 = &result.DailyDeposits[i]
		}
	}
	if aug6 == nil {
		t.Fatal("expected entry for 2026-08-06")
	}
	if aug6.TotalAmount != 50 || aug6.TransactionCount != 1 {
		t.Fatalf("unexpected day totals: %+v", aug6)
	}
	if aug6.Trend == nil {
		t.Fatal("expected trend against the prior day")
	}
	if aug6.Trend.Difference != -50 || aug6.Trend.Percentage != -50.0 || aug6.Trend.Direction != "down" {
		t.Fatalf("unexpected trend: %+v", aug6.Trend)
	}

	cmp := result.MonthlyComparison
	if cmp == nil {
		t.Fatal("expected month-over-month comparison")
	}
	if cmp.PreviousMonth != "Jul 2026" || cmp.PreviousMonthTotal != 200 {
		t.Fatalf("unexpected comparison baseline: %+v", cmp)
	}
	if cmp.Difference != -50 || cmp.Percentage != -25.0 || cmp.Direction != "down" {
		t.Fatalf("unexpected comparison: %+v", cmp)
	}
}

func TestBuildMonthlyDepositsOffset(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, displayZone)
	deposits := []Deposit{
		{Player: "Ann", Amount: 100, Instant: time.Date(2026, 8, 5, 10, 0, 0, 0, displayZone)},
		{Player: "Ann", Amount: 200, Instant: time.Date(2026, 7, 10, 10, 0, 0, 0, displayZone)},
	}

	result := buildMonthlyDeposits(deposits, 1, now)
	if result.CurrentMonth != "Jul 2026" {
		t.Fatalf("unexpected month at offset 1: %s", result.CurrentMonth)
	}
	// A past month renders in full.
	if len(result.DailyDeposits) != 31 {
		t.Fatalf("expected 31 days for July, got %d", len(result.DailyDeposits))
	}
	if result.TotalAmount != 200 {
		t.Fatalf("expected July total 200, got %f", result.TotalAmount)
	}
	if result.MonthlyComparison != nil {
		t.Fatal("expected no comparison for the oldest month")
	}
	if result.CurrentPage != 2 || result.TotalPages != 2 {
		t.Fatalf("unexpected paging: page %d of %d", result.CurrentPage, result.TotalPages)
	}
}

func TestBuildMonthlyDepositsLeapFebruary(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, displayZone)
	deposits := []Deposit{
		{Player: "Ann", Amount: 10, Instant: time.Date(2024, 2, 10, 10, 0, 0, 0, displayZone)},
	}

	result := buildMonthlyDeposits(deposits, 0, now)
	if len(result.DailyDeposits) != 29 {
		t.Fatalf("expected 29 days for February 2024, got %d", len(result.DailyDeposits))
	}
}

func TestBuildMonthlyDepositsIgnoresNonPositive(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, displayZone)
	deposits := []Deposit{
		{Player: "Ann", Amount: 0, Instant: time.Date(2026, 8, 5, 10, 0, 0, 0, displayZone)},
		{Player: "Ann", Amount: -5, Instant: time.Date(2026, 8, 6, 10, 0, 0, 0, displayZone)},
	}

	result := buildMonthlyDeposits(deposits, 0, now)
	if result.Success {
		t.Fatal("expected failure with no positive amounts")
	}
	if result.Message != "No deposit data with positive amounts" {
		t.Fatalf("unexpected message: %s", result.Message)
	}
}

func TestBuildMonthlyDepositsEmpty(t *testing.T) {
	result := buildMonthlyDeposits(nil, 0, time.Now())
	if result.Success || result.Message != "No data found" {
		t.Fatalf("unexpected empty result: %+v", result)
	}
	if result.DailyDeposits == nil || result.AvailableMonths == nil {
		t.Fatal("expected empty slices, not nil")
	}
}
