package main

import (
	"fmt"
	"sort"
	"time"
)

type TimelineEntry struct {
	DateRange     string  `json:"dateRange"`
	Activity      string  `json:"activity"`
	Status        string  `json:"status"`
	InactiveGap   int     `json:"inactiveGap"`
	ActivityLevel string  `json:"activityLevel"`
	DepositCount  int     `json:"depositCount"`
	TotalAmount   float64 `json:"totalAmount"`
	IsDepositDay  bool    `json:"isDepositDay"`
}

type PlayerHistory struct {
	Entries       []TimelineEntry `json:"enhancedHistory"`
	CurrentStatus string          `json:"currentStatus"`
	RawDeposits   int             `json:"rawDeposits"`
	DepositDays   int             `json:"totalDepositDays"`
	TotalAmount   float64         `json:"totalAmount"`
	TimeSince     string          `json:"timeSinceDisplay"`
	Message       string          `json:"message"`
}

func emptyPlayerHistory(message string) PlayerHistory {
	return PlayerHistory{
		Entries:       []TimelineEntry{},
		CurrentStatus: "Inactive",
		TimeSince:     "N/A",
		Message:       message,
	}
}

type timelineDay struct {
	count  int
	amount float64
}

// buildPlayerHistory turns one player's full deposit history into a complete
// day-by-day timeline from the first deposit day through today. Deposit days
// become one entry each; every maximal run of consecutive no-deposit days
// collapses into a single entry carrying the run length. Entries are emitted
// oldest first; presentation reverses them.
func buildPlayerHistory(deposits []Deposit, now time.Time) PlayerHistory {
	valid := make([]Deposit, 0, len(deposits))
	for _, d := range deposits {
		if !d.Instant.IsZero() {
			valid = append(valid, d)
		}
	}
	if len(valid) == 0 {
		return emptyPlayerHistory("No data found for this player")
	}

	sort.SliceStable(valid, func(i, j int) bool { return valid[i].Instant.Before(valid[j].Instant) })

	latest := valid[len(valid)-1].Instant
	currentStatus := "Inactive"
	if fractionalDaysBetween(latest, now) <= daysActive {
		currentStatus = "Active"
	}

	byDay := make(map[string]*timelineDay)
	totalAmount := 0.0
	for _, d := range valid {
		key := dayBucketKey(d.Instant)
		day := byDay[key]
		if day == nil {
			day = &timelineDay{}
			byDay[key] = day
		}
		day.count++
		day.amount += d.Amount
		totalAmount += d.Amount
	}

	entries := []TimelineEntry{}
	today := startOfDisplayDay(now)

	runStart := time.Time{}
	runLength := 0
	flushRun := func(end time.Time) {
		if runLength == 0 {
			return
		}
		label := formatDisplayDate(runStart)
		if runLength > 1 {
			label = fmt.Sprintf("%s - %s", label, formatDisplayDate(end))
		}
		entries = append(entries, TimelineEntry{
			DateRange:     label,
			Activity:      "No deposits",
			Status:        "Inactive",
			InactiveGap:   runLength,
			ActivityLevel: "None",
		})
		runLength = 0
	}

	for day := startOfDisplayDay(valid[0].Instant); !day.After(today); day = day.AddDate(0, 0, 1) {
		bucket := byDay[dayBucketKey(day)]
		if bucket == nil {
			if runLength == 0 {
				runStart = day
			}
			runLength++
			continue
		}
		flushRun(day.AddDate(0, 0, -1))

		depositText := fmt.Sprintf("%d deposits", bucket.count)
		if bucket.count == 1 {
			depositText = "1 deposit"
		}
		if bucket.amount > 0 {
			depositText += fmt.Sprintf(" ($%.2f)", bucket.amount)
		}
		level := "Single"
		if bucket.count > 1 {
			level = "Multiple"
		}
		entries = append(entries, TimelineEntry{
			DateRange:     formatDisplayDate(day),
			Activity:      depositText,
			Status:        "Active",
			ActivityLevel: level,
			DepositCount:  bucket.count,
			TotalAmount:   bucket.amount,
			IsDepositDay:  true,
		})
	}
	flushRun(today)

	firstDay := formatDisplayDate(valid[0].Instant)
	lastDay := formatDisplayDate(latest)

	return PlayerHistory{
		Entries:       entries,
		CurrentStatus: currentStatus,
		RawDeposits:   len(valid),
		DepositDays:   len(byDay),
		TotalAmount:   totalAmount,
		TimeSince:     formatTimeSince(now, latest),
		Message: fmt.Sprintf("Found %d deposit(s) across %d day(s) from %s to %s",
			len(valid), len(byDay), firstDay, lastDay),
	}
}
