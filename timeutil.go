package main

import (
	"fmt"
	"math"
	"time"
)

// All day-level bucketing and human-facing timestamps use a fixed UTC+5
// display zone. No DST; the offset is constant year round.
var displayZone = time.FixedZone("UTC+5", 5*60*60)

func toDisplay(t time.Time) time.Time {
	return t.In(displayZone)
}

// formatDisplayTime renders an instant as DD/MM/YYYY, hh:mm:ss AM/PM in the
// display zone.
func formatDisplayTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return toDisplay(t).Format("02/01/2006, 03:04:05 PM")
}

func formatDisplayDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return toDisplay(t).Format("02/01/2006")
}

// dayBucketKey groups instants by display-zone calendar day. Two instants map
// to the same key iff they fall on the same calendar day after the offset.
func dayBucketKey(t time.Time) string {
	return toDisplay(t).Format("2006-01-02")
}

// startOfDisplayDay truncates to 00:00:00 in the display zone.
func startOfDisplayDay(t time.Time) time.Time {
	d := toDisplay(t)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, displayZone)
}

// wholeHoursBetween floors the elapsed time to whole hours. Gap math divides
// this by 24 rather than using the raw duration, so a 23h59m gap is 0.958
// days, not rounded up.
func wholeHoursBetween(from time.Time, to time.Time) int {
	return int(math.Floor(to.Sub(from).Hours()))
}

// fractionalDaysBetween is the floored-hour delta expressed in days.
func fractionalDaysBetween(from time.Time, to time.Time) float64 {
	return float64(wholeHoursBetween(from, to)) / 24
}

// floorDaysSince is the whole-day count used for status presentation.
func floorDaysSince(now time.Time, last time.Time) int {
	return int(math.Floor(now.Sub(last).Hours() / 24))
}

// formatTimeSince phrases elapsed time the way the dashboard shows it:
// minutes below an hour, hours+minutes below a day, days+hours beyond.
func formatTimeSince(now time.Time, last time.Time) string {
	if last.IsZero() {
		return "N/A"
	}
	diff := now.Sub(last)
	if diff < 0 {
		return "Just now"
	}

	hoursSince := int(math.Floor(diff.Hours()))
	minutesSince := int(math.Floor(diff.Minutes())) - hoursSince*60
	daysSince := float64(hoursSince) / 24
	remainingHours := hoursSince % 24

	if daysSince < 1 {
		if hoursSince == 0 {
			return fmt.Sprintf("%d minutes ago", minutesSince)
		}
		return fmt.Sprintf("%d hours %d minutes ago", hoursSince, minutesSince)
	}
	fullDays := int(math.Floor(daysSince))
	plural := ""
	if fullDays > 1 {
		plural = "s"
	}
	return fmt.Sprintf("%d day%s %d hours ago", fullDays, plural, remainingHours)
}
