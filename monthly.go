package main

import (
	"fmt"
	"math"
	"sort"
	"time"
)

type DayTrend struct {
	Difference float64 `json:"difference"`
	Percentage float64 `json:"percentage"`
	Direction  string  `json:"direction"`
}

type DailyDeposit struct {
	Date             string    `json:"date"`
	DisplayDate      string    `json:"displayDate"`
	MonthKey         string    `json:"monthKey"`
	TotalAmount      float64   `json:"totalAmount"`
	TransactionCount int       `json:"transactionCount"`
	Day              time.Time `json:"-"`
	Trend            *DayTrend `json:"trend,omitempty"`
}

type MonthOption struct {
	Month   string `json:"month"`
	Display string `json:"display"`
	Page    int    `json:"page"`
}

type MonthlyComparison struct {
	PreviousMonth             string  `json:"previousMonth"`
	PreviousMonthTotal        float64 `json:"previousMonthTotal"`
	PreviousMonthTransactions int     `json:"previousMonthTransactions"`
	Difference                float64 `json:"difference"`
	Percentage                float64 `json:"percentage"`
	Direction                 string  `json:"direction"`
}

type MonthlyDeposits struct {
	Success           bool               `json:"success"`
	Message           string             `json:"message"`
	DailyDeposits     []DailyDeposit     `json:"dailyDeposits"`
	TotalAmount       float64            `json:"totalAmount"`
	TotalTransactions int                `json:"totalTransactions"`
	DailyAverage      float64            `json:"dailyAverage"`
	TotalDaysInPeriod int                `json:"totalDaysInPeriod"`
	MonthlyComparison *MonthlyComparison `json:"monthlyComparison,omitempty"`
	CurrentMonth      string             `json:"currentMonth,omitempty"`
	AvailableMonths   []MonthOption      `json:"availableMonths"`
	CurrentPage       int                `json:"currentPage,omitempty"`
	TotalPages        int                `json:"totalPages,omitempty"`
}

func emptyMonthlyDeposits(message string) MonthlyDeposits {
	return MonthlyDeposits{
		Message:         message,
		DailyDeposits:   []DailyDeposit{},
		AvailableMonths: []MonthOption{},
	}
}

func monthKey(t time.Time) string {
	return toDisplay(t).Format("2006-01")
}

func monthDisplay(key string) string {
	parsed, err := time.ParseInLocation("2006-01", key, displayZone)
	if err != nil {
		return key
	}
	return parsed.Format("Jan 2006")
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

// buildMonthlyDeposits produces the page-deposits month view: every calendar
// day of the selected month (newest month first, monthOffset walks backward)
// with totals, transaction counts, day-over-day trends and a comparison
// against the preceding month's actual deposits. The current month is
// truncated at today.
func buildMonthlyDeposits(deposits []Deposit, monthOffset int, now time.Time) MonthlyDeposits {
	if len(deposits) == 0 {
		return emptyMonthlyDeposits("No data found")
	}

	byDay := make(map[string]*DailyDeposit)
	for _, d := range deposits {
		if d.Instant.IsZero() || d.Amount <= 0 {
			continue
		}
		key := dayBucketKey(d.Instant)
		day := byDay[key]
		if day == nil {
			day = &DailyDeposit{
				Date:        key,
				DisplayDate: formatDisplayDate(d.Instant),
				MonthKey:    monthKey(d.Instant),
				Day:         startOfDisplayDay(d.Instant),
			}
			byDay[key] = day
		}
		day.TotalAmount += d.Amount
		day.TransactionCount++
	}
	if len(byDay) == 0 {
		return emptyMonthlyDeposits("No deposit data with positive amounts")
	}

	monthSet := make(map[string]bool)
	for _, day := range byDay {
		monthSet[day.MonthKey] = true
	}
	months := make([]string, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	available := make([]MonthOption, 0, len(months))
	for i, m := range months {
		available = append(available, MonthOption{Month: m, Display: monthDisplay(m), Page: i + 1})
	}

	monthIndex := monthOffset
	if monthIndex > len(months)-1 {
		monthIndex = len(months) - 1
	}
	if monthIndex < 0 {
		monthIndex = 0
	}
	currentMonth := months[monthIndex]
	previousMonth := ""
	if monthIndex+1 < len(months) {
		previousMonth = months[monthIndex+1]
	}

	monthStart, err := time.ParseInLocation("2006-01", currentMonth, displayZone)
	if err != nil {
		return emptyMonthlyDeposits("No deposit data available")
	}
	// Standard calendar arithmetic: day 0 of the next month is the last day
	// of this one. Leap years come for free.
	daysInMonth := time.Date(monthStart.Year(), monthStart.Month()+1, 0, 0, 0, 0, 0, displayZone).Day()

	today := startOfDisplayDay(now)
	isCurrentMonth := currentMonth == monthKey(now)

	days := make([]DailyDeposit, 0, daysInMonth)
	for dayNum := 1; dayNum <= daysInMonth; dayNum++ {
		day := time.Date(monthStart.Year(), monthStart.Month(), dayNum, 0, 0, 0, 0, displayZone)
		if isCurrentMonth && day.After(today) {
			break
		}
		key := day.Format("2006-01-02")
		if bucket, ok := byDay[key]; ok {
			days = append(days, *bucket)
			continue
		}
		days = append(days, DailyDeposit{
			Date:        key,
			DisplayDate: day.Format("02/01/2006"),
			MonthKey:    currentMonth,
			Day:         day,
		})
	}

	// Newest first; trends compare each day to the preceding calendar day,
	// which sits one index later after the reversal.
	sort.SliceStable(days, func(i, j int) bool { return days[i].Day.After(days[j].Day) })

	for i := range days {
		if i >= len(days)-1 {
			continue
		}
		prev := days[i+1]
		if prev.TotalAmount <= 0 && days[i].TotalAmount <= 0 {
			continue
		}
		difference := days[i].TotalAmount - prev.TotalAmount
		percentage := 0.0
		if prev.TotalAmount == 0 && days[i].TotalAmount > 0 {
			percentage = 100
		} else if prev.TotalAmount > 0 {
			percentage = difference / prev.TotalAmount * 100
		}
		days[i].Trend = &DayTrend{
			Difference: difference,
			Percentage: round1(percentage),
			Direction:  trendDirection(difference),
		}
	}

	totalAmount := 0.0
	totalTransactions := 0
	for _, day := range days {
		totalAmount += day.TotalAmount
		totalTransactions += day.TransactionCount
	}
	dailyAverage := 0.0
	if len(days) > 0 {
		dailyAverage = totalAmount / float64(len(days))
	}

	var comparison *MonthlyComparison
	if previousMonth != "" {
		prevTotal := 0.0
		prevTransactions := 0
		for _, day := range byDay {
			if day.MonthKey == previousMonth {
				prevTotal += day.TotalAmount
				prevTransactions += day.TransactionCount
			}
		}
		difference := totalAmount - prevTotal
		percentage := 0.0
		if prevTotal > 0 {
			percentage = difference / prevTotal * 100
		} else if totalAmount > 0 {
			percentage = 100
		}
		comparison = &MonthlyComparison{
			PreviousMonth:             monthDisplay(previousMonth),
			PreviousMonthTotal:        prevTotal,
			PreviousMonthTransactions: prevTransactions,
			Difference:                difference,
			Percentage:                round1(percentage),
			Direction:                 trendDirection(difference),
		}
	}

	return MonthlyDeposits{
		Success:           true,
		DailyDeposits:     days,
		TotalAmount:       totalAmount,
		TotalTransactions: totalTransactions,
		DailyAverage:      dailyAverage,
		TotalDaysInPeriod: len(days),
		MonthlyComparison: comparison,
		CurrentMonth:      monthDisplay(currentMonth),
		AvailableMonths:   available,
		CurrentPage:       monthIndex + 1,
		TotalPages:        len(months),
		Message:           fmt.Sprintf("Showing %d days for %s", len(days), monthDisplay(currentMonth)),
	}
}

func trendDirection(difference float64) string {
	switch {
	case difference > 0:
		return "up"
	case difference < 0:
		return "down"
	default:
		return "same"
	}
}
