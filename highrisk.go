package main

import (
	"fmt"
	"sort"
	"time"
)

type GapRecord struct {
	GapDays    int    `json:"gapDays"`
	GapBetween string `json:"gapBetween"`
}

type HighRiskEntry struct {
	Player          string      `json:"player"`
	Gaps            []GapRecord `json:"gaps"`
	TotalQualifying int         `json:"totalQualifyingGaps"`
	MaxGapDays      int         `json:"maxGapDays"`
	LastDeposit     time.Time   `json:"lastDeposit"`
	DaysSinceLast   int         `json:"daysSinceLastDeposit"`
	CurrentStatus   string      `json:"currentStatus"`
	TotalDeposits   int         `json:"totalDeposits"`
	RiskLevel       string      `json:"riskLevel"`
	DepositType     string      `json:"depositType"`
	HasNotes        bool        `json:"hasNotes"`
}

// dayGroup holds one display-calendar-day bucket: every instant that fell on
// the day, with the latest kept as the day's representative for gap math.
type dayGroup struct {
	latest time.Time
	count  int
}

func groupDepositDays(instants []time.Time) map[string]*dayGroup {
	groups := make(map[string]*dayGroup)
	for _, instant := range instants {
		key := dayBucketKey(instant)
		g := groups[key]
		if g == nil {
			groups[key] = &dayGroup{latest: instant, count: 1}
			continue
		}
		g.count++
		if instant.After(g.latest) {
			g.latest = instant
		}
	}
	return groups
}

// buildHighRiskList finds players whose deposit cadence inside the lookback
// window shows qualifying multi-day gaps, distinct from players who have
// simply gone fully inactive. Deposits older than the window are excluded
// before any gap math runs.
func buildHighRiskList(deposits []Deposit, now time.Time) []HighRiskEntry {
	windowStart := now.Add(-highRiskMaxDays * 24 * time.Hour)

	// Players keep their first-appearance order so that ties in the final
	// last-deposit sort stay stable across calls.
	playerOrder := []string{}
	instantsByPlayer := make(map[string][]time.Time)
	for _, d := range deposits {
		if d.Instant.IsZero() || d.Instant.Before(windowStart) {
			continue
		}
		if _, seen := instantsByPlayer[d.Player]; !seen {
			playerOrder = append(playerOrder, d.Player)
		}
		instantsByPlayer[d.Player] = append(instantsByPlayer[d.Player], d.Instant)
	}

	entries := []HighRiskEntry{}

	for _, player := range playerOrder {
		instants := instantsByPlayer[player]
		groups := groupDepositDays(instants)
		if len(groups) == 0 {
			continue
		}

		reps := make([]time.Time, 0, len(groups))
		totalDeposits := 0
		for _, g := range groups {
			reps = append(reps, g.latest)
			totalDeposits += g.count
		}
		sort.Slice(reps, func(i, j int) bool { return reps[i].Before(reps[j]) })

		if len(reps) == 1 {
			if entry, ok := singleDayEntry(player, reps[0], groups, now); ok {
				entries = append(entries, entry)
			}
			continue
		}

		allGaps := []float64{}
		qualifying := []GapRecord{}
		for i := 0; i < len(reps)-1; i++ {
			gap := fractionalDaysBetween(reps[i], reps[i+1])
			allGaps = append(allGaps, gap)
			if gap >= minGapDays && gap < highRiskMaxDays {
				qualifying = append(qualifying, GapRecord{
					GapDays:    int(gap),
					GapBetween: fmt.Sprintf("%s to %s", formatDisplayDate(reps[i]), formatDisplayDate(reps[i+1])),
				})
			}
		}

		lastDeposit := reps[len(reps)-1]
		daysSinceLast := fractionalDaysBetween(lastDeposit, now)
		if daysSinceLast >= minGapDays && daysSinceLast < highRiskMaxDays {
			qualifying = append(qualifying, GapRecord{
				GapDays:    int(daysSinceLast),
				GapBetween: fmt.Sprintf("%s to today", formatDisplayDate(lastDeposit)),
			})
			allGaps = append(allGaps, daysSinceLast)
		}

		// A 15+ day gap anywhere in the sequence means the player graduated
		// to plain Inactive; they must not double-count as high-risk.
		excessive := false
		for _, gap := range allGaps {
			if gap >= highRiskMaxDays {
				excessive = true
				break
			}
		}
		if excessive || len(qualifying) == 0 {
			continue
		}

		maxGap := 0
		for _, g := range qualifying {
			if g.GapDays > maxGap {
				maxGap = g.GapDays
			}
		}
		status := "Inactive"
		if daysSinceLast <= daysActive {
			status = "Active"
		}

		entries = append(entries, HighRiskEntry{
			Player:          player,
			Gaps:            qualifying,
			TotalQualifying: len(qualifying),
			MaxGapDays:      maxGap,
			LastDeposit:     lastDeposit,
			DaysSinceLast:   int(daysSinceLast),
			CurrentStatus:   status,
			TotalDeposits:   totalDeposits,
			RiskLevel:       calculateRiskLevel(len(qualifying), maxGap),
			DepositType:     "multiple",
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].LastDeposit.After(entries[j].LastDeposit)
	})
	return entries
}

func singleDayEntry(player string, rep time.Time, groups map[string]*dayGroup, now time.Time) (HighRiskEntry, bool) {
	daysSince := fractionalDaysBetween(rep, now)
	if daysSince < minGapDays || daysSince >= highRiskMaxDays {
		return HighRiskEntry{}, false
	}

	status := "Inactive"
	if daysSince <= daysActive {
		status = "Active"
	}
	flooredDays := int(daysSince)

	return HighRiskEntry{
		Player: player,
		Gaps: []GapRecord{{
			GapDays:    flooredDays,
			GapBetween: fmt.Sprintf("Single activity day on %s", formatDisplayDate(rep)),
		}},
		TotalQualifying: 1,
		MaxGapDays:      flooredDays,
		LastDeposit:     rep,
		DaysSinceLast:   flooredDays,
		CurrentStatus:   status,
		TotalDeposits:   groups[dayBucketKey(rep)].count,
		RiskLevel:       calculateRiskLevel(1, flooredDays),
		DepositType:     "single",
	}, true
}

// calculateRiskLevel derives the tier from gap count and magnitude. The
// single-gap branch must run before the general branch; a single gap below 8
// days falls through and lands on "Low" via the general arm.
func calculateRiskLevel(totalGaps int, maxGapDays int) string {
	if totalGaps == 1 && maxGapDays < highRiskMaxDays {
		switch {
		case maxGapDays >= 12:
			return "Very High"
		case maxGapDays >= 10:
			return "High"
		case maxGapDays >= 8:
			return "Medium"
		case maxGapDays >= 5:
			return "Low"
		}
	}

	switch {
	case totalGaps >= 3 || maxGapDays >= 12:
		return "Very High"
	case totalGaps >= 2 || maxGapDays >= 10:
		return "High"
	case totalGaps >= 1 && maxGapDays >= 8:
		return "Medium"
	default:
		return "Low"
	}
}
