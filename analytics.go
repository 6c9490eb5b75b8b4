package main

import (
	"fmt"
	"sort"
	"time"
)

/* ======================
   Core Input Facts
   ====================== */

// Deposit is one immutable deposit fact for a page. Instant is zero when the
// stored timestamp failed to parse; such rows still contribute their amount
// but are excluded from all instant-based checks.
type Deposit struct {
	Player  string
	Amount  float64
	Instant time.Time
}

// StatusRecord is the authoritative per-player snapshot owned by the store.
// The classifier derives presentation fields from it but never recomputes the
// primary Active/Inactive flag.
type StatusRecord struct {
	Player      string
	LastDeposit time.Time
	Status      string
	Notes       string
}

type StatusChange struct {
	Player    string
	OldStatus string
	NewStatus string
	ChangedAt time.Time
}

/* ======================
   Deposit Aggregator
   ====================== */

type PlayerDeposits struct {
	Total     float64
	Last7Days float64
	Instants  []time.Time
}

// aggregateDeposits builds per-player running totals and the ordered list of
// deposit instants. The trailing-7-day total is measured against the single
// reference instant for the whole batch, never a per-row clock read.
func aggregateDeposits(deposits []Deposit, now time.Time) map[string]*PlayerDeposits {
	sevenDaysAgo := now.Add(-7 * 24 * time.Hour)
	result := make(map[string]*PlayerDeposits)

	for _, d := range deposits {
		pd := result[d.Player]
		if pd == nil {
			pd = &PlayerDeposits{}
			result[d.Player] = pd
		}
		pd.Total += d.Amount
		if d.Instant.IsZero() {
			continue
		}
		pd.Instants = append(pd.Instants, d.Instant)
		if !d.Instant.Before(sevenDaysAgo) {
			pd.Last7Days += d.Amount
		}
	}
	return result
}

/* ======================
   Status Classifier
   ====================== */

// recentActiveCheck reports the reactivation pattern: a player dormant for at
// least 3 days whose latest deposit landed back inside the active window. The
// returned gap is floored to whole days.
func recentActiveCheck(pd *PlayerDeposits, now time.Time) (bool, int) {
	if pd == nil || len(pd.Instants) < 2 {
		return false, 0
	}

	instants := make([]time.Time, len(pd.Instants))
	copy(instants, pd.Instants)
	sort.Slice(instants, func(i, j int) bool { return instants[i].After(instants[j]) })

	latest := instants[0]
	secondLatest := instants[1]
	gapDays := fractionalDaysBetween(secondLatest, latest)
	daysSinceLatest := fractionalDaysBetween(latest, now)

	if gapDays >= 3 && daysSinceLatest <= daysActive {
		return true, int(gapDays)
	}
	return false, 0
}

/* ======================
   Page Aggregate Assembler
   ====================== */

type PlayerView struct {
	Player           string    `json:"player"`
	LastDeposit      string    `json:"lastDeposit"`
	LastDepositAt    time.Time `json:"originalTimestamp"`
	DaysSince        int       `json:"daysSince"`
	Status           string    `json:"status"`
	TotalDeposit     float64   `json:"totalDeposit"`
	Last7DaysDeposit float64   `json:"last7DaysDeposit"`
	ActivityNotes    string    `json:"activityNotes"`
	HasNotes         bool      `json:"hasNotes"`
	GapDays          int       `json:"gapDays,omitempty"`
}

type ActivityCounts struct {
	Total          int `json:"Total"`
	Active         int `json:"Active"`
	Inactive       int `json:"Inactive"`
	RecentActive   int `json:"RecentActive"`
	RecentInactive int `json:"RecentInactive"`
	HighRisk       int `json:"HighRisk"`
}

type PageActivity struct {
	Page                  string          `json:"page"`
	Counts                ActivityCounts  `json:"counts"`
	Players               []PlayerView    `json:"players"`
	RecentActivePlayers   []PlayerView    `json:"recentActivePlayers"`
	RecentInactivePlayers []PlayerView    `json:"recentInactivePlayers"`
	HighRiskPlayers       []HighRiskEntry `json:"highRiskPlayers"`
}

func emptyPageActivity(page string) PageActivity {
	return PageActivity{
		Page:                  page,
		Players:               []PlayerView{},
		RecentActivePlayers:   []PlayerView{},
		RecentInactivePlayers: []PlayerView{},
		HighRiskPlayers:       []HighRiskEntry{},
	}
}

// buildPageActivity composes the aggregator, classifier and scorer into the
// dashboard's page-wide view. All elapsed-time math shares the one reference
// instant so every player in the batch is measured against the same "now".
func buildPageActivity(page string, statuses []StatusRecord, deposits []Deposit, changes []StatusChange, notesByPlayer map[string]bool, now time.Time) PageActivity {
	if len(statuses) == 0 {
		return emptyPageActivity(page)
	}

	depositData := aggregateDeposits(deposits, now)

	// Newest status change per player; changes arrive newest first, so the
	// first occurrence wins.
	recentChanges := make(map[string]StatusChange, len(changes))
	for _, change := range changes {
		if _, seen := recentChanges[change.Player]; !seen {
			recentChanges[change.Player] = change
		}
	}

	result := emptyPageActivity(page)

	for _, record := range statuses {
		status := record.Status
		if status == "" {
			status = "Inactive"
		}
		daysSince := floorDaysSince(now, record.LastDeposit)

		activityNotes := record.Notes
		if change, ok := recentChanges[record.Player]; ok {
			activityNotes += fmt.Sprintf(" | Last status change: %s → %s on %s",
				change.OldStatus, change.NewStatus, formatDisplayTime(change.ChangedAt))
		}

		view := PlayerView{
			Player:        record.Player,
			LastDeposit:   formatDisplayTime(record.LastDeposit),
			LastDepositAt: record.LastDeposit,
			DaysSince:     daysSince,
			Status:        status,
			ActivityNotes: activityNotes,
			HasNotes:      notesByPlayer[record.Player],
		}
		if pd := depositData[record.Player]; pd != nil {
			view.TotalDeposit = pd.Total
			view.Last7DaysDeposit = pd.Last7Days
		}

		isRecent, gapDays := recentActiveCheck(depositData[record.Player], now)
		if status == "Active" && isRecent {
			view.GapDays = gapDays
		}

		result.Players = append(result.Players, view)

		if status == "Active" && isRecent {
			result.RecentActivePlayers = append(result.RecentActivePlayers, view)
		}
		if status == "Inactive" && daysSince >= recentInactiveMinDays && daysSince < recentInactiveMaxDays {
			result.RecentInactivePlayers = append(result.RecentInactivePlayers, view)
		}
	}

	result.HighRiskPlayers = buildHighRiskList(deposits, now)
	for i := range result.HighRiskPlayers {
		result.HighRiskPlayers[i].HasNotes = notesByPlayer[result.HighRiskPlayers[i].Player]
	}

	byLastDepositDesc := func(views []PlayerView) {
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].LastDepositAt.After(views[j].LastDepositAt)
		})
	}
	byLastDepositDesc(result.Players)
	byLastDepositDesc(result.RecentActivePlayers)
	byLastDepositDesc(result.RecentInactivePlayers)

	result.Counts = ActivityCounts{
		Total:          len(result.Players),
		RecentActive:   len(result.RecentActivePlayers),
		RecentInactive: len(result.RecentInactivePlayers),
		HighRisk:       len(result.HighRiskPlayers),
	}
	for _, p := range result.Players {
		if p.Status == "Active" {
			result.Counts.Active++
		}
		if p.Status == "Inactive" && p.DaysSince >= inactiveThreshold {
			result.Counts.Inactive++
		}
	}

	return result
}
