package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

/* ======================
   Row Parsing
   ====================== */

// Timestamps arrive as text in a handful of shapes depending on which import
// path wrote the row. A row whose timestamp parses in none of them keeps a
// zero Instant; its amount still counts toward totals.
var depositTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDepositTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range depositTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	logger.Warn("unparseable deposit timestamp", zap.String("raw", raw))
	return time.Time{}
}

func parseAmount(raw string) float64 {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	if raw == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}

/* ======================
   Deposit Queries
   ====================== */

func fetchDeposits(db *sql.DB, page string) ([]Deposit, error) {
	rows, err := db.Query(`
		SELECT player_name, COALESCE(amount::text, ''), COALESCE(deposit_date::text, '')
		FROM deposits
		WHERE page_name = $1
	`, page)
	if err != nil {
		return nil, fmt.Errorf("query deposits: %w", err)
	}
	defer rows.Close()

	deposits := []Deposit{}
	for rows.Next() {
		var player, amount, depositDate string
		if err := rows.Scan(&player, &amount, &depositDate); err != nil {
			return nil, fmt.Errorf("scan deposit: %w", err)
		}
		deposits = append(deposits, Deposit{
			Player:  player,
			Amount:  parseAmount(amount),
			Instant: parseDepositTime(depositDate),
		})
	}
	return deposits, rows.Err()
}

func fetchPlayerDeposits(db *sql.DB, page string, player string) ([]Deposit, error) {
	rows, err := db.Query(`
		SELECT player_name, COALESCE(amount::text, ''), COALESCE(deposit_date::text, '')
		FROM deposits
		WHERE page_name = $1 AND player_name = $2
	`, page, player)
	if err != nil {
		return nil, fmt.Errorf("query player deposits: %w", err)
	}
	defer rows.Close()

	deposits := []Deposit{}
	for rows.Next() {
		var name, amount, depositDate string
		if err := rows.Scan(&name, &amount, &depositDate); err != nil {
			return nil, fmt.Errorf("scan player deposit: %w", err)
		}
		deposits = append(deposits, Deposit{
			Player:  name,
			Amount:  parseAmount(amount),
			Instant: parseDepositTime(depositDate),
		})
	}
	return deposits, rows.Err()
}

/* ======================
   Status Queries
   ====================== */

func fetchLatestStatus(db *sql.DB, page string) ([]StatusRecord, error) {
	rows, err := db.Query(`
		SELECT player_name, last_deposit_date, COALESCE(status, ''), COALESCE(activity_notes, '')
		FROM latest_status
		WHERE page_name = $1
	`, page)
	if err != nil {
		return nil, fmt.Errorf("query latest_status: %w", err)
	}
	defer rows.Close()

	records := []StatusRecord{}
	for rows.Next() {
		var r StatusRecord
		var lastDeposit sql.NullTime
		if err := rows.Scan(&r.Player, &lastDeposit, &r.Status, &r.Notes); err != nil {
			return nil, fmt.Errorf("scan latest_status: %w", err)
		}
		if lastDeposit.Valid {
			r.LastDeposit = lastDeposit.Time
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func fetchStatusChanges(db *sql.DB, page string) ([]StatusChange, error) {
	rows, err := db.Query(`
		SELECT player_name, COALESCE(old_status, ''), COALESCE(new_status, ''), changed_at
		FROM status_changes
		WHERE page_name = $1
		ORDER BY changed_at DESC
		LIMIT 100
	`, page)
	if err != nil {
		return nil, fmt.Errorf("query status_changes: %w", err)
	}
	defer rows.Close()

	changes := []StatusChange{}
	for rows.Next() {
		var c StatusChange
		var changedAt sql.NullTime
		if err := rows.Scan(&c.Player, &c.OldStatus, &c.NewStatus, &changedAt); err != nil {
			return nil, fmt.Errorf("scan status_change: %w", err)
		}
		if changedAt.Valid {
			c.ChangedAt = changedAt.Time
		}
		changes = append(changes, c)
	}
	return changes, rows.Err()
}

/* ======================
   Player Notes
   ====================== */

type PlayerNote struct {
	ID        string    `json:"id"`
	Page      string    `json:"pageName"`
	Player    string    `json:"playerName"`
	Text      string    `json:"noteText"`
	CreatedAt time.Time `json:"createdAt"`
}

func playersWithNotes(db *sql.DB, page string) (map[string]bool, error) {
	rows, err := db.Query(`
		SELECT DISTINCT player_name
		FROM player_notes
		WHERE page_name = $1
	`, page)
	if err != nil {
		return nil, fmt.Errorf("query players with notes: %w", err)
	}
	defer rows.Close()

	result := make(map[string]bool)
	for rows.Next() {
		var player string
		if err := rows.Scan(&player); err != nil {
			return nil, fmt.Errorf("scan noted player: %w", err)
		}
		result[player] = true
	}
	return result, rows.Err()
}

func fetchPlayerNotes(db *sql.DB, page string, player string) ([]PlayerNote, error) {
	rows, err := db.Query(`
		SELECT id, page_name, player_name, note_text, created_at
		FROM player_notes
		WHERE page_name = $1 AND player_name = $2
		ORDER BY created_at DESC
	`, page, player)
	if err != nil {
		return nil, fmt.Errorf("query player notes: %w", err)
	}
	defer rows.Close()

	notes := []PlayerNote{}
	for rows.Next() {
		var n PlayerNote
		if err := rows.Scan(&n.ID, &n.Page, &n.Player, &n.Text, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan player note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func insertPlayerNote(db *sql.DB, page string, player string, text string) (PlayerNote, error) {
	note := PlayerNote{
		ID:        uuid.NewString(),
		Page:      page,
		Player:    player,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	_, err := db.Exec(`
		INSERT INTO player_notes (id, page_name, player_name, note_text, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, note.ID, note.Page, note.Player, note.Text, note.CreatedAt)
	if err != nil {
		return PlayerNote{}, fmt.Errorf("insert player note: %w", err)
	}
	return note, nil
}

/* ======================
   Player Search
   ====================== */

type SearchResult struct {
	Player string `json:"player"`
	Page   string `json:"page"`
}

// searchPlayers matches a case-insensitive substring against every page's
// player roster, deduplicating (player, page) pairs across the deposits and
// latest_status tables.
func searchPlayers(db *sql.DB, query string) ([]SearchResult, error) {
	pattern := "%" + query + "%"
	rows, err := db.Query(`
		SELECT DISTINCT player_name, page_name FROM deposits WHERE player_name ILIKE $1
		UNION
		SELECT DISTINCT player_name, page_name FROM latest_status WHERE player_name ILIKE $1
		LIMIT 50
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	results := []SearchResult{}
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Player, &r.Page); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		key := r.Player + "\x00" + r.Page
		if seen[key] {
			continue
		}
		seen[key] = true
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Player != results[j].Player {
			return results[i].Player < results[j].Player
		}
		return results[i].Page < results[j].Page
	})
	return results, nil
}

/* ======================
   Maintenance Functions
   ====================== */

type MaintenanceResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// callMaintenanceFunction invokes a server-side SQL function that returns a
// {success, message} JSON blob and relays it without reinterpretation. The
// functions are provisioned by the database migration, not by ensureSchema.
func callMaintenanceFunction(db *sql.DB, fn string) (MaintenanceResult, error) {
	var raw []byte
	if err := db.QueryRow(fmt.Sprintf(`SELECT %s()`, fn)).Scan(&raw); err != nil {
		return MaintenanceResult{}, fmt.Errorf("call %s: %w", fn, err)
	}
	var result MaintenanceResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return MaintenanceResult{}, fmt.Errorf("decode %s result: %w", fn, err)
	}
	return result, nil
}

func callRefreshPlayerStatus(db *sql.DB) (MaintenanceResult, error) {
	return callMaintenanceFunction(db, "refresh_player_status")
}

func callForceCleanup(db *sql.DB) (MaintenanceResult, error) {
	return callMaintenanceFunction(db, "force_cleanup")
}
