package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Warn("encode response", zap.Error(err))
	}
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, errorResponse{Error: code})
}

func parsePositiveInt(raw string, fallback int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}

// requirePIN gates mutating endpoints behind the shared operator PIN, read
// from the X-Auth-Pin header or a pin query parameter.
func requirePIN(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pin := r.Header.Get("X-Auth-Pin")
		if pin == "" {
			pin = r.URL.Query().Get("pin")
		}
		if pin != authPIN() {
			writeError(w, http.StatusUnauthorized, "INVALID_PIN")
			return
		}
		next(w, r)
	}
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			writeError(w, http.StatusServiceUnavailable, "DB_UNAVAILABLE")
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}

func pagesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"ok":    true,
			"pages": monitoredPages,
		})
	}
}

// activityHandler serves the full page aggregate: classified player list,
// summary counts, recent-active/recent-inactive sublists and high-risk
// entries. Store failures degrade to the empty aggregate rather than a 500 so
// the dashboard always renders.
func activityHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := normalizePageName(r.URL.Query().Get("page"))
		if page == "" {
			writeError(w, http.StatusBadRequest, "MISSING_PAGE")
			return
		}
		now := time.Now()

		statuses, err := fetchLatestStatus(db, page)
		if err != nil {
			logger.Error("fetch latest status", zap.String("page", page), zap.Error(err))
			writeJSON(w, http.StatusOK, emptyPageActivity(page))
			return
		}
		deposits, err := fetchDeposits(db, page)
		if err != nil {
			logger.Error("fetch deposits", zap.String("page", page), zap.Error(err))
			writeJSON(w, http.StatusOK, emptyPageActivity(page))
			return
		}
		changes, err := fetchStatusChanges(db, page)
		if err != nil {
			logger.Warn("fetch status changes", zap.String("page", page), zap.Error(err))
			changes = nil
		}
		noted, err := playersWithNotes(db, page)
		if err != nil {
			logger.Warn("fetch noted players", zap.String("page", page), zap.Error(err))
			noted = map[string]bool{}
		}

		writeJSON(w, http.StatusOK, buildPageActivity(page, statuses, deposits, changes, noted, now))
	}
}

func highRiskHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := normalizePageName(r.URL.Query().Get("page"))
		if page == "" {
			writeError(w, http.StatusBadRequest, "MISSING_PAGE")
			return
		}

		deposits, err := fetchDeposits(db, page)
		if err != nil {
			logger.Error("fetch deposits", zap.String("page", page), zap.Error(err))
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"page":            page,
				"highRiskPlayers": []HighRiskEntry{},
				"message":         "Found 0 high-risk player(s)",
			})
			return
		}
		noted, err := playersWithNotes(db, page)
		if err != nil {
			logger.Warn("fetch noted players", zap.String("page", page), zap.Error(err))
			noted = map[string]bool{}
		}

		entries := buildHighRiskList(deposits, time.Now())
		for i := range entries {
			entries[i].HasNotes = noted[entries[i].Player]
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"page":            page,
			"highRiskPlayers": entries,
			"message":         fmt.Sprintf("Found %d high-risk player(s)", len(entries)),
		})
	}
}

func historyHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := normalizePageName(r.URL.Query().Get("page"))
		player := strings.TrimSpace(r.URL.Query().Get("player"))
		if page == "" || player == "" {
			writeError(w, http.StatusBadRequest, "MISSING_PAGE_OR_PLAYER")
			return
		}

		deposits, err := fetchPlayerDeposits(db, page, player)
		if err != nil {
			logger.Error("fetch player deposits",
				zap.String("page", page), zap.String("player", player), zap.Error(err))
			writeJSON(w, http.StatusOK, emptyPlayerHistory("No data found for this player"))
			return
		}
		writeJSON(w, http.StatusOK, buildPlayerHistory(deposits, time.Now()))
	}
}

func dailyDepositsHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := normalizePageName(r.URL.Query().Get("page"))
		if page == "" {
			writeError(w, http.StatusBadRequest, "MISSING_PAGE")
			return
		}
		monthOffset := parsePositiveInt(r.URL.Query().Get("month"), 0)

		deposits, err := fetchDeposits(db, page)
		if err != nil {
			logger.Error("fetch deposits", zap.String("page", page), zap.Error(err))
			writeJSON(w, http.StatusOK, emptyMonthlyDeposits("No data found"))
			return
		}
		writeJSON(w, http.StatusOK, buildMonthlyDeposits(deposits, monthOffset, time.Now()))
	}
}

func searchHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if len(query) < 2 {
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"ok": true, "results": []SearchResult{},
			})
			return
		}

		results, err := searchPlayers(db, query)
		if err != nil {
			logger.Error("search players", zap.String("query", query), zap.Error(err))
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"ok": true, "results": []SearchResult{},
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"ok": true, "results": results,
		})
	}
}

func notesHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			page := normalizePageName(r.URL.Query().Get("page"))
			player := strings.TrimSpace(r.URL.Query().Get("player"))
			if page == "" || player == "" {
				writeError(w, http.StatusBadRequest, "MISSING_PAGE_OR_PLAYER")
				return
			}
			notes, err := fetchPlayerNotes(db, page, player)
			if err != nil {
				logger.Error("fetch notes",
					zap.String("page", page), zap.String("player", player), zap.Error(err))
				writeJSON(w, http.StatusOK, map[string]interface{}{
					"ok": true, "notes": []PlayerNote{},
				})
				return
			}
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"ok": true, "notes": notes,
			})

		case http.MethodPost:
			var body struct {
				Page   string `json:"page"`
				Player string `json:"player"`
				Text   string `json:"text"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				writeError(w, http.StatusBadRequest, "INVALID_BODY")
				return
			}
			body.Page = normalizePageName(body.Page)
			body.Player = strings.TrimSpace(body.Player)
			body.Text = strings.TrimSpace(body.Text)
			if body.Page == "" || body.Player == "" || body.Text == "" {
				writeError(w, http.StatusBadRequest, "MISSING_FIELDS")
				return
			}

			note, err := insertPlayerNote(db, body.Page, body.Player, body.Text)
			if err != nil {
				logger.Error("insert note",
					zap.String("page", body.Page), zap.String("player", body.Player), zap.Error(err))
				writeError(w, http.StatusInternalServerError, "NOTE_INSERT_FAILED")
				return
			}
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"ok": true, "note": note,
			})

		default:
			writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED")
		}
	}
}

func maintenanceHandler(db *sql.DB, fn func(*sql.DB) (MaintenanceResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED")
			return
		}
		result, err := fn(db)
		if err != nil {
			logger.Error("maintenance call failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "MAINTENANCE_FAILED")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func registerRoutes(mux *http.ServeMux, db *sql.DB) {
	mux.HandleFunc("/health", healthHandler(db))
	mux.HandleFunc("/pages", pagesHandler())
	mux.HandleFunc("/activity", activityHandler(db))
	mux.HandleFunc("/high-risk", highRiskHandler(db))
	mux.HandleFunc("/history", historyHandler(db))
	mux.HandleFunc("/deposits/daily", dailyDepositsHandler(db))
	mux.HandleFunc("/search", searchHandler(db))
	mux.HandleFunc("/notes", notesHandler(db))
	mux.HandleFunc("/admin/refresh", requirePIN(maintenanceHandler(db, callRefreshPlayerStatus)))
	mux.HandleFunc("/admin/cleanup", requirePIN(maintenanceHandler(db, callForceCleanup)))
}
