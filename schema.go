package main

import "database/sql"

// ensureSchema creates the dashboard tables when they don't already exist.
// Every statement is idempotent so multiple instances can start concurrently.
func ensureSchema(db *sql.DB) error {

	// deposits: one row per deposit fact, append-only
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS deposits (
			id BIGSERIAL PRIMARY KEY,
			page_name TEXT NOT NULL,
			player_name TEXT NOT NULL,
			amount TEXT,
			deposit_date TEXT
		);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_deposits_page ON deposits (page_name);
	`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_deposits_page_player ON deposits (page_name, player_name);
	`)
	if err != nil {
		return err
	}

	// latest_status: authoritative per-player snapshot
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS latest_status (
			page_name TEXT NOT NULL,
			player_name TEXT NOT NULL,
			last_deposit_date TIMESTAMPTZ,
			status TEXT,
			activity_notes TEXT,
			PRIMARY KEY (page_name, player_name)
		);
	`)
	if err != nil {
		return err
	}

	// status_changes: transition log, newest read first
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS status_changes (
			id BIGSERIAL PRIMARY KEY,
			page_name TEXT NOT NULL,
			player_name TEXT NOT NULL,
			old_status TEXT,
			new_status TEXT,
			changed_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_status_changes_page_time ON status_changes (page_name, changed_at DESC);
	`)
	if err != nil {
		return err
	}

	// player_notes: operator annotations
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS player_notes (
			id UUID PRIMARY KEY,
			page_name TEXT NOT NULL,
			player_name TEXT NOT NULL,
			note_text TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_player_notes_page_player ON player_notes (page_name, player_name);
	`)
	return err
}
