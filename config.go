package main

import (
	"os"
	"strconv"
	"strings"
	"time"
)

/* ======================
   Activity Thresholds
   ====================== */

const (
	// daysActive is the elapsed-day window inside which a player still
	// counts as currently active in derived checks.
	daysActive = 3

	// inactiveThreshold is the elapsed days required before an Inactive
	// player counts toward the Inactive summary box.
	inactiveThreshold = 15

	// Recently-inactive window, half-open [min, max) in elapsed days.
	recentInactiveMinDays = 3
	recentInactiveMaxDays = 5

	// High-risk gap window, half-open [minGapDays, highRiskMaxDays).
	// Deposits older than highRiskMaxDays are excluded from the scorer.
	minGapDays      = 5
	highRiskMaxDays = 15

	defaultAuthPIN = "8152"
)

func authPIN() string {
	if pin := strings.TrimSpace(os.Getenv("AUTH_PIN")); pin != "" {
		return pin
	}
	return defaultAuthPIN
}

func parseEnvInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
