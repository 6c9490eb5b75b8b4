package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// logger is replaced at startup; the nop default keeps library code and
// tests safe to call before main runs.
var logger = zap.NewNop()

func initLogger() {
	var err error
	if os.Getenv("DEV_MODE") == "true" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
}

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	initLogger()
	defer logger.Sync()

	devMode := os.Getenv("DEV_MODE") == "true"
	if devMode {
		logger.Warn("dev mode enabled")
	}

	// Database
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	db.SetMaxOpenConns(parseEnvInt("DB_MAX_OPEN_CONNS", 5))
	db.SetMaxIdleConns(parseEnvInt("DB_MAX_IDLE_CONNS", 5))
	db.SetConnMaxLifetime(parseEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute))

	if err := db.Ping(); err != nil {
		logger.Fatal("failed to ping database", zap.Error(err))
	}
	logger.Info("connected to PostgreSQL")

	if err := ensureSchema(db); err != nil {
		logger.Fatal("failed to ensure schema", zap.Error(err))
	}

	mux := http.NewServeMux()
	registerRoutes(mux, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", zap.String("port", port), zap.Int("pages", len(monitoredPages)))
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
