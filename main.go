package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/tboonma/ku-polls/auth"
	"github.com/tboonma/ku-polls/cliparse"
	"github.com/tboonma/ku-polls/db"
	"github.com/tboonma/ku-polls/metrics"
	"github.com/tboonma/ku-polls/router"
)

func main() {
	var err error

	// Local development settings, ignored when absent
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Seed the staff account, if configured
	if cfg.AdminUsername != "" {
		if err := seedAdmin(dbConn, cfg); err != nil {
			slog.Error("admin seeding failed", "error", err)
			os.Exit(1)
		}
	}

	// Create router
	voteMetrics := metrics.NewVoteMetrics("kupolls")
	mux := router.NewRouter(dbConn, cfg, voteMetrics)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// seedAdmin ensures the configured staff account exists. An existing
// account keeps its password; only the staff flag is asserted.
func seedAdmin(dbConn *sql.DB, cfg cliparse.Config) error {
	var id string
	err := dbConn.QueryRow(`SELECT id FROM users WHERE username = $1`, cfg.AdminUsername).Scan(&id)
	if err == nil {
		_, err = dbConn.Exec(`UPDATE users SET is_staff = $1 WHERE id = $2`, true, id)
		return err
	}
	if err != sql.ErrNoRows {
		return err
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	_, err = dbConn.Exec(`
		INSERT INTO users (id, username, password_hash, is_staff, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), cfg.AdminUsername, hash, true, time.Now())
	if err != nil {
		return err
	}

	slog.Info("staff account seeded", "username", cfg.AdminUsername)
	return nil
}
