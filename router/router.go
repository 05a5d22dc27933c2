// Copyright (c) 2026 KU Polls Authors. All rights reserved.

package router

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tboonma/ku-polls/auth"
	"github.com/tboonma/ku-polls/cliparse"
	"github.com/tboonma/ku-polls/handlers"
	"github.com/tboonma/ku-polls/metrics"
	"github.com/tboonma/ku-polls/middleware"
	"github.com/tboonma/ku-polls/polls"
)

// NewRouter wires handlers to routes. m may be nil (tests); main
// constructs it once because counters register globally.
func NewRouter(db *sql.DB, cfg cliparse.Config, m *metrics.VoteMetrics) *http.ServeMux {
	mux := http.NewServeMux()

	store := auth.NewStore(cfg.SessionSecret)
	svc := polls.NewService(db, m)

	// Initialize handlers
	questionHandler := handlers.NewQuestionHandler(svc, store, cfg)
	voteHandler := handlers.NewVoteHandler(svc, store, cfg)
	authHandler := handlers.NewAuthHandler(db, store, cfg)
	adminHandler := handlers.NewAdminHandler(db, svc, store, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Polls (public)
	mux.HandleFunc("GET /questions", middleware.WithLogging(questionHandler.Index))
	mux.HandleFunc("GET /questions/{id}", middleware.WithLogging(questionHandler.Detail))
	mux.HandleFunc("GET /questions/{id}/results", middleware.WithLogging(questionHandler.Results))

	// Voting (login required)
	mux.HandleFunc("POST /questions/{id}/vote", middleware.WithLogging(voteHandler.Vote))

	// Accounts
	mux.HandleFunc("POST /auth/signup", middleware.WithLogging(authHandler.Signup))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /auth/logout", middleware.WithLogging(authHandler.Logout))
	mux.HandleFunc("GET /auth/me", middleware.WithLogging(authHandler.Me))

	// Question management (staff only)
	mux.HandleFunc("POST /questions", middleware.WithLogging(adminHandler.CreateQuestion))
	mux.HandleFunc("POST /questions/{id}/choices", middleware.WithLogging(adminHandler.AddChoice))
	mux.HandleFunc("DELETE /questions/{id}", middleware.WithLogging(adminHandler.DeleteQuestion))

	// Prometheus
	mux.Handle("GET /metrics", promhttp.Handler())

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ku-polls API v1"))
	})

	return mux
}
