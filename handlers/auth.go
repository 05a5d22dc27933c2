// Copyright (c) 2026 KU Polls Authors. All rights reserved.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/tboonma/ku-polls/auth"
	"github.com/tboonma/ku-polls/cliparse"
	"github.com/tboonma/ku-polls/middleware"
	"github.com/tboonma/ku-polls/models"
)

type AuthHandler struct {
	db    *sql.DB
	store *sessions.CookieStore
	cfg   cliparse.Config
}

func NewAuthHandler(db *sql.DB, store *sessions.CookieStore, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{db: db, store: store, cfg: cfg}
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Username) < 2 || len(req.Username) > 50 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username must be 2-50 characters")
		return
	}
	if len(req.Password) < 8 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	userID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO users (id, username, password_hash, is_staff, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, userID, req.Username, hash, false, time.Now())
	if err != nil {
		// Uniqueness violation wording differs between drivers
		if strings.Contains(err.Error(), "UNIQUE constraint failed") ||
			strings.Contains(err.Error(), "duplicate key value") {
			middleware.ErrorResponse(w, http.StatusConflict, "Username already taken")
			return
		}
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	if err := auth.SignIn(h.store, w, r, userID); err != nil {
		slog.Error("failed to save session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	slog.Info("user signed up", "username", req.Username, "ip", middleware.GetClientIP(r))

	middleware.JSONResponse(w, http.StatusCreated, models.UserResponse{
		ID:       userID,
		Username: req.Username,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var user models.User
	err := h.db.QueryRow(`
		SELECT id, username, password_hash, is_staff FROM users WHERE username = $1
	`, req.Username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsStaff)

	if err == sql.ErrNoRows {
		slog.Warn("login failed", "username", req.Username, "ip", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.CheckPassword(req.Password, user.PasswordHash); err != nil {
		slog.Warn("login failed", "username", req.Username, "ip", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := auth.SignIn(h.store, w, r, user.ID); err != nil {
		slog.Error("failed to save session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("user logged in", "username", user.Username, "ip", middleware.GetClientIP(r))

	middleware.JSONResponse(w, http.StatusOK, models.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		IsStaff:  user.IsStaff,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(h.store, r)

	if err := auth.SignOut(h.store, w, r); err != nil {
		slog.Error("failed to clear session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	if userID != "" {
		slog.Info("user logged out", "user_id", userID, "ip", middleware.GetClientIP(r))
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(h.store, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not logged in")
		return
	}

	var user models.UserResponse
	err := h.db.QueryRow(`
		SELECT id, username, is_staff FROM users WHERE id = $1
	`, userID).Scan(&user.ID, &user.Username, &user.IsStaff)

	if err == sql.ErrNoRows {
		// Session points at a deleted account
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not logged in")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, user)
}
