// Copyright (c) 2026 KU Polls Authors. All rights reserved.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"github.com/tboonma/ku-polls/auth"
	"github.com/tboonma/ku-polls/cliparse"
	"github.com/tboonma/ku-polls/middleware"
	"github.com/tboonma/ku-polls/models"
	"github.com/tboonma/ku-polls/polls"
)

// AdminHandler owns question and choice administration. All endpoints
// require a logged-in staff account.
type AdminHandler struct {
	db    *sql.DB
	svc   *polls.Service
	store *sessions.CookieStore
	cfg   cliparse.Config
}

func NewAdminHandler(db *sql.DB, svc *polls.Service, store *sessions.CookieStore, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, svc: svc, store: store, cfg: cfg}
}

// requireStaff resolves the session to a staff account, writing the
// error response itself when the caller is not allowed.
func (h *AdminHandler) requireStaff(w http.ResponseWriter, r *http.Request) bool {
	userID, ok := auth.UserID(h.store, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required")
		return false
	}

	var isStaff bool
	err := h.db.QueryRow(`SELECT is_staff FROM users WHERE id = $1`, userID).Scan(&isStaff)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required")
		return false
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return false
	}

	if !isStaff {
		middleware.ErrorResponse(w, http.StatusForbidden, "Staff access required")
		return false
	}
	return true
}

// CreateQuestion handles POST /questions
// pub_date defaults to now; end_date, when given, must be after pub_date.
func (h *AdminHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	if !h.requireStaff(w, r) {
		return
	}

	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.QuestionText == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_text is required")
		return
	}

	pub := time.Now()
	if req.PubDate != nil {
		pub = *req.PubDate
	}

	question, err := h.svc.CreateQuestion(req.QuestionText, pub, req.EndDate)
	if errors.Is(err, polls.ErrInvalidWindow) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "end_date must be after pub_date")
		return
	}
	if err != nil {
		slog.Error("failed to create question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, question)
}

// AddChoice handles POST /questions/{id}/choices
func (h *AdminHandler) AddChoice(w http.ResponseWriter, r *http.Request) {
	if !h.requireStaff(w, r) {
		return
	}

	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question id is required")
		return
	}

	var req models.AddChoiceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ChoiceText == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "choice_text is required")
		return
	}

	choice, err := h.svc.AddChoice(questionID, req.ChoiceText)
	if errors.Is(err, polls.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to add choice", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add choice")
		return
	}

	slog.Info("choice added", "question_id", questionID, "choice_id", choice.ID)

	middleware.JSONResponse(w, http.StatusCreated, choice)
}

// DeleteQuestion handles DELETE /questions/{id}
// Choices and ledger rows cascade with the question.
func (h *AdminHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if !h.requireStaff(w, r) {
		return
	}

	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question id is required")
		return
	}

	err := h.svc.DeleteQuestion(questionID)
	if errors.Is(err, polls.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete question")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
