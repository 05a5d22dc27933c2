// Copyright (c) 2026 KU Polls Authors. All rights reserved.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/sessions"

	"github.com/tboonma/ku-polls/auth"
	"github.com/tboonma/ku-polls/cliparse"
	"github.com/tboonma/ku-polls/middleware"
	"github.com/tboonma/ku-polls/models"
	"github.com/tboonma/ku-polls/polls"
)

type QuestionHandler struct {
	svc   *polls.Service
	store *sessions.CookieStore
	cfg   cliparse.Config
}

func NewQuestionHandler(svc *polls.Service, store *sessions.CookieStore, cfg cliparse.Config) *QuestionHandler {
	return &QuestionHandler{svc: svc, store: store, cfg: cfg}
}

// Index handles GET /questions
// Lists every published question, open before closed, newest first.
func (h *QuestionHandler) Index(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	questions, err := h.svc.ListVisible(now, !h.cfg.HideClosed)
	if err != nil {
		slog.Error("failed to list questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	summaries := make([]models.QuestionSummary, 0, len(questions))
	for _, q := range questions {
		summaries = append(summaries, models.QuestionSummary{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			PubDate:      q.PubDate,
			EndDate:      q.EndDate,
			State:        polls.StateOf(q, now).String(),
			Published:    humanize.Time(q.PubDate),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.QuestionListResponse{
		Questions: summaries,
	})
}

// Detail handles GET /questions/{id}
// Future and ended questions answer 404, matching the voting pages.
func (h *QuestionHandler) Detail(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question id is required")
		return
	}

	question, err := h.svc.GetQuestion(questionID)
	if errors.Is(err, polls.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	state := polls.StateOf(question, time.Now())
	if !state.CanVote() {
		middleware.ErrorResponse(w, http.StatusNotFound, "This poll cannot be voted.")
		return
	}

	choices, err := h.svc.ChoicesOf(questionID)
	if err != nil {
		slog.Error("failed to query choices", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	resp := models.QuestionDetailResponse{
		Question: question,
		State:    state.String(),
		Choices:  choices,
	}

	// Show the caller's standing selection, if logged in
	if userID, ok := auth.UserID(h.store, r); ok {
		current, err := h.svc.CurrentVote(userID, questionID)
		if err != nil {
			slog.Error("failed to query current vote", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		resp.CurrentVote = current
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Results handles GET /questions/{id}/results
// Counts are computed live from the vote ledger on every request.
// Open and closed questions both show results; unpublished ones are 404.
func (h *QuestionHandler) Results(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question id is required")
		return
	}

	question, err := h.svc.GetQuestion(questionID)
	if errors.Is(err, polls.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	state := polls.StateOf(question, time.Now())
	if !state.IsPublished() {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}

	results, err := h.svc.AggregateResults(questionID)
	if err != nil {
		slog.Error("failed to aggregate results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	total := 0
	for _, res := range results {
		total += res.Votes
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Question:   question,
		State:      state.String(),
		Results:    results,
		TotalVotes: total,
	})
}
