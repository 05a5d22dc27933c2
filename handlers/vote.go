// Copyright (c) 2026 KU Polls Authors. All rights reserved.

package handlers

import (
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

type VoteHandler struct {
	svc   *polls.Service
	store *sessions.CookieStore
	cfg   cliparse.Config
}

func NewVoteHandler(svc *polls.Service, store *sessions.CookieStore, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{svc: svc, store: store, cfg: cfg}
}

// Vote handles POST /questions/{id}/vote
//
// Status mapping follows the original pages: login required (401),
// missing or unvotable question 404, a missing/foreign choice answers
// 200 with "Please select a choice" so the form can re-render, and a
// recorded vote answers 302 pointing at the results.
func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question id is required")
		return
	}

	userID, ok := auth.UserID(h.store, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required to vote")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	vote, err := h.svc.RecordVote(userID, questionID, req.ChoiceID, time.Now())
	switch {
	case errors.Is(err, polls.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	case errors.Is(err, polls.ErrVotingClosed):
		middleware.ErrorResponse(w, http.StatusNotFound, "This poll cannot be voted.")
		return
	case errors.Is(err, polls.ErrInvalidChoice):
		middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
			Message: "Please select a choice",
		})
		return
	case err != nil:
		slog.Error("failed to record vote", "error", err, "question_id", questionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	w.Header().Set("Location", "/questions/"+questionID+"/results")
	middleware.JSONResponse(w, http.StatusFound, models.VoteResponse{
		VoteID:   vote.ID,
		ChoiceID: vote.ChoiceID,
		Message:  "Vote recorded",
	})
}
