// Copyright (c) 2026 KU Polls Authors. All rights reserved.

package models

import "time"

// Request types

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateQuestionRequest struct {
	QuestionText string     `json:"question_text"`
	PubDate      *time.Time `json:"pub_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
}

type AddChoiceRequest struct {
	ChoiceText string `json:"choice_text"`
}

type VoteRequest struct {
	ChoiceID string `json:"choice_id"`
}

// Response types

type QuestionListResponse struct {
	Questions []QuestionSummary `json:"questions"`
}

// QuestionSummary is one row of the index listing. Published carries a
// human-readable relative time ("3 days ago").
type QuestionSummary struct {
	ID           string     `json:"id"`
	QuestionText string     `json:"question_text"`
	PubDate      time.Time  `json:"pub_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	State        string     `json:"state"`
	Published    string     `json:"published"`
}

type QuestionDetailResponse struct {
	Question    Question `json:"question"`
	State       string   `json:"state"`
	Choices     []Choice `json:"choices"`
	CurrentVote *Choice  `json:"current_vote,omitempty"`
}

type ResultsResponse struct {
	Question   Question       `json:"question"`
	State      string         `json:"state"`
	Results    []ChoiceResult `json:"results"`
	TotalVotes int            `json:"total_votes"`
}

type VoteResponse struct {
	VoteID   string `json:"vote_id,omitempty"`
	ChoiceID string `json:"choice_id,omitempty"`
	Message  string `json:"message"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsStaff  bool   `json:"is_staff"`
}

// Domain types

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	IsStaff      bool      `json:"is_staff"`
	CreatedAt    time.Time `json:"created_at"`
}

type Question struct {
	ID           string     `json:"id"`
	QuestionText string     `json:"question_text"`
	PubDate      time.Time  `json:"pub_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type Choice struct {
	ID         string `json:"id"`
	QuestionID string `json:"question_id"`
	ChoiceText string `json:"choice_text"`
	Position   int    `json:"position"`
}

type Vote struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"` // Never expose in JSON
	QuestionID string    `json:"question_id"`
	ChoiceID   string    `json:"choice_id"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ChoiceResult is one label/count pair of a question's live results,
// in choice creation order.
type ChoiceResult struct {
	ChoiceID string `json:"choice_id"`
	Label    string `json:"label"`
	Votes    int    `json:"votes"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
