// Copyright (c) 2026 KU Polls Authors. All rights reserved.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SignupRequest / LoginRequest: username, password
  - CreateQuestionRequest: question_text, optional pub_date and end_date
  - AddChoiceRequest: choice_text
  - VoteRequest: choice_id

# Response Types

Types for JSON responses:

  - QuestionListResponse: index rows with eligibility state
  - QuestionDetailResponse: question, choices, caller's current vote
  - ResultsResponse: live per-choice counts
  - VoteResponse: vote_id, choice_id, message
  - UserResponse: id, username, is_staff
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - User: account with bcrypt password hash and staff flag
  - Question: text plus publish window (pub_date, optional end_date)
  - Choice: option text owned by a question, ordered by position
  - Vote: one ledger row per (user, question)
  - ChoiceResult: label/count pair derived from the vote ledger

Vote counts are never stored on Choice. They are always derived by
counting Vote rows, so counts cannot drift out of sync with the ledger.
*/
package models
