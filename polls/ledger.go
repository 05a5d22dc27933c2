// Copyright (c) 2026 KU Polls Authors. All rights reserved.

package polls

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tboonma/ku-polls/models"
)

// RecordVote casts userID's vote for choiceID on questionID. A first
// vote inserts a ledger row; a re-vote overwrites the previous choice.
// The write is a single upsert against UNIQUE (user_id, question_id),
// so two concurrent votes by the same user cannot leave two rows.
//
// Fails with ErrNotFound when the question id does not resolve,
// ErrVotingClosed when the question is not Open at now, and
// ErrInvalidChoice when choiceID is empty or belongs to another question.
func (s *Service) RecordVote(userID, questionID, choiceID string, now time.Time) (models.Vote, error) {
	q, err := s.GetQuestion(questionID)
	if err != nil {
		s.countRejected("not_found")
		return models.Vote{}, err
	}

	if !StateOf(q, now).CanVote() {
		s.countRejected("voting_closed")
		return models.Vote{}, ErrVotingClosed
	}

	var choiceText string
	err = s.db.QueryRow(`
		SELECT choice_text FROM choice WHERE id = $1 AND question_id = $2
	`, choiceID, questionID).Scan(&choiceText)
	if err == sql.ErrNoRows {
		s.countRejected("invalid_choice")
		return models.Vote{}, ErrInvalidChoice
	}
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to resolve choice: %w", err)
	}

	// Only consulted for logging and metrics; correctness rests on the
	// upsert below, not on this read.
	prior, err := s.CurrentVote(userID, questionID)
	if err != nil {
		return models.Vote{}, err
	}

	vote := models.Vote{
		UserID:     userID,
		QuestionID: questionID,
		ChoiceID:   choiceID,
		UpdatedAt:  now,
	}

	err = s.db.QueryRow(`
		INSERT INTO vote (id, user_id, question_id, choice_id, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, question_id)
		DO UPDATE SET choice_id = excluded.choice_id, updated_at = excluded.updated_at
		RETURNING id
	`, uuid.NewString(), userID, questionID, choiceID, now).Scan(&vote.ID)
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to upsert vote: %w", err)
	}

	if prior != nil {
		if s.metrics != nil {
			s.metrics.VotesChanged.WithLabelValues(questionID).Inc()
		}
		slog.Info("vote changed",
			"user_id", userID,
			"question", q.QuestionText,
			"from", prior.ChoiceText,
			"to", choiceText,
		)
	} else {
		if s.metrics != nil {
			s.metrics.VotesRecorded.WithLabelValues(questionID).Inc()
		}
		slog.Info("vote recorded",
			"user_id", userID,
			"question", q.QuestionText,
			"choice", choiceText,
		)
	}

	return vote, nil
}

// CurrentVote returns the choice userID last voted for on questionID,
// or nil when they have not voted.
func (s *Service) CurrentVote(userID, questionID string) (*models.Choice, error) {
	var c models.Choice
	err := s.db.QueryRow(`
		SELECT c.id, c.question_id, c.choice_text, c.position
		FROM vote v
		JOIN choice c ON c.id = v.choice_id
		WHERE v.user_id = $1 AND v.question_id = $2
	`, userID, questionID).Scan(&c.ID, &c.QuestionID, &c.ChoiceText, &c.Position)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query current vote: %w", err)
	}
	return &c, nil
}

func (s *Service) countRejected(reason string) {
	if s.metrics != nil {
		s.metrics.VotesRejected.WithLabelValues(reason).Inc()
	}
}
