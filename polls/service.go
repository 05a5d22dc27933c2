// Copyright (c) 2026 KU Polls Authors. All rights reserved.

package polls

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tboonma/ku-polls/metrics"
	"github.com/tboonma/ku-polls/models"
)

// Service is the question lifecycle and voting engine. All operations
// take the current time and acting user as explicit arguments; nothing
// is read from ambient context.
type Service struct {
	db      *sql.DB
	metrics *metrics.VoteMetrics
}

// NewService wraps a database connection. m may be nil, in which case
// no counters are updated.
func NewService(db *sql.DB, m *metrics.VoteMetrics) *Service {
	return &Service{db: db, metrics: m}
}

// CreateQuestion inserts a question. pub is the start of the publish
// window; end, when non-nil, must be strictly after pub. An inverted
// window is rejected here rather than silently repaired, since stored
// rows with an elapsed end_date always evaluate as Closed.
func (s *Service) CreateQuestion(text string, pub time.Time, end *time.Time) (models.Question, error) {
	if end != nil && !end.After(pub) {
		return models.Question{}, ErrInvalidWindow
	}

	q := models.Question{
		ID:           uuid.NewString(),
		QuestionText: text,
		PubDate:      pub,
		EndDate:      end,
		CreatedAt:    time.Now(),
	}

	var endVal sql.NullTime
	if end != nil {
		endVal = sql.NullTime{Time: *end, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO question (id, question_text, pub_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, q.ID, q.QuestionText, q.PubDate, endVal, q.CreatedAt)
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to insert question: %w", err)
	}

	slog.Info("question created", "question_id", q.ID, "pub_date", q.PubDate)
	return q, nil
}

// GetQuestion resolves a question id. Returns ErrNotFound when absent.
func (s *Service) GetQuestion(id string) (models.Question, error) {
	var q models.Question
	var end sql.NullTime

	err := s.db.QueryRow(`
		SELECT id, question_text, pub_date, end_date, created_at
		FROM question
		WHERE id = $1
	`, id).Scan(&q.ID, &q.QuestionText, &q.PubDate, &end, &q.CreatedAt)

	if err == sql.ErrNoRows {
		return models.Question{}, ErrNotFound
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to query question: %w", err)
	}

	if end.Valid {
		t := end.Time
		q.EndDate = &t
	}
	return q, nil
}

// DeleteQuestion removes a question; choices and votes cascade.
func (s *Service) DeleteQuestion(id string) error {
	res, err := s.db.Exec(`DELETE FROM question WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	slog.Info("question deleted", "question_id", id)
	return nil
}

// AddChoice appends a choice to a question, after any existing ones.
func (s *Service) AddChoice(questionID, text string) (models.Choice, error) {
	if _, err := s.GetQuestion(questionID); err != nil {
		return models.Choice{}, err
	}

	c := models.Choice{
		ID:         uuid.NewString(),
		QuestionID: questionID,
		ChoiceText: text,
	}

	err := s.db.QueryRow(`
		SELECT COALESCE(MAX(position), 0) + 1 FROM choice WHERE question_id = $1
	`, questionID).Scan(&c.Position)
	if err != nil {
		return models.Choice{}, fmt.Errorf("failed to compute choice position: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO choice (id, question_id, choice_text, position)
		VALUES ($1, $2, $3, $4)
	`, c.ID, c.QuestionID, c.ChoiceText, c.Position)
	if err != nil {
		return models.Choice{}, fmt.Errorf("failed to insert choice: %w", err)
	}

	return c, nil
}

// ChoicesOf returns a question's choices in creation order.
func (s *Service) ChoicesOf(questionID string) ([]models.Choice, error) {
	rows, err := s.db.Query(`
		SELECT id, question_id, choice_text, position
		FROM choice
		WHERE question_id = $1
		ORDER BY position
	`, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query choices: %w", err)
	}
	defer rows.Close()

	choices := []models.Choice{}
	for rows.Next() {
		var c models.Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.ChoiceText, &c.Position); err != nil {
			return nil, fmt.Errorf("failed to scan choice: %w", err)
		}
		choices = append(choices, c)
	}
	return choices, rows.Err()
}

// ListVisible returns all published questions: open ones first, then
// closed ones, each group newest pub_date first. With includeClosed
// false the closed tail is dropped instead.
func (s *Service) ListVisible(now time.Time, includeClosed bool) ([]models.Question, error) {
	query := `
		SELECT id, question_text, pub_date, end_date, created_at
		FROM question
		WHERE pub_date <= $1
		ORDER BY CASE WHEN end_date IS NOT NULL AND end_date <= $1 THEN 1 ELSE 0 END,
		         pub_date DESC
	`
	if !includeClosed {
		query = `
		SELECT id, question_text, pub_date, end_date, created_at
		FROM question
		WHERE pub_date <= $1 AND (end_date IS NULL OR end_date > $1)
		ORDER BY pub_date DESC
	`
	}

	rows, err := s.db.Query(query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		var end sql.NullTime
		if err := rows.Scan(&q.ID, &q.QuestionText, &q.PubDate, &end, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		if end.Valid {
			t := end.Time
			q.EndDate = &t
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
