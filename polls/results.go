// Copyright (c) 2026 KU Polls Authors. All rights reserved.

package polls

import (
	"fmt"

	"github.com/tboonma/ku-polls/models"
)

// AggregateResults counts ledger rows per choice for a question. The
// query runs fresh on every call so results always reflect the ledger
// at read time; choices nobody voted for appear with count 0, in
// choice creation order.
func (s *Service) AggregateResults(questionID string) ([]models.ChoiceResult, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.choice_text, COUNT(v.id)
		FROM choice c
		LEFT JOIN vote v ON v.choice_id = c.id
		WHERE c.question_id = $1
		GROUP BY c.id
		ORDER BY c.position
	`, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate results: %w", err)
	}
	defer rows.Close()

	results := []models.ChoiceResult{}
	for rows.Next() {
		var r models.ChoiceResult
		if err := rows.Scan(&r.ChoiceID, &r.Label, &r.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
