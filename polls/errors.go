// Copyright (c) 2026 KU Polls Authors. All rights reserved.

package polls

import "errors"

var (
	// ErrNotFound means the question or choice id does not resolve.
	ErrNotFound = errors.New("question not found")

	// ErrVotingClosed means the question is not in the Open state.
	ErrVotingClosed = errors.New("voting is closed for this question")

	// ErrInvalidChoice means the selected choice is missing or does not
	// belong to the question (tampered or empty form input).
	ErrInvalidChoice = errors.New("choice does not belong to this question")

	// ErrInvalidWindow means end_date is not strictly after pub_date.
	ErrInvalidWindow = errors.New("end date must be after publish date")
)
