// Copyright (c) 2026 KU Polls Authors. All rights reserved.

package polls

import (
	"time"

	"github.com/tboonma/ku-polls/models"
)

// State is the eligibility of a question at a point in time, derived
// purely from its publish window and the caller-supplied clock.
type State int

const (
	Unpublished State = iota
	Open
	Closed
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "unpublished"
	}
}

// IsPublished reports whether the question may be displayed at all.
func (s State) IsPublished() bool { return s != Unpublished }

// CanVote reports whether votes are accepted.
func (s State) CanVote() bool { return s == Open }

// Eligibility evaluates the publish window [pubDate, endDate) at now.
// An elapsed endDate wins over every other predicate, so for fixed
// timestamps the state is monotonic in now: once Closed, never Open again.
func Eligibility(pubDate time.Time, endDate *time.Time, now time.Time) State {
	if endDate != nil && !now.Before(*endDate) {
		return Closed
	}
	if now.Before(pubDate) {
		return Unpublished
	}
	return Open
}

// StateOf evaluates a question's eligibility at now.
func StateOf(q models.Question, now time.Time) State {
	return Eligibility(q.PubDate, q.EndDate, now)
}
