// Copyright (c) 2026 KU Polls Authors. All rights reserved.

/*
Package polls implements the question lifecycle and voting engine.

# Eligibility

A question's state is a pure function of its publish window and the
current time:

	state := polls.Eligibility(q.PubDate, q.EndDate, time.Now())
	state.IsPublished() // displayable at all
	state.CanVote()     // accepting votes

Exactly one of Unpublished, Open, Closed holds for any input, and an
elapsed end_date always wins, so a question never reopens.

# Vote Ledger

Votes live in a normalized ledger with one row per (user, question).
RecordVote validates the choice and the question's state, then writes
the row with a single atomic upsert; re-voting overwrites the choice
instead of inserting a second row. CurrentVote reads a user's standing
selection.

# Results

AggregateResults derives per-choice counts by counting ledger rows at
call time. There is no stored counter to drift and no cache to go stale.

# Listing

ListVisible returns every published question, open ones before closed
ones, each newest first. Whether closed questions appear at all is a
caller policy, not engine behavior.
*/
package polls
