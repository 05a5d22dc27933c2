// Copyright (c) 2026 KU Polls Authors. All rights reserved.

/*
Package handlers contains HTTP request handlers for the KU Polls API.

# Handler Types

Each handler is a struct with its dependencies injected:

  - QuestionHandler: index, detail, and live results
  - VoteHandler: vote casting and re-voting
  - AuthHandler: signup, login, logout, current user
  - AdminHandler: staff-only question and choice management

# Status Mapping

Handlers translate the voting engine's sentinel errors into the
responses the original pages produced:

  - polls.ErrNotFound       -> 404
  - polls.ErrVotingClosed   -> 404 "This poll cannot be voted."
  - polls.ErrInvalidChoice  -> 200 "Please select a choice"
  - recorded vote           -> 302 Location: /questions/{id}/results
  - no session on vote      -> 401

All four conditions are user-facing and recoverable; nothing here
retries or crashes.
*/
package handlers
