// Copyright (c) 2026 KU Polls Authors. All rights reserved.

/*
Package db handles database connection and schema creation.

# Opening a Connection

Open selects the driver from the configured database type:

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}

sqlite connections get foreign_keys enabled so cascade deletes work.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: accounts with bcrypt hashes and a staff flag
  - question: text plus publish window (pub_date, optional end_date)
  - choice: option text per question, ordered by position
  - vote: the vote ledger, one row per (user, question)

# Relationships

	question 1──* choice
	question 1──* vote
	choice   1──* vote
	users    1──* vote

All foreign keys use ON DELETE CASCADE. The UNIQUE (user_id, question_id)
constraint on vote is what makes concurrent re-votes safe: the ledger is
written with a single INSERT ... ON CONFLICT DO UPDATE, never a separate
read then write.
*/
package db
