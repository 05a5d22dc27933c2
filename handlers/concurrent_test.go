// Copyright (c) 2026 KU Polls Authors. All rights reserved.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tboonma/ku-polls/models"
	"github.com/tboonma/ku-polls/testutil"
)

// TestConcurrentVotesFromDistinctUsers verifies that simultaneous votes from
// different users each land in the ledger without corruption or duplicates
func TestConcurrentVotesFromDistinctUsers(t *testing.T) {
	conn, svc, store, cfg := setupHandlerTest(t)
	defer conn.Close()

	handler := NewVoteHandler(svc, store, cfg)

	questionID := testutil.CreateTestQuestion(t, conn, "Busy question.", -time.Hour, nil)
	choices := []string{
		testutil.AddTestChoice(t, conn, questionID, "A", 1),
		testutil.AddTestChoice(t, conn, questionID, "B", 2),
		testutil.AddTestChoice(t, conn, questionID, "C", 3),
	}

	numVoters := 10
	cookies := make([]*http.Cookie, numVoters)
	for i := 0; i < numVoters; i++ {
		username := "voter" + string(rune('a'+i))
		userID := testutil.CreateTestUser(t, conn, username, "HelloIamhere!", false)
		cookies[i] = testutil.SessionCookie(t, store, userID)
	}

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/questions/"+questionID+"/vote",
				models.VoteRequest{ChoiceID: choices[voterIdx%len(choices)]}, cookies[voterIdx])
			req.SetPathValue("id", questionID)
			w := httptest.NewRecorder()

			handler.Vote(w, req)

			if w.Code == http.StatusFound {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	var voteCount int
	err := conn.QueryRow("SELECT COUNT(*) FROM vote WHERE question_id = $1", questionID).Scan(&voteCount)
	if err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if voteCount != numVoters {
		t.Errorf("Expected %d ledger rows, got %d", numVoters, voteCount)
	}

	var uniqueVoters int
	err = conn.QueryRow("SELECT COUNT(DISTINCT user_id) FROM vote WHERE question_id = $1", questionID).Scan(&uniqueVoters)
	if err != nil {
		t.Fatalf("Failed to count unique voters: %v", err)
	}
	if uniqueVoters != numVoters {
		t.Errorf("Expected %d unique voters, got %d (possible duplicates)", numVoters, uniqueVoters)
	}
}

// TestConcurrentRevotesSingleUser verifies that one user hammering the vote
// endpoint concurrently still ends with exactly one ledger row
func TestConcurrentRevotesSingleUser(t *testing.T) {
	conn, svc, store, cfg := setupHandlerTest(t)
	defer conn.Close()

	handler := NewVoteHandler(svc, store, cfg)

	questionID := testutil.CreateTestQuestion(t, conn, "Contested question.", -time.Hour, nil)
	choiceA := testutil.AddTestChoice(t, conn, questionID, "A", 1)
	choiceB := testutil.AddTestChoice(t, conn, questionID, "B", 2)

	userID := testutil.CreateTestUser(t, conn, "alice", "HelloIamhere!", false)
	cookie := testutil.SessionCookie(t, store, userID)

	numVotes := 10
	var wg sync.WaitGroup

	for i := 0; i < numVotes; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			choiceID := choiceA
			if idx%2 == 1 {
				choiceID = choiceB
			}

			req := testutil.MakeRequest("POST", "/questions/"+questionID+"/vote",
				models.VoteRequest{ChoiceID: choiceID}, cookie)
			req.SetPathValue("id", questionID)
			w := httptest.NewRecorder()

			handler.Vote(w, req)
			// Any interleaving may win; only the row count matters
		}(i)
	}

	wg.Wait()

	var voteCount int
	err := conn.QueryRow("SELECT COUNT(*) FROM vote WHERE question_id = $1 AND user_id = $2",
		questionID, userID).Scan(&voteCount)
	if err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if voteCount != 1 {
		t.Errorf("Expected 1 ledger row after concurrent re-votes, got %d", voteCount)
	}

	results, err := svc.AggregateResults(questionID)
	if err != nil {
		t.Fatalf("AggregateResults() error = %v", err)
	}
	total := 0
	for _, row := range results {
		total += row.Votes
	}
	if total != 1 {
		t.Errorf("Expected aggregate total 1, got %d", total)
	}
}

// TestConcurrentSignupsSameUsername verifies that when several goroutines race
// for the same username, exactly one account is created
func TestConcurrentSignupsSameUsername(t *testing.T) {
	conn, _, store, cfg := setupHandlerTest(t)
	defer conn.Close()

	handler := NewAuthHandler(conn, store, cfg)

	numAttempts := 5
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/auth/signup", models.SignupRequest{
				Username: "contested",
				Password: "HelloIamhere!",
			})
			w := httptest.NewRecorder()

			handler.Signup(w, req)

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful signup, got %d", successCount.Load())
	}

	var userCount int
	err := conn.QueryRow("SELECT COUNT(*) FROM users WHERE username = $1", "contested").Scan(&userCount)
	if err != nil {
		t.Fatalf("Failed to count users: %v", err)
	}
	if userCount != 1 {
		t.Errorf("Expected 1 account, got %d", userCount)
	}
}
