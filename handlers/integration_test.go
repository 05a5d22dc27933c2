// Copyright (c) 2026 KU Polls Authors. All rights reserved.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tboonma/ku-polls/auth"
	"github.com/tboonma/ku-polls/models"
	"github.com/tboonma/ku-polls/testutil"
)

// TestFullPollingWorkflow tests the complete end-to-end workflow:
// 1. Staff creates a question
// 2. Staff adds choices
// 3. Voters sign up
// 4. Voters cast votes
// 5. A voter changes their vote
// 6. Detail shows the voter's current choice
// 7. Results reflect the final ledger
func TestFullPollingWorkflow(t *testing.T) {
	conn, svc, store, cfg := setupHandlerTest(t)
	defer conn.Close()

	authHandler := NewAuthHandler(conn, store, cfg)
	adminHandler := NewAdminHandler(conn, svc, store, cfg)
	questionHandler := NewQuestionHandler(svc, store, cfg)
	voteHandler := NewVoteHandler(svc, store, cfg)

	staffID := testutil.CreateTestUser(t, conn, "admin", "AdminPass123", true)
	staffCookie := testutil.SessionCookie(t, store, staffID)

	// Step 1: Create a question
	req := testutil.MakeRequest("POST", "/questions", models.CreateQuestionRequest{
		QuestionText: "What should we have for lunch?",
	}, staffCookie)
	w := httptest.NewRecorder()
	adminHandler.CreateQuestion(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Create question failed: %d - %s", w.Code, w.Body.String())
	}

	var question models.Question
	json.NewDecoder(w.Body).Decode(&question)
	if question.ID == "" {
		t.Fatal("Step 1 - Missing question id")
	}
	t.Logf("Step 1 - Created question: %s", question.ID)

	// Step 2: Add 3 choices
	labels := []string{"Pizza", "Sushi", "Tacos"}
	choiceIDs := make([]string, 0, len(labels))

	for _, label := range labels {
		req := testutil.MakeRequest("POST", "/questions/"+question.ID+"/choices",
			models.AddChoiceRequest{ChoiceText: label}, staffCookie)
		req.SetPathValue("id", question.ID)
		w := httptest.NewRecorder()
		adminHandler.AddChoice(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Step 2 - Add choice '%s' failed: %d - %s", label, w.Code, w.Body.String())
		}

		var choice models.Choice
		json.NewDecoder(w.Body).Decode(&choice)
		choiceIDs = append(choiceIDs, choice.ID)
	}
	t.Logf("Step 2 - Added %d choices", len(choiceIDs))

	// Step 3: 3 voters sign up
	voters := []string{"alice", "bob", "charlie"}
	voterCookies := make([]*http.Cookie, 0, len(voters))

	for _, username := range voters {
		req := testutil.MakeRequest("POST", "/auth/signup", models.SignupRequest{
			Username: username,
			Password: "HelloIamhere!",
		})
		w := httptest.NewRecorder()
		authHandler.Signup(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Step 3 - Signup '%s' failed: %d - %s", username, w.Code, w.Body.String())
		}

		var sessionCookie *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == auth.SessionName {
				sessionCookie = c
			}
		}
		if sessionCookie == nil {
			t.Fatalf("Step 3 - Signup '%s' set no session cookie", username)
		}
		voterCookies = append(voterCookies, sessionCookie)
	}
	t.Logf("Step 3 - %d voters signed up", len(voterCookies))

	// Step 4: alice and charlie pick Pizza, bob picks Sushi
	picks := []string{choiceIDs[0], choiceIDs[1], choiceIDs[0]}
	for i, choiceID := range picks {
		req := testutil.MakeRequest("POST", "/questions/"+question.ID+"/vote",
			models.VoteRequest{ChoiceID: choiceID}, voterCookies[i])
		req.SetPathValue("id", question.ID)
		w := httptest.NewRecorder()
		voteHandler.Vote(w, req)

		if w.Code != http.StatusFound {
			t.Fatalf("Step 4 - Vote for voter %d failed: %d - %s", i, w.Code, w.Body.String())
		}
	}
	t.Logf("Step 4 - %d votes cast", len(picks))

	// Step 5: alice changes her mind to Tacos
	req = testutil.MakeRequest("POST", "/questions/"+question.ID+"/vote",
		models.VoteRequest{ChoiceID: choiceIDs[2]}, voterCookies[0])
	req.SetPathValue("id", question.ID)
	w = httptest.NewRecorder()
	voteHandler.Vote(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("Step 5 - Re-vote failed: %d - %s", w.Code, w.Body.String())
	}
	t.Log("Step 5 - Vote changed")

	// Step 6: detail shows alice's current choice
	req = testutil.MakeRequest("GET", "/questions/"+question.ID, nil, voterCookies[0])
	req.SetPathValue("id", question.ID)
	w = httptest.NewRecorder()
	questionHandler.Detail(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 6 - Detail failed: %d - %s", w.Code, w.Body.String())
	}

	var detail models.QuestionDetailResponse
	json.NewDecoder(w.Body).Decode(&detail)
	if detail.CurrentVote == nil || detail.CurrentVote.ID != choiceIDs[2] {
		t.Errorf("Step 6 - Expected current vote Tacos, got %v", detail.CurrentVote)
	}
	t.Log("Step 6 - Detail carries current vote")

	// Step 7: results reflect the final ledger
	req = testutil.MakeRequest("GET", "/questions/"+question.ID+"/results", nil)
	req.SetPathValue("id", question.ID)
	w = httptest.NewRecorder()
	questionHandler.Results(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 7 - Results failed: %d - %s", w.Code, w.Body.String())
	}

	var results models.ResultsResponse
	json.NewDecoder(w.Body).Decode(&results)

	if results.TotalVotes != 3 {
		t.Errorf("Step 7 - Expected 3 total votes, got %d", results.TotalVotes)
	}

	// Pizza 1 (charlie), Sushi 1 (bob), Tacos 1 (alice)
	want := map[string]int{"Pizza": 1, "Sushi": 1, "Tacos": 1}
	for _, row := range results.Results {
		if row.Votes != want[row.Label] {
			t.Errorf("Step 7 - %s: expected %d votes, got %d", row.Label, want[row.Label], row.Votes)
		}
		t.Logf("Step 7 - %s: %d", row.Label, row.Votes)
	}

	t.Log("Integration test completed successfully!")
}

// TestResultsVisibleAfterClose verifies results stay readable once voting ends
func TestResultsVisibleAfterClose(t *testing.T) {
	conn, svc, store, cfg := setupHandlerTest(t)
	defer conn.Close()

	questionHandler := NewQuestionHandler(svc, store, cfg)

	endedAgo := -time.Hour
	questionID := testutil.CreateTestQuestion(t, conn, "Ended question.", -10*24*time.Hour, &endedAgo)
	choiceA := testutil.AddTestChoice(t, conn, questionID, "A", 1)
	testutil.AddTestChoice(t, conn, questionID, "B", 2)

	// Seed a ledger row from when the question was still open
	userID := testutil.CreateTestUser(t, conn, "alice", "HelloIamhere!", false)
	if _, err := conn.Exec(`
		INSERT INTO vote (id, user_id, question_id, choice_id, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, "vote-1", userID, questionID, choiceA, time.Now().Add(-2*time.Hour)); err != nil {
		t.Fatalf("Failed to seed vote: %v", err)
	}

	req := testutil.MakeRequest("GET", "/questions/"+questionID+"/results", nil)
	req.SetPathValue("id", questionID)
	w := httptest.NewRecorder()
	questionHandler.Results(w, req)

	testutil.AssertStatus(t, w, 200)

	var results models.ResultsResponse
	testutil.AssertJSON(t, w, &results)
	if results.State != "closed" {
		t.Errorf("Expected state closed, got %s", results.State)
	}
	if results.TotalVotes != 1 {
		t.Errorf("Expected 1 vote, got %d", results.TotalVotes)
	}
}
