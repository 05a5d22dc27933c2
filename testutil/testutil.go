// Copyright (c) 2026 KU Polls Authors. All rights reserved.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/tboonma/ku-polls/auth"
	"github.com/tboonma/ku-polls/cliparse"
	"github.com/tboonma/ku-polls/db"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. One connection is kept open for the database's lifetime so
// the in-memory contents survive the whole test.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	conn, err := sql.Open("sqlite",
		"file:"+name+"?mode=memory&cache=shared&_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	// Memory databases are per-name; clear leftovers from a rerun
	for _, table := range []string{"vote", "choice", "question", "users"} {
		if _, err := conn.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          8000,
		DatabaseURL:   "file::memory:",
		DatabaseType:  "sqlite",
		SessionSecret: "test-session-secret",
	}
}

// NewTestStore builds a session store matching GetTestConfig
func NewTestStore() *sessions.CookieStore {
	return auth.NewStore(GetTestConfig().SessionSecret)
}

// CreateTestQuestion inserts a question published pubOffset from now
// (negative for the past). endOffset, when non-nil, sets end_date the
// same way. Returns the question ID.
func CreateTestQuestion(t *testing.T, conn *sql.DB, text string, pubOffset time.Duration, endOffset *time.Duration) string {
	t.Helper()

	now := time.Now()
	questionID := uuid.NewString()

	var end sql.NullTime
	if endOffset != nil {
		end = sql.NullTime{Time: now.Add(*endOffset), Valid: true}
	}

	_, err := conn.Exec(`
		INSERT INTO question (id, question_text, pub_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, questionID, text, now.Add(pubOffset), end, now)
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	return questionID
}

// AddTestChoice adds a choice to a question and returns the choice ID
func AddTestChoice(t *testing.T, conn *sql.DB, questionID, text string, position int) string {
	t.Helper()

	choiceID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO choice (id, question_id, choice_text, position)
		VALUES ($1, $2, $3, $4)
	`, choiceID, questionID, text, position)
	if err != nil {
		t.Fatalf("Failed to create test choice: %v", err)
	}

	return choiceID
}

// CreateTestUser inserts an account and returns its ID. The password
// is stored bcrypt-hashed so login handlers accept it.
func CreateTestUser(t *testing.T, conn *sql.DB, username, password string, staff bool) string {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	userID := uuid.NewString()
	_, err = conn.Exec(`
		INSERT INTO users (id, username, password_hash, is_staff, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, userID, username, hash, staff, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// SessionCookie mints a session cookie for userID, for attaching to
// test requests.
func SessionCookie(t *testing.T, store *sessions.CookieStore, userID string) *http.Cookie {
	t.Helper()

	r := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	if err := auth.SignIn(store, w, r, userID); err != nil {
		t.Fatalf("Failed to sign in test user: %v", err)
	}

	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionName {
			return c
		}
	}
	t.Fatal("SignIn set no session cookie")
	return nil
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, cookies ...*http.Cookie) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
