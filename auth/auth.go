// Copyright (c) 2026 KU Polls Authors. All rights reserved.

// Package auth provides password hashing and session cookie handling.
package auth

import (
	"errors"
	"net/http"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"
)

// SessionName is the cookie holding the signed session.
const SessionName = "kupolls_session"

var ErrInvalidCredentials = errors.New("invalid username or password")

// HashPassword returns the bcrypt hash of a password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a candidate password against a stored hash.
func CheckPassword(password, hash string) error {
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// NewStore builds the cookie store used for login sessions.
func NewStore(secret string) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// UserID extracts the logged-in user's id from the request session.
func UserID(store *sessions.CookieStore, r *http.Request) (string, bool) {
	session, _ := store.Get(r, SessionName)
	id, ok := session.Values["user_id"].(string)
	return id, ok && id != ""
}

// SignIn records userID in the session cookie.
func SignIn(store *sessions.CookieStore, w http.ResponseWriter, r *http.Request, userID string) error {
	session, _ := store.Get(r, SessionName)
	session.Values["user_id"] = userID
	return session.Save(r, w)
}

// SignOut expires the session cookie.
func SignOut(store *sessions.CookieStore, w http.ResponseWriter, r *http.Request) error {
	session, _ := store.Get(r, SessionName)
	delete(session.Values, "user_id")
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
