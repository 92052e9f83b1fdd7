// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import "sync"

// =============================================================================
// USER
// =============================================================================

// User is the authenticated account as the backend reports it.
type User struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
}

// =============================================================================
// SESSION STORE
// =============================================================================

// Store holds the current user and access token. All methods are safe
// for concurrent use. Readers must tolerate absent values at any time;
// there is no guaranteed initialization order.
//
// Store implements api.Session: Token supplies the bearer token and
// Clear wipes the session when the backend rejects it.
type Store struct {
	mu    sync.RWMutex
	user  *User
	token string
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{}
}

// GetUser returns a copy of the current user, or nil when logged out.
func (s *Store) GetUser() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the current access token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// LoggedIn reports whether both a user and a token are present.
func (s *Store) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

// SetUser replaces the current user.
func (s *Store) SetUser(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u == nil {
		s.user = nil
		return
	}
	copied := *u
	s.user = &copied
}

// SetAccessToken replaces the current token.
func (s *Store) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// UpdateName rewrites the stored user's display name, if logged in.
func (s *Store) UpdateName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil {
		s.user.Name = name
	}
}

// UpdateAvatar rewrites the stored user's avatar URL, if logged in.
func (s *Store) UpdateAvatar(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil {
		s.user.AvatarURL = url
	}
}

// Logout clears both the user and the token in one step, so no reader
// can observe a token without its user or vice versa.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
}

// Clear satisfies the API client's session contract; identical to Logout.
func (s *Store) Clear() {
	s.Logout()
}
