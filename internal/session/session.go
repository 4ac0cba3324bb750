// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

/*
Package session manages per-browser session state for the storefront gateway.

Each browser holds a session cookie; the gateway keeps the matching credentials
(access token, refresh token, user snapshot) in Redis under a fixed key derived
from the session ID. The server remains the system of record for identity —
the stored copy is a cache that must tolerate becoming stale or rejected (401)
at any time.

Architecture:

  - Credentials: The value object persisted to Redis.
  - Session: A per-request handle combining the session ID, the loaded
    credentials, and the store used to persist changes.
  - Store: Abstracted persistence (Redis in production, memory in tests).

The invariant maintained here: credentials are authenticated if and only if a
non-empty access token is held.
*/
package session

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// # Value Objects

// User is the gateway's snapshot of the authenticated account, captured at
// login time from the upstream response.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
}

// Credentials holds the token pair and user snapshot for one browser session.
//
// Created on successful login, access token replaced on refresh, destroyed on
// logout.
type Credentials struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	User         *User     `json:"user,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAuthenticated reports whether the credentials represent a signed-in user.
//
// # Invariant
//
// A non-empty access token is the single source of the authenticated state;
// there is no separate boolean that could drift out of sync with it.
func (c *Credentials) IsAuthenticated() bool {
	return c != nil && c.AccessToken != ""
}

// # Session Handle

// Session is the per-request view of one browser session.
//
// It is resolved once by the session middleware and carried through the
// request context. Mutations write through to the backing [Store] so that the
// next request observes them.
//
// # Concurrency
//
// The handle guards its credentials with a mutex so that the token-refresh
// step cannot race a concurrent reader inside the same request. Requests from
// other gateway instances are not coordinated — upstream refresh is idempotent
// and duplicate refreshes are an accepted inefficiency, not a correctness bug.
type Session struct {
	id    string
	store Store

	mu          sync.Mutex
	credentials *Credentials
}

// Resolve loads the credentials for the given session ID and returns a handle.
//
// A store miss yields an anonymous session, not an error.
func Resolve(context context.Context, store Store, id string) (*Session, error) {
	credentials, err := store.Load(context, id)
	if err != nil && err != ErrNotFound {
		return nil, fmt.Errorf("session_resolve_failed: %w", err)
	}

	return &Session{id: id, store: store, credentials: credentials}, nil
}

// ID returns the browser session identifier.
func (session *Session) ID() string { return session.id }

// Credentials returns the currently held credentials, or nil for an anonymous
// session.
func (session *Session) Credentials() *Credentials {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.credentials
}

// Authenticated reports whether this session holds a signed-in user.
func (session *Session) Authenticated() bool {
	return session.Credentials().IsAuthenticated()
}

/*
Establish stores brand-new credentials after a successful login.

Parameters:
  - context: context.Context
  - credentials: *Credentials

Returns:
  - error: Persistence failures
*/
func (session *Session) Establish(context context.Context, credentials *Credentials) error {
	session.mu.Lock()
	defer session.mu.Unlock()

	if credentials.CreatedAt.IsZero() {
		credentials.CreatedAt = time.Now()
	}

	if err := session.store.Save(context, session.id, credentials); err != nil {
		return fmt.Errorf("session_establish_failed: %w", err)
	}

	session.credentials = credentials
	return nil
}

/*
AdoptAccessToken replaces only the access token after a successful refresh.

Description: The refresh token is reused, not rotated — the upstream refresh
endpoint returns a new access token only.

Parameters:
  - context: context.Context
  - accessToken: string

Returns:
  - error: Persistence failures, or a no-session condition
*/
func (session *Session) AdoptAccessToken(context context.Context, accessToken string) error {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.credentials == nil {
		return fmt.Errorf("session_adopt_token_failed: no credentials held")
	}

	updated := *session.credentials
	updated.AccessToken = accessToken

	if err := session.store.Save(context, session.id, &updated); err != nil {
		return fmt.Errorf("session_adopt_token_failed: %w", err)
	}

	session.credentials = &updated
	return nil
}

/*
Clear destroys the held credentials (logout, or terminal refresh failure).

Description: Clearing is idempotent; an already-anonymous session clears
successfully.

Parameters:
  - context: context.Context

Returns:
  - error: Deletion failures
*/
func (session *Session) Clear(context context.Context) error {
	session.mu.Lock()
	defer session.mu.Unlock()

	if err := session.store.Delete(context, session.id); err != nil {
		return fmt.Errorf("session_clear_failed: %w", err)
	}

	session.credentials = nil
	return nil
}
