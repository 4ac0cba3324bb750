// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package session

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned when no credentials exist for a session ID.
var ErrNotFound = errors.New("session: credentials not found")

// # Credential Persistence

// Store defines the persistence contract for session credentials.
type Store interface {

	/*
		Load returns the credentials stored for the given session ID.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - *Credentials: Hydrated credentials
		  - error: ErrNotFound when absent or expired, otherwise storage failures
	*/
	Load(context context.Context, sessionID string) (*Credentials, error)

	/*
		Save persists the credentials under the session ID with the standard TTL.

		Parameters:
		  - context: context.Context
		  - sessionID: string
		  - credentials: *Credentials

		Returns:
		  - error: Persistence failures
	*/
	Save(context context.Context, sessionID string, credentials *Credentials) error

	/*
		Delete removes the credentials for the session ID. Deleting an absent
		entry is not an error.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - error: Deletion failures
	*/
	Delete(context context.Context, sessionID string) error
}

// # In-Memory Store

// MemoryStore is a map-backed [Store] for tests and single-process dev runs.
//
// It deliberately ignores TTL semantics — expiry behavior is exercised against
// Redis, not reimplemented here.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Credentials
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Credentials)}
}

// Load returns the stored credentials or [ErrNotFound].
func (store *MemoryStore) Load(_ context.Context, sessionID string) (*Credentials, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	entry, found := store.entries[sessionID]
	if !found {
		return nil, ErrNotFound
	}

	copied := entry
	return &copied, nil
}

// Save stores a copy of the credentials.
func (store *MemoryStore) Save(_ context.Context, sessionID string, credentials *Credentials) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.entries[sessionID] = *credentials
	return nil
}

// Delete removes the entry if present.
func (store *MemoryStore) Delete(_ context.Context, sessionID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.entries, sessionID)
	return nil
}
