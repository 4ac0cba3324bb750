// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package cart

import (
	"context"
	"encoding/json"
	"sync"
)

// MemorySnapshotStore is an in-process [SnapshotStore] for tests and local
// development without Redis.
type MemorySnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
	pending   map[string]uint64
}

// NewMemorySnapshotStore constructs an empty in-memory store.
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{
		snapshots: make(map[string][]byte),
		pending:   make(map[string]uint64),
	}
}

// Load returns a copy of the stored snapshot.
func (store *MemorySnapshotStore) Load(_ context.Context, sessionID string) (*Snapshot, error) {
	store.mu.RLock()
	payload, ok := store.snapshots[sessionID]
	store.mu.RUnlock()

	if !ok {
		return nil, ErrSnapshotNotFound
	}

	var snapshot Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Save stores an encoded copy, so later mutations of the argument do not
// leak into the store.
func (store *MemorySnapshotStore) Save(_ context.Context, sessionID string, snapshot *Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	store.mu.Lock()
	store.snapshots[sessionID] = payload
	store.mu.Unlock()
	return nil
}

// Delete drops the snapshot and its counter if present.
func (store *MemorySnapshotStore) Delete(_ context.Context, sessionID string) error {
	store.mu.Lock()
	delete(store.snapshots, sessionID)
	delete(store.pending, sessionID)
	store.mu.Unlock()
	return nil
}

// NextPending advances the mutation counter under the write lock.
func (store *MemorySnapshotStore) NextPending(_ context.Context, sessionID string) (uint64, error) {
	store.mu.Lock()
	store.pending[sessionID]++
	stamp := store.pending[sessionID]
	store.mu.Unlock()
	return stamp, nil
}

// PendingStamp reads the counter without advancing it.
func (store *MemorySnapshotStore) PendingStamp(_ context.Context, sessionID string) (uint64, error) {
	store.mu.RLock()
	stamp := store.pending[sessionID]
	store.mu.RUnlock()
	return stamp, nil
}
