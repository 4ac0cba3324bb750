// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package cart

import (
	"context"
	"errors"
	"time"
)

// ErrSnapshotNotFound is returned when no snapshot exists for a session.
var ErrSnapshotNotFound = errors.New("cart snapshot not found")

// WrittenLine is the upstream's acknowledgement of an add: the line ID, the
// bare product ID, and the merged quantity. It carries no product snapshot.
type WrittenLine struct {
	ID        int64
	ProductID int64
	Quantity  int
}

// UpstreamStore is the cart surface of the upstream API.
type UpstreamStore interface {
	// Fetch retrieves the caller's full cart.
	Fetch(context context.Context) (*Cart, error)

	// AddLine adds quantity of a product; if the product is already in the
	// cart the upstream merges and returns the summed quantity.
	AddLine(context context.Context, productID int64, quantity int) (*WrittenLine, error)

	// UpdateLine replaces the quantity of an existing line.
	UpdateLine(context context.Context, lineID int64, quantity int) error

	// RemoveLine deletes a line.
	RemoveLine(context context.Context, lineID int64) error
}

// Snapshot is the persisted per-session cart state.
//
// # Concurrency
//
// Revision records the last mutation whose response was applied. Mutations
// are ordered by the store's pending counter: a stamp is taken atomically
// before the network call starts, and the response is applied only while
// the counter still equals that stamp, so a slow response can never
// overwrite the effect of a later mutation.
type Snapshot struct {
	Cart     *Cart     `json:"cart"`
	Revision uint64    `json:"revision"`
	SavedAt  time.Time `json:"saved_at"`
}

// SnapshotStore persists per-session cart snapshots and the mutation
// counter that orders them.
type SnapshotStore interface {
	// Load returns the snapshot for the session, or [ErrSnapshotNotFound].
	Load(context context.Context, sessionID string) (*Snapshot, error)

	// Save persists the snapshot, refreshing its TTL.
	Save(context context.Context, sessionID string, snapshot *Snapshot) error

	// Delete drops the snapshot and its counter. Deleting an absent
	// snapshot is not an error.
	Delete(context context.Context, sessionID string) error

	// NextPending atomically advances the session's mutation counter and
	// returns the new value. Concurrent callers always receive distinct,
	// increasing stamps.
	NextPending(context context.Context, sessionID string) (uint64, error)

	// PendingStamp returns the counter's current value, zero when the
	// session has never stamped a mutation.
	PendingStamp(context context.Context, sessionID string) (uint64, error)
}
