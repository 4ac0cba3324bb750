// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/datadoit/storefront/internal/platform/apperr"
	"github.com/datadoit/storefront/internal/session"
)

// Service orchestrates cart mutations against the upstream API and keeps the
// per-session snapshot consistent.
//
// # Concurrency
//
// Mutations race: a shopper can tap "add" twice before the first response
// lands. Each mutation stamps the snapshot's Pending counter before its
// network call and applies its response only if no newer mutation has
// stamped since. Stale successes are discarded; the cart converges on the
// latest writer.
type Service struct {
	upstream  UpstreamStore
	snapshots SnapshotStore
	logger    *slog.Logger
}

// NewService constructs a cart [Service] with necessary dependencies.
func NewService(upstream UpstreamStore, snapshots SnapshotStore, logger *slog.Logger) *Service {
	return &Service{
		upstream:  upstream,
		snapshots: snapshots,
		logger:    logger,
	}
}

// Current returns the locally snapshotted cart without touching the network.
// A session with no snapshot gets an empty cart.
func (service *Service) Current(context context.Context, sess *session.Session) (*Cart, error) {
	snapshot, err := service.loadSnapshot(context, sess.ID())
	if err != nil {
		return nil, err
	}

	if snapshot.Cart == nil {
		return &Cart{Lines: []Line{}}, nil
	}
	return snapshot.Cart, nil
}

/*
Fetch retrieves the cart from the upstream and wholesale-replaces the local
snapshot with the response.

# Parameters
  - context: Context carrying the request deadline and session.
  - sess: The resolved browser session.

# Returns
  - The refreshed [*Cart].
  - The local snapshot is left untouched if the upstream call fails.
*/
func (service *Service) Fetch(context context.Context, sess *session.Session) (*Cart, error) {
	// ── 1. Stamp the logical clock ────────────────────────────────────────

	stamp, err := service.stampPending(context, sess.ID())
	if err != nil {
		return nil, err
	}

	// ── 2. Upstream call ──────────────────────────────────────────────────

	fetched, err := service.upstream.Fetch(context)
	if err != nil {
		return nil, err
	}

	// ── 3. Apply unless a newer mutation has started ──────────────────────

	return service.apply(context, sess.ID(), stamp, func(snapshot *Snapshot) {
		snapshot.Cart = fetched
	})
}

/*
AddLine adds a quantity of a product to the cart.

# Business Rules
  - An anonymous session fails with [apperr.AuthRequired] before any
    network traffic.
  - If the product is already in the cart the upstream merges quantities;
    the local line is updated to the merged value rather than duplicated.
  - A line the snapshot has never seen forces a wholesale re-fetch, because
    the add acknowledgement carries no product details.
*/
func (service *Service) AddLine(context context.Context, sess *session.Session, productID int64, quantity int) (*Cart, error) {
	// ── 1. Authentication precheck ────────────────────────────────────────

	// Rule: adding to the cart requires a signed-in client. Fail locally,
	// no request leaves the gateway.
	if !sess.Authenticated() {
		return nil, apperr.AuthRequired()
	}

	// ── 2. Stamp the logical clock ────────────────────────────────────────

	stamp, err := service.stampPending(context, sess.ID())
	if err != nil {
		return nil, err
	}

	// ── 3. Upstream call ──────────────────────────────────────────────────

	written, err := service.upstream.AddLine(context, productID, quantity)
	if err != nil {
		return nil, err
	}

	// ── 4. Merge the acknowledgement ──────────────────────────────────────

	snapshot, err := service.loadSnapshot(context, sess.ID())
	if err != nil {
		return nil, err
	}

	if snapshot.Cart != nil && snapshot.Cart.setQuantity(written.ID, written.Quantity) {
		return service.apply(context, sess.ID(), stamp, func(target *Snapshot) {
			if target.Cart != nil {
				target.Cart.setQuantity(written.ID, written.Quantity)
			}
		})
	}

	// The acknowledgement only carries IDs, so a brand-new line needs the
	// full cart to obtain its product snapshot.
	fetched, err := service.upstream.Fetch(context)
	if err != nil {
		return nil, fmt.Errorf("cart_add_refetch_failed: %w", err)
	}

	return service.apply(context, sess.ID(), stamp, func(target *Snapshot) {
		target.Cart = fetched
	})
}

/*
UpdateQuantity replaces the quantity of a cart line.

A quantity below one is a removal: the line is never retained at zero.
*/
func (service *Service) UpdateQuantity(context context.Context, sess *session.Session, lineID int64, quantity int) (*Cart, error) {
	if quantity < 1 {
		return service.RemoveLine(context, sess, lineID)
	}

	stamp, err := service.stampPending(context, sess.ID())
	if err != nil {
		return nil, err
	}

	if err := service.upstream.UpdateLine(context, lineID, quantity); err != nil {
		return nil, err
	}

	return service.apply(context, sess.ID(), stamp, func(snapshot *Snapshot) {
		if snapshot.Cart != nil {
			snapshot.Cart.setQuantity(lineID, quantity)
		}
	})
}

// RemoveLine deletes a line from the cart.
func (service *Service) RemoveLine(context context.Context, sess *session.Session, lineID int64) (*Cart, error) {
	stamp, err := service.stampPending(context, sess.ID())
	if err != nil {
		return nil, err
	}

	if err := service.upstream.RemoveLine(context, lineID); err != nil {
		return nil, err
	}

	return service.apply(context, sess.ID(), stamp, func(snapshot *Snapshot) {
		if snapshot.Cart != nil {
			snapshot.Cart.removeLine(lineID)
		}
	})
}

// Clear drops the local snapshot. It is purely local and cannot fail from
// the caller's point of view; a storage hiccup is logged and the TTL will
// finish the job.
func (service *Service) Clear(context context.Context, sess *session.Session) {
	if err := service.snapshots.Delete(context, sess.ID()); err != nil {
		service.logger.WarnContext(context, "cart_snapshot_clear_failed",
			slog.String("error", err.Error()),
		)
	}
}

// ── Snapshot bookkeeping ──────────────────────────────────────────────────

// loadSnapshot returns the session's snapshot, or a zero snapshot when none
// exists yet.
func (service *Service) loadSnapshot(context context.Context, sessionID string) (*Snapshot, error) {
	snapshot, err := service.snapshots.Load(context, sessionID)
	if err != nil {
		if errors.Is(err, ErrSnapshotNotFound) {
			return &Snapshot{}, nil
		}
		return nil, fmt.Errorf("cart_snapshot_load_failed: %w", err)
	}
	return snapshot, nil
}

// stampPending advances the logical clock before a network call and returns
// the stamp identifying this mutation. The advance is atomic in the store,
// so two concurrent mutations can never share a stamp.
func (service *Service) stampPending(context context.Context, sessionID string) (uint64, error) {
	stamp, err := service.snapshots.NextPending(context, sessionID)
	if err != nil {
		return 0, fmt.Errorf("cart_snapshot_stamp_failed: %w", err)
	}
	return stamp, nil
}

// apply commits a mutation's effect if the stamp is still the newest one.
// A stale response is discarded and the latest snapshot wins.
func (service *Service) apply(context context.Context, sessionID string, stamp uint64, mutate func(*Snapshot)) (*Cart, error) {
	snapshot, err := service.loadSnapshot(context, sessionID)
	if err != nil {
		return nil, err
	}

	pending, err := service.snapshots.PendingStamp(context, sessionID)
	if err != nil {
		return nil, fmt.Errorf("cart_snapshot_stamp_read_failed: %w", err)
	}

	if pending != stamp {
		service.logger.InfoContext(context, "stale_cart_response_discarded",
			slog.Uint64("stamp", stamp),
			slog.Uint64("pending", pending),
		)
		if snapshot.Cart == nil {
			return &Cart{Lines: []Line{}}, nil
		}
		return snapshot.Cart, nil
	}

	mutate(snapshot)
	if snapshot.Cart != nil {
		snapshot.Cart.normalize()
	}
	snapshot.Revision = stamp

	if err := service.snapshots.Save(context, sessionID, snapshot); err != nil {
		return nil, fmt.Errorf("cart_snapshot_save_failed: %w", err)
	}

	if snapshot.Cart == nil {
		return &Cart{Lines: []Line{}}, nil
	}
	return snapshot.Cart, nil
}
