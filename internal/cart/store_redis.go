// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/datadoit/storefront/internal/platform/constants"
)

// RedisSnapshotStore keeps per-session cart snapshots in Redis.
//
// The snapshot plays the role a browser's local storage plays for a SPA:
// it makes the cart render instantly on the next visit and outlives gateway
// restarts, but losing it costs nothing, the upstream cart is re-fetched.
type RedisSnapshotStore struct {
	client *redis.Client
}

// NewRedisSnapshotStore constructs a [SnapshotStore] on the shared client.
func NewRedisSnapshotStore(client *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client}
}

// snapshotKey builds the Redis key for a session's cart snapshot.
func snapshotKey(sessionID string) string {
	return constants.RedisPrefixCart + sessionID
}

// pendingKey builds the Redis key for a session's mutation counter.
func pendingKey(sessionID string) string {
	return constants.RedisPrefixCartPending + sessionID
}

// Load retrieves and decodes the snapshot for a session.
func (store *RedisSnapshotStore) Load(context context.Context, sessionID string) (*Snapshot, error) {
	payload, err := store.client.Get(context, snapshotKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("redis_cart_load_failed: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("redis_cart_decode_failed: %w", err)
	}

	return &snapshot, nil
}

// Save encodes and persists the snapshot, resetting its TTL.
func (store *RedisSnapshotStore) Save(context context.Context, sessionID string, snapshot *Snapshot) error {
	snapshot.SavedAt = time.Now().UTC()

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("redis_cart_encode_failed: %w", err)
	}

	if err := store.client.Set(context, snapshotKey(sessionID), payload, constants.CartSnapshotTTL).Err(); err != nil {
		return fmt.Errorf("redis_cart_save_failed: %w", err)
	}

	return nil
}

// Delete drops the snapshot and its counter. Missing keys are not an error.
func (store *RedisSnapshotStore) Delete(context context.Context, sessionID string) error {
	if err := store.client.Del(context, snapshotKey(sessionID), pendingKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis_cart_delete_failed: %w", err)
	}
	return nil
}

// NextPending advances the mutation counter with a single INCR, so
// concurrent tabs on one session can never obtain the same stamp.
func (store *RedisSnapshotStore) NextPending(context context.Context, sessionID string) (uint64, error) {
	stamp, err := store.client.Incr(context, pendingKey(sessionID)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_cart_stamp_failed: %w", err)
	}

	// The counter lives exactly as long as the snapshot it orders.
	if err := store.client.Expire(context, pendingKey(sessionID), constants.CartSnapshotTTL).Err(); err != nil {
		return 0, fmt.Errorf("redis_cart_stamp_expire_failed: %w", err)
	}

	return uint64(stamp), nil
}

// PendingStamp reads the counter without advancing it.
func (store *RedisSnapshotStore) PendingStamp(context context.Context, sessionID string) (uint64, error) {
	stamp, err := store.client.Get(context, pendingKey(sessionID)).Uint64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis_cart_stamp_read_failed: %w", err)
	}
	return stamp, nil
}
