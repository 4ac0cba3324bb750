// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/datadoit/storefront/internal/platform/constants"
)

// RedisStore implements [Store] using Redis.
//
// Entries expire with the refresh token lifetime: credentials whose refresh
// token can no longer mint access tokens are dead weight either way.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed credentials [Store].
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

/*
Load retrieves and decodes the credentials for a session ID.

Description: Returns [ErrNotFound] if the key is absent or expired.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - *Credentials: Decoded credentials
  - error: ErrNotFound or connectivity errors
*/
func (store *RedisStore) Load(context context.Context, sessionID string) (*Credentials, error) {

	// Use constants for key prefix
	key := constants.RedisPrefixCredentials + sessionID

	// Get the payload from Redis
	payload, err := store.client.Get(context, key).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis_credentials_load_failed: %w", err)
	}

	// Decode the JSON payload
	var credentials Credentials
	if err := json.Unmarshal([]byte(payload), &credentials); err != nil {
		return nil, fmt.Errorf("redis_credentials_decode_failed: %w", err)
	}

	return &credentials, nil
}

/*
Save encodes and stores the credentials with the standard TTL.

Parameters:
  - context: context.Context
  - sessionID: string
  - credentials: *Credentials

Returns:
  - error: Encoding or persistence failures
*/
func (store *RedisStore) Save(context context.Context, sessionID string, credentials *Credentials) error {

	// Use constants for key prefix
	key := constants.RedisPrefixCredentials + sessionID

	// Encode the credentials as JSON
	payload, err := json.Marshal(credentials)
	if err != nil {
		return fmt.Errorf("redis_credentials_encode_failed: %w", err)
	}

	// Set the payload with the refresh-token-aligned TTL
	if err := store.client.Set(context, key, payload, constants.CredentialsTTL).Err(); err != nil {
		return fmt.Errorf("redis_credentials_save_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Delete removes the credentials for a session ID.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - error: Deletion failures
*/
func (store *RedisStore) Delete(context context.Context, sessionID string) error {

	// Use constants for key prefix
	key := constants.RedisPrefixCredentials + sessionID

	// Delete the key from Redis
	if err := store.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_credentials_delete_failed: %w", err)
	}

	// Return nil on success
	return nil
}
