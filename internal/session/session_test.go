// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentials_IsAuthenticated(t *testing.T) {
	tests := []struct {
		name        string
		credentials *Credentials
		want        bool
	}{
		{name: "Nil credentials", credentials: nil, want: false},
		{name: "Empty access token", credentials: &Credentials{RefreshToken: "r"}, want: false},
		{name: "Access token present", credentials: &Credentials{AccessToken: "a"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.credentials.IsAuthenticated())
		})
	}
}

func TestResolve_MissYieldsAnonymous(t *testing.T) {
	sess, err := Resolve(context.Background(), NewMemoryStore(), "unknown-sid")

	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
	assert.Nil(t, sess.Credentials())
}

func TestSession_EstablishPersists(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess, err := Resolve(ctx, store, "sid-1")
	require.NoError(t, err)

	require.NoError(t, sess.Establish(ctx, &Credentials{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         &User{ID: 7, Email: "client@datadoit.app"},
	}))

	assert.True(t, sess.Authenticated())
	assert.False(t, sess.Credentials().CreatedAt.IsZero())

	// A fresh resolve on the same ID sees the write.
	again, err := Resolve(ctx, store, "sid-1")
	require.NoError(t, err)
	require.True(t, again.Authenticated())
	assert.Equal(t, int64(7), again.Credentials().User.ID)
}

func TestSession_AdoptAccessTokenKeepsRefreshToken(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess, err := Resolve(ctx, store, "sid-1")
	require.NoError(t, err)
	require.NoError(t, sess.Establish(ctx, &Credentials{
		AccessToken:  "stale",
		RefreshToken: "refresh",
	}))

	require.NoError(t, sess.AdoptAccessToken(ctx, "fresh"))

	credentials := sess.Credentials()
	assert.Equal(t, "fresh", credentials.AccessToken)
	assert.Equal(t, "refresh", credentials.RefreshToken, "the refresh token is reused, never rotated")

	// The write reached the store.
	stored, err := store.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "fresh", stored.AccessToken)
}

func TestSession_AdoptAccessTokenWithoutCredentials(t *testing.T) {
	sess, err := Resolve(context.Background(), NewMemoryStore(), "sid-1")
	require.NoError(t, err)

	assert.Error(t, sess.AdoptAccessToken(context.Background(), "fresh"))
}

func TestSession_ClearIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess, err := Resolve(ctx, store, "sid-1")
	require.NoError(t, err)
	require.NoError(t, sess.Establish(ctx, &Credentials{AccessToken: "a", RefreshToken: "r"}))

	require.NoError(t, sess.Clear(ctx))
	assert.False(t, sess.Authenticated())

	// Clearing an already-anonymous session succeeds.
	require.NoError(t, sess.Clear(ctx))

	_, err = store.Load(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_SaveStoresCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	credentials := &Credentials{AccessToken: "a", RefreshToken: "r"}
	require.NoError(t, store.Save(ctx, "sid-1", credentials))

	// Mutating the original must not leak into the store.
	credentials.AccessToken = "mutated"

	loaded, err := store.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "a", loaded.AccessToken)
}

func TestInspectAccessToken(t *testing.T) {
	expires := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": int64(7),
		"exp":     expires.Unix(),
	})
	signed, err := token.SignedString([]byte("someone-elses-secret"))
	require.NoError(t, err)

	// The gateway holds no keys; decoding works regardless of the signer.
	info, err := InspectAccessToken(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(7), info.UserID)
	assert.Equal(t, expires.Unix(), info.ExpiresAt.Unix())
}

func TestInspectAccessToken_Malformed(t *testing.T) {
	_, err := InspectAccessToken("not-a-jwt")
	assert.Error(t, err)
}
