// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datadoit/storefront/internal/cart"
	"github.com/datadoit/storefront/internal/platform/apperr"
	"github.com/datadoit/storefront/internal/session"
)

type fakeStore struct {
	loginFunc  func(email, password string) (*LoginResult, error)
	signupFunc func(input SignupInput) (*session.User, error)
}

func (fake *fakeStore) Login(_ context.Context, email, password string) (*LoginResult, error) {
	return fake.loginFunc(email, password)
}

func (fake *fakeStore) Signup(_ context.Context, input SignupInput) (*session.User, error) {
	return fake.signupFunc(input)
}

type stubCartUpstream struct{}

func (stubCartUpstream) Fetch(context.Context) (*cart.Cart, error) { return &cart.Cart{}, nil }
func (stubCartUpstream) AddLine(context.Context, int64, int) (*cart.WrittenLine, error) {
	return nil, nil
}
func (stubCartUpstream) UpdateLine(context.Context, int64, int) error { return nil }
func (stubCartUpstream) RemoveLine(context.Context, int64) error      { return nil }

func newFixture(t *testing.T, store Store) (*Service, *cart.Service, *session.Session, *cart.MemorySnapshotStore) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sess, err := session.Resolve(context.Background(), session.NewMemoryStore(), "sid-1")
	require.NoError(t, err)

	snapshots := cart.NewMemorySnapshotStore()
	cartService := cart.NewService(stubCartUpstream{}, snapshots, logger)

	return NewService(store, cartService, logger), cartService, sess, snapshots
}

func sampleUser() *session.User {
	return &session.User{
		ID:        7,
		Email:     "client@datadoit.app",
		FirstName: "Amina",
		LastName:  "Benali",
		Role:      "client",
	}
}

func TestService_LoginEstablishesCredentials(t *testing.T) {
	store := &fakeStore{
		loginFunc: func(email, password string) (*LoginResult, error) {
			assert.Equal(t, "client@datadoit.app", email)
			return &LoginResult{
				User:         sampleUser(),
				AccessToken:  "access-token",
				RefreshToken: "refresh-token",
			}, nil
		},
	}
	service, _, sess, _ := newFixture(t, store)

	user, err := service.Login(context.Background(), sess, "client@datadoit.app", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)

	require.True(t, sess.Authenticated())
	credentials := sess.Credentials()
	assert.Equal(t, "access-token", credentials.AccessToken)
	assert.Equal(t, "refresh-token", credentials.RefreshToken)
}

func TestService_LoginFailureLeavesSessionAnonymous(t *testing.T) {
	store := &fakeStore{
		loginFunc: func(email, password string) (*LoginResult, error) {
			return nil, apperr.Unauthorized("Invalid credentials")
		},
	}
	service, _, sess, _ := newFixture(t, store)

	_, err := service.Login(context.Background(), sess, "client@datadoit.app", "wrong")

	require.Error(t, err)
	assert.False(t, sess.Authenticated())
}

func TestService_LogoutClearsCredentialsAndCart(t *testing.T) {
	store := &fakeStore{
		loginFunc: func(email, password string) (*LoginResult, error) {
			return &LoginResult{User: sampleUser(), AccessToken: "a", RefreshToken: "r"}, nil
		},
	}
	service, _, sess, snapshots := newFixture(t, store)
	ctx := context.Background()

	_, err := service.Login(ctx, sess, "client@datadoit.app", "secret")
	require.NoError(t, err)

	// Leave a cart snapshot behind, like a browsing session would.
	require.NoError(t, snapshots.Save(ctx, sess.ID(), &cart.Snapshot{
		Cart: &cart.Cart{ID: 1, Lines: []cart.Line{{ID: 11, Quantity: 1}}},
	}))

	require.NoError(t, service.Logout(ctx, sess))

	assert.False(t, sess.Authenticated())

	_, err = snapshots.Load(ctx, sess.ID())
	assert.ErrorIs(t, err, cart.ErrSnapshotNotFound)
}

func TestService_LogoutAnonymousIsIdempotent(t *testing.T) {
	service, _, sess, _ := newFixture(t, &fakeStore{})

	require.NoError(t, service.Logout(context.Background(), sess))
	require.NoError(t, service.Logout(context.Background(), sess))
}

func TestService_SessionInfo(t *testing.T) {
	// Mint an unsigned-style token so the expiry can be decoded.
	expires := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": int64(7),
		"exp":     expires.Unix(),
	})
	signed, err := token.SignedString([]byte("upstream-secret"))
	require.NoError(t, err)

	store := &fakeStore{
		loginFunc: func(email, password string) (*LoginResult, error) {
			return &LoginResult{User: sampleUser(), AccessToken: signed, RefreshToken: "r"}, nil
		},
	}
	service, _, sess, _ := newFixture(t, store)
	ctx := context.Background()

	// Anonymous first.
	info := service.SessionInfo(ctx, sess)
	assert.False(t, info.Authenticated)
	assert.Nil(t, info.User)

	_, err = service.Login(ctx, sess, "client@datadoit.app", "secret")
	require.NoError(t, err)

	info = service.SessionInfo(ctx, sess)
	require.True(t, info.Authenticated)
	assert.Equal(t, int64(7), info.User.ID)
	require.NotNil(t, info.TokenExpires)
	assert.Equal(t, expires.Unix(), info.TokenExpires.Unix())
}
