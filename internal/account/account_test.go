// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package account

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datadoit/storefront/internal/platform/apperr"
	"github.com/datadoit/storefront/internal/session"
)

type fakeStore struct {
	profileFunc func() (*session.User, error)
	updateFunc  func(userID int64, input UpdateInput) (*session.User, error)
}

func (fake *fakeStore) Profile(context.Context) (*session.User, error) {
	return fake.profileFunc()
}

func (fake *fakeStore) Update(_ context.Context, userID int64, input UpdateInput) (*session.User, error) {
	return fake.updateFunc(userID, input)
}

func newTestService(store Store) *Service {
	return NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func authedSession(t *testing.T) *session.Session {
	t.Helper()

	sessions := session.NewMemoryStore()
	require.NoError(t, sessions.Save(context.Background(), "sid-1", &session.Credentials{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         &session.User{ID: 7, Email: "client@datadoit.app", Role: "client"},
	}))

	sess, err := session.Resolve(context.Background(), sessions, "sid-1")
	require.NoError(t, err)
	return sess
}

func TestService_ProfileRequiresAuthentication(t *testing.T) {
	service := newTestService(&fakeStore{})

	sess, err := session.Resolve(context.Background(), session.NewMemoryStore(), "sid-2")
	require.NoError(t, err)

	_, err = service.Profile(context.Background(), sess)

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "AUTH_REQUIRED", ae.Code)
}

func TestService_UpdateTargetsSessionUser(t *testing.T) {
	firstName := "Amina"
	var seenUserID int64

	service := newTestService(&fakeStore{
		updateFunc: func(userID int64, input UpdateInput) (*session.User, error) {
			seenUserID = userID
			return &session.User{ID: userID, FirstName: *input.FirstName}, nil
		},
	})

	updated, err := service.Update(context.Background(), authedSession(t), UpdateInput{FirstName: &firstName})
	require.NoError(t, err)

	// The target user is always the session's own, never client-supplied.
	assert.Equal(t, int64(7), seenUserID)
	assert.Equal(t, "Amina", updated.FirstName)
}
