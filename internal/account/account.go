// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

// Package account serves the signed-in shopper's profile through the
// gateway: a fresh read from the upstream and field updates.
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/datadoit/storefront/internal/backend"
	"github.com/datadoit/storefront/internal/platform/apperr"
	"github.com/datadoit/storefront/internal/platform/constants"
	"github.com/datadoit/storefront/internal/session"
)

// UpdateInput holds the profile fields a shopper may change. Nil means
// "leave unchanged"; the update is a partial one.
type UpdateInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
}

// Store is the profile surface of the upstream API.
type Store interface {
	// Profile returns the authenticated user's current profile.
	Profile(context context.Context) (*session.User, error)

	// Update applies a partial update to the given user.
	Update(context context.Context, userID int64, input UpdateInput) (*session.User, error)
}

// Service implements profile use cases.
type Service struct {
	upstream Store
	logger   *slog.Logger
}

// NewService constructs an account [Service] with necessary dependencies.
func NewService(upstream Store, logger *slog.Logger) *Service {
	return &Service{upstream: upstream, logger: logger}
}

// Profile returns the session user's profile, read fresh from the upstream
// so role or approval changes show up without a re-login.
func (service *Service) Profile(context context.Context, sess *session.Session) (*session.User, error) {
	if !sess.Authenticated() {
		return nil, apperr.AuthRequired()
	}
	return service.upstream.Profile(context)
}

// Update changes the session user's own profile fields.
//
// # Business Rules
//   - A shopper can only update their own profile; the target user ID is
//     always taken from the session, never from the request.
func (service *Service) Update(context context.Context, sess *session.Session, input UpdateInput) (*session.User, error) {
	credentials := sess.Credentials()
	if credentials == nil || !credentials.IsAuthenticated() || credentials.User == nil {
		return nil, apperr.AuthRequired()
	}

	updated, err := service.upstream.Update(context, credentials.User.ID, input)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "profile_updated",
		slog.Int64("user_id", updated.ID),
	)

	return updated, nil
}

// ── Upstream store ────────────────────────────────────────────────────────

type upstreamStore struct {
	client *backend.Client
}

// NewUpstreamStore builds the [Store] backed by the upstream API.
func NewUpstreamStore(client *backend.Client) Store {
	return &upstreamStore{client: client}
}

type userDTO struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	LastName  string `json:"nom"`
	FirstName string `json:"prenom"`
	Phone     string `json:"telephone"`
	Role      string `json:"role"`
}

func (dto userDTO) toDomain() *session.User {
	return &session.User{
		ID:        dto.ID,
		Email:     dto.Email,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Phone:     dto.Phone,
		Role:      dto.Role,
	}
}

func (store *upstreamStore) Profile(context context.Context) (*session.User, error) {
	var dto userDTO
	if err := store.client.Get(context, constants.UpstreamProfilePath, &dto); err != nil {
		return nil, fmt.Errorf("profile_fetch_failed: %w", err)
	}
	return dto.toDomain(), nil
}

func (store *upstreamStore) Update(context context.Context, userID int64, input UpdateInput) (*session.User, error) {
	payload := map[string]any{}
	if input.FirstName != nil {
		payload["prenom"] = *input.FirstName
	}
	if input.LastName != nil {
		payload["nom"] = *input.LastName
	}
	if input.Phone != nil {
		payload["telephone"] = *input.Phone
	}

	path := fmt.Sprintf(constants.UpstreamUserUpdatePathFormat, userID)

	var dto userDTO
	if err := store.client.Put(context, path, payload, &dto); err != nil {
		return nil, fmt.Errorf("profile_update_failed: %w", err)
	}
	return dto.toDomain(), nil
}
