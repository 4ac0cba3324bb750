// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package auth

import (
	"context"
	"fmt"

	"github.com/datadoit/storefront/internal/backend"
	"github.com/datadoit/storefront/internal/platform/constants"
	"github.com/datadoit/storefront/internal/session"
)

// upstreamStore talks to the upstream user endpoints. The upstream names
// its user fields in French (nom = last name, prenom = first name).
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

type loginResponseDTO struct {
	User         userDTO `json:"user"`
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
}

func (store *upstreamStore) Login(context context.Context, email, password string) (*LoginResult, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}

	var dto loginResponseDTO
	if err := store.client.Post(context, constants.UpstreamLoginPath, payload, &dto); err != nil {
		return nil, fmt.Errorf("login_failed: %w", err)
	}

	return &LoginResult{
		User:         dto.User.toDomain(),
		AccessToken:  dto.AccessToken,
		RefreshToken: dto.RefreshToken,
	}, nil
}

type signupResponseDTO struct {
	User userDTO `json:"user"`
}

func (store *upstreamStore) Signup(context context.Context, input SignupInput) (*session.User, error) {
	payload := map[string]any{
		"email":            input.Email,
		"nom":              input.LastName,
		"prenom":           input.FirstName,
		"telephone":        input.Phone,
		"role":             "client", // The gateway only registers shoppers.
		"password":         input.Password,
		"confirm_password": input.ConfirmPassword,
	}
	if input.Address != "" {
		payload["adresse"] = input.Address
	}

	var dto signupResponseDTO
	if err := store.client.Post(context, constants.UpstreamSignupPath, payload, &dto); err != nil {
		return nil, fmt.Errorf("signup_failed: %w", err)
	}

	return dto.User.toDomain(), nil
}
