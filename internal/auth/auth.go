// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

/*
Package auth implements sign-in, sign-up, and sign-out against the upstream
storefront API.

# Architecture

The upstream issues and validates all tokens; this package's job is to
exchange credentials for a token pair and bind that pair to the browser
session. It never verifies tokens itself.
*/
package auth

import (
	"context"

	"github.com/datadoit/storefront/internal/session"
)

// LoginResult is the upstream's answer to a successful credential exchange.
type LoginResult struct {
	User         *session.User
	AccessToken  string
	RefreshToken string
}

// SignupInput holds the data required to register a new client account.
type SignupInput struct {
	Email           string
	FirstName       string
	LastName        string
	Phone           string
	Address         string
	Password        string
	ConfirmPassword string
}

// Store is the authentication surface of the upstream API.
type Store interface {
	// Login exchanges credentials for a token pair. A bad password surfaces
	// as an upstream 401 mapped to an unauthorized error.
	Login(context context.Context, email, password string) (*LoginResult, error)

	// Signup registers a new client account. The upstream does not issue
	// tokens on signup; the shopper logs in afterwards.
	Signup(context context.Context, input SignupInput) (*session.User, error)
}
