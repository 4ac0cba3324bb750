// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/datadoit/storefront/internal/cart"
	"github.com/datadoit/storefront/internal/session"
)

// Service implements the session lifecycle use cases.
type Service struct {
	upstream    Store
	cartService *cart.Service
	logger      *slog.Logger
}

// NewService constructs an auth [Service] with necessary dependencies.
func NewService(upstream Store, cartService *cart.Service, logger *slog.Logger) *Service {
	return &Service{
		upstream:    upstream,
		cartService: cartService,
		logger:      logger,
	}
}

/*
Login exchanges credentials with the upstream and binds the issued token
pair to the browser session.

# Parameters
  - context: Context carrying the request deadline and session.
  - sess: The resolved browser session.
  - email, password: The shopper's credentials, forwarded verbatim.

# Returns
  - The signed-in [*session.User].
  - An unauthorized error when the upstream rejects the credentials; the
    session is left as it was.
*/
func (service *Service) Login(context context.Context, sess *session.Session, email, password string) (*session.User, error) {
	// ── 1. Credential Exchange ────────────────────────────────────────────

	result, err := service.upstream.Login(context, email, password)
	if err != nil {
		return nil, err
	}

	// ── 2. Session Binding ────────────────────────────────────────────────

	credentials := &session.Credentials{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User:         result.User,
		CreatedAt:    time.Now().UTC(),
	}
	if err := sess.Establish(context, credentials); err != nil {
		return nil, fmt.Errorf("login_session_bind_failed: %w", err)
	}

	service.logger.InfoContext(context, "user_logged_in",
		slog.Int64("user_id", result.User.ID),
		slog.String("role", result.User.Role),
	)

	return result.User, nil
}

// Signup registers a new client account. No session state changes; the
// shopper signs in afterwards.
func (service *Service) Signup(context context.Context, input SignupInput) (*session.User, error) {
	return service.upstream.Signup(context, input)
}

/*
Logout ends the session locally: credentials and the cart snapshot are
dropped together so the next visitor on this browser starts clean.

The upstream is not contacted. Its tokens are bearer tokens with their own
expiry; there is nothing to revoke.
*/
func (service *Service) Logout(context context.Context, sess *session.Session) error {
	credentials := sess.Credentials()

	if err := sess.Clear(context); err != nil {
		return fmt.Errorf("logout_failed: %w", err)
	}
	service.cartService.Clear(context, sess)

	if credentials != nil && credentials.User != nil {
		service.logger.InfoContext(context, "user_logged_out",
			slog.Int64("user_id", credentials.User.ID),
		)
	}

	return nil
}

// Info describes the current session for the storefront UI.
type Info struct {
	Authenticated bool          `json:"authenticated"`
	User          *session.User `json:"user,omitempty"`
	TokenExpires  *time.Time    `json:"token_expires,omitempty"`
}

// SessionInfo reports the session state. The token expiry is decoded
// without verification and is advisory only.
func (service *Service) SessionInfo(context context.Context, sess *session.Session) Info {
	credentials := sess.Credentials()
	if credentials == nil || !credentials.IsAuthenticated() {
		return Info{Authenticated: false}
	}

	info := Info{Authenticated: true, User: credentials.User}

	tokenInfo, err := session.InspectAccessToken(credentials.AccessToken)
	if err == nil && !tokenInfo.ExpiresAt.IsZero() {
		expires := tokenInfo.ExpiresAt
		info.TokenExpires = &expires
	}

	return info
}
