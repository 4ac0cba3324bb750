// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/datadoit/storefront/internal/platform/constants"
	"github.com/datadoit/storefront/internal/platform/ctxutil"
	"github.com/datadoit/storefront/internal/session"
)

// # Authenticated Transport

// authTransport decorates a [http.RoundTripper] with bearer attachment and
// the single-shot token refresh policy.
//
// # Refresh Policy
//
// On a 401 response for any path except the login and refresh endpoints, the
// transport performs exactly one silent refresh using the session's stored
// refresh token, then replays the original request once with the new access
// token. The caller observes the replayed response. A second 401, a missing
// refresh token, or a rejected refresh are terminal: credentials are cleared
// and the original 401 propagates.
//
// The replay happens inline rather than recursively, so "at most one retry
// per logical request" holds structurally — there is no retry counter to get
// wrong.
//
// # Concurrency
//
// Concurrent requests on the same session that each hit 401 will each refresh
// independently. The upstream refresh endpoint is idempotent (the refresh
// token is reused, not rotated), so duplicate refreshes are an inefficiency,
// not a correctness bug.
type authTransport struct {
	base    http.RoundTripper
	baseURL string
}

// newAuthTransport decorates base with the session-aware auth policy.
func newAuthTransport(base http.RoundTripper, baseURL string) *authTransport {
	return &authTransport{base: base, baseURL: baseURL}
}

// RoundTrip implements [http.RoundTripper].
func (transport *authTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	sess := ctxutil.GetSession(request.Context())

	// 1. Attach the bearer token when the session holds one. The caller's
	// request stays untouched; RoundTrip must not modify its argument.
	if credentials := sessionCredentials(sess); credentials.IsAuthenticated() {
		authed := request.Clone(request.Context())
		authed.Header.Set(constants.HeaderAuthorization, "Bearer "+credentials.AccessToken)
		request = authed
	}

	// 2. Execute the original request
	response, err := transport.base.RoundTrip(request)
	if err != nil {
		return nil, err
	}

	// 3. Anything but a 401 passes through unchanged
	if response.StatusCode != http.StatusUnauthorized {
		return response, nil
	}

	// 4. The login and refresh endpoints never trigger a refresh — a 401
	// there is a credential failure, and retrying would loop forever.
	if sess == nil || isAuthExempt(request.URL.Path) {
		return response, nil
	}

	logger := ctxutil.GetLogger(request.Context())

	// 5. Attempt the single silent refresh
	accessToken, refreshErr := transport.refresh(request.Context(), sess)
	if refreshErr != nil {
		// Terminal: destroy the session credentials so the caller is
		// routed back to login.
		logger.WarnContext(request.Context(), "token_refresh_failed",
			slog.String("path", request.URL.Path),
			slog.Any("error", refreshErr),
		)
		if clearErr := sess.Clear(request.Context()); clearErr != nil {
			logger.ErrorContext(request.Context(), "session_clear_failed", slog.Any("error", clearErr))
		}
		return response, nil
	}

	logger.InfoContext(request.Context(), "token_refresh_succeeded",
		slog.String("path", request.URL.Path),
	)

	// 6. Replay the original request exactly once with the new token
	drainAndClose(response)

	replay, replayErr := cloneForReplay(request)
	if replayErr != nil {
		return nil, replayErr
	}
	replay.Header.Set(constants.HeaderAuthorization, "Bearer "+accessToken)

	replayed, err := transport.base.RoundTrip(replay)
	if err != nil {
		return nil, err
	}

	// A 401 on the freshly minted token means the session is beyond repair.
	// Clear it and propagate; there is never a second refresh.
	if replayed.StatusCode == http.StatusUnauthorized {
		logger.WarnContext(request.Context(), "token_rejected_after_refresh",
			slog.String("path", request.URL.Path),
		)
		if clearErr := sess.Clear(request.Context()); clearErr != nil {
			logger.ErrorContext(request.Context(), "session_clear_failed", slog.Any("error", clearErr))
		}
	}

	return replayed, nil
}

/*
refresh exchanges the session's stored refresh token for a new access token.

Description: On success the new access token is adopted into the session (the
refresh token is reused, not rotated). A missing refresh token counts as a
refresh failure without any network call.

Parameters:
  - context: context.Context
  - sess: *session.Session

Returns:
  - string: The new access token
  - error: Refresh failures
*/
func (transport *authTransport) refresh(context context.Context, sess *session.Session) (string, error) {
	credentials := sess.Credentials()
	if credentials == nil || credentials.RefreshToken == "" {
		return "", fmt.Errorf("auth_transport_no_refresh_token")
	}

	// Encode the refresh payload
	payload, err := json.Marshal(map[string]string{
		"refresh_token": credentials.RefreshToken,
	})
	if err != nil {
		return "", fmt.Errorf("auth_transport_refresh_encode_failed: %w", err)
	}

	// Build the refresh request against the raw base transport: it must not
	// re-enter the auth policy.
	request, err := http.NewRequestWithContext(context, http.MethodPost,
		transport.baseURL+constants.UpstreamRefreshPath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("auth_transport_refresh_build_failed: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	response, err := transport.base.RoundTrip(request)
	if err != nil {
		return "", fmt.Errorf("auth_transport_refresh_send_failed: %w", err)
	}
	defer drainAndClose(response)

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("auth_transport_refresh_rejected: status %d", response.StatusCode)
	}

	// Decode the new access token
	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(response.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("auth_transport_refresh_decode_failed: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("auth_transport_refresh_empty_token")
	}

	// Persist the rotated access token alongside the reused refresh token
	if err := sess.AdoptAccessToken(context, body.AccessToken); err != nil {
		return "", err
	}

	return body.AccessToken, nil
}

// # Helpers

// isAuthExempt reports whether a path must never trigger a token refresh.
func isAuthExempt(path string) bool {
	return strings.HasSuffix(path, constants.UpstreamLoginPath) ||
		strings.HasSuffix(path, constants.UpstreamRefreshPath)
}

// sessionCredentials returns the session's credentials, tolerating a nil session.
func sessionCredentials(sess *session.Session) *session.Credentials {
	if sess == nil {
		return nil
	}
	return sess.Credentials()
}

// cloneForReplay rebuilds a request with a fresh body from GetBody.
func cloneForReplay(request *http.Request) (*http.Request, error) {
	replay := request.Clone(request.Context())

	if request.GetBody != nil {
		body, err := request.GetBody()
		if err != nil {
			return nil, fmt.Errorf("auth_transport_replay_body_failed: %w", err)
		}
		replay.Body = body
	}

	return replay, nil
}

// drainAndClose discards an abandoned response body so the underlying
// connection can be reused.
func drainAndClose(response *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, 8192))
	_ = response.Body.Close()
}
