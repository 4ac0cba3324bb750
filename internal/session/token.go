// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// accessClaims mirrors the payload the upstream storefront API embeds in its
// access tokens.
type accessClaims struct {
	jwt.RegisteredClaims

	UserID int64 `json:"user_id"`
}

// TokenInfo is the decoded metadata of an access token.
type TokenInfo struct {
	UserID    int64
	ExpiresAt time.Time
}

// InspectAccessToken decodes an access token WITHOUT verifying its signature.
//
// # Why unverified?
//
// The gateway holds no signing keys — token validity is always decided by the
// upstream API (a 401 response). Decoding is used only for session metadata:
// surfacing the expiry to the UI and enriching logs. Never use the result for
// an authorization decision.
func InspectAccessToken(token string) (*TokenInfo, error) {
	parser := jwt.NewParser()

	claims := &accessClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("session_token_inspect_failed: %w", err)
	}

	info := &TokenInfo{UserID: claims.UserID}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}

	return info, nil
}
