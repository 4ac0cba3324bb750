// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/datadoit/storefront/internal/platform/constants"
	"github.com/datadoit/storefront/internal/platform/ctxutil"
	"github.com/datadoit/storefront/internal/session"
)

// CookieConfig defines the behavior needed by the session middleware.
type CookieConfig interface {
	// CookieSettings returns the domain (may be empty) and the Secure flag
	// for the session cookie.
	CookieSettings() (domain string, secure bool)
}

/*
BrowserSession resolves the per-browser session on every request.

Description: Reads the session cookie (minting a fresh UUIDv7 identifier when
absent), loads the matching credentials from the store, and injects the
resolved [session.Session] handle into the request context. Downstream
handlers and the upstream transport both read the session from context.

A store outage fails the request with 500 rather than silently downgrading an
authenticated shopper to anonymous.
*/
func BrowserSession(store session.Store, cfg CookieConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Read or mint the session identifier
			sessionID := ""
			if cookie, err := request.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
				sessionID = cookie.Value
			}

			if sessionID == "" {
				uuidV7, err := uuid.NewV7()
				if err != nil {
					sessionID = uuid.New().String()
				} else {
					sessionID = uuidV7.String()
				}

				domain, secure := cfg.CookieSettings()
				http.SetCookie(writer, &http.Cookie{
					Name:     constants.SessionCookieName,
					Value:    sessionID,
					Path:     "/",
					Domain:   domain,
					MaxAge:   int(constants.CredentialsTTL.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			// 2. Resolve the session (anonymous on store miss)
			sess, err := session.Resolve(request.Context(), store, sessionID)
			if err != nil {
				logger.ErrorContext(request.Context(), "session_resolution_failed",
					slog.String("session_id", sessionID),
					slog.Any("error", err),
				)
				writeError(writer, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred")
				return
			}

			// 3. Proceed with the session attached to the context
			ctx := ctxutil.WithSession(request.Context(), sess)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
