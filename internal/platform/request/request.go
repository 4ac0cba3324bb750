// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/datadoit/storefront/internal/platform/apperr"
	"github.com/datadoit/storefront/internal/platform/ctxutil"
	"github.com/datadoit/storefront/internal/platform/validate"
	"github.com/datadoit/storefront/internal/session"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IntParam retrieves a named URL parameter and parses it as a positive int64.

Description: Upstream entity identifiers are integer primary keys, so every
path parameter flows through this helper.

Returns:
  - int64: Parsed identifier
  - error: apperr.ValidationError for missing, non-numeric, or non-positive values
*/
func IntParam(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 1 {
		return 0, apperr.ValidationError("Invalid " + name + " parameter")
	}

	return value, nil
}

/*
Session extracts the resolved browser session from the request context.

Returns nil if the session middleware did not run.
*/
func Session(request *http.Request) *session.Session {
	return ctxutil.GetSession(request.Context())
}

/*
RequiredSession ensures the request carries an authenticated session.

Returns:
  - *session.Session: The authenticated session handle
  - error: apperr.AuthRequired if the session is anonymous
*/
func RequiredSession(request *http.Request) (*session.Session, error) {

	// Get the resolved session
	sess := ctxutil.GetSession(request.Context())

	// If the session is anonymous, return an error
	if sess == nil || !sess.Authenticated() {
		return nil, apperr.AuthRequired()
	}

	return sess, nil
}
