// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

/*
Package backend implements the authenticated HTTP client for the upstream
storefront REST API.

Every outbound call flows through a decorated [http.RoundTripper] chain:

  - authTransport: attaches the session's bearer token and performs the
    single 401 refresh-and-replay.
  - breakerTransport: trips a circuit breaker on repeated upstream failures.
  - http.Transport: the actual network dial, bounded by an explicit timeout.

Architecture:

  - Client: JSON request/response codec with apperr error mapping.
  - The upstream API is a black box returning conventional status codes;
    its 4xx/5xx bodies are surfaced to callers verbatim where possible.

Domain packages (cart, catalog, checkout, ...) define their own DTOs and call
[Client.Get]/[Client.Post]/etc with upstream paths.
*/
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/sony/gobreaker/v2"

	"github.com/datadoit/storefront/internal/platform/apperr"
	"github.com/datadoit/storefront/internal/platform/constants"
	"github.com/datadoit/storefront/internal/platform/ctxutil"
)

// Client is the gateway's door to the upstream storefront API.
//
// It is safe for concurrent use; per-session state travels in the request
// context, never in the Client itself.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient wires the full outbound transport chain for the given base URL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	breaker := newBreakerTransport(http.DefaultTransport, logger)
	auth := newAuthTransport(breaker, baseURL)

	return &Client{
		httpClient: &http.Client{
			Transport: auth,
			Timeout:   constants.UpstreamRequestTimeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// # JSON Verbs

// Get performs a GET request and decodes the JSON response into out.
func (client *Client) Get(context context.Context, path string, out interface{}) error {
	return client.do(context, http.MethodGet, path, nil, out)
}

// Post performs a POST request with a JSON body and decodes the response into out.
func (client *Client) Post(context context.Context, path string, body, out interface{}) error {
	return client.do(context, http.MethodPost, path, body, out)
}

// Put performs a PUT request with a JSON body and decodes the response into out.
func (client *Client) Put(context context.Context, path string, body, out interface{}) error {
	return client.do(context, http.MethodPut, path, body, out)
}

// Patch performs a PATCH request with a JSON body and decodes the response into out.
func (client *Client) Patch(context context.Context, path string, body, out interface{}) error {
	return client.do(context, http.MethodPatch, path, body, out)
}

// Delete performs a DELETE request. Upstream delete responses carry no body.
func (client *Client) Delete(context context.Context, path string) error {
	return client.do(context, http.MethodDelete, path, nil, nil)
}

// # Request Execution

/*
do builds, executes, and decodes one upstream request.

Description: The request body (if any) is buffered so the auth transport can
replay it byte-identically after a token refresh. Status codes outside 2xx are
mapped into the apperr taxonomy; transport failures and open breakers map to
SERVICE_UNAVAILABLE.

Parameters:
  - context: context.Context
  - method: string
  - path: string (upstream path, joined onto the base URL)
  - body: interface{} (JSON-encoded; nil for bodyless requests)
  - out: interface{} (decode target; nil to discard the response body)

Returns:
  - error: apperr-wrapped failures
*/
func (client *Client) do(context context.Context, method, path string, body, out interface{}) error {

	// Encode the body into a replayable buffer
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperr.Internal(fmt.Errorf("backend_encode_failed: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	// Build the request. http.NewRequestWithContext sets GetBody for
	// *bytes.Reader, which the auth transport relies on for its replay.
	request, err := http.NewRequestWithContext(context, method, client.baseURL+path, reader)
	if err != nil {
		return apperr.Internal(fmt.Errorf("backend_request_build_failed: %w", err))
	}

	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	// Execute through the decorated transport chain
	response, err := client.httpClient.Do(request)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return apperr.Unavailable(err)
		}
		return apperr.Unavailable(fmt.Errorf("backend_transport_failed: %w", err))
	}
	defer func() { _ = response.Body.Close() }()

	// Map non-2xx statuses into the error taxonomy
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return client.mapFailure(context, response)
	}

	// Decode the successful response if the caller wants it
	if out != nil {
		if err := json.NewDecoder(response.Body).Decode(out); err != nil {
			return apperr.Internal(fmt.Errorf("backend_decode_failed: %w", err))
		}
	}

	return nil
}

// # Failure Mapping

// upstreamErrorBody covers the message shapes the storefront API uses
// interchangeably across its endpoints.
type upstreamErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// message returns the first non-empty message field.
func (b upstreamErrorBody) message() string {
	switch {
	case b.Error != "":
		return b.Error
	case b.Message != "":
		return b.Message
	default:
		return b.Detail
	}
}

/*
mapFailure translates a non-2xx upstream response into an [*apperr.AppError].

Description: A 401 surviving the auth transport means the refresh path is
exhausted — either the session was anonymous (AUTH_REQUIRED) or its refresh
token was rejected and the credentials have been cleared (SESSION_EXPIRED).
Everything else passes through with the upstream status and message.
*/
func (client *Client) mapFailure(context context.Context, response *http.Response) error {
	var body upstreamErrorBody
	_ = json.NewDecoder(io.LimitReader(response.Body, 8192)).Decode(&body)

	if response.StatusCode == http.StatusUnauthorized {
		// A login or refresh rejection is a credential failure, never a
		// session problem: the upstream's reason reaches the shopper
		// verbatim.
		if isAuthExempt(response.Request.URL.Path) {
			return apperr.Unauthorized(body.message())
		}

		// No bearer was ever attached: the caller skipped the
		// RequiredSession guard on an endpoint that needs one.
		if response.Request.Header.Get(constants.HeaderAuthorization) == "" {
			return apperr.AuthRequired()
		}

		// A bearer was attached and the session no longer holds
		// credentials: the refresh failed terminally and cleared them.
		if sess := ctxutil.GetSession(context); sess != nil && !sess.Credentials().IsAuthenticated() {
			return apperr.SessionExpired()
		}

		return apperr.Unauthorized(body.message())
	}

	client.logger.WarnContext(context, "upstream_request_rejected",
		slog.Int("status", response.StatusCode),
		slog.String("path", response.Request.URL.Path),
	)

	switch response.StatusCode {
	case http.StatusForbidden:
		msg := body.message()
		if msg == "" {
			msg = "You do not have permission to perform this action"
		}
		return apperr.Forbidden(msg)
	case http.StatusConflict:
		msg := body.message()
		if msg == "" {
			msg = "The request conflicts with the current state"
		}
		return apperr.Conflict(msg)
	}

	return apperr.Upstream(response.StatusCode, body.message())
}
