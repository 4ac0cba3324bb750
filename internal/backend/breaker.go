// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package backend

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sony/gobreaker/v2"

	"github.com/datadoit/storefront/internal/platform/constants"
)

// errUpstreamServer marks a 5xx response so the breaker counts it as a
// failure while the response itself still reaches the caller.
var errUpstreamServer = errors.New("backend: upstream server error")

// breakerTransport decorates a [http.RoundTripper] with a circuit breaker.
//
// # Policy
//
// Transport errors and 5xx responses count as failures; 4xx responses are
// business rejections and count as successes. After the configured number of
// consecutive failures the breaker opens and outbound calls fail fast with
// [gobreaker.ErrOpenState] until the cooldown elapses.
type breakerTransport struct {
	base    http.RoundTripper
	breaker *gobreaker.CircuitBreaker[*http.Response]
}

// newBreakerTransport wraps base with the standard upstream breaker settings.
func newBreakerTransport(base http.RoundTripper, logger *slog.Logger) *breakerTransport {
	settings := gobreaker.Settings{
		Name:     "storefront-upstream",
		Interval: constants.BreakerInterval,
		Timeout:  constants.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= constants.BreakerConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("upstream_breaker_state_changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	}

	return &breakerTransport{
		base:    base,
		breaker: gobreaker.NewCircuitBreaker[*http.Response](settings),
	}
}

// RoundTrip implements [http.RoundTripper].
func (transport *breakerTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	response, err := transport.breaker.Execute(func() (*http.Response, error) {
		response, err := transport.base.RoundTrip(request)
		if err != nil {
			return nil, err
		}

		if response.StatusCode >= 500 {
			return response, errUpstreamServer
		}

		return response, nil
	})

	// A 5xx is a failure for the breaker but a valid response for the
	// caller: unwrap the sentinel.
	if errors.Is(err, errUpstreamServer) {
		return response, nil
	}

	return response, err
}
