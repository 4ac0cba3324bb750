// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

/*
Package constants provides centralized, immutable values for the entire gateway.

It defines default timeouts, rate limits, session lifetimes, and cross-cutting
keys that are shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Upstream Timing: Outbound call deadlines and breaker thresholds.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Sessions: Cookie configuration and Redis key taxonomy.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "storefront-gateway"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Upstream Timing

const (
	// UpstreamRequestTimeout bounds every outbound call to the storefront API.
	// A hung upstream request must never leave a shopper's browser spinning
	// forever, so the outbound client always carries an explicit deadline.
	UpstreamRequestTimeout = 10 * time.Second

	// BreakerInterval is the cyclic period over which failure counts reset.
	BreakerInterval = 60 * time.Second

	// BreakerCooldown is how long the breaker stays open before probing again.
	BreakerCooldown = 15 * time.Second

	// BreakerConsecutiveFailures is the trip threshold for the upstream breaker.
	BreakerConsecutiveFailures = 5
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Sessions

const (
	// SessionCookieName carries the browser session identifier.
	SessionCookieName = "sf_session"

	// CredentialsTTL matches the upstream refresh token lifetime. Credentials
	// that outlive their refresh token are useless, so both expire together.
	CredentialsTTL = 7 * 24 * time.Hour

	// CartSnapshotTTL keeps an abandoned cart recoverable for a month.
	CartSnapshotTTL = 30 * 24 * time.Hour
)

// # Upstream Endpoints

const (
	// UpstreamLoginPath authenticates a user. A 401 from this path is a
	// credential failure, never a refresh trigger.
	UpstreamLoginPath = "/users/login/"

	// UpstreamRefreshPath exchanges a refresh token for a new access token.
	UpstreamRefreshPath = "/token/refresh/"

	// UpstreamSignupPath registers a new account.
	UpstreamSignupPath = "/users/signup/"

	// UpstreamProfilePath returns the authenticated user's profile.
	UpstreamProfilePath = "/users/me/"

	// UpstreamUserUpdatePathFormat updates one user's profile fields.
	UpstreamUserUpdatePathFormat = "/users/update/%d"

	// UpstreamCartPath reads the authenticated client's cart.
	UpstreamCartPath = "/cart/panier/"

	// UpstreamCartAddPath appends or increments a cart line.
	UpstreamCartAddPath = "/cart/panier/add/"

	// UpstreamCartLinePathFormat targets one cart line for PATCH/DELETE.
	UpstreamCartLinePathFormat = "/cart/paniers/lignes/%d/"

	// UpstreamCheckoutPath converts the cart into an order.
	UpstreamCheckoutPath = "/cart/panier/checkout/"

	// UpstreamOrdersPath lists the authenticated client's orders.
	UpstreamOrdersPath = "/cart/orders/"

	// UpstreamOrderPathFormat targets a single order.
	UpstreamOrderPathFormat = "/cart/orders/%d/"

	// UpstreamProductsPath lists products.
	UpstreamProductsPath = "/boutique/produits/"

	// UpstreamProductPathFormat targets a single product.
	UpstreamProductPathFormat = "/boutique/produits/%d/"

	// UpstreamCategoriesPath lists product categories.
	UpstreamCategoriesPath = "/boutique/category-produits/"

	// UpstreamBoutiquesPath lists boutiques.
	UpstreamBoutiquesPath = "/boutique/boutiques/"

	// UpstreamBoutiquePathFormat targets a single boutique.
	UpstreamBoutiquePathFormat = "/boutique/boutiques/%d/"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
)

// # Redis Prefixes (Session Taxonomy)

const (
	RedisPrefixCredentials = "session:credentials:"
	RedisPrefixCart        = "cart:snapshot:"
	RedisPrefixCartPending = "cart:pending:"
)
