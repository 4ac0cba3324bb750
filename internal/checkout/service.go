// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package checkout

import (
	"context"
	"log/slog"

	"github.com/datadoit/storefront/internal/cart"
	"github.com/datadoit/storefront/internal/platform/apperr"
	"github.com/datadoit/storefront/internal/session"
)

// Service implements checkout use cases.
type Service struct {
	upstream    Store
	cartService *cart.Service
	logger      *slog.Logger
}

// NewService constructs a checkout [Service] with necessary dependencies.
func NewService(upstream Store, cartService *cart.Service, logger *slog.Logger) *Service {
	return &Service{
		upstream:    upstream,
		cartService: cartService,
		logger:      logger,
	}
}

/*
Submit places an order for the session's cart.

# Parameters
  - context: Context carrying the request deadline and session.
  - sess: The resolved browser session.
  - shipping: The validated delivery address.

# Returns
  - The upstream's [*Receipt] on success.
  - [apperr.EmptyCart] if the local cart holds no lines; the upstream is
    not contacted.

# Business Rules
  - A successful submission settles the local cart snapshot: the upstream
    has already emptied the durable cart.
  - A failed submission leaves the snapshot intact so the shopper can retry.
*/
func (service *Service) Submit(context context.Context, sess *session.Session, shipping ShippingInfo) (*Receipt, error) {
	// ── 1. Local Guards ───────────────────────────────────────────────────

	if !sess.Authenticated() {
		return nil, apperr.AuthRequired()
	}

	current, err := service.cartService.Current(context, sess)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		return nil, apperr.EmptyCart()
	}

	// ── 2. Submission ─────────────────────────────────────────────────────

	receipt, err := service.upstream.Submit(context, shipping)
	if err != nil {
		// The snapshot stays intact for a retry.
		return nil, err
	}

	// ── 3. Settlement ─────────────────────────────────────────────────────

	// The upstream emptied the durable cart as part of order creation.
	service.cartService.Clear(context, sess)

	service.logger.InfoContext(context, "order_placed",
		slog.Int64("order_id", receipt.OrderID),
		slog.Float64("cart_total", current.Total().Float64()),
	)

	return receipt, nil
}

// Orders returns the session user's order history.
func (service *Service) Orders(context context.Context, sess *session.Session) ([]Order, error) {
	if !sess.Authenticated() {
		return nil, apperr.AuthRequired()
	}
	return service.upstream.Orders(context)
}

// Order returns one of the session user's orders. The upstream enforces
// ownership; a foreign order surfaces as its error response.
func (service *Service) Order(context context.Context, sess *session.Session, orderID int64) (*Order, error) {
	if !sess.Authenticated() {
		return nil, apperr.AuthRequired()
	}
	return service.upstream.Order(context, orderID)
}
