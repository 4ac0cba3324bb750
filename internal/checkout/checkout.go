// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

/*
Package checkout implements order submission and order history for the
storefront gateway.

The upstream owns order creation end to end (totals, stock, payment hooks);
the gateway's job is to refuse obviously invalid submissions locally and to
settle the shopper's cart snapshot once an order is accepted.
*/
package checkout

import (
	"time"

	"github.com/datadoit/storefront/pkg/money"
)

// ShippingInfo is the delivery address collected at checkout.
type ShippingInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
}

// Receipt acknowledges an accepted order.
type Receipt struct {
	OrderID int64  `json:"order_id"`
	Message string `json:"message"`
}

// Order is a past order as listed in the shopper's history.
type Order struct {
	ID        int64         `json:"id"`
	Boutique  string        `json:"boutique"`
	Amount    money.Amount  `json:"amount"`
	Shipping  *ShippingInfo `json:"shipping,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
