// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package checkout

import "context"

// Store is the order surface of the upstream API.
type Store interface {
	// Submit places an order for the caller's upstream cart contents with
	// the given delivery address.
	Submit(context context.Context, shipping ShippingInfo) (*Receipt, error)

	// Orders lists the caller's past orders, newest first.
	Orders(context context.Context) ([]Order, error)

	// Order returns one of the caller's orders by identifier.
	Order(context context.Context, orderID int64) (*Order, error)
}
