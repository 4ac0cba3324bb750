// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

/*
Package cart implements the shopping-cart aggregate for the storefront
gateway.

# Architecture

The upstream API owns the durable cart; this package keeps a per-session
snapshot of it in Redis so the storefront can render instantly and survive
gateway restarts. Every mutation goes to the upstream first and the local
snapshot is reconciled from the response. Totals are never stored, they are
derived from the lines on every read.
*/
package cart

import (
	"time"

	"github.com/datadoit/storefront/pkg/money"
)

// ProductSnapshot is the slice of product state a cart line carries.
//
// It is captured from the upstream when the line enters the cart; the
// catalog remains the authority for current product data.
type ProductSnapshot struct {
	ID       int64        `json:"id"`
	Name     string       `json:"name"`
	Price    money.Amount `json:"price"`
	Image    string       `json:"image,omitempty"`
	Boutique string       `json:"boutique,omitempty"`
}

// Line is one product entry in the cart.
type Line struct {
	ID       int64           `json:"id"`
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns price multiplied by quantity for this line.
func (line Line) Subtotal() money.Amount {
	return money.Amount(line.Product.Price.Float64() * float64(line.Quantity))
}

// Cart is the aggregate the storefront renders.
//
// # Invariants
//   - Every line has Quantity >= 1; a line at zero is removed, never kept.
//   - At most one line per product.
//   - Total is derived, never stored.
type Cart struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// Total computes the cart total fresh from the current lines.
func (cart *Cart) Total() money.Amount {
	var total money.Amount
	for _, line := range cart.Lines {
		total += line.Subtotal()
	}
	return total
}

// Size returns the number of distinct lines.
func (cart *Cart) Size() int {
	return len(cart.Lines)
}

// IsEmpty reports whether the cart holds no lines.
func (cart *Cart) IsEmpty() bool {
	return cart == nil || len(cart.Lines) == 0
}

// lineIndex locates a line by its upstream line ID, or -1.
func (cart *Cart) lineIndex(lineID int64) int {
	for index, line := range cart.Lines {
		if line.ID == lineID {
			return index
		}
	}
	return -1
}

// setQuantity replaces the quantity of the matching line. A quantity below
// one removes the line. It reports whether the line was found.
func (cart *Cart) setQuantity(lineID int64, quantity int) bool {
	index := cart.lineIndex(lineID)
	if index < 0 {
		return false
	}

	if quantity < 1 {
		cart.Lines = append(cart.Lines[:index], cart.Lines[index+1:]...)
		return true
	}

	cart.Lines[index].Quantity = quantity
	return true
}

// removeLine filters out the matching line. Removing an absent line is a
// no-op so removal converges under replays.
func (cart *Cart) removeLine(lineID int64) {
	index := cart.lineIndex(lineID)
	if index < 0 {
		return
	}
	cart.Lines = append(cart.Lines[:index], cart.Lines[index+1:]...)
}

// normalize drops lines the invariants forbid (zero or negative quantity).
// Upstream responses are trusted but not blindly.
func (cart *Cart) normalize() {
	kept := cart.Lines[:0]
	for _, line := range cart.Lines {
		if line.Quantity >= 1 {
			kept = append(kept, line)
		}
	}
	cart.Lines = kept
}
