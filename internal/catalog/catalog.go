// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

/*
Package catalog serves read-only projections of the upstream product
catalogue: products, product categories, and boutiques.

# Architecture

The upstream returns whole unpaginated arrays, so the gateway filters and
windows lists locally before serving them. Nothing in this package writes
upstream state.
*/
package catalog

import (
	"github.com/datadoit/storefront/pkg/money"
)

// Product is a sellable item in a boutique.
type Product struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Price       money.Amount `json:"price"`
	Stock       int          `json:"stock"`
	Image       string       `json:"image,omitempty"`
	Color       string       `json:"color,omitempty"`
	Size        string       `json:"size,omitempty"`
	Category    *Category    `json:"category,omitempty"`
	Boutique    *Boutique    `json:"boutique,omitempty"`
}

// InStock reports whether the product can currently be ordered.
func (product Product) InStock() bool {
	return product.Stock > 0
}

// Category groups products within a boutique.
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Boutique is a merchant's shop.
type Boutique struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Logo        string `json:"logo,omitempty"`
	Address     string `json:"address,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Storefront is the landing-page aggregate: everything the storefront needs
// to render its first screen in one response.
type Storefront struct {
	Products   []Product  `json:"products"`
	Categories []Category `json:"categories"`
	Boutiques  []Boutique `json:"boutiques"`
}
