// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package catalog

import "context"

// Store is the catalogue surface of the upstream API.
type Store interface {
	// Products retrieves every product. Filtering happens in the service.
	Products(context context.Context) ([]Product, error)

	// Product retrieves one product by ID.
	Product(context context.Context, productID int64) (*Product, error)

	// Categories retrieves every product category.
	Categories(context context.Context) ([]Category, error)

	// Boutiques retrieves every boutique.
	Boutiques(context context.Context) ([]Boutique, error)

	// Boutique retrieves one boutique by ID.
	Boutique(context context.Context, boutiqueID int64) (*Boutique, error)
}
