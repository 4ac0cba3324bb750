// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package catalog

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/datadoit/storefront/internal/platform/apperr"
	"github.com/datadoit/storefront/pkg/pagination"
)

// Service implements catalogue browsing use cases.
type Service struct {
	upstream Store
	logger   *slog.Logger
}

// NewService constructs a catalog [Service] with necessary dependencies.
func NewService(upstream Store, logger *slog.Logger) *Service {
	return &Service{upstream: upstream, logger: logger}
}

/*
Products lists products, optionally filtered by a case-insensitive search
over name and description, windowed to the requested page.

# Parameters
  - context: Context carrying the request deadline.
  - search: Optional free-text filter; empty means no filtering.
  - params: The page window to serve.

# Returns
  - The page of products and metadata describing the filtered total.
*/
func (service *Service) Products(context context.Context, search string, params pagination.Params) ([]Product, pagination.Meta, error) {
	all, err := service.upstream.Products(context)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	filtered := filterProducts(all, search)
	page := pagination.Window(filtered, params)
	meta := pagination.NewMeta(params.Page, params.Limit, len(filtered))

	return page, meta, nil
}

// Product returns one product by ID.
func (service *Service) Product(context context.Context, productID int64) (*Product, error) {
	product, err := service.upstream.Product(context, productID)
	if err != nil {
		return nil, notFoundAs(err, "Product")
	}
	return product, nil
}

// Categories lists all product categories.
func (service *Service) Categories(context context.Context) ([]Category, error) {
	categories, err := service.upstream.Categories(context)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []Category{}
	}
	return categories, nil
}

// Boutiques lists boutiques windowed to the requested page.
func (service *Service) Boutiques(context context.Context, params pagination.Params) ([]Boutique, pagination.Meta, error) {
	all, err := service.upstream.Boutiques(context)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	page := pagination.Window(all, params)
	meta := pagination.NewMeta(params.Page, params.Limit, len(all))

	return page, meta, nil
}

// Boutique returns one boutique by ID.
func (service *Service) Boutique(context context.Context, boutiqueID int64) (*Boutique, error) {
	boutique, err := service.upstream.Boutique(context, boutiqueID)
	if err != nil {
		return nil, notFoundAs(err, "Boutique")
	}
	return boutique, nil
}

// notFoundAs renames an upstream 404 after the resource the shopper asked
// for; every other failure passes through unchanged.
func notFoundAs(err error, resource string) error {
	if ae := apperr.As(err); ae != nil && ae.HTTPStatus == http.StatusNotFound {
		return apperr.NotFound(resource)
	}
	return err
}

/*
Storefront assembles the landing-page aggregate by fetching products,
categories, and boutiques concurrently.

Any sub-fetch failure fails the whole call: a landing page with silently
missing sections is worse than an error the storefront can retry.
*/
func (service *Service) Storefront(context context.Context) (*Storefront, error) {
	var overview Storefront

	group, groupContext := errgroup.WithContext(context)

	group.Go(func() error {
		products, err := service.upstream.Products(groupContext)
		if err != nil {
			return err
		}
		overview.Products = products
		return nil
	})

	group.Go(func() error {
		categories, err := service.upstream.Categories(groupContext)
		if err != nil {
			return err
		}
		overview.Categories = categories
		return nil
	})

	group.Go(func() error {
		boutiques, err := service.upstream.Boutiques(groupContext)
		if err != nil {
			return err
		}
		overview.Boutiques = boutiques
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	// Keep JSON arrays as [] rather than null on an empty catalogue.
	if overview.Products == nil {
		overview.Products = []Product{}
	}
	if overview.Categories == nil {
		overview.Categories = []Category{}
	}
	if overview.Boutiques == nil {
		overview.Boutiques = []Boutique{}
	}

	return &overview, nil
}

// filterProducts applies the case-insensitive free-text filter.
func filterProducts(products []Product, search string) []Product {
	search = strings.TrimSpace(strings.ToLower(search))
	if search == "" {
		return products
	}

	filtered := make([]Product, 0, len(products))
	for _, product := range products {
		name := strings.ToLower(product.Name)
		description := strings.ToLower(product.Description)
		if strings.Contains(name, search) || strings.Contains(description, search) {
			filtered = append(filtered, product)
		}
	}
	return filtered
}
