// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datadoit/storefront/internal/platform/apperr"
	"github.com/datadoit/storefront/pkg/pagination"
)

type fakeStore struct {
	products   []Product
	categories []Category
	boutiques  []Boutique

	productsErr   error
	categoriesErr error
	boutiquesErr  error
}

func (fake *fakeStore) Products(context.Context) ([]Product, error) {
	return fake.products, fake.productsErr
}

func (fake *fakeStore) Product(_ context.Context, productID int64) (*Product, error) {
	for _, product := range fake.products {
		if product.ID == productID {
			return &product, nil
		}
	}
	return nil, apperr.Upstream(http.StatusNotFound, "No Produit matches the given query.")
}

func (fake *fakeStore) Categories(context.Context) ([]Category, error) {
	return fake.categories, fake.categoriesErr
}

func (fake *fakeStore) Boutiques(context.Context) ([]Boutique, error) {
	return fake.boutiques, fake.boutiquesErr
}

func (fake *fakeStore) Boutique(_ context.Context, boutiqueID int64) (*Boutique, error) {
	for _, boutique := range fake.boutiques {
		if boutique.ID == boutiqueID {
			return &boutique, nil
		}
	}
	return nil, apperr.Upstream(http.StatusNotFound, "No Boutique matches the given query.")
}

func newTestService(store Store) *Service {
	return NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sampleProducts() []Product {
	return []Product{
		{ID: 1, Name: "Tapis berbère", Description: "Laine tissée main", Price: 149, Stock: 3},
		{ID: 2, Name: "Poterie de Fès", Description: "Céramique émaillée", Price: 35, Stock: 0},
		{ID: 3, Name: "Lampe en cuivre", Description: "Artisanat traditionnel", Price: 89, Stock: 12},
	}
}

func TestService_ProductsSearch(t *testing.T) {
	service := newTestService(&fakeStore{products: sampleProducts()})
	params := pagination.Params{Page: 1, Limit: 20}

	tests := []struct {
		name    string
		search  string
		wantIDs []int64
	}{
		{name: "No filter returns all", search: "", wantIDs: []int64{1, 2, 3}},
		{name: "Name match", search: "tapis", wantIDs: []int64{1}},
		{name: "Case insensitive", search: "LAMPE", wantIDs: []int64{3}},
		{name: "Description match", search: "céramique", wantIDs: []int64{2}},
		{name: "No match", search: "zellige", wantIDs: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, meta, err := service.Products(context.Background(), tt.search, params)
			require.NoError(t, err)

			ids := make([]int64, 0, len(products))
			for _, product := range products {
				ids = append(ids, product.ID)
			}

			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, len(tt.wantIDs), meta.Total)
		})
	}
}

func TestService_ProductsWindowing(t *testing.T) {
	service := newTestService(&fakeStore{products: sampleProducts()})

	page, meta, err := service.Products(context.Background(), "", pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)

	require.Len(t, page, 1)
	assert.Equal(t, int64(3), page[0].ID)
	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)

	// A page past the end is empty, not an error.
	past, _, err := service.Products(context.Background(), "", pagination.Params{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, past)
	assert.NotNil(t, past)
}

func TestService_StorefrontAggregates(t *testing.T) {
	service := newTestService(&fakeStore{
		products:   sampleProducts(),
		categories: []Category{{ID: 1, Name: "Décoration"}},
		boutiques:  []Boutique{{ID: 1, Name: "Artisanat du Sud"}},
	})

	overview, err := service.Storefront(context.Background())
	require.NoError(t, err)

	assert.Len(t, overview.Products, 3)
	assert.Len(t, overview.Categories, 1)
	assert.Len(t, overview.Boutiques, 1)
}

func TestService_StorefrontPartialFailureFails(t *testing.T) {
	service := newTestService(&fakeStore{
		products:     sampleProducts(),
		boutiquesErr: errors.New("upstream down"),
	})

	_, err := service.Storefront(context.Background())
	require.Error(t, err)
}

func TestService_StorefrontEmptyCatalogue(t *testing.T) {
	service := newTestService(&fakeStore{})

	overview, err := service.Storefront(context.Background())
	require.NoError(t, err)

	// Arrays must encode as [], never null.
	assert.NotNil(t, overview.Products)
	assert.NotNil(t, overview.Categories)
	assert.NotNil(t, overview.Boutiques)
}

func TestProduct_InStock(t *testing.T) {
	assert.True(t, Product{Stock: 1}.InStock())
	assert.False(t, Product{Stock: 0}.InStock())
}

func TestService_ProductNotFound(t *testing.T) {
	service := newTestService(&fakeStore{products: sampleProducts()})

	_, err := service.Product(context.Background(), 99)

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
	assert.Equal(t, "Product not found", ae.Message)
}

func TestService_BoutiqueNotFound(t *testing.T) {
	service := newTestService(&fakeStore{})

	_, err := service.Boutique(context.Background(), 99)

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
	assert.Equal(t, "Boutique not found", ae.Message)
}
