// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package catalog

import (
	"context"
	"fmt"

	"github.com/datadoit/storefront/internal/backend"
	"github.com/datadoit/storefront/internal/platform/constants"
	"github.com/datadoit/storefront/pkg/money"
)

// upstreamStore translates the upstream catalogue wire shapes (French field
// names, nested serializers) into domain types.
type upstreamStore struct {
	client *backend.Client
}

// NewUpstreamStore builds the [Store] backed by the upstream API.
func NewUpstreamStore(client *backend.Client) Store {
	return &upstreamStore{client: client}
}

// ── Wire shapes ───────────────────────────────────────────────────────────

type categoryDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"nom"`
	Image string `json:"image"`
}

type boutiqueDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"nom"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Address     string `json:"adresse"`
	Phone       string `json:"telephone"`
	Email       string `json:"email"`
	Image       string `json:"image"`
}

type productDTO struct {
	ID          int64        `json:"id"`
	Name        string       `json:"nom"`
	Description string       `json:"description"`
	Price       money.Amount `json:"prix"`
	Stock       int          `json:"stock"`
	Image       string       `json:"image"`
	Color       string       `json:"couleur"`
	Size        string       `json:"taille"`
	Category    *categoryDTO `json:"category_produit"`
	Boutique    *boutiqueDTO `json:"boutique"`
}

func (dto categoryDTO) toDomain() Category {
	return Category{ID: dto.ID, Name: dto.Name, Image: dto.Image}
}

func (dto boutiqueDTO) toDomain() Boutique {
	return Boutique{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
		Logo:        dto.Logo,
		Address:     dto.Address,
		Phone:       dto.Phone,
		Email:       dto.Email,
		Image:       dto.Image,
	}
}

func (dto productDTO) toDomain() Product {
	product := Product{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
		Price:       dto.Price,
		Stock:       dto.Stock,
		Image:       dto.Image,
		Color:       dto.Color,
		Size:        dto.Size,
	}

	if dto.Category != nil {
		category := dto.Category.toDomain()
		product.Category = &category
	}
	if dto.Boutique != nil {
		boutique := dto.Boutique.toDomain()
		product.Boutique = &boutique
	}

	return product
}

// ── Operations ────────────────────────────────────────────────────────────

func (store *upstreamStore) Products(context context.Context) ([]Product, error) {
	var dtos []productDTO
	if err := store.client.Get(context, constants.UpstreamProductsPath, &dtos); err != nil {
		return nil, fmt.Errorf("products_fetch_failed: %w", err)
	}

	products := make([]Product, 0, len(dtos))
	for _, dto := range dtos {
		products = append(products, dto.toDomain())
	}
	return products, nil
}

func (store *upstreamStore) Product(context context.Context, productID int64) (*Product, error) {
	path := fmt.Sprintf(constants.UpstreamProductPathFormat, productID)

	var dto productDTO
	if err := store.client.Get(context, path, &dto); err != nil {
		return nil, fmt.Errorf("product_fetch_failed: %w", err)
	}

	product := dto.toDomain()
	return &product, nil
}

func (store *upstreamStore) Categories(context context.Context) ([]Category, error) {
	var dtos []categoryDTO
	if err := store.client.Get(context, constants.UpstreamCategoriesPath, &dtos); err != nil {
		return nil, fmt.Errorf("categories_fetch_failed: %w", err)
	}

	categories := make([]Category, 0, len(dtos))
	for _, dto := range dtos {
		categories = append(categories, dto.toDomain())
	}
	return categories, nil
}

func (store *upstreamStore) Boutiques(context context.Context) ([]Boutique, error) {
	var dtos []boutiqueDTO
	if err := store.client.Get(context, constants.UpstreamBoutiquesPath, &dtos); err != nil {
		return nil, fmt.Errorf("boutiques_fetch_failed: %w", err)
	}

	boutiques := make([]Boutique, 0, len(dtos))
	for _, dto := range dtos {
		boutiques = append(boutiques, dto.toDomain())
	}
	return boutiques, nil
}

func (store *upstreamStore) Boutique(context context.Context, boutiqueID int64) (*Boutique, error) {
	path := fmt.Sprintf(constants.UpstreamBoutiquePathFormat, boutiqueID)

	var dto boutiqueDTO
	if err := store.client.Get(context, path, &dto); err != nil {
		return nil, fmt.Errorf("boutique_fetch_failed: %w", err)
	}

	boutique := dto.toDomain()
	return &boutique, nil
}
