// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package cart

import (
	"context"
	"fmt"

	"github.com/datadoit/storefront/internal/backend"
	"github.com/datadoit/storefront/internal/platform/constants"
	"github.com/datadoit/storefront/pkg/money"
)

// upstreamStore talks to the upstream cart endpoints and translates their
// wire shapes into domain types. The upstream API predates this gateway and
// names its fields in French; the translation is confined to this file.
type upstreamStore struct {
	client *backend.Client
}

// NewUpstreamStore builds the [UpstreamStore] backed by the upstream API.
func NewUpstreamStore(client *backend.Client) UpstreamStore {
	return &upstreamStore{client: client}
}

// ── Wire shapes ───────────────────────────────────────────────────────────

type productDTO struct {
	ID       int64        `json:"id"`
	Name     string       `json:"nom"`
	Price    money.Amount `json:"prix"`
	Image    string       `json:"image"`
	Boutique *struct {
		Name string `json:"nom"`
	} `json:"boutique"`
}

type lineDTO struct {
	ID       int64      `json:"id"`
	Product  productDTO `json:"produit"`
	Quantity int        `json:"quantite"`
}

type cartDTO struct {
	ID     int64     `json:"id"`
	Client int64     `json:"client"`
	Lines  []lineDTO `json:"lignes"`
}

type writtenLineDTO struct {
	ID       int64 `json:"id"`
	Product  int64 `json:"produit"`
	Quantity int   `json:"quantite"`
}

func (dto cartDTO) toDomain() *Cart {
	cart := &Cart{
		ID:      dto.ID,
		OwnerID: dto.Client,
		Lines:   make([]Line, 0, len(dto.Lines)),
	}

	for _, line := range dto.Lines {
		snapshot := ProductSnapshot{
			ID:    line.Product.ID,
			Name:  line.Product.Name,
			Price: line.Product.Price,
			Image: line.Product.Image,
		}
		if line.Product.Boutique != nil {
			snapshot.Boutique = line.Product.Boutique.Name
		}

		cart.Lines = append(cart.Lines, Line{
			ID:       line.ID,
			Product:  snapshot,
			Quantity: line.Quantity,
		})
	}

	cart.normalize()
	return cart
}

// ── Operations ────────────────────────────────────────────────────────────

func (store *upstreamStore) Fetch(context context.Context) (*Cart, error) {
	var dto cartDTO
	if err := store.client.Get(context, constants.UpstreamCartPath, &dto); err != nil {
		return nil, fmt.Errorf("cart_fetch_failed: %w", err)
	}
	return dto.toDomain(), nil
}

func (store *upstreamStore) AddLine(context context.Context, productID int64, quantity int) (*WrittenLine, error) {
	payload := map[string]any{
		"produit_id": productID,
		"quantite":   quantity,
	}

	var dto writtenLineDTO
	if err := store.client.Post(context, constants.UpstreamCartAddPath, payload, &dto); err != nil {
		return nil, fmt.Errorf("cart_add_failed: %w", err)
	}

	return &WrittenLine{ID: dto.ID, ProductID: dto.Product, Quantity: dto.Quantity}, nil
}

func (store *upstreamStore) UpdateLine(context context.Context, lineID int64, quantity int) error {
	path := fmt.Sprintf(constants.UpstreamCartLinePathFormat, lineID)

	payload := map[string]any{"quantite": quantity}
	if err := store.client.Patch(context, path, payload, nil); err != nil {
		return fmt.Errorf("cart_line_update_failed: %w", err)
	}
	return nil
}

func (store *upstreamStore) RemoveLine(context context.Context, lineID int64) error {
	path := fmt.Sprintf(constants.UpstreamCartLinePathFormat, lineID)

	if err := store.client.Delete(context, path); err != nil {
		return fmt.Errorf("cart_line_remove_failed: %w", err)
	}
	return nil
}
