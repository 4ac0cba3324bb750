// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/datadoit/storefront/internal/backend"
	"github.com/datadoit/storefront/internal/platform/constants"
	"github.com/datadoit/storefront/pkg/money"
)

// upstreamStore talks to the upstream order endpoints. The upstream stores
// the shipping address verbatim as a JSON document with camelCase keys, so
// the wire shape here differs from the gateway's own JSON convention.
type upstreamStore struct {
	client *backend.Client
}

// NewUpstreamStore builds the [Store] backed by the upstream API.
func NewUpstreamStore(client *backend.Client) Store {
	return &upstreamStore{client: client}
}

type shippingDTO struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
}

type receiptDTO struct {
	Message string `json:"message"`
	OrderID int64  `json:"order_id"`
}

type orderDTO struct {
	ID        int64        `json:"id"`
	Boutique  string       `json:"boutique"`
	Amount    money.Amount `json:"montant"`
	Shipping  *shippingDTO `json:"shipping_info"`
	CreatedAt time.Time    `json:"created_at"`
}

func (store *upstreamStore) Submit(context context.Context, shipping ShippingInfo) (*Receipt, error) {
	payload := map[string]any{
		"shipping_info": shippingDTO{
			FirstName: shipping.FirstName,
			LastName:  shipping.LastName,
			Address:   shipping.Address,
			City:      shipping.City,
		},
	}

	var dto receiptDTO
	if err := store.client.Post(context, constants.UpstreamCheckoutPath, payload, &dto); err != nil {
		return nil, fmt.Errorf("checkout_submit_failed: %w", err)
	}

	return &Receipt{OrderID: dto.OrderID, Message: dto.Message}, nil
}

func (store *upstreamStore) Orders(context context.Context) ([]Order, error) {
	var dtos []orderDTO
	if err := store.client.Get(context, constants.UpstreamOrdersPath, &dtos); err != nil {
		return nil, fmt.Errorf("orders_fetch_failed: %w", err)
	}

	orders := make([]Order, 0, len(dtos))
	for _, dto := range dtos {
		orders = append(orders, dto.toDomain())
	}

	return orders, nil
}

func (store *upstreamStore) Order(context context.Context, orderID int64) (*Order, error) {
	var dto orderDTO
	path := fmt.Sprintf(constants.UpstreamOrderPathFormat, orderID)
	if err := store.client.Get(context, path, &dto); err != nil {
		return nil, fmt.Errorf("order_fetch_failed: %w", err)
	}

	order := dto.toDomain()
	return &order, nil
}

func (dto orderDTO) toDomain() Order {
	order := Order{
		ID:        dto.ID,
		Boutique:  dto.Boutique,
		Amount:    dto.Amount,
		CreatedAt: dto.CreatedAt,
	}
	if dto.Shipping != nil {
		order.Shipping = &ShippingInfo{
			FirstName: dto.Shipping.FirstName,
			LastName:  dto.Shipping.LastName,
			Address:   dto.Shipping.Address,
			City:      dto.Shipping.City,
		}
	}
	return order
}
