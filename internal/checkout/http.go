// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package checkout

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/datadoit/storefront/internal/platform/request"
	"github.com/datadoit/storefront/internal/platform/respond"
	"github.com/datadoit/storefront/internal/platform/validate"
)

// Handler implements the checkout HTTP endpoints.
type Handler struct {
	checkoutService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{checkoutService: service}
}

// Routes returns a [chi.Router] configured with checkout routes.
//
// # Endpoints
//   - POST /             : Places an order for the current cart.
//   - GET  /orders       : Lists the shopper's past orders.
//   - GET  /orders/{id}  : Returns a single order.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.submit)
	router.Get("/orders", handler.orders)
	router.Get("/orders/{orderID}", handler.order)

	return router
}

// submitRequest represents the JSON payload for placing an order.
type submitRequest struct {
	Shipping ShippingInfo `json:"shipping"`
}

// submit handles POST /api/v1/checkout requests.
//
// # Returns
//   - Writes HTTP 201 Created with the order receipt.
//   - Writes HTTP 400 Bad Request on missing address fields.
//   - Writes HTTP 409 Conflict when the cart is empty.
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input submitRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	// The upstream validates the full address; the gateway only refuses
	// blank required fields to save a round trip.
	v := &validate.Validator{}
	v.Required("shipping.first_name", input.Shipping.FirstName)
	v.Required("shipping.last_name", input.Shipping.LastName)
	v.Required("shipping.address", input.Shipping.Address)
	v.Required("shipping.city", input.Shipping.City)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Service Call ───────────────────────────────────────────────────

	receipt, err := handler.checkoutService.Submit(request.Context(), sess, input.Shipping)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, receipt)
}

// orders handles GET /api/v1/checkout/orders requests.
func (handler *Handler) orders(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	orders, err := handler.checkoutService.Orders(request.Context(), sess)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, orders)
}

// order handles GET /api/v1/checkout/orders/{orderID} requests.
func (handler *Handler) order(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	orderID, err := requestutil.IntParam(request, "orderID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	order, err := handler.checkoutService.Order(request.Context(), sess, orderID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, order)
}
