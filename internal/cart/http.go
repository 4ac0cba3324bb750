// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/datadoit/storefront/internal/platform/apperr"
	requestutil "github.com/datadoit/storefront/internal/platform/request"
	"github.com/datadoit/storefront/internal/platform/respond"
	"github.com/datadoit/storefront/internal/platform/validate"
)

// Handler implements the cart HTTP endpoints.
type Handler struct {
	cartService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{cartService: service}
}

// Routes returns a [chi.Router] configured with cart routes.
//
// # Endpoints
//   - GET    /             : Refreshes the cart from the upstream.
//   - GET    /snapshot     : Returns the local snapshot without a network call.
//   - POST   /lines        : Adds a product to the cart.
//   - PATCH  /lines/{id}   : Replaces a line's quantity.
//   - DELETE /lines/{id}   : Removes a line.
//   - DELETE /             : Clears the local snapshot.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.fetch)
	router.Get("/snapshot", handler.snapshot)
	router.Post("/lines", handler.addLine)
	router.Patch("/lines/{lineID}", handler.updateQuantity)
	router.Delete("/lines/{lineID}", handler.removeLine)
	router.Delete("/", handler.clear)

	return router
}

// cartResponse decorates the cart with its derived total so clients never
// compute money themselves.
type cartResponse struct {
	*Cart
	Total float64 `json:"total"`
}

func newCartResponse(cart *Cart) cartResponse {
	return cartResponse{Cart: cart, Total: cart.Total().Float64()}
}

// fetch handles GET /api/v1/cart requests.
func (handler *Handler) fetch(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	cart, err := handler.cartService.Fetch(request.Context(), sess)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newCartResponse(cart))
}

// snapshot handles GET /api/v1/cart/snapshot requests. It never leaves the
// gateway, so it works even while the upstream is down.
func (handler *Handler) snapshot(writer http.ResponseWriter, request *http.Request) {
	sess := requestutil.Session(request)
	if sess == nil {
		respond.Error(writer, request, apperr.AuthRequired())
		return
	}

	cart, err := handler.cartService.Current(request.Context(), sess)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newCartResponse(cart))
}

// addLineRequest represents the JSON payload for adding a product.
type addLineRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// addLine handles POST /api/v1/cart/lines requests.
//
// # Returns
//   - Writes HTTP 201 Created with the merged cart.
//   - Writes HTTP 400 Bad Request on a non-positive product or quantity.
//   - Writes HTTP 401 Unauthorized for anonymous sessions.
func (handler *Handler) addLine(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input addLineRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// A missing quantity means one unit, matching storefront buttons that
	// post only the product.
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	v := &validate.Validator{}
	v.PositiveInt("product_id", input.ProductID)
	v.PositiveInt("quantity", int64(input.Quantity))
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Service Call ───────────────────────────────────────────────────

	cart, err := handler.cartService.AddLine(request.Context(), sess, input.ProductID, input.Quantity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, newCartResponse(cart))
}

// updateQuantityRequest represents the JSON payload for a quantity change.
type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// updateQuantity handles PATCH /api/v1/cart/lines/{lineID} requests.
func (handler *Handler) updateQuantity(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	lineID, err := requestutil.IntParam(request, "lineID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateQuantityRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.PositiveInt("quantity", int64(input.Quantity))
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	cart, err := handler.cartService.UpdateQuantity(request.Context(), sess, lineID, input.Quantity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newCartResponse(cart))
}

// removeLine handles DELETE /api/v1/cart/lines/{lineID} requests.
func (handler *Handler) removeLine(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	lineID, err := requestutil.IntParam(request, "lineID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	cart, err := handler.cartService.RemoveLine(request.Context(), sess, lineID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newCartResponse(cart))
}

// clear handles DELETE /api/v1/cart requests. Clearing is local-only and
// always succeeds.
func (handler *Handler) clear(writer http.ResponseWriter, request *http.Request) {
	sess := requestutil.Session(request)
	if sess == nil {
		respond.Error(writer, request, apperr.AuthRequired())
		return
	}

	handler.cartService.Clear(request.Context(), sess)
	respond.NoContent(writer)
}
