// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/datadoit/storefront/internal/platform/request"
	"github.com/datadoit/storefront/internal/platform/respond"
	"github.com/datadoit/storefront/pkg/pagination"
)

// Handler implements the catalogue HTTP endpoints. All routes are public.
type Handler struct {
	catalogService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{catalogService: service}
}

// Routes returns a [chi.Router] configured with catalogue routes.
//
// # Endpoints
//   - GET /storefront       : Landing-page aggregate.
//   - GET /products         : Paged product list with ?search=.
//   - GET /products/{id}    : Single product.
//   - GET /categories       : Product categories.
//   - GET /boutiques        : Paged boutique list.
//   - GET /boutiques/{id}   : Single boutique.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/storefront", handler.storefront)
	router.Get("/products", handler.products)
	router.Get("/products/{productID}", handler.product)
	router.Get("/categories", handler.categories)
	router.Get("/boutiques", handler.boutiques)
	router.Get("/boutiques/{boutiqueID}", handler.boutique)

	return router
}

// productResponse decorates a product with its derived availability so
// storefront buttons never compute it from raw stock.
type productResponse struct {
	Product
	InStock bool `json:"in_stock"`
}

func newProductResponse(product Product) productResponse {
	return productResponse{Product: product, InStock: product.InStock()}
}

func newProductResponses(products []Product) []productResponse {
	responses := make([]productResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, newProductResponse(product))
	}
	return responses
}

// storefront handles GET /api/v1/catalog/storefront requests.
func (handler *Handler) storefront(writer http.ResponseWriter, request *http.Request) {
	overview, err := handler.catalogService.Storefront(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, overview)
}

// products handles GET /api/v1/catalog/products requests.
func (handler *Handler) products(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	products, meta, err := handler.catalogService.Products(request.Context(), search, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, newProductResponses(products), meta)
}

// product handles GET /api/v1/catalog/products/{productID} requests.
func (handler *Handler) product(writer http.ResponseWriter, request *http.Request) {
	productID, err := requestutil.IntParam(request, "productID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.catalogService.Product(request.Context(), productID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newProductResponse(*product))
}

// categories handles GET /api/v1/catalog/categories requests.
func (handler *Handler) categories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.catalogService.Categories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, categories)
}

// boutiques handles GET /api/v1/catalog/boutiques requests.
func (handler *Handler) boutiques(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	boutiques, meta, err := handler.catalogService.Boutiques(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, boutiques, meta)
}

// boutique handles GET /api/v1/catalog/boutiques/{boutiqueID} requests.
func (handler *Handler) boutique(writer http.ResponseWriter, request *http.Request) {
	boutiqueID, err := requestutil.IntParam(request, "boutiqueID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	boutique, err := handler.catalogService.Boutique(request.Context(), boutiqueID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, boutique)
}
