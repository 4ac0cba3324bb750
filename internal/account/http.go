// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/datadoit/storefront/internal/platform/request"
	"github.com/datadoit/storefront/internal/platform/respond"
	"github.com/datadoit/storefront/internal/platform/validate"
)

// Handler implements the profile HTTP endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with profile routes.
//
// # Endpoints
//   - GET   /profile : Current user's profile, read from the upstream.
//   - PATCH /profile : Partial profile update.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/profile", handler.profile)
	router.Patch("/profile", handler.update)

	return router
}

// profile handles GET /api/v1/account/profile requests.
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Profile(request.Context(), sess)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateRequest represents the JSON payload for a partial profile update.
// Absent fields stay untouched.
type updateRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
}

// update handles PATCH /api/v1/account/profile requests.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Present-but-blank names are refused; absent ones are fine.
	v := &validate.Validator{}
	if input.FirstName != nil {
		v.Required("first_name", *input.FirstName)
	}
	if input.LastName != nil {
		v.Required("last_name", *input.LastName)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Update(request.Context(), sess, UpdateInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
