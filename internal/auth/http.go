// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/datadoit/storefront/internal/platform/apperr"
	requestutil "github.com/datadoit/storefront/internal/platform/request"
	"github.com/datadoit/storefront/internal/platform/respond"
	"github.com/datadoit/storefront/internal/platform/validate"
)

// Handler implements the session lifecycle HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with auth routes.
//
// # Endpoints
//   - POST /login   : Signs in and binds tokens to the browser session.
//   - POST /signup  : Registers a new client account.
//   - POST /logout  : Ends the session.
//   - GET  /session : Describes the current session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.Post("/signup", handler.signup)
	router.Post("/logout", handler.logout)
	router.Get("/session", handler.sessionInfo)

	return router
}

// loginRequest represents the JSON payload for signing in.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login handles POST /api/v1/auth/login requests.
//
// # Returns
//   - Writes HTTP 200 OK with the signed-in user.
//   - Writes HTTP 400 Bad Request on a malformed payload.
//   - Writes HTTP 401 Unauthorized on rejected credentials.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	sess := requestutil.Session(request)
	if sess == nil {
		respond.Error(writer, request, apperr.Internal(nil))
		return
	}

	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	v := &validate.Validator{}
	v.Required("email", input.Email)
	v.Email("email", input.Email)
	v.Required("password", input.Password)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Service Call ───────────────────────────────────────────────────

	user, err := handler.authService.Login(request.Context(), sess, input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// signupRequest represents the JSON payload for registration.
type signupRequest struct {
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// signup handles POST /api/v1/auth/signup requests.
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The upstream enforces the full signup rules; the gateway refuses only
	// what is certain to be rejected.
	v := &validate.Validator{}
	v.Required("email", input.Email)
	v.Email("email", input.Email)
	v.Required("first_name", input.FirstName)
	v.MaxLen("first_name", input.FirstName, 150)
	v.Required("last_name", input.LastName)
	v.MaxLen("last_name", input.LastName, 150)
	v.MinLen("password", input.Password, 8)
	v.Custom("confirm_password", input.Password != input.ConfirmPassword, "Passwords do not match")
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Signup(request.Context(), SignupInput{
		Email:           input.Email,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Phone:           input.Phone,
		Address:         input.Address,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

// logout handles POST /api/v1/auth/logout requests. Logging out an
// anonymous session succeeds; the result is the same either way.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	sess := requestutil.Session(request)
	if sess == nil {
		respond.NoContent(writer)
		return
	}

	if err := handler.authService.Logout(request.Context(), sess); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// sessionInfo handles GET /api/v1/auth/session requests.
func (handler *Handler) sessionInfo(writer http.ResponseWriter, request *http.Request) {
	sess := requestutil.Session(request)
	if sess == nil {
		respond.OK(writer, Info{Authenticated: false})
		return
	}

	respond.OK(writer, handler.authService.SessionInfo(request.Context(), sess))
}
