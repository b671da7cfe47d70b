package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KennethTannn98/stockflow-console/api/middleware"
	"github.com/KennethTannn98/stockflow-console/api/responses"
	"github.com/KennethTannn98/stockflow-console/api/validators"
	"github.com/KennethTannn98/stockflow-console/internal/server/store"
	"github.com/KennethTannn98/stockflow-console/pkg/config"
	"github.com/KennethTannn98/stockflow-console/pkg/enums"
	pkgerrors "github.com/KennethTannn98/stockflow-console/pkg/errors"
	"github.com/KennethTannn98/stockflow-console/pkg/logger"
)

type userCreateRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=ROLE_USER ROLE_ADMIN ROLE_MANAGER"`
}

type roleUpdateRequest struct {
	Role string `json:"role" validate:"required,oneof=ROLE_USER ROLE_ADMIN ROLE_MANAGER"`
}

// UsersList returns every account. Password hashes never serialize.
func UsersList(users *store.UserRepo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := users.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// UsersCreate registers an account with a hashed password.
func UsersCreate(users *store.UserRepo, passwordCfg config.PasswordConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req userCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user, err := users.Create(r.Context(), req.Username, req.Password, enums.Role(req.Role), passwordCfg, middleware.UsernameFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

// UsersUpdateRole changes an account's role, addressed by username.
func UsersUpdateRole(users *store.UserRepo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")
		if username == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "username is required"))
			return
		}
		var req roleUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user, err := users.UpdateRoleByUsername(r.Context(), username, enums.Role(req.Role), middleware.UsernameFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// UsersDelete removes an account.
func UsersDelete(users *store.UserRepo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := users.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusNoContent, nil)
	}
}
