package controllers

import (
	"net/http"

	"github.com/KennethTannn98/stockflow-console/api/middleware"
	"github.com/KennethTannn98/stockflow-console/api/responses"
	"github.com/KennethTannn98/stockflow-console/api/validators"
	"github.com/KennethTannn98/stockflow-console/internal/server/store"
	"github.com/KennethTannn98/stockflow-console/pkg/logger"
)

type alertCreateRequest struct {
	ProductID int `json:"productId" validate:"required,gt=0"`
}

type alertUpdateRequest struct {
	Resolved bool `json:"resolved"`
}

// AlertsList returns every alert, open and resolved.
func AlertsList(alerts *store.AlertRepo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := alerts.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AlertsGet returns one alert.
func AlertsGet(alerts *store.AlertRepo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		alert, err := alerts.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, alert)
	}
}

// AlertsCreate raises a manual alert for a product.
func AlertsCreate(alerts *store.AlertRepo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req alertCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		alert, err := alerts.Create(r.Context(), req.ProductID, middleware.UsernameFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, alert)
	}
}

// AlertsUpdate resolves or reopens an alert.
func AlertsUpdate(alerts *store.AlertRepo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req alertUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		alert, err := alerts.SetResolved(r.Context(), id, req.Resolved, middleware.UsernameFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, alert)
	}
}

// AlertsDelete removes an alert.
func AlertsDelete(alerts *store.AlertRepo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := alerts.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusNoContent, nil)
	}
}
