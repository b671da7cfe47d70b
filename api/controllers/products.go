package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/KennethTannn98/stockflow-console/api/middleware"
	"github.com/KennethTannn98/stockflow-console/api/responses"
	"github.com/KennethTannn98/stockflow-console/api/validators"
	"github.com/KennethTannn98/stockflow-console/internal/server/store"
	"github.com/KennethTannn98/stockflow-console/pkg/logger"
)

type productCreateRequest struct {
	Name     string          `json:"name" validate:"required"`
	SKU      string          `json:"sku" validate:"required"`
	Category string          `json:"category" validate:"required"`
	Quantity int             `json:"quantity" validate:"gte=0"`
	Price    decimal.Decimal `json:"price" validate:"gt=0"`
	Reorder  int             `json:"reorder" validate:"gte=0"`
}

type productUpdateRequest struct {
	Name     string          `json:"name" validate:"required"`
	Category string          `json:"category" validate:"required"`
	Quantity int             `json:"quantity" validate:"gte=0"`
	Price    decimal.Decimal `json:"price" validate:"gt=0"`
	Reorder  int             `json:"reorder" validate:"gte=0"`
}

// ProductsList returns the catalog.
func ProductsList(products *store.ProductRepo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := products.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ProductsGet returns one product.
func ProductsGet(products *store.ProductRepo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := products.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductsCreate stores a new product.
func ProductsCreate(products *store.ProductRepo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req productCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := products.Create(r.Context(), store.ProductFields{
			Name:     req.Name,
			SKU:      req.SKU,
			Category: req.Category,
			Quantity: req.Quantity,
			Price:    req.Price,
			Reorder:  req.Reorder,
		}, middleware.UsernameFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// ProductsUpdate edits a product, never its SKU.
func ProductsUpdate(products *store.ProductRepo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req productUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := products.Update(r.Context(), id, store.ProductFields{
			Name:     req.Name,
			Category: req.Category,
			Quantity: req.Quantity,
			Price:    req.Price,
			Reorder:  req.Reorder,
		}, middleware.UsernameFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductsDelete removes a product.
func ProductsDelete(products *store.ProductRepo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := products.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusNoContent, nil)
	}
}
