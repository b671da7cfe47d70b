package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/KennethTannn98/stockflow-console/api/middleware"
	"github.com/KennethTannn98/stockflow-console/api/responses"
	"github.com/KennethTannn98/stockflow-console/api/validators"
	"github.com/KennethTannn98/stockflow-console/internal/server/store"
	"github.com/KennethTannn98/stockflow-console/pkg/enums"
	pkgerrors "github.com/KennethTannn98/stockflow-console/pkg/errors"
	"github.com/KennethTannn98/stockflow-console/pkg/logger"
	"github.com/KennethTannn98/stockflow-console/pkg/models"
)

type transactionRequest struct {
	ProductID int         `json:"productId" validate:"required,gt=0"`
	Quantity  int         `json:"quantity" validate:"required,gt=0"`
	Type      string      `json:"transactionType" validate:"required,oneof=IN OUT ADJUSTMENT"`
	Reference string      `json:"reference" validate:"required"`
	Date      models.Date `json:"transactionDate"`
}

func (req transactionRequest) fields() store.TransactionFields {
	return store.TransactionFields{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Type:      enums.TransactionType(req.Type),
		Reference: req.Reference,
		Date:      req.Date,
	}
}

// TransactionsList returns every stock movement.
func TransactionsList(transactions *store.TransactionRepo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := transactions.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// TransactionsListByProduct returns the movement history of one product.
func TransactionsListByProduct(transactions *store.TransactionRepo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := strconv.Atoi(chi.URLParam(r, "productId"))
		if err != nil || productID <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id"))
			return
		}
		list, err := transactions.ListByProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// TransactionsGet returns one movement.
func TransactionsGet(transactions *store.TransactionRepo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		transaction, err := transactions.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, transaction)
	}
}

// TransactionsCreate records a movement and applies its stock effect.
func TransactionsCreate(transactions *store.TransactionRepo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req transactionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		transaction, err := transactions.Create(r.Context(), req.fields(), middleware.UsernameFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, transaction)
	}
}

// TransactionsUpdate corrects a movement, reversing the old effect first.
func TransactionsUpdate(transactions *store.TransactionRepo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req transactionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		transaction, err := transactions.Update(r.Context(), id, req.fields(), middleware.UsernameFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, transaction)
	}
}

// TransactionsDelete removes a movement and reverses its stock effect.
func TransactionsDelete(transactions *store.TransactionRepo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := transactions.Delete(r.Context(), id, middleware.UsernameFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusNoContent, nil)
	}
}
