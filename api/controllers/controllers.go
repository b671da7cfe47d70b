// Package controllers holds the HTTP handlers of the inventory API.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/KennethTannn98/stockflow-console/pkg/errors"
)

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid id")
	}
	return id, nil
}
