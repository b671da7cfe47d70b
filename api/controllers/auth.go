package controllers

import (
	"net/http"
	"time"

	"github.com/KennethTannn98/stockflow-console/api/responses"
	"github.com/KennethTannn98/stockflow-console/api/validators"
	"github.com/KennethTannn98/stockflow-console/internal/server/store"
	pkgauth "github.com/KennethTannn98/stockflow-console/pkg/auth"
	"github.com/KennethTannn98/stockflow-console/pkg/config"
	pkgerrors "github.com/KennethTannn98/stockflow-console/pkg/errors"
	"github.com/KennethTannn98/stockflow-console/pkg/logger"
	"github.com/KennethTannn98/stockflow-console/pkg/security"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// AuthLogin exchanges credentials for a bearer token. Unknown usernames and
// wrong passwords answer identically.
func AuthLogin(users *store.UserRepo, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := users.GetByUsername(r.Context(), req.Username)
		if err != nil {
			if pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
				err = pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ok, err := security.VerifyPassword(req.Password, user.PasswordHash)
		if err != nil || !ok {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials"))
			return
		}

		token, err := pkgauth.MintAccessToken(cfg, time.Now(), user.Username, user.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token"))
			return
		}

		responses.WriteSuccess(w, loginResponse{Token: token})
	}
}
