package middleware

import (
	"net/http"
	"strings"

	"github.com/KennethTannn98/stockflow-console/api/responses"
	pkgauth "github.com/KennethTannn98/stockflow-console/pkg/auth"
	"github.com/KennethTannn98/stockflow-console/pkg/config"
	"github.com/KennethTannn98/stockflow-console/pkg/enums"
	pkgerrors "github.com/KennethTannn98/stockflow-console/pkg/errors"
	"github.com/KennethTannn98/stockflow-console/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the
// username and role the token carries.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			username := claims.Username
			if username == "" {
				username = claims.Subject
			}
			role := ""
			if len(claims.Roles) > 0 {
				role = claims.Roles[0].String()
			}

			ctx := WithUsername(r.Context(), username)
			ctx = WithRole(ctx, role)
			if logg != nil {
				ctx = logg.WithUsername(ctx, username)
				ctx = logg.WithField(ctx, "actor_role", role)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects requests whose context role does not match.
func RequireRole(role enums.Role, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != role.String() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
