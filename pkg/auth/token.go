package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/KennethTannn98/stockflow-console/pkg/config"
	"github.com/KennethTannn98/stockflow-console/pkg/enums"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// MintAccessToken issues a signed JWT for the given user using the configured TTL.
func MintAccessToken(cfg config.JWTConfig, now time.Time, username string, role enums.Role) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("jwt secret is required")
	}
	if cfg.Issuer == "" {
		return "", fmt.Errorf("jwt issuer is required")
	}
	if cfg.ExpirationMinutes <= 0 {
		return "", fmt.Errorf("jwt expiration minutes must be positive")
	}
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role %q", role)
	}

	claims := AccessTokenClaims{
		Username: username,
		Roles:    []enums.Role{role},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.Expiration())),
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// ParseAccessToken validates the JWT string and returns typed claims.
func ParseAccessToken(cfg config.JWTConfig, tokenString string) (*AccessTokenClaims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	claims := &AccessTokenClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
	)
	if err != nil {
		return nil, err
	}

	return claims, nil
}

// DecodeCredential extracts subject and roles from a bearer token without
// verifying the signature. The token is opaque to the console; a failed
// decode means "no roles", callers must not treat it as fatal.
func DecodeCredential(tokenString string) (*Credential, error) {
	trimmed := strings.TrimSpace(tokenString)
	if trimmed == "" {
		return nil, fmt.Errorf("empty credential")
	}

	claims := &AccessTokenClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(trimmed, claims); err != nil {
		return nil, fmt.Errorf("decoding credential: %w", err)
	}

	roles := make([]enums.Role, 0, len(claims.Roles))
	for _, role := range claims.Roles {
		if role.IsValid() {
			roles = append(roles, role)
		}
	}

	username := claims.Username
	if username == "" {
		username = claims.Subject
	}

	return &Credential{
		Subject:  claims.Subject,
		Username: username,
		Roles:    roles,
	}, nil
}
