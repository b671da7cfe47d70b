package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KennethTannn98/stockflow-console/pkg/config"
	"github.com/KennethTannn98/stockflow-console/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "stockflow-test",
		ExpirationMinutes: 60,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), "alice", enums.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, []enums.Role{enums.RoleAdmin}, claims.Roles)
	require.Equal(t, "alice", claims.Subject)
}

func TestMintRejectsInvalidRole(t *testing.T) {
	_, err := MintAccessToken(testJWTConfig(), time.Now(), "alice", enums.Role("ROLE_SUPREME"))
	require.Error(t, err)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), "alice", enums.RoleUser)
	require.NoError(t, err)

	cfg.Secret = "other-secret"
	_, err = ParseAccessToken(cfg, token)
	require.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), "alice", enums.RoleUser)
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, token)
	require.Error(t, err)
}

func TestDecodeCredentialWithoutVerification(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), "manager", enums.RoleManager)
	require.NoError(t, err)

	// Deliberately no secret: decode must work on the payload alone.
	cred, err := DecodeCredential(token)
	require.NoError(t, err)
	require.Equal(t, "manager", cred.Username)
	require.True(t, cred.HasRole(enums.RoleManager))
	require.False(t, cred.HasRole(enums.RoleAdmin))
}

func TestDecodeCredentialExpiredTokenStillDecodes(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now().Add(-24*time.Hour), "alice", enums.RoleUser)
	require.NoError(t, err)

	cred, err := DecodeCredential(token)
	require.NoError(t, err)
	require.Equal(t, "alice", cred.Username)
}

func TestDecodeCredentialGarbage(t *testing.T) {
	for _, input := range []string{"", "   ", "not-a-jwt", "a.b"} {
		_, err := DecodeCredential(input)
		require.Error(t, err, "input %q", input)
	}
}

func TestDecodeCredentialDropsUnknownRoles(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), "alice", enums.RoleUser)
	require.NoError(t, err)

	cred, err := DecodeCredential(token)
	require.NoError(t, err)
	for _, role := range cred.Roles {
		require.True(t, role.IsValid())
	}
}
