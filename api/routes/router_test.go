package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KennethTannn98/stockflow-console/api/middleware"
	"github.com/KennethTannn98/stockflow-console/internal/server/store"
	"github.com/KennethTannn98/stockflow-console/pkg/config"
	"github.com/KennethTannn98/stockflow-console/pkg/db"
	"github.com/KennethTannn98/stockflow-console/pkg/enums"
	"github.com/KennethTannn98/stockflow-console/pkg/logger"
	"github.com/KennethTannn98/stockflow-console/pkg/models"
)

type testEnv struct {
	server *httptest.Server
	store  *store.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "stockflow-test",
			ExpirationMinutes: 30,
		},
	}

	client, err := db.New(context.Background(), config.DBConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "router.db"),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Migrate())

	st, err := store.New(client)
	require.NoError(t, err)

	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})

	handler := NewRouter(Dependencies{
		Config:      cfg,
		Logger:      logg,
		DB:          client,
		Store:       st,
		Registry:    prometheus.NewRegistry(),
		Idempotency: middleware.NewIdempotencyStore(time.Minute),
	})
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &testEnv{server: server, store: st}
}

func (e *testEnv) seedUser(t *testing.T, username, password string, role enums.Role) {
	t.Helper()
	_, err := e.store.Users.Create(context.Background(), username, password, role, config.PasswordConfig{}, "seed")
	require.NoError(t, err)
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	status, body := e.request(t, http.MethodPost, "/api/auth/login", "", "",
		map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, status, string(body))

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (e *testEnv) request(t *testing.T, method, path, token, idempotencyKey string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, e.server.URL+path, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope.Error.Code
}

func TestRouterRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, http.MethodGet, "/api/products", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, body))
}

func TestRouterLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", "correct-horse", enums.RoleUser)

	status, body := env.request(t, http.MethodPost, "/api/auth/login", "", "",
		map[string]string{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, body))
}

func TestRouterProductLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", "correct-horse", enums.RoleUser)
	token := env.login(t, "alice", "correct-horse")

	status, body := env.request(t, http.MethodPost, "/api/products", token, "key-create", map[string]any{
		"name":     "Hammer",
		"sku":      "HAM-001",
		"category": "tools",
		"quantity": 10,
		"price":    "12.50",
		"reorder":  3,
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	var created models.Product
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "HAM-001", created.SKU)
	assert.Equal(t, "alice", created.CreatedBy)

	status, body = env.request(t, http.MethodGet, "/api/products", token, "", nil)
	require.Equal(t, http.StatusOK, status)
	var list []models.Product
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)

	path := fmt.Sprintf("/api/products/%d", created.ID)
	status, body = env.request(t, http.MethodPut, path, token, "key-update", map[string]any{
		"name":     "Claw Hammer",
		"category": "tools",
		"quantity": 8,
		"price":    "13.00",
		"reorder":  3,
	})
	require.Equal(t, http.StatusOK, status, string(body))
	var updated models.Product
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "Claw Hammer", updated.Name)
	assert.Equal(t, "HAM-001", updated.SKU)

	status, _ = env.request(t, http.MethodDelete, path, token, "key-delete", nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, body = env.request(t, http.MethodGet, path, token, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))
}

func TestRouterTransactionAppliesStockEffect(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", "correct-horse", enums.RoleUser)
	token := env.login(t, "alice", "correct-horse")

	status, body := env.request(t, http.MethodPost, "/api/products", token, "p1", map[string]any{
		"name": "Paint", "sku": "PNT-001", "category": "supplies",
		"quantity": 6, "price": "5.00", "reorder": 4,
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var product models.Product
	require.NoError(t, json.Unmarshal(body, &product))

	status, body = env.request(t, http.MethodPost, "/api/transactions", token, "t1", map[string]any{
		"productId":       product.ID,
		"quantity":        3,
		"transactionType": "OUT",
		"reference":       "order-77",
		"transactionDate": models.Today(),
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = env.request(t, http.MethodGet, fmt.Sprintf("/api/products/%d", product.ID), token, "", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &product))
	assert.Equal(t, 3, product.Quantity)

	// Dropping to the reorder level raises an alert.
	status, body = env.request(t, http.MethodGet, "/api/alerts", token, "", nil)
	require.Equal(t, http.StatusOK, status)
	var alerts []models.Alert
	require.NoError(t, json.Unmarshal(body, &alerts))
	require.Len(t, alerts, 1)
	assert.False(t, alerts[0].Resolved)
	assert.Equal(t, "PNT-001", alerts[0].ProductSKU)
}

func TestRouterIdempotentCreateReplays(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", "correct-horse", enums.RoleUser)
	token := env.login(t, "alice", "correct-horse")

	payload := map[string]any{
		"name": "Tape", "sku": "TAP-001", "category": "supplies",
		"quantity": 2, "price": "1.50", "reorder": 1,
	}
	status, first := env.request(t, http.MethodPost, "/api/products", token, "same-key", payload)
	require.Equal(t, http.StatusCreated, status)
	status, second := env.request(t, http.MethodPost, "/api/products", token, "same-key", payload)
	require.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, string(first), string(second))

	status, body := env.request(t, http.MethodGet, "/api/products", token, "", nil)
	require.Equal(t, http.StatusOK, status)
	var list []models.Product
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 1)
}

func TestRouterAdminGate(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", "correct-horse", enums.RoleUser)
	env.seedUser(t, "root", "super-secret-pw", enums.RoleAdmin)

	userToken := env.login(t, "alice", "correct-horse")
	status, body := env.request(t, http.MethodGet, "/api/admin/users", userToken, "", nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errorCode(t, body))

	adminToken := env.login(t, "root", "super-secret-pw")
	status, body = env.request(t, http.MethodGet, "/api/admin/users", adminToken, "", nil)
	require.Equal(t, http.StatusOK, status)
	var users []models.User
	require.NoError(t, json.Unmarshal(body, &users))
	assert.Len(t, users, 2)
	assert.NotContains(t, string(body), "passwordHash")

	status, body = env.request(t, http.MethodPut, "/api/admin/users/username/alice/role", adminToken, "r1",
		map[string]string{"role": "ROLE_MANAGER"})
	require.Equal(t, http.StatusOK, status, string(body))
	var promoted models.User
	require.NoError(t, json.Unmarshal(body, &promoted))
	assert.Equal(t, enums.RoleManager, promoted.Role)
}

func TestRouterValidationEnvelope(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", "correct-horse", enums.RoleUser)
	token := env.login(t, "alice", "correct-horse")

	status, body := env.request(t, http.MethodPost, "/api/products", token, "v1", map[string]any{
		"name": "", "sku": "", "category": "tools", "quantity": -1, "price": "0", "reorder": 0,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	var envelope struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
	assert.Contains(t, envelope.Error.Details, "name")
	assert.Contains(t, envelope.Error.Details, "sku")
	assert.Contains(t, envelope.Error.Details, "quantity")
	assert.Contains(t, envelope.Error.Details, "price")
}

func TestRouterHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, http.MethodGet, "/health/live", "", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"ok"`)

	status, _ = env.request(t, http.MethodGet, "/health/ready", "", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = env.request(t, http.MethodGet, "/metrics", "", "", nil)
	assert.Equal(t, http.StatusOK, status)
}
