package console

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KennethTannn98/stockflow-console/internal/cache"
	"github.com/KennethTannn98/stockflow-console/internal/client"
	"github.com/KennethTannn98/stockflow-console/pkg/auth"
	"github.com/KennethTannn98/stockflow-console/pkg/config"
	"github.com/KennethTannn98/stockflow-console/pkg/enums"
	"github.com/KennethTannn98/stockflow-console/pkg/logger"
	"github.com/KennethTannn98/stockflow-console/pkg/models"
	"github.com/KennethTannn98/stockflow-console/pkg/session"
)

func testProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Hammer", SKU: "HAM-001", Category: "tools", Quantity: 12, Price: decimal.RequireFromString("12.50"), Reorder: 5},
		{ID: 2, Name: "Screwdriver", SKU: "SCR-001", Category: "tools", Quantity: 3, Price: decimal.RequireFromString("7.25"), Reorder: 5},
	}
}

func runConsole(t *testing.T, handler http.HandlerFunc, sess session.Provider, script string) string {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	api := client.New(sess, client.WithBaseURL(server.URL))
	logg := logger.New(logger.Options{ServiceName: "console-test", Output: io.Discard})

	var out bytes.Buffer
	shell := New(strings.NewReader(script), &out, api, cache.NewMemory(time.Minute), sess, logg)
	err := shell.Run(context.Background())
	require.NoError(t, err)
	return out.String()
}

func signedInSession(t *testing.T, role enums.Role) session.Provider {
	t.Helper()
	cfg := config.JWTConfig{Secret: "console-test", Issuer: "stockflow-test", ExpirationMinutes: 30}
	token, err := auth.MintAccessToken(cfg, time.Now(), "alice", role)
	require.NoError(t, err)

	sess := session.NewMemoryStore()
	require.NoError(t, sess.Save(token, "alice"))
	return sess
}

func TestConsoleProductsSearch(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products":
			_ = json.NewEncoder(w).Encode(testProducts())
		default:
			http.NotFound(w, r)
		}
	}

	out := runConsole(t, handler, signedInSession(t, enums.RoleUser),
		"open products\nsearch screw\nquit\n")

	assert.Contains(t, out, "signed in as alice")
	assert.Contains(t, out, "Hammer")
	assert.Contains(t, out, "Screwdriver")
	// After the search only the match remains.
	narrowed := out[strings.LastIndex(out, "NAME"):]
	assert.Contains(t, narrowed, "Screwdriver")
	assert.NotContains(t, narrowed, "Hammer")
	assert.Contains(t, narrowed, "page 1 of 1 (1 rows)")
}

func TestConsoleLoginFlow(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/auth/login" && r.Method == http.MethodPost:
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["password"] != "correct-horse" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"invalid credentials"}}`))
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"token": "issued-token"})
		case r.URL.Path == "/dashboard/stats":
			_ = json.NewEncoder(w).Encode(models.DashboardStats{TotalProducts: 2})
		case r.URL.Path == "/dashboard/monthly-transactions":
			_ = json.NewEncoder(w).Encode([]models.MonthlyTransactionPoint{})
		case r.URL.Path == "/dashboard/low-stocks":
			_ = json.NewEncoder(w).Encode([]models.Product{})
		case r.URL.Path == "/dashboard/todays-transactions":
			_ = json.NewEncoder(w).Encode([]models.Transaction{})
		default:
			http.NotFound(w, r)
		}
	}

	sess := session.NewMemoryStore()
	out := runConsole(t, handler, sess,
		"alice\nwrong\nalice\ncorrect-horse\nquit\n")

	assert.Contains(t, out, "invalid credentials")
	assert.Contains(t, out, "signed in as alice")
	assert.Contains(t, out, "products: 2")
	assert.Equal(t, "issued-token", sess.Token())
}

func TestConsoleUsersScreenNeedsAdmin(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/dashboard/stats":
			_ = json.NewEncoder(w).Encode(models.DashboardStats{})
		case "/dashboard/monthly-transactions":
			_ = json.NewEncoder(w).Encode([]models.MonthlyTransactionPoint{})
		case "/dashboard/low-stocks":
			_ = json.NewEncoder(w).Encode([]models.Product{})
		case "/dashboard/todays-transactions":
			_ = json.NewEncoder(w).Encode([]models.Transaction{})
		default:
			http.NotFound(w, r)
		}
	}

	out := runConsole(t, handler, signedInSession(t, enums.RoleUser),
		"open users\nquit\n")
	assert.Contains(t, out, "requires the admin role")
}

func TestConsoleCreateProduct(t *testing.T) {
	var created client.ProductCreate
	handler := func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/products" && r.Method == http.MethodPost:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(models.Product{ID: 9, Name: created.Name, SKU: created.SKU})
		case r.URL.Path == "/products":
			_ = json.NewEncoder(w).Encode(testProducts())
		default:
			http.NotFound(w, r)
		}
	}

	out := runConsole(t, handler, signedInSession(t, enums.RoleUser),
		"open products\nnew\nWrench\nWRN-001\ntools\n4\n15.00\n2\nquit\n")

	assert.Contains(t, out, "product created")
	assert.Equal(t, "WRN-001", created.SKU)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("15.00")))
}

func TestConsoleCreateRetryKeepsDraft(t *testing.T) {
	posts := 0
	var created client.ProductCreate
	handler := func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/products" && r.Method == http.MethodPost:
			posts++
			if posts == 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(`{"error":{"code":"CONFLICT","message":"sku already exists"}}`))
				return
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(models.Product{ID: 9, Name: created.Name, SKU: created.SKU})
		case r.URL.Path == "/products":
			_ = json.NewEncoder(w).Encode(testProducts())
		default:
			http.NotFound(w, r)
		}
	}

	// The first submit collides on the SKU. The retry retypes only the SKU
	// and keeps every other field with a bare enter.
	out := runConsole(t, handler, signedInSession(t, enums.RoleUser),
		"open products\nnew\nWrench\nHAM-001\ntools\n4\n15.00\n2\n\nWRN-001\n\n\n\n\nquit\n")

	assert.Contains(t, out, "sku already exists")
	assert.Contains(t, out, "product created")
	assert.Equal(t, 2, posts)
	assert.Equal(t, "Wrench", created.Name)
	assert.Equal(t, "WRN-001", created.SKU)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("15.00")))
}

func TestConsoleDeleteNeedsConfirmation(t *testing.T) {
	deletes := 0
	handler := func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete:
			deletes++
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/products":
			_ = json.NewEncoder(w).Encode(testProducts())
		default:
			http.NotFound(w, r)
		}
	}

	out := runConsole(t, handler, signedInSession(t, enums.RoleUser),
		"open products\ndelete 1\nn\ndelete 1\ny\nquit\n")

	assert.Contains(t, out, "kept")
	assert.Contains(t, out, "product deleted")
	assert.Equal(t, 1, deletes)
}
