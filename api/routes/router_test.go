package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/quicklinkhq/quicklink-backend/internal/cart"
	"github.com/quicklinkhq/quicklink-backend/internal/products"
	"github.com/quicklinkhq/quicklink-backend/pkg/config"
	"github.com/quicklinkhq/quicklink-backend/pkg/logger"
)

type stubProducts struct{}

func (stubProducts) List(ctx context.Context, input products.ListInput) (*products.ListResult, error) {
	return &products.ListResult{Page: input.Page, Limit: input.Limit}, nil
}

func (stubProducts) Get(ctx context.Context, id uuid.UUID) (*products.ProductDetail, error) {
	return &products.ProductDetail{}, nil
}

type stubCart struct{}

func (stubCart) Get(ctx context.Context, identity cart.Identity) (*cart.Cart, error) {
	return &cart.Cart{}, nil
}

func (stubCart) AddItem(ctx context.Context, identity cart.Identity, input cart.AddItemInput) (*cart.Cart, error) {
	return &cart.Cart{}, nil
}

func (stubCart) UpdateQuantity(ctx context.Context, identity cart.Identity, itemID uuid.UUID, quantity int) (*cart.Cart, error) {
	return &cart.Cart{}, nil
}

func (stubCart) RemoveItem(ctx context.Context, identity cart.Identity, itemID uuid.UUID) (*cart.Cart, error) {
	return &cart.Cart{}, nil
}

func (stubCart) Clear(ctx context.Context, identity cart.Identity) (*cart.Cart, error) {
	return &cart.Cart{}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.JWT = config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 15}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	return NewRouter(cfg, logg, nil, nil, nil, nil, nil, Services{
		Products: stubProducts{},
		Cart:     stubCart{},
	})
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("X-Quicklink-Env"); got != "test" {
		t.Fatalf("unexpected env header %q", got)
	}
}

func TestRouterPublicProductBrowse(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?page=1&limit=5", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRouterCartWorksForGuests(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Guest-Key", "guest-123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRouterCartRejectsAnonymous(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRouterProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/v1/orders", "/api/v1/notifications", "/api/v1/profile", "/api/v1/rides"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s got %d", path, resp.Code)
		}
	}
}
