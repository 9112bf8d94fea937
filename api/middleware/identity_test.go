package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/quicklinkhq/quicklink-backend/internal/cart"
)

func TestCartIdentityPrefersAuthenticatedUser(t *testing.T) {
	userID := uuid.New()

	var captured cart.Identity
	var seeded bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, seeded = CartIdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := CartIdentity(nil)(inner)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("X-Guest-Key", "guest-abc")
	req = req.WithContext(WithUserID(req.Context(), userID.String()))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !seeded {
		t.Fatal("expected identity in context")
	}
	if captured.Kind != cart.IdentityAuthenticated || captured.UserID != userID {
		t.Fatalf("expected authenticated identity, got %+v", captured)
	}
}

func TestCartIdentityFallsBackToGuestKey(t *testing.T) {
	var captured cart.Identity
	var seeded bool
	handler := CartIdentity(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, seeded = CartIdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("X-Guest-Key", "  guest-abc  ")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !seeded {
		t.Fatal("expected identity in context")
	}
	if captured.Kind != cart.IdentityGuest || captured.GuestKey != "guest-abc" {
		t.Fatalf("expected guest identity, got %+v", captured)
	}
}

func TestCartIdentityLeavesAnonymousRequestsUnseeded(t *testing.T) {
	var seeded bool
	handler := CartIdentity(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, seeded = CartIdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seeded {
		t.Fatal("expected no identity for anonymous request")
	}
}
