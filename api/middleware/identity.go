package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/quicklinkhq/quicklink-backend/internal/cart"
	"github.com/quicklinkhq/quicklink-backend/pkg/logger"
)

const guestKeyHeader = "X-Guest-Key"

const maxGuestKeyLen = 128

// CartIdentity resolves the cart owner for the request. An authenticated
// user (seeded by Auth) always wins; otherwise the client's X-Guest-Key
// header names an anonymous cart. Requests with neither pass through
// unseeded and the cart handlers reject them.
func CartIdentity(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if raw := UserIDFromContext(ctx); raw != "" {
				if userID, err := uuid.Parse(raw); err == nil {
					ctx = WithCartIdentity(ctx, cart.UserIdentity(userID))
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			key := strings.TrimSpace(r.Header.Get(guestKeyHeader))
			if len(key) > maxGuestKeyLen {
				key = key[:maxGuestKeyLen]
			}
			if key != "" {
				identity := cart.GuestIdentity(key)
				ctx = WithCartIdentity(ctx, identity)
				if logg != nil {
					ctx = logg.WithField(ctx, "cart_owner", identity.LockKey())
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
