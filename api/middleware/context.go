package middleware

import (
	"context"

	"github.com/quicklinkhq/quicklink-backend/internal/cart"
)

type contextKey string

const (
	ctxUserID       contextKey = "user_id"
	ctxRole         contextKey = "actor_role"
	ctxCartIdentity contextKey = "cart_identity"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// CartIdentityFromContext returns the cart owner seeded by the identity
// middleware. The second return is false when no identity was resolved.
func CartIdentityFromContext(ctx context.Context) (cart.Identity, bool) {
	if ctx == nil {
		return cart.Identity{}, false
	}
	if v, ok := ctx.Value(ctxCartIdentity).(cart.Identity); ok {
		return v, true
	}
	return cart.Identity{}, false
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithCartIdentity injects the resolved cart owner into the context.
func WithCartIdentity(ctx context.Context, identity cart.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCartIdentity, identity)
}
