package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type guestStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type guestKeyer interface {
	GuestCartKey(guestKey string) string
}

// GuestBackend stores guest carts as a JSON blob in Redis under a key
// derived from the client-minted guest key. Every write refreshes the
// TTL; an expired or unknown key reads back as an empty cart.
type GuestBackend struct {
	store guestStore
	keyer guestKeyer
	ttl   time.Duration
}

// NewGuestBackend builds the Redis-backed guest cart backend.
func NewGuestBackend(store guestStore, keyer guestKeyer, ttl time.Duration) (*GuestBackend, error) {
	if store == nil {
		return nil, fmt.Errorf("guest store is required")
	}
	if keyer == nil {
		return nil, fmt.Errorf("guest keyer is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("guest cart ttl must be positive")
	}
	return &GuestBackend{store: store, keyer: keyer, ttl: ttl}, nil
}

// Load returns the guest's items, or an empty list when nothing is stored.
func (b *GuestBackend) Load(ctx context.Context, identity Identity) ([]LineItem, error) {
	raw, err := b.store.Get(ctx, b.keyer.GuestCartKey(identity.GuestKey))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return []LineItem{}, nil
		}
		return nil, err
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode guest cart: %w", err)
	}
	return items, nil
}

// Replace overwrites the stored list. An empty list deletes the key so
// abandoned guest carts do not linger until TTL expiry.
func (b *GuestBackend) Replace(ctx context.Context, identity Identity, items []LineItem) error {
	key := b.keyer.GuestCartKey(identity.GuestKey)
	if len(items) == 0 {
		return b.store.Del(ctx, key)
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode guest cart: %w", err)
	}
	return b.store.Set(ctx, key, string(payload), b.ttl)
}
