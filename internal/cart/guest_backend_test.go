package cart

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/quicklinkhq/quicklink-backend/pkg/enums"
)

type fakeKV struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.data[key] = fmt.Sprint(value)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	val, ok := f.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (f *fakeKV) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
		delete(f.ttls, key)
	}
	return nil
}

func (f *fakeKV) GuestCartKey(guestKey string) string {
	return "ql:guest_cart:" + guestKey
}

func guestLine(name string, priceCents, quantity int) LineItem {
	menuItemID := uuid.New()
	return LineItem{
		ID:         uuid.New(),
		MenuItemID: &menuItemID,
		Name:       name,
		PriceCents: priceCents,
		Quantity:   quantity,
		Type:       enums.LineItemTypeFood,
	}
}

func TestGuestBackendRoundTrip(t *testing.T) {
	kv := newFakeKV()
	backend, err := NewGuestBackend(kv, kv, time.Hour)
	if err != nil {
		t.Fatalf("new guest backend: %v", err)
	}
	ctx := context.Background()
	identity := GuestIdentity("guest-xyz")

	items := []LineItem{guestLine("Samosa", 120, 2), guestLine("Mandazi", 80, 1)}
	if err := backend.Replace(ctx, identity, items); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if ttl := kv.ttls[kv.GuestCartKey("guest-xyz")]; ttl != time.Hour {
		t.Fatalf("expected ttl refresh, got %s", ttl)
	}

	loaded, err := backend.Load(ctx, identity)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 items, got %d", len(loaded))
	}
	if loaded[0].Name != "Samosa" || loaded[0].Quantity != 2 {
		t.Fatalf("first item not preserved: %+v", loaded[0])
	}
	if loaded[1].MenuItemID == nil {
		t.Fatal("menu item reference lost in round trip")
	}
}

func TestGuestBackendUnknownKeyIsEmptyCart(t *testing.T) {
	kv := newFakeKV()
	backend, err := NewGuestBackend(kv, kv, time.Hour)
	if err != nil {
		t.Fatalf("new guest backend: %v", err)
	}

	loaded, err := backend.Load(context.Background(), GuestIdentity("never-seen"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(loaded))
	}
}

func TestGuestBackendEmptyReplaceDeletesKey(t *testing.T) {
	kv := newFakeKV()
	backend, err := NewGuestBackend(kv, kv, time.Hour)
	if err != nil {
		t.Fatalf("new guest backend: %v", err)
	}
	ctx := context.Background()
	identity := GuestIdentity("guest-xyz")

	if err := backend.Replace(ctx, identity, []LineItem{guestLine("Samosa", 120, 1)}); err != nil {
		t.Fatalf("seed replace: %v", err)
	}
	if err := backend.Replace(ctx, identity, nil); err != nil {
		t.Fatalf("empty replace: %v", err)
	}

	if _, ok := kv.data[kv.GuestCartKey("guest-xyz")]; ok {
		t.Fatal("expected key deleted after empty replace")
	}
}

func TestGuestBackendCorruptPayload(t *testing.T) {
	kv := newFakeKV()
	backend, err := NewGuestBackend(kv, kv, time.Hour)
	if err != nil {
		t.Fatalf("new guest backend: %v", err)
	}

	kv.data[kv.GuestCartKey("guest-xyz")] = "{not json"
	if _, err := backend.Load(context.Background(), GuestIdentity("guest-xyz")); err == nil {
		t.Fatal("expected decode error for corrupt payload")
	}
}
