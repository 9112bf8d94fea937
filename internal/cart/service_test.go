package cart

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quicklinkhq/quicklink-backend/pkg/enums"
	pkgerrors "github.com/quicklinkhq/quicklink-backend/pkg/errors"
	"github.com/quicklinkhq/quicklink-backend/pkg/logger"
)

type fakeBackend struct {
	mu          sync.Mutex
	carts       map[string][]LineItem
	failLoad    error
	failReplace error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{carts: map[string][]LineItem{}}
}

func (f *fakeBackend) Load(ctx context.Context, identity Identity) ([]LineItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failLoad != nil {
		return nil, f.failLoad
	}
	items := f.carts[identity.LockKey()]
	out := make([]LineItem, len(items))
	copy(out, items)
	return out, nil
}

func (f *fakeBackend) Replace(ctx context.Context, identity Identity, items []LineItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReplace != nil {
		return f.failReplace
	}
	stored := make([]LineItem, len(items))
	copy(stored, items)
	f.carts[identity.LockKey()] = stored
	return nil
}

type fakeNotifier struct {
	mu      sync.Mutex
	entries []string
	fail    error
}

func (f *fakeNotifier) Notify(ctx context.Context, userID uuid.UUID, kind enums.NotificationKind, title, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.entries = append(f.entries, fmt.Sprintf("%s/%s", kind, title))
	return nil
}

func newTestService(t *testing.T, authed, guest Backend, notifier Notifier) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "cart-test", Level: zerolog.ErrorLevel})
	svc, err := NewService(authed, guest, notifier, logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func uuidPtr(t *testing.T) *uuid.UUID {
	t.Helper()
	id := uuid.New()
	return &id
}

func assertTotals(t *testing.T, cart *Cart, itemCount, subtotal int) {
	t.Helper()
	if cart.ItemCount != itemCount {
		t.Fatalf("expected item count %d, got %d", itemCount, cart.ItemCount)
	}
	if cart.SubtotalCents != subtotal {
		t.Fatalf("expected subtotal %d, got %d", subtotal, cart.SubtotalCents)
	}
}

func TestAddItemMatchesByReference(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestService(t, newFakeBackend(), backend, nil)
	identity := GuestIdentity("guest-abc")
	ctx := context.Background()

	productID := uuidPtr(t)
	first, err := svc.AddItem(ctx, identity, AddItemInput{ProductID: productID, Name: "Desk Lamp", PriceCents: 100})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	assertTotals(t, first, 1, 100)

	// Same product reference increments the existing line.
	second, err := svc.AddItem(ctx, identity, AddItemInput{ProductID: productID, Name: "Desk Lamp", PriceCents: 100, Quantity: 2})
	if err != nil {
		t.Fatalf("add item again: %v", err)
	}
	assertTotals(t, second, 3, 300)
	if len(second.Items) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(second.Items))
	}

	// A different reference appends a new line.
	third, err := svc.AddItem(ctx, identity, AddItemInput{MenuItemID: uuidPtr(t), Name: "Chicken Biryani", PriceCents: 850})
	if err != nil {
		t.Fatalf("add food item: %v", err)
	}
	if len(third.Items) != 2 {
		t.Fatalf("expected two lines, got %d", len(third.Items))
	}
	assertTotals(t, third, 4, 1150)
	if third.Items[1].Type != enums.LineItemTypeFood {
		t.Fatalf("expected food type, got %s", third.Items[1].Type)
	}
}

func TestAddItemNilReferencesNeverMatch(t *testing.T) {
	svc := newTestService(t, newFakeBackend(), newFakeBackend(), nil)
	identity := GuestIdentity("guest-abc")
	ctx := context.Background()

	// Two food lines, both without product references: they must not merge.
	cart, err := svc.AddItem(ctx, identity, AddItemInput{MenuItemID: uuidPtr(t), Name: "Samosa", PriceCents: 120})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	cart, err = svc.AddItem(ctx, identity, AddItemInput{MenuItemID: uuidPtr(t), Name: "Mandazi", PriceCents: 80})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("expected two distinct lines, got %d", len(cart.Items))
	}
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	svc := newTestService(t, newFakeBackend(), newFakeBackend(), nil)
	identity := GuestIdentity("guest-abc")

	cart, err := svc.AddItem(context.Background(), identity, AddItemInput{ProductID: uuidPtr(t), Name: "Mug", PriceCents: 250})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if cart.Items[0].Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", cart.Items[0].Quantity)
	}
}

func TestAddItemValidation(t *testing.T) {
	svc := newTestService(t, newFakeBackend(), newFakeBackend(), nil)
	identity := GuestIdentity("guest-abc")
	ctx := context.Background()
	productID := uuidPtr(t)
	menuItemID := uuidPtr(t)

	cases := []struct {
		name  string
		input AddItemInput
	}{
		{"no reference", AddItemInput{Name: "Orphan", PriceCents: 100}},
		{"both references", AddItemInput{ProductID: productID, MenuItemID: menuItemID, Name: "Twin", PriceCents: 100}},
		{"missing name", AddItemInput{ProductID: productID, PriceCents: 100}},
		{"negative price", AddItemInput{ProductID: productID, Name: "Broken", PriceCents: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddItem(ctx, identity, tc.input)
			coded := pkgerrors.As(err)
			if coded == nil || coded.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUpdateQuantityRemovesAtZeroOrBelow(t *testing.T) {
	for _, quantity := range []int{0, -5} {
		svc := newTestService(t, newFakeBackend(), newFakeBackend(), nil)
		identity := GuestIdentity("guest-abc")
		ctx := context.Background()

		cart, err := svc.AddItem(ctx, identity, AddItemInput{ProductID: uuidPtr(t), Name: "Mug", PriceCents: 250, Quantity: 3})
		if err != nil {
			t.Fatalf("add: %v", err)
		}

		cart, err = svc.UpdateQuantity(ctx, identity, cart.Items[0].ID, quantity)
		if err != nil {
			t.Fatalf("update quantity %d: %v", quantity, err)
		}
		assertTotals(t, cart, 0, 0)
		if len(cart.Items) != 0 {
			t.Fatalf("expected empty cart after quantity %d", quantity)
		}
	}
}

func TestUpdateQuantityUnknownIDIsNoop(t *testing.T) {
	svc := newTestService(t, newFakeBackend(), newFakeBackend(), nil)
	identity := GuestIdentity("guest-abc")
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, identity, AddItemInput{ProductID: uuidPtr(t), Name: "Mug", PriceCents: 250, Quantity: 2})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	cart, err = svc.UpdateQuantity(ctx, identity, uuid.New(), 7)
	if err != nil {
		t.Fatalf("update unknown: %v", err)
	}
	assertTotals(t, cart, 2, 500)
}

func TestRemoveItemUnknownIDIsNoop(t *testing.T) {
	svc := newTestService(t, newFakeBackend(), newFakeBackend(), nil)
	identity := GuestIdentity("guest-abc")
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, identity, AddItemInput{ProductID: uuidPtr(t), Name: "Mug", PriceCents: 250})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	cart, err = svc.RemoveItem(ctx, identity, uuid.New())
	if err != nil {
		t.Fatalf("remove unknown: %v", err)
	}
	assertTotals(t, cart, 1, 250)
}

func TestClearEmptiesAndReloadsEmpty(t *testing.T) {
	svc := newTestService(t, newFakeBackend(), newFakeBackend(), nil)
	identity := GuestIdentity("guest-abc")
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, identity, AddItemInput{ProductID: uuidPtr(t), Name: "Mug", PriceCents: 250, Quantity: 4}); err != nil {
		t.Fatalf("add: %v", err)
	}

	cart, err := svc.Clear(ctx, identity)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	assertTotals(t, cart, 0, 0)

	reloaded, err := svc.Get(ctx, identity)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	assertTotals(t, reloaded, 0, 0)
}

func TestIdentitySwitchLoadsScopedCartWithoutMerge(t *testing.T) {
	authed := newFakeBackend()
	guest := newFakeBackend()
	svc := newTestService(t, authed, guest, nil)
	ctx := context.Background()

	guestIdentity := GuestIdentity("guest-abc")
	userIdentity := UserIdentity(uuid.New())

	if _, err := svc.AddItem(ctx, guestIdentity, AddItemInput{ProductID: uuidPtr(t), Name: "Guest Pick", PriceCents: 500}); err != nil {
		t.Fatalf("guest add: %v", err)
	}

	userCart, err := svc.Get(ctx, userIdentity)
	if err != nil {
		t.Fatalf("user get: %v", err)
	}
	assertTotals(t, userCart, 0, 0)

	guestCart, err := svc.Get(ctx, guestIdentity)
	if err != nil {
		t.Fatalf("guest get: %v", err)
	}
	assertTotals(t, guestCart, 1, 500)
}

func TestPersistFailureLeavesStoredStateUntouched(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestService(t, newFakeBackend(), backend, nil)
	identity := GuestIdentity("guest-abc")
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, identity, AddItemInput{ProductID: uuidPtr(t), Name: "Mug", PriceCents: 250}); err != nil {
		t.Fatalf("seed add: %v", err)
	}

	backend.failReplace = fmt.Errorf("connection reset")
	_, err := svc.AddItem(ctx, identity, AddItemInput{ProductID: uuidPtr(t), Name: "Vase", PriceCents: 900})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}

	backend.failReplace = nil
	cart, err := svc.Get(ctx, identity)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	assertTotals(t, cart, 1, 250)
}

func TestNotifierOnlyForAuthenticatedAndSoftFails(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newTestService(t, newFakeBackend(), newFakeBackend(), notifier)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, GuestIdentity("guest-abc"), AddItemInput{ProductID: uuidPtr(t), Name: "Mug", PriceCents: 250}); err != nil {
		t.Fatalf("guest add: %v", err)
	}
	if len(notifier.entries) != 0 {
		t.Fatalf("guest mutations must not notify, got %v", notifier.entries)
	}

	userIdentity := UserIdentity(uuid.New())
	if _, err := svc.AddItem(ctx, userIdentity, AddItemInput{ProductID: uuidPtr(t), Name: "Mug", PriceCents: 250}); err != nil {
		t.Fatalf("user add: %v", err)
	}
	if len(notifier.entries) != 1 {
		t.Fatalf("expected one notification, got %v", notifier.entries)
	}

	// Notifier failure never fails the mutation.
	notifier.fail = fmt.Errorf("feed down")
	cart, err := svc.Clear(ctx, userIdentity)
	if err != nil {
		t.Fatalf("clear with failing notifier: %v", err)
	}
	assertTotals(t, cart, 0, 0)
}

func TestScenarioGuestCartLifecycle(t *testing.T) {
	svc := newTestService(t, newFakeBackend(), newFakeBackend(), nil)
	identity := GuestIdentity("guest-scenario")
	ctx := context.Background()

	productID := uuidPtr(t)

	cart, err := svc.AddItem(ctx, identity, AddItemInput{ProductID: productID, Name: "P1", PriceCents: 100})
	if err != nil {
		t.Fatalf("step 1: %v", err)
	}
	assertTotals(t, cart, 1, 100)

	cart, err = svc.AddItem(ctx, identity, AddItemInput{ProductID: productID, Name: "P1", PriceCents: 100, Quantity: 2})
	if err != nil {
		t.Fatalf("step 2: %v", err)
	}
	assertTotals(t, cart, 3, 300)

	cart, err = svc.UpdateQuantity(ctx, identity, cart.Items[0].ID, 1)
	if err != nil {
		t.Fatalf("step 3: %v", err)
	}
	assertTotals(t, cart, 1, 100)

	cart, err = svc.RemoveItem(ctx, identity, cart.Items[0].ID)
	if err != nil {
		t.Fatalf("step 4: %v", err)
	}
	assertTotals(t, cart, 0, 0)
}

func TestConcurrentMutationsSerializePerIdentity(t *testing.T) {
	svc := newTestService(t, newFakeBackend(), newFakeBackend(), nil)
	identity := GuestIdentity("guest-race")
	ctx := context.Background()
	productID := uuidPtr(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AddItem(ctx, identity, AddItemInput{ProductID: productID, Name: "P1", PriceCents: 100}); err != nil {
				t.Errorf("concurrent add: %v", err)
			}
		}()
	}
	wg.Wait()

	cart, err := svc.Get(ctx, identity)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	assertTotals(t, cart, 20, 2000)
	if len(cart.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(cart.Items))
	}
}
