package session

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quicklinkhq/quicklink-backend/internal/cart"
	"github.com/quicklinkhq/quicklink-backend/pkg/db/models"
	pkgerrors "github.com/quicklinkhq/quicklink-backend/pkg/errors"
	"github.com/quicklinkhq/quicklink-backend/pkg/logger"
)

type fakeProfiles struct {
	users map[uuid.UUID]*models.User
	fail  error
}

func (f *fakeProfiles) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return user, nil
}

type fakeRevoker struct {
	revoked []string
	fail    error
}

func (f *fakeRevoker) Revoke(ctx context.Context, accessID string) error {
	if f.fail != nil {
		return f.fail
	}
	f.revoked = append(f.revoked, accessID)
	return nil
}

func newTestProvider(t *testing.T, profiles *fakeProfiles, revoker *fakeRevoker) *Provider {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "session-test", Level: zerolog.ErrorLevel})
	provider, err := NewProvider(profiles, revoker, logg)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return provider
}

func TestCurrentBeforeResolveReportsLoading(t *testing.T) {
	provider := newTestProvider(t, &fakeProfiles{}, &fakeRevoker{})

	if provider.State() != StateUninitialized {
		t.Fatalf("expected uninitialized state, got %d", provider.State())
	}
	if _, err := provider.Current(context.Background()); !errors.Is(err, ErrLoading) {
		t.Fatalf("expected ErrLoading, got %v", err)
	}
}

func TestResolveAuthenticatedLoadsProfile(t *testing.T) {
	userID := uuid.New()
	fullName := "Amina Odhiambo"
	profiles := &fakeProfiles{users: map[uuid.UUID]*models.User{
		userID: {ID: userID, Email: "amina@example.com", FullName: &fullName},
	}}
	provider := newTestProvider(t, profiles, &fakeRevoker{})

	session, err := provider.Resolve(context.Background(), cart.UserIdentity(userID), "access-1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !session.Authenticated() {
		t.Fatal("expected authenticated session")
	}
	if session.Profile == nil || session.Profile.Email != "amina@example.com" {
		t.Fatalf("profile not loaded: %+v", session.Profile)
	}

	current, err := provider.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current.Identity.UserID != userID {
		t.Fatalf("unexpected current identity: %+v", current.Identity)
	}
}

func TestResolveProfileFetchSoftFails(t *testing.T) {
	userID := uuid.New()
	profiles := &fakeProfiles{fail: fmt.Errorf("db down")}
	provider := newTestProvider(t, profiles, &fakeRevoker{})

	session, err := provider.Resolve(context.Background(), cart.UserIdentity(userID), "access-1")
	if err != nil {
		t.Fatalf("resolve must not fail on profile errors: %v", err)
	}
	if !session.Authenticated() {
		t.Fatal("identity must stay authenticated on profile failure")
	}
	if session.Profile != nil {
		t.Fatalf("expected nil profile, got %+v", session.Profile)
	}
}

func TestSubscribeDeliversInRegistrationOrder(t *testing.T) {
	provider := newTestProvider(t, &fakeProfiles{}, &fakeRevoker{})

	var order []string
	first := provider.Subscribe(func(Session) { order = append(order, "first") })
	second := provider.Subscribe(func(Session) { order = append(order, "second") })
	defer first.Unsubscribe()
	defer second.Unsubscribe()

	if _, err := provider.Resolve(context.Background(), cart.GuestIdentity("g1"), ""); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("unexpected delivery order: %v", order)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	provider := newTestProvider(t, &fakeProfiles{}, &fakeRevoker{})

	calls := 0
	sub := provider.Subscribe(func(Session) { calls++ })

	if _, err := provider.Resolve(context.Background(), cart.GuestIdentity("g1"), ""); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	sub.Unsubscribe()
	sub.Unsubscribe() // idempotent

	if _, err := provider.Resolve(context.Background(), cart.GuestIdentity("g2"), ""); err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one delivery, got %d", calls)
	}
}

func TestSignOutRevokesFirst(t *testing.T) {
	userID := uuid.New()
	revoker := &fakeRevoker{}
	provider := newTestProvider(t, &fakeProfiles{fail: fmt.Errorf("skip profile")}, revoker)
	ctx := context.Background()

	if _, err := provider.Resolve(ctx, cart.UserIdentity(userID), "access-9"); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	var observed []Session
	sub := provider.Subscribe(func(s Session) { observed = append(observed, s) })
	defer sub.Unsubscribe()

	session, err := provider.SignOut(ctx, "guest-after")
	if err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if session.Authenticated() {
		t.Fatal("expected guest session after sign out")
	}
	if len(revoker.revoked) != 1 || revoker.revoked[0] != "access-9" {
		t.Fatalf("expected access-9 revoked, got %v", revoker.revoked)
	}
	if len(observed) != 1 || observed[0].Identity.GuestKey != "guest-after" {
		t.Fatalf("listeners did not observe sign-out: %+v", observed)
	}
}

func TestSignOutRevokeFailureKeepsIdentity(t *testing.T) {
	userID := uuid.New()
	revoker := &fakeRevoker{fail: fmt.Errorf("redis down")}
	provider := newTestProvider(t, &fakeProfiles{fail: fmt.Errorf("skip profile")}, revoker)
	ctx := context.Background()

	if _, err := provider.Resolve(ctx, cart.UserIdentity(userID), "access-9"); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	_, err := provider.SignOut(ctx, "guest-after")
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}

	current, err := provider.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if !current.Authenticated() || current.Identity.UserID != userID {
		t.Fatalf("identity must be unchanged on revoke failure: %+v", current.Identity)
	}
}
