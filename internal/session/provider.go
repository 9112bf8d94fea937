package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/quicklinkhq/quicklink-backend/internal/cart"
	"github.com/quicklinkhq/quicklink-backend/internal/users"
	"github.com/quicklinkhq/quicklink-backend/pkg/db/models"
	pkgerrors "github.com/quicklinkhq/quicklink-backend/pkg/errors"
	"github.com/quicklinkhq/quicklink-backend/pkg/logger"
)

// State tracks how far the provider has come resolving the first
// session. Reads before the first resolution report loading.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

// ErrLoading is returned by Current before the first session resolution
// completes.
var ErrLoading = pkgerrors.New(pkgerrors.CodeDependency, "session provider is still loading")

// Session is the resolved identity plus, for authenticated users, the
// profile and the access id backing the login.
type Session struct {
	Identity cart.Identity
	Profile  *users.UserDTO
	AccessID string
}

// Authenticated reports whether the session belongs to a signed-in user.
func (s Session) Authenticated() bool {
	return s.Identity.Kind == cart.IdentityAuthenticated
}

type profileLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type sessionRevoker interface {
	Revoke(ctx context.Context, accessID string) error
}

type listener struct {
	id int
	fn func(Session)
}

// Provider owns the current session and fans out change events to
// subscribers in registration order.
type Provider struct {
	mu        sync.Mutex
	state     State
	current   Session
	listeners []listener
	nextID    int

	profiles profileLoader
	revoker  sessionRevoker
	logg     *logger.Logger
}

// NewProvider builds a session provider in the uninitialized state.
func NewProvider(profiles profileLoader, revoker sessionRevoker, logg *logger.Logger) (*Provider, error) {
	if profiles == nil {
		return nil, fmt.Errorf("profile loader required")
	}
	if revoker == nil {
		return nil, fmt.Errorf("session revoker required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Provider{profiles: profiles, revoker: revoker, logg: logg}, nil
}

// State returns the provider's lifecycle state.
func (p *Provider) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Current returns the resolved session, or ErrLoading before the first
// resolution completes.
func (p *Provider) Current(ctx context.Context) (Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateReady {
		return Session{}, ErrLoading
	}
	return p.current, nil
}

// Resolve installs the identity as the current session. For
// authenticated identities the user profile is fetched; a fetch failure
// logs and degrades to a nil profile while the identity stays
// authenticated. Listeners observe the new session.
func (p *Provider) Resolve(ctx context.Context, identity cart.Identity, accessID string) (Session, error) {
	if !identity.Valid() {
		return Session{}, pkgerrors.New(pkgerrors.CodeValidation, "identity is required")
	}

	p.mu.Lock()
	if p.state == StateUninitialized {
		p.state = StateLoading
	}
	p.mu.Unlock()

	session := Session{Identity: identity, AccessID: accessID}
	if identity.Kind == cart.IdentityAuthenticated {
		user, err := p.profiles.FindByID(ctx, identity.UserID)
		if err != nil {
			p.logg.Warn(p.logg.WithUserID(ctx, identity.UserID.String()), fmt.Sprintf("profile fetch failed: %v", err))
		} else {
			session.Profile = users.FromModel(user)
		}
	}

	p.install(session)
	return session, nil
}

// SignOut revokes the backing session first. On revoke failure the
// current session stays as it was; only after a successful revoke does
// the identity flip to the provided guest identity.
func (p *Provider) SignOut(ctx context.Context, guestKey string) (Session, error) {
	p.mu.Lock()
	if p.state != StateReady {
		p.mu.Unlock()
		return Session{}, ErrLoading
	}
	current := p.current
	p.mu.Unlock()

	if !current.Authenticated() {
		return current, nil
	}

	if err := p.revoker.Revoke(ctx, current.AccessID); err != nil {
		return Session{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}

	next := Session{Identity: cart.GuestIdentity(guestKey)}
	p.install(next)
	return next, nil
}

// Subscribe registers fn for session-change events. Events are delivered
// in registration order. The returned subscription must be released with
// Unsubscribe.
func (p *Provider) Subscribe(fn func(Session)) *Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextID++
	id := p.nextID
	p.listeners = append(p.listeners, listener{id: id, fn: fn})

	return &Subscription{provider: p, id: id}
}

func (p *Provider) install(session Session) {
	p.mu.Lock()
	p.current = session
	p.state = StateReady
	subscribers := make([]listener, len(p.listeners))
	copy(subscribers, p.listeners)
	p.mu.Unlock()

	for _, l := range subscribers {
		l.fn(session)
	}
}

func (p *Provider) unsubscribe(id int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, l := range p.listeners {
		if l.id == id {
			p.listeners = append(p.listeners[:i], p.listeners[i+1:]...)
			return
		}
	}
}

// Subscription is the handle for one registered listener.
type Subscription struct {
	provider *Provider
	id       int
	once     sync.Once
}

// Unsubscribe releases the listener. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.provider.unsubscribe(s.id)
	})
}
