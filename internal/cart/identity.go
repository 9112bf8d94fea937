package cart

import (
	"fmt"

	"github.com/google/uuid"
)

// IdentityKind discriminates authenticated users from anonymous guests.
type IdentityKind string

const (
	IdentityGuest         IdentityKind = "guest"
	IdentityAuthenticated IdentityKind = "authenticated"
)

// Identity is the cart owner. Authenticated identities carry the user's
// UUID, guests carry an opaque stable key minted by the client.
type Identity struct {
	Kind     IdentityKind
	UserID   uuid.UUID
	GuestKey string
}

// GuestIdentity builds a guest identity from a client-supplied key.
func GuestIdentity(key string) Identity {
	return Identity{Kind: IdentityGuest, GuestKey: key}
}

// UserIdentity builds an authenticated identity.
func UserIdentity(userID uuid.UUID) Identity {
	return Identity{Kind: IdentityAuthenticated, UserID: userID}
}

// Valid reports whether the identity carries the data its kind requires.
func (i Identity) Valid() bool {
	switch i.Kind {
	case IdentityGuest:
		return i.GuestKey != ""
	case IdentityAuthenticated:
		return i.UserID != uuid.Nil
	default:
		return false
	}
}

// LockKey returns the key all mutations for this identity serialize on.
func (i Identity) LockKey() string {
	if i.Kind == IdentityAuthenticated {
		return fmt.Sprintf("user:%s", i.UserID)
	}
	return fmt.Sprintf("guest:%s", i.GuestKey)
}
