package cart

import "context"

// Backend persists the full item list for one identity. Mutations always
// write the complete new list as an atomic replace; there are no
// incremental updates at this level.
type Backend interface {
	Load(ctx context.Context, identity Identity) ([]LineItem, error)
	Replace(ctx context.Context, identity Identity, items []LineItem) error
}
