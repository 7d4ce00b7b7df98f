package mirror

import (
	"context"

	"inkbook/internal/domain"
)

// Subtrees of the secondary store.
const (
	PathUsers   = "users"
	PathArtists = "artists"
)

// Fields is a partial record keyed by primary-store column name.
type Fields map[string]any

// PrimaryStore is the authoritative record store.
type PrimaryStore interface {
	Create(ctx context.Context, a *domain.Account) error
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]domain.Account, error)
}

// Node is one record of a secondary-store subtree.
type Node struct {
	ID     int64
	Values map[string]string
}

// SecondaryStore is the tree-shaped mirror. Put merges values into the node at
// path/id, creating it when missing. Get returns nil for a missing node.
type SecondaryStore interface {
	Put(ctx context.Context, path string, id int64, values map[string]string) error
	Get(ctx context.Context, path string, id int64) (map[string]string, error)
	Delete(ctx context.Context, path string, id int64) error
	Scan(ctx context.Context, path string) ([]Node, error)
}
