package artist

import (
	"context"

	"inkbook/internal/domain"
	"inkbook/internal/mirror"
	"inkbook/internal/repository"
)

// PrimaryReader is the authoritative artist source and the browse fallback.
type PrimaryReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	ListArtists(ctx context.Context, f repository.ArtistFilters) ([]domain.Account, int64, error)
}

// ListingReader reads the mirrored artists subtree.
type ListingReader interface {
	Scan(ctx context.Context, path string) ([]mirror.Node, error)
}

type ProfileWriter interface {
	WriteRoleSpecific(ctx context.Context, id int64, fields mirror.Fields, role domain.Role) error
}
