package admin

import (
	"context"

	"inkbook/internal/domain"
	"inkbook/internal/mirror"
	"inkbook/internal/repository"
)

type AccountStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	ListArtists(ctx context.Context, f repository.ArtistFilters) ([]domain.Account, int64, error)
	CountByRole(ctx context.Context) (map[domain.Role]int64, error)
}

type BookingStats interface {
	CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error)
}

type Synchronizer interface {
	WriteRoleSpecific(ctx context.Context, id int64, fields mirror.Fields, role domain.Role) error
	Delete(ctx context.Context, id int64) error
	Reconcile(ctx context.Context) (*mirror.Report, error)
}
