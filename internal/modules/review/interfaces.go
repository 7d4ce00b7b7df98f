package review

import (
	"context"

	"inkbook/internal/domain"
	"inkbook/internal/mirror"
	"inkbook/internal/repository"
)

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type ReviewStore interface {
	CreateForBooking(ctx context.Context, rv *domain.Review) (*repository.ArtistRating, error)
	ListByArtist(ctx context.Context, artistID int64, limit, offset int) ([]domain.Review, error)
}

// RatingMirror copies already-committed rating fields to the secondary store.
type RatingMirror interface {
	Mirror(ctx context.Context, id int64, role domain.Role, fields mirror.Fields)
}
