package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inkbook/internal/domain"
	"inkbook/internal/mirror"
	"inkbook/internal/pkg/validator"
	"inkbook/internal/repository"
	"inkbook/internal/session"
)

type Service struct {
	reviews  ReviewStore
	bookings BookingReader
	mirror   RatingMirror
}

func NewService(reviews ReviewStore, bookings BookingReader, m RatingMirror) *Service {
	return &Service{reviews: reviews, bookings: bookings, mirror: m}
}

// Create stores a review for the customer's completed booking and refreshes
// the artist's rating. Each booking takes one review.
func (s *Service) Create(ctx context.Context, actor session.Session, req CreateReviewRequest) (*domain.Review, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, ErrInvalidRequest
	}
	if actor.Role != domain.RoleCustomer {
		return nil, ErrForbidden
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking %d: %w", req.BookingID, err)
	}
	if b.CustomerID != actor.AccountID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingCompleted {
		return nil, ErrReviewNotAllowed
	}
	if b.Reviewed {
		return nil, ErrConflict
	}

	rv := &domain.Review{
		BookingID:  b.ID,
		CustomerID: actor.AccountID,
		ArtistID:   b.ArtistID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	}
	rating, err := s.reviews.CreateForBooking(ctx, rv)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.mirror.Mirror(ctx, b.ArtistID, domain.RoleArtist, mirror.Fields{
		"rating":        rating.Rating,
		"total_reviews": rating.TotalReviews,
	})
	return rv, nil
}

func (s *Service) ListByArtist(ctx context.Context, artistID int64, limit, offset int) ([]domain.Review, error) {
	if artistID <= 0 {
		return nil, ErrInvalidRequest
	}
	return s.reviews.ListByArtist(ctx, artistID, limit, offset)
}
