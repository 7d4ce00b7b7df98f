package booking

import (
	"context"

	"inkbook/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error
	ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error)
	ListByArtist(ctx context.Context, artistID int64, limit, offset int) ([]domain.Booking, error)
	ListActiveOnDate(ctx context.Context, artistID int64, date string) ([]domain.Booking, error)
}

type AccountReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
}

// NotificationSender delivers booking events to the parties. Delivery is best-effort.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking) error
	NotifyBookingStatusChanged(ctx context.Context, b *domain.Booking, from domain.BookingStatus) error
}
