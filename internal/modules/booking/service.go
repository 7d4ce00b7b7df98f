package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"inkbook/internal/domain"
	"inkbook/internal/repository"
	"inkbook/internal/session"
)

const dateLayout = "2006-01-02"

type Service struct {
	bookings BookingRepository
	accounts AccountReader
	notifs   NotificationSender
	now      func() time.Time
}

func NewService(bookings BookingRepository, accounts AccountReader, notifs NotificationSender) *Service {
	return &Service{
		bookings: bookings,
		accounts: accounts,
		notifs:   notifs,
		now:      time.Now,
	}
}

// CreateBooking places a pending booking for the customer. The time must be one
// of the artist's derived slots for the date; overlapping bookings are allowed.
func (s *Service) CreateBooking(ctx context.Context, actor session.Session, req CreateBookingRequest) (*domain.Booking, error) {
	if actor.Role != domain.RoleCustomer {
		return nil, ErrForbidden
	}
	if req.ArtistID <= 0 || req.Duration <= 0 || math.IsNaN(req.Duration) || math.IsInf(req.Duration, 0) {
		return nil, ErrValidation
	}

	day, err := s.parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	artist, err := s.approvedArtist(ctx, req.ArtistID)
	if err != nil {
		return nil, err
	}

	slot := strings.TrimSpace(req.Time)
	if !containsSlot(DeriveSlots(artist.Profile.Availability, day), slot) {
		return nil, ErrSlotUnavailable
	}

	b := &domain.Booking{
		CustomerID:  actor.AccountID,
		ArtistID:    artist.ID,
		Date:        day.Format(dateLayout),
		Time:        slot,
		Duration:    req.Duration,
		Description: strings.TrimSpace(req.Description),
		Status:      domain.BookingPending,
		Price:       math.Round(artist.Profile.HourlyRate*req.Duration*100) / 100,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if s.notifs != nil {
		if err := s.notifs.NotifyBookingCreated(ctx, b); err != nil {
			log.Printf("booking_notify_failed booking_id=%d err=%v", b.ID, err)
		}
	}
	return b, nil
}

// UpdateStatus moves a booking along its lifecycle. Confirm and complete are
// reserved for the artist; either party may cancel.
func (s *Service) UpdateStatus(ctx context.Context, actor session.Session, bookingID int64, next domain.BookingStatus) (*domain.Booking, error) {
	if !next.Valid() {
		return nil, ErrValidation
	}

	b, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.Participant(actor.AccountID) {
		return nil, ErrForbidden
	}
	if !b.Status.CanTransitionTo(next) {
		return nil, ErrInvalidStatusTransition
	}
	if next != domain.BookingCancelled && actor.AccountID != b.ArtistID {
		return nil, ErrForbidden
	}

	from := b.Status
	if err := s.bookings.UpdateStatus(ctx, b.ID, from, next); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Someone else moved it first.
			return nil, ErrInvalidStatusTransition
		}
		return nil, fmt.Errorf("update booking %d: %w", b.ID, err)
	}
	b.Status = next
	b.UpdatedAt = s.now().UTC()

	if s.notifs != nil {
		if err := s.notifs.NotifyBookingStatusChanged(ctx, b, from); err != nil {
			log.Printf("booking_notify_failed booking_id=%d err=%v", b.ID, err)
		}
	}
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, actor session.Session, bookingID int64) (*domain.Booking, error) {
	b, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.Participant(actor.AccountID) && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return b, nil
}

// ListMine returns the caller's bookings, as customer or as artist.
func (s *Service) ListMine(ctx context.Context, actor session.Session, limit, offset int) ([]domain.Booking, error) {
	switch actor.Role {
	case domain.RoleCustomer:
		return s.bookings.ListByCustomer(ctx, actor.AccountID, limit, offset)
	case domain.RoleArtist:
		return s.bookings.ListByArtist(ctx, actor.AccountID, limit, offset)
	}
	return nil, ErrForbidden
}

// Slots reports the derived slots for the date together with the bookings
// already holding it. Booked entries are informational and do not remove slots.
func (s *Service) Slots(ctx context.Context, artistID int64, date string) (*SlotsResponse, error) {
	day, err := time.Parse(dateLayout, strings.TrimSpace(date))
	if err != nil {
		return nil, ErrValidation
	}

	artist, err := s.approvedArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}

	active, err := s.bookings.ListActiveOnDate(ctx, artist.ID, day.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	booked := make([]BookedSlot, 0, len(active))
	for _, b := range active {
		booked = append(booked, BookedSlot{
			BookingID: b.ID,
			Time:      b.Time,
			Duration:  b.Duration,
			Status:    string(b.Status),
		})
	}

	return &SlotsResponse{
		ArtistID: artist.ID,
		Date:     day.Format(dateLayout),
		Day:      domain.WeekdayName(day),
		Slots:    DeriveSlots(artist.Profile.Availability, day),
		Booked:   booked,
	}, nil
}

func (s *Service) get(ctx context.Context, id int64) (*domain.Booking, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking %d: %w", id, err)
	}
	return b, nil
}

func (s *Service) approvedArtist(ctx context.Context, id int64) (*domain.Account, error) {
	a, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrArtistNotFound
		}
		return nil, fmt.Errorf("get artist %d: %w", id, err)
	}
	if !a.IsArtist() || a.Profile == nil {
		return nil, ErrArtistNotFound
	}
	if !a.Profile.Approved {
		return nil, ErrArtistNotApproved
	}
	return a, nil
}

// parseDate accepts YYYY-MM-DD no earlier than today (UTC).
func (s *Service) parseDate(raw string) (time.Time, error) {
	day, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, ErrValidation
	}
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return time.Time{}, ErrPastDate
	}
	return day, nil
}
