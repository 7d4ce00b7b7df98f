package admin

import (
	"context"
	"errors"
	"fmt"
	"log"

	"inkbook/internal/domain"
	"inkbook/internal/mirror"
	"inkbook/internal/repository"
)

type Service struct {
	accounts AccountStore
	bookings BookingStats
	sync     Synchronizer
}

func NewService(accounts AccountStore, bookings BookingStats, sync Synchronizer) *Service {
	return &Service{accounts: accounts, bookings: bookings, sync: sync}
}

// PendingArtists lists artists awaiting approval, read from the primary store.
func (s *Service) PendingArtists(ctx context.Context, page, limit int) ([]domain.Account, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	approved := false
	return s.accounts.ListArtists(ctx, repository.ArtistFilters{
		Approved: &approved,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
}

// SetApproval approves or revokes an artist. The change is mirrored to both subtrees.
func (s *Service) SetApproval(ctx context.Context, adminID, artistID int64, approved bool) (*domain.Account, error) {
	a, err := s.get(ctx, artistID)
	if err != nil {
		return nil, err
	}
	if !a.IsArtist() {
		return nil, ErrNotArtist
	}

	if err := s.sync.WriteRoleSpecific(ctx, a.ID, mirror.Fields{"approved": approved}, domain.RoleArtist); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	log.Printf("admin_artist_approval admin_id=%d artist_id=%d approved=%t", adminID, a.ID, approved)

	a.Profile.Approved = approved
	return a, nil
}

func (s *Service) DeleteAccount(ctx context.Context, adminID, accountID int64) error {
	if adminID == accountID {
		return ErrSelfDeletion
	}
	if err := s.sync.Delete(ctx, accountID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	log.Printf("admin_account_deleted admin_id=%d account_id=%d", adminID, accountID)
	return nil
}

func (s *Service) Reconcile(ctx context.Context) (*mirror.Report, error) {
	return s.sync.Reconcile(ctx)
}

func (s *Service) GetStatistics(ctx context.Context) (*StatisticsResponse, error) {
	roles, err := s.accounts.CountByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("count accounts: %w", err)
	}
	statuses, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	out := &StatisticsResponse{
		Accounts: map[string]int64{},
		Bookings: map[string]int64{},
	}
	for _, r := range []domain.Role{domain.RoleCustomer, domain.RoleArtist, domain.RoleAdmin} {
		out.Accounts[string(r)] = roles[r]
	}
	for _, st := range []domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed, domain.BookingCompleted, domain.BookingCancelled} {
		out.Bookings[string(st)] = statuses[st]
	}
	return out, nil
}

func (s *Service) get(ctx context.Context, id int64) (*domain.Account, error) {
	a, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get account %d: %w", id, err)
	}
	return a, nil
}
