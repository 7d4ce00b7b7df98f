package artist

import (
	"context"
	"errors"
	"testing"

	"inkbook/internal/domain"
	"inkbook/internal/mirror"
	"inkbook/internal/pkg/imageenc"
	"inkbook/internal/repository"
	"inkbook/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPrimary struct{ mock.Mock }

func (m *MockPrimary) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockPrimary) ListArtists(ctx context.Context, f repository.ArtistFilters) ([]domain.Account, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Account), args.Get(1).(int64), args.Error(2)
}

type MockWriter struct{ mock.Mock }

func (m *MockWriter) WriteRoleSpecific(ctx context.Context, id int64, fields mirror.Fields, role domain.Role) error {
	return m.Called(ctx, id, fields, role).Error(0)
}

type failingListings struct{}

func (failingListings) Scan(context.Context, string) ([]mirror.Node, error) {
	return nil, errors.New("redis: connection refused")
}

func seedListing(t *testing.T, store *mirror.MemoryStore, artists ...*domain.Account) {
	t.Helper()
	for _, a := range artists {
		require.NoError(t, store.Put(context.Background(), mirror.PathArtists, a.ID, mirror.Encode(mirror.AccountFields(a))))
	}
}

func artistAccount(id int64, approved bool, rating float64, location string, specialties ...string) *domain.Account {
	return &domain.Account{
		ID:   id,
		Name: "artist",
		Role: domain.RoleArtist,
		Profile: &domain.ArtistProfile{
			Location:    location,
			Specialties: specialties,
			Rating:      rating,
			Approved:    approved,
		},
	}
}

func TestService_List_FromMirror(t *testing.T) {
	store := mirror.NewMemoryStore()
	seedListing(t, store,
		artistAccount(1, true, 4.2, "Berlin", "blackwork"),
		artistAccount(2, false, 5, "Berlin", "blackwork"),
		artistAccount(3, true, 4.9, "Lisbon", "fineline", "blackwork"),
		artistAccount(4, true, 3.0, "berlin-mitte", "traditional"),
	)
	svc := NewService(new(MockPrimary), store, new(MockWriter))

	res, err := svc.List(context.Background(), ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)
	require.Len(t, res.Artists, 3)
	assert.Equal(t, int64(3), res.Artists[0].ID)
	assert.Equal(t, int64(1), res.Artists[1].ID)

	res, err = svc.List(context.Background(), ListQuery{Specialty: "Blackwork"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	res, err = svc.List(context.Background(), ListQuery{Location: "berlin"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	res, err = svc.List(context.Background(), ListQuery{Limit: 1, Offset: 5})
	require.NoError(t, err)
	assert.Empty(t, res.Artists)
	assert.Equal(t, int64(3), res.Total)
}

func TestService_List_FallsBackToPrimary(t *testing.T) {
	primary := new(MockPrimary)
	svc := NewService(primary, failingListings{}, new(MockWriter))

	ctx := context.Background()
	primary.On("ListArtists", ctx, mock.MatchedBy(func(f repository.ArtistFilters) bool {
		return f.Approved != nil && *f.Approved && f.Specialty == "fineline" && f.Limit == 20
	})).Return([]domain.Account{*artistAccount(3, true, 4.9, "Lisbon", "fineline")}, int64(1), nil)

	res, err := svc.List(ctx, ListQuery{Specialty: "fineline"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
	primary.AssertExpectations(t)
}

func TestService_Get_HidesUnapproved(t *testing.T) {
	primary := new(MockPrimary)
	svc := NewService(primary, mirror.NewMemoryStore(), new(MockWriter))

	ctx := context.Background()
	primary.On("GetByID", ctx, int64(1)).Return(artistAccount(1, false, 0, ""), nil)
	primary.On("GetByID", ctx, int64(2)).Return(&domain.Account{ID: 2, Role: domain.RoleCustomer}, nil)
	primary.On("GetByID", ctx, int64(3)).Return(nil, repository.ErrNotFound)

	for _, id := range []int64{1, 2, 3} {
		_, err := svc.Get(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound)
	}
}

func TestService_UpdateProfile(t *testing.T) {
	primary := new(MockPrimary)
	writer := new(MockWriter)
	svc := NewService(primary, mirror.NewMemoryStore(), writer)

	ctx := context.Background()
	actor := session.Session{AccountID: 7, Role: domain.RoleArtist}
	rate := 120.0
	bio := "  Fine line specialist "

	writer.On("WriteRoleSpecific", ctx, int64(7), mirror.Fields{
		"bio":          "Fine line specialist",
		"hourly_rate":  120.0,
		"specialties":  `["fineline","dotwork"]`,
		"availability": `{"friday":[{"start":"10:00","end":"12:00"},{"start":"13:00","end":"14:00"}]}`,
	}, domain.RoleArtist).Return(nil)
	primary.On("GetByID", ctx, int64(7)).Return(artistAccount(7, true, 0, ""), nil)

	_, err := svc.UpdateProfile(ctx, actor, UpdateProfileRequest{
		Bio:         &bio,
		HourlyRate:  &rate,
		Specialties: []string{"FineLine", "dotwork", "fineline "},
		Availability: &domain.Availability{
			"friday": {{Start: "13:00", End: "14:00"}, {Start: "10:00", End: "12:00"}},
		},
	})
	require.NoError(t, err)
	writer.AssertExpectations(t)
}

func TestService_UpdateProfile_RejectsBeforeWrite(t *testing.T) {
	overlap := domain.Availability{"monday": {{Start: "09:00", End: "12:00"}, {Start: "11:00", End: "13:00"}}}
	negative := -5.0

	tests := []struct {
		name    string
		actor   session.Session
		req     UpdateProfileRequest
		wantErr error
	}{
		{"customer", session.Session{AccountID: 1, Role: domain.RoleCustomer}, UpdateProfileRequest{}, ErrForbidden},
		{"overlapping availability", session.Session{AccountID: 7, Role: domain.RoleArtist}, UpdateProfileRequest{Availability: &overlap}, ErrValidation},
		{"negative rate", session.Session{AccountID: 7, Role: domain.RoleArtist}, UpdateProfileRequest{HourlyRate: &negative}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := new(MockWriter)
			svc := NewService(new(MockPrimary), mirror.NewMemoryStore(), writer)

			_, err := svc.UpdateProfile(context.Background(), tt.actor, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			writer.AssertNotCalled(t, "WriteRoleSpecific", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_Portfolio(t *testing.T) {
	primary := new(MockPrimary)
	writer := new(MockWriter)
	svc := NewService(primary, mirror.NewMemoryStore(), writer)

	ctx := context.Background()
	actor := session.Session{AccountID: 7, Role: domain.RoleArtist}
	a := artistAccount(7, true, 0, "")
	a.Profile.Portfolio = []string{"data:image/png;base64,AA"}
	primary.On("GetByID", ctx, int64(7)).Return(a, nil)
	writer.On("WriteRoleSpecific", ctx, int64(7), mock.Anything, domain.RoleArtist).Return(nil)

	got, err := svc.AddPortfolioImage(ctx, actor, &imageenc.Image{DataURL: "data:image/png;base64,BB"})
	require.NoError(t, err)
	assert.Len(t, got.Profile.Portfolio, 2)

	_, err = svc.RemovePortfolioImage(ctx, actor, 5)
	assert.ErrorIs(t, err, ErrPortfolioIndex)
}
