package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"inkbook/internal/domain"
	"inkbook/internal/repository"
	"inkbook/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockBookingRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, customerID, limit, offset)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByArtist(ctx context.Context, artistID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, artistID, limit, offset)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListActiveOnDate(ctx context.Context, artistID int64, date string) ([]domain.Booking, error) {
	args := m.Called(ctx, artistID, date)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockAccountReader struct {
	mock.Mock
}

func (m *MockAccountReader) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyBookingCreated(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyBookingStatusChanged(ctx context.Context, b *domain.Booking, from domain.BookingStatus) error {
	args := m.Called(ctx, b, from)
	return args.Error(0)
}

var (
	customer = session.Session{AccountID: 1, Role: domain.RoleCustomer}
	artistS  = session.Session{AccountID: 2, Role: domain.RoleArtist}
	stranger = session.Session{AccountID: 3, Role: domain.RoleCustomer}
)

func approvedArtist() *domain.Account {
	return &domain.Account{
		ID:   2,
		Role: domain.RoleArtist,
		Profile: &domain.ArtistProfile{
			HourlyRate: 100,
			Approved:   true,
			Availability: domain.Availability{
				"friday": {{Start: "10:00", End: "14:00"}},
			},
		},
	}
}

func newTestService(bookings BookingRepository, accounts AccountReader, notifs NotificationSender) *Service {
	s := NewService(bookings, accounts, notifs)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC) }
	return s
}

func TestService_CreateBooking_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockAccounts := new(MockAccountReader)
	mockNotifs := new(MockNotificationSender)
	svc := newTestService(mockBookings, mockAccounts, mockNotifs)

	ctx := context.Background()
	mockAccounts.On("GetByID", ctx, int64(2)).Return(approvedArtist(), nil)
	mockBookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
	mockNotifs.On("NotifyBookingCreated", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)

	b, err := svc.CreateBooking(ctx, customer, CreateBookingRequest{
		ArtistID: 2,
		Date:     "2024-05-03",
		Time:     "10:00",
		Duration: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(999), b.ID)
	assert.Equal(t, 200.0, b.Price)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, int64(1), b.CustomerID)
	assert.Equal(t, int64(2), b.ArtistID)
	mockBookings.AssertExpectations(t)
	mockNotifs.AssertExpectations(t)
}

func TestService_CreateBooking_RoundsPrice(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockAccounts := new(MockAccountReader)
	svc := newTestService(mockBookings, mockAccounts, nil)

	artist := approvedArtist()
	artist.Profile.HourlyRate = 80.004
	ctx := context.Background()
	mockAccounts.On("GetByID", ctx, int64(2)).Return(artist, nil)
	mockBookings.On("Create", ctx, mock.Anything).Return(nil)

	b, err := svc.CreateBooking(ctx, customer, CreateBookingRequest{ArtistID: 2, Date: "2024-05-03", Time: "11:00", Duration: 2})
	require.NoError(t, err)
	assert.Equal(t, 160.01, b.Price)
}

func TestService_CreateBooking_Rejections(t *testing.T) {
	unapproved := approvedArtist()
	unapproved.Profile.Approved = false

	tests := []struct {
		name    string
		actor   session.Session
		req     CreateBookingRequest
		artist  *domain.Account
		lookup  error
		wantErr error
	}{
		{"artist cannot book", artistS, CreateBookingRequest{ArtistID: 2, Date: "2024-05-03", Time: "10:00", Duration: 1}, nil, nil, ErrForbidden},
		{"zero duration", customer, CreateBookingRequest{ArtistID: 2, Date: "2024-05-03", Time: "10:00", Duration: 0}, nil, nil, ErrValidation},
		{"negative duration", customer, CreateBookingRequest{ArtistID: 2, Date: "2024-05-03", Time: "10:00", Duration: -1}, nil, nil, ErrValidation},
		{"bad date", customer, CreateBookingRequest{ArtistID: 2, Date: "03/05/2024", Time: "10:00", Duration: 1}, nil, nil, ErrValidation},
		{"past date", customer, CreateBookingRequest{ArtistID: 2, Date: "2024-04-30", Time: "10:00", Duration: 1}, nil, nil, ErrPastDate},
		{"missing artist", customer, CreateBookingRequest{ArtistID: 2, Date: "2024-05-03", Time: "10:00", Duration: 1}, nil, repository.ErrNotFound, ErrArtistNotFound},
		{"not an artist", customer, CreateBookingRequest{ArtistID: 2, Date: "2024-05-03", Time: "10:00", Duration: 1}, &domain.Account{ID: 2, Role: domain.RoleCustomer}, nil, ErrArtistNotFound},
		{"unapproved artist", customer, CreateBookingRequest{ArtistID: 2, Date: "2024-05-03", Time: "10:00", Duration: 1}, unapproved, nil, ErrArtistNotApproved},
		{"time outside slots", customer, CreateBookingRequest{ArtistID: 2, Date: "2024-05-03", Time: "14:00", Duration: 1}, approvedArtist(), nil, ErrSlotUnavailable},
		{"half hour not offered", customer, CreateBookingRequest{ArtistID: 2, Date: "2024-05-03", Time: "10:30", Duration: 1}, approvedArtist(), nil, ErrSlotUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBookings := new(MockBookingRepository)
			mockAccounts := new(MockAccountReader)
			svc := newTestService(mockBookings, mockAccounts, nil)

			ctx := context.Background()
			if tt.artist != nil || tt.lookup != nil {
				mockAccounts.On("GetByID", ctx, int64(2)).Return(tt.artist, tt.lookup)
			}

			_, err := svc.CreateBooking(ctx, tt.actor, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_CreateBooking_DefaultSlotsWhenDayUnset(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockAccounts := new(MockAccountReader)
	svc := newTestService(mockBookings, mockAccounts, nil)

	artist := approvedArtist()
	artist.Profile.Availability = nil
	ctx := context.Background()
	mockAccounts.On("GetByID", ctx, int64(2)).Return(artist, nil)
	mockBookings.On("Create", ctx, mock.Anything).Return(nil)

	b, err := svc.CreateBooking(ctx, customer, CreateBookingRequest{ArtistID: 2, Date: "2024-05-03", Time: "16:30", Duration: 1})
	require.NoError(t, err)
	assert.Equal(t, "16:30", b.Time)
}

// memoryBookings is a concurrency-safe BookingRepository for race tests.
type memoryBookings struct {
	mu    sync.Mutex
	items []domain.Booking
}

func (m *memoryBookings) Create(_ context.Context, b *domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = int64(len(m.items) + 1)
	m.items = append(m.items, *b)
	return nil
}

func (m *memoryBookings) GetByID(context.Context, int64) (*domain.Booking, error) {
	return nil, repository.ErrNotFound
}

func (m *memoryBookings) UpdateStatus(context.Context, int64, domain.BookingStatus, domain.BookingStatus) error {
	return nil
}

func (m *memoryBookings) ListByCustomer(context.Context, int64, int, int) ([]domain.Booking, error) {
	return nil, nil
}

func (m *memoryBookings) ListByArtist(context.Context, int64, int, int) ([]domain.Booking, error) {
	return nil, nil
}

func (m *memoryBookings) ListActiveOnDate(context.Context, int64, string) ([]domain.Booking, error) {
	return nil, nil
}

type staticAccounts map[int64]*domain.Account

func (s staticAccounts) GetByID(_ context.Context, id int64) (*domain.Account, error) {
	if a, ok := s[id]; ok {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

func TestService_CreateBooking_ConcurrentIdenticalBothSucceed(t *testing.T) {
	repo := &memoryBookings{}
	svc := newTestService(repo, staticAccounts{2: approvedArtist()}, nil)

	req := CreateBookingRequest{ArtistID: 2, Date: "2024-05-03", Time: "10:00", Duration: 2}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateBooking(context.Background(), customer, req)
		}(i)
	}
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	require.Len(t, repo.items, 2)
	assert.Equal(t, repo.items[0].Time, repo.items[1].Time)
	assert.Equal(t, domain.BookingPending, repo.items[1].Status)
}

func TestService_UpdateStatus(t *testing.T) {
	booking := func(status domain.BookingStatus) *domain.Booking {
		return &domain.Booking{ID: 10, CustomerID: 1, ArtistID: 2, Status: status}
	}

	tests := []struct {
		name    string
		actor   session.Session
		current domain.BookingStatus
		next    domain.BookingStatus
		wantErr error
	}{
		{"artist confirms", artistS, domain.BookingPending, domain.BookingConfirmed, nil},
		{"artist declines", artistS, domain.BookingPending, domain.BookingCancelled, nil},
		{"customer cancels pending", customer, domain.BookingPending, domain.BookingCancelled, nil},
		{"customer cancels confirmed", customer, domain.BookingConfirmed, domain.BookingCancelled, nil},
		{"artist completes", artistS, domain.BookingConfirmed, domain.BookingCompleted, nil},
		{"customer cannot confirm", customer, domain.BookingPending, domain.BookingConfirmed, ErrForbidden},
		{"customer cannot complete", customer, domain.BookingConfirmed, domain.BookingCompleted, ErrForbidden},
		{"stranger", stranger, domain.BookingPending, domain.BookingCancelled, ErrForbidden},
		{"completed to pending", artistS, domain.BookingCompleted, domain.BookingPending, ErrInvalidStatusTransition},
		{"cancelled is terminal", artistS, domain.BookingCancelled, domain.BookingConfirmed, ErrInvalidStatusTransition},
		{"pending to completed", artistS, domain.BookingPending, domain.BookingCompleted, ErrInvalidStatusTransition},
		{"unknown status", artistS, domain.BookingPending, domain.BookingStatus("archived"), ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBookings := new(MockBookingRepository)
			mockNotifs := new(MockNotificationSender)
			svc := newTestService(mockBookings, new(MockAccountReader), mockNotifs)

			ctx := context.Background()
			mockBookings.On("GetByID", ctx, int64(10)).Return(booking(tt.current), nil)
			mockBookings.On("UpdateStatus", ctx, int64(10), tt.current, tt.next).Return(nil)
			mockNotifs.On("NotifyBookingStatusChanged", ctx, mock.Anything, tt.current).Return(nil)

			b, err := svc.UpdateStatus(ctx, tt.actor, 10, tt.next)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				mockBookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.next, b.Status)
			mockNotifs.AssertCalled(t, "NotifyBookingStatusChanged", ctx, mock.Anything, tt.current)
		})
	}
}

func TestService_UpdateStatus_LostRace(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	svc := newTestService(mockBookings, new(MockAccountReader), nil)

	ctx := context.Background()
	mockBookings.On("GetByID", ctx, int64(10)).
		Return(&domain.Booking{ID: 10, CustomerID: 1, ArtistID: 2, Status: domain.BookingPending}, nil)
	mockBookings.On("UpdateStatus", ctx, int64(10), domain.BookingPending, domain.BookingConfirmed).
		Return(repository.ErrNotFound)

	_, err := svc.UpdateStatus(ctx, artistS, 10, domain.BookingConfirmed)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestService_UpdateStatus_NotFound(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	svc := newTestService(mockBookings, new(MockAccountReader), nil)

	ctx := context.Background()
	mockBookings.On("GetByID", ctx, int64(5)).Return(nil, repository.ErrNotFound)

	_, err := svc.UpdateStatus(ctx, artistS, 5, domain.BookingConfirmed)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_GetByID_AdminCanRead(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	svc := newTestService(mockBookings, new(MockAccountReader), nil)

	ctx := context.Background()
	mockBookings.On("GetByID", ctx, int64(10)).
		Return(&domain.Booking{ID: 10, CustomerID: 1, ArtistID: 2}, nil)

	_, err := svc.GetByID(ctx, session.Session{AccountID: 50, Role: domain.RoleAdmin}, 10)
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, stranger, 10)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Slots_ReportsBookedWithoutFiltering(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockAccounts := new(MockAccountReader)
	svc := newTestService(mockBookings, mockAccounts, nil)

	ctx := context.Background()
	mockAccounts.On("GetByID", ctx, int64(2)).Return(approvedArtist(), nil)
	mockBookings.On("ListActiveOnDate", ctx, int64(2), "2024-05-03").Return([]domain.Booking{
		{ID: 7, Time: "10:00", Duration: 2, Status: domain.BookingConfirmed},
	}, nil)

	res, err := svc.Slots(ctx, 2, "2024-05-03")
	require.NoError(t, err)
	assert.Equal(t, "friday", res.Day)
	assert.Equal(t, []string{"10:00", "11:00", "12:00", "13:00"}, res.Slots)
	require.Len(t, res.Booked, 1)
	assert.Equal(t, "10:00", res.Booked[0].Time)
}

func TestService_Slots_PrimaryFailure(t *testing.T) {
	mockAccounts := new(MockAccountReader)
	svc := newTestService(new(MockBookingRepository), mockAccounts, nil)

	ctx := context.Background()
	mockAccounts.On("GetByID", ctx, int64(2)).Return(nil, errors.New("connection reset"))

	_, err := svc.Slots(ctx, 2, "2024-05-03")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrArtistNotFound)
}
