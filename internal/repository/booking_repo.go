package repository

import (
	"context"
	"time"

	"inkbook/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	CustomerID    int64     `gorm:"column:customer_id;index"`
	ArtistID      int64     `gorm:"column:artist_id;index:idx_bookings_artist_date"`
	Date          string    `gorm:"column:date;index:idx_bookings_artist_date"`
	SlotTime      string    `gorm:"column:slot_time"`
	DurationHours float64   `gorm:"column:duration_hours"`
	Description   *string   `gorm:"column:description;type:text"`
	Status        string    `gorm:"column:status;index"`
	Price         float64   `gorm:"column:price"`
	Reviewed      bool      `gorm:"column:reviewed"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:          m.ID,
		CustomerID:  m.CustomerID,
		ArtistID:    m.ArtistID,
		Date:        m.Date,
		Time:        m.SlotTime,
		Duration:    m.DurationHours,
		Description: deref(m.Description),
		Status:      domain.BookingStatus(m.Status),
		Price:       m.Price,
		Reviewed:    m.Reviewed,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		ArtistID:      b.ArtistID,
		Date:          b.Date,
		SlotTime:      b.Time,
		DurationHours: b.Duration,
		Description:   nullable(b.Description),
		Status:        string(b.Status),
		Price:         b.Price,
		Reviewed:      b.Reviewed,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainBooking(m), nil
}

// UpdateStatus is a single-field write guarded by the expected current status,
// so a concurrent transition makes this one a no-op reported as ErrNotFound.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error) {
	return r.list(ctx, "customer_id = ?", customerID, limit, offset)
}

func (r *BookingRepository) ListByArtist(ctx context.Context, artistID int64, limit, offset int) ([]domain.Booking, error) {
	return r.list(ctx, "artist_id = ?", artistID, limit, offset)
}

func (r *BookingRepository) list(ctx context.Context, where string, id int64, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where(where, id).
		Order("date DESC, slot_time DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// ListActiveOnDate returns the artist's pending and confirmed bookings for date.
func (r *BookingRepository) ListActiveOnDate(ctx context.Context, artistID int64, date string) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("artist_id = ? AND date = ? AND status IN ?", artistID, date,
			[]string{string(domain.BookingPending), string(domain.BookingConfirmed)}).
		Order("slot_time ASC, id ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[domain.BookingStatus]int64, len(rows))
	for _, row := range rows {
		out[domain.BookingStatus(row.Status)] = row.Total
	}
	return out, nil
}
