package repository

import (
	"context"
	"math"
	"time"

	"inkbook/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type reviewModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	BookingID  int64     `gorm:"column:booking_id;uniqueIndex"`
	CustomerID int64     `gorm:"column:customer_id"`
	ArtistID   int64     `gorm:"column:artist_id;index"`
	Rating     int       `gorm:"column:rating"`
	Comment    *string   `gorm:"column:comment;type:text"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func toDomainReview(m reviewModel) domain.Review {
	return domain.Review{
		ID:         m.ID,
		BookingID:  m.BookingID,
		CustomerID: m.CustomerID,
		ArtistID:   m.ArtistID,
		Rating:     m.Rating,
		Comment:    deref(m.Comment),
		CreatedAt:  m.CreatedAt,
	}
}

func toReviewModel(rv *domain.Review) reviewModel {
	return reviewModel{
		ID:         rv.ID,
		BookingID:  rv.BookingID,
		CustomerID: rv.CustomerID,
		ArtistID:   rv.ArtistID,
		Rating:     rv.Rating,
		Comment:    nullable(rv.Comment),
		CreatedAt:  rv.CreatedAt,
	}
}

// ArtistRating is the aggregate stored on the artist after a review.
type ArtistRating struct {
	Rating       float64
	TotalReviews int
}

// CreateForBooking inserts the review, marks the booking reviewed and refreshes
// the artist aggregate in one transaction. A second review for the same booking
// fails with ErrDuplicate.
func (r *ReviewRepository) CreateForBooking(ctx context.Context, rv *domain.Review) (*ArtistRating, error) {
	var out ArtistRating

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toReviewModel(rv)
		if err := tx.Create(&m).Error; err != nil {
			return translate(err)
		}

		res := tx.Model(&bookingModel{}).
			Where("id = ? AND reviewed = ?", rv.BookingID, false).
			Updates(map[string]any{"reviewed": true, "updated_at": time.Now().UTC()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrDuplicate
		}

		var agg struct {
			Avg float64
			Cnt int64
		}
		if err := tx.Model(&reviewModel{}).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS cnt").
			Where("artist_id = ?", rv.ArtistID).
			Scan(&agg).Error; err != nil {
			return err
		}
		out.Rating = math.Round(agg.Avg*100) / 100
		out.TotalReviews = int(agg.Cnt)

		if err := tx.Model(&accountModel{}).
			Where("id = ?", rv.ArtistID).
			Updates(map[string]any{
				"rating":        out.Rating,
				"total_reviews": out.TotalReviews,
				"updated_at":    time.Now().UTC(),
			}).Error; err != nil {
			return err
		}

		*rv = toDomainReview(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ReviewRepository) ListByArtist(ctx context.Context, artistID int64, limit, offset int) ([]domain.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var rows []reviewModel
	tx := r.db.WithContext(ctx).
		Where("artist_id = ?", artistID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Review, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainReview(m))
	}
	return out, nil
}
