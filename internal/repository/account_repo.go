package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"inkbook/internal/domain"
	"inkbook/internal/pkg/utils"

	"gorm.io/gorm"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

type accountModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role;index;not null"`
	Name         string    `gorm:"column:name"`
	Avatar       *string   `gorm:"column:avatar;type:text"`
	Bio          *string   `gorm:"column:bio;type:text"`
	Location     *string   `gorm:"column:location"`
	Specialties  string    `gorm:"column:specialties;type:text"`
	Portfolio    string    `gorm:"column:portfolio;type:text"`
	HourlyRate   float64   `gorm:"column:hourly_rate"`
	Rating       float64   `gorm:"column:rating"`
	TotalReviews int       `gorm:"column:total_reviews"`
	Approved     bool      `gorm:"column:approved;index"`
	Availability string    `gorm:"column:availability;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (accountModel) TableName() string { return "accounts" }

// writableColumns are the only columns UpdateFields accepts.
var writableColumns = map[string]bool{
	"name": true, "avatar": true, "bio": true, "location": true,
	"specialties": true, "portfolio": true, "hourly_rate": true,
	"rating": true, "total_reviews": true, "approved": true, "availability": true,
}

func toDomainAccount(m accountModel) *domain.Account {
	a := &domain.Account{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		Name:         m.Name,
		Avatar:       deref(m.Avatar),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if a.Role != domain.RoleArtist {
		return a
	}

	// Malformed legacy availability is treated as unconfigured.
	avail, _ := utils.StringToAvailability(m.Availability)
	a.Profile = &domain.ArtistProfile{
		Bio:          deref(m.Bio),
		Location:     deref(m.Location),
		Specialties:  utils.StringToList(m.Specialties),
		Portfolio:    utils.StringToList(m.Portfolio),
		HourlyRate:   m.HourlyRate,
		Rating:       m.Rating,
		TotalReviews: m.TotalReviews,
		Approved:     m.Approved,
		Availability: avail,
	}
	return a
}

func toAccountModel(a *domain.Account) accountModel {
	m := accountModel{
		ID:           a.ID,
		Email:        strings.TrimSpace(strings.ToLower(a.Email)),
		PasswordHash: a.PasswordHash,
		Role:         string(a.Role),
		Name:         a.Name,
		Avatar:       nullable(a.Avatar),
		Specialties:  "[]",
		Portfolio:    "[]",
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	if p := a.Profile; p != nil {
		m.Bio = nullable(p.Bio)
		m.Location = nullable(p.Location)
		m.Specialties = utils.ListToString(p.Specialties)
		m.Portfolio = utils.ListToString(p.Portfolio)
		m.HourlyRate = p.HourlyRate
		m.Rating = p.Rating
		m.TotalReviews = p.TotalReviews
		m.Approved = p.Approved
		m.Availability = utils.AvailabilityToString(p.Availability)
	}
	return m
}

func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) error {
	m := toAccountModel(a)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*a = *toDomainAccount(m)
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	var m accountModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainAccount(m), nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var m accountModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}
	return toDomainAccount(m), nil
}

func (r *AccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&accountModel{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

// UpdateFields writes a partial record. Keys are column names.
func (r *AccountRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	updates := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		if !writableColumns[k] {
			return fmt.Errorf("column %q is not writable", k)
		}
		updates[k] = v
	}
	updates["updated_at"] = time.Now().UTC()

	tx := r.db.WithContext(ctx).Model(&accountModel{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&accountModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns every account ordered by id. Used by the reconcile pass.
func (r *AccountRepository) ListAll(ctx context.Context) ([]domain.Account, error) {
	var rows []accountModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Account, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainAccount(m))
	}
	return out, nil
}

type ArtistFilters struct {
	Approved  *bool
	Specialty string
	Location  string
	Limit     int
	Offset    int
}

func (r *AccountRepository) ListArtists(ctx context.Context, f ArtistFilters) ([]domain.Account, int64, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	q := r.db.WithContext(ctx).Model(&accountModel{}).Where("role = ?", domain.RoleArtist)
	if f.Approved != nil {
		q = q.Where("approved = ?", *f.Approved)
	}
	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(f.Location)+"%")
	}
	if f.Specialty != "" {
		q = q.Where("LOWER(specialties) LIKE ?", "%\""+strings.ToLower(f.Specialty)+"\"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []accountModel
	if err := q.Order("rating DESC, id ASC").Limit(f.Limit).Offset(f.Offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Account, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainAccount(m))
	}
	return out, total, nil
}

func (r *AccountRepository) CountByRole(ctx context.Context) (map[domain.Role]int64, error) {
	var rows []struct {
		Role  string
		Total int64
	}
	err := r.db.WithContext(ctx).
		Model(&accountModel{}).
		Select("role, COUNT(*) AS total").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[domain.Role]int64, len(rows))
	for _, row := range rows {
		out[domain.Role(row.Role)] = row.Total
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
