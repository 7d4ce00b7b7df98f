package artist

import "inkbook/internal/domain"

type ListQuery struct {
	Specialty string `form:"specialty"`
	Location  string `form:"location"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}

type ListResult struct {
	Artists []domain.Account `json:"artists"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// UpdateProfileRequest is a partial update; nil fields stay unchanged.
type UpdateProfileRequest struct {
	Bio          *string              `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Location     *string              `json:"location,omitempty" validate:"omitempty,max=200"`
	Specialties  []string             `json:"specialties,omitempty" validate:"omitempty,max=20,dive,min=1,max=50"`
	HourlyRate   *float64             `json:"hourly_rate,omitempty" validate:"omitempty,gte=0,lte=100000"`
	Availability *domain.Availability `json:"availability,omitempty"`
}
