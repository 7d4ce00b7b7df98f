package booking

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrPastDate                = errors.New("booking date is in the past")
	ErrSlotUnavailable         = errors.New("time is not an offered slot")
	ErrArtistNotFound          = errors.New("artist not found")
	ErrArtistNotApproved       = errors.New("artist is not approved")
	ErrNotFound                = errors.New("booking not found")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
