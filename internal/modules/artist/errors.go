package artist

import "errors"

var (
	ErrNotFound       = errors.New("artist not found")
	ErrForbidden      = errors.New("forbidden")
	ErrValidation     = errors.New("validation error")
	ErrPortfolioFull  = errors.New("portfolio is full")
	ErrPortfolioIndex = errors.New("portfolio index out of range")
)
