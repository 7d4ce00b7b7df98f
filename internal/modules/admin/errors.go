package admin

import "errors"

var (
	ErrNotFound     = errors.New("account not found")
	ErrNotArtist    = errors.New("account is not an artist")
	ErrSelfDeletion = errors.New("admins cannot delete their own account")
)
