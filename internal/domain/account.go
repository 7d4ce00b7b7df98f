package domain

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleArtist   Role = "artist"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleArtist, RoleAdmin:
		return true
	}
	return false
}

// Account is the identity record of every user. Artist accounts carry a Profile.
type Account struct {
	ID           int64          `json:"id"`
	Email        string         `json:"email" validate:"required,email"`
	PasswordHash string         `json:"-"`
	Name         string         `json:"name"`
	Role         Role           `json:"role"`
	Avatar       string         `json:"avatar,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Profile      *ArtistProfile `json:"profile,omitempty"`
}

func (a *Account) IsArtist() bool {
	return a.Role == RoleArtist
}

// Visible reports whether customers may see the account in browse results.
func (a *Account) Visible() bool {
	return a.Role == RoleArtist && a.Profile != nil && a.Profile.Approved
}
