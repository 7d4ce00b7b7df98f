// Package session carries the authenticated caller through a request.
//
// A Session is only ever persisted through an explicit boundary (the jwt
// package encodes it into a bearer token and decodes it back); nothing here
// is global.
package session

import (
	"context"

	"inkbook/internal/domain"
)

type Session struct {
	AccountID int64       `json:"account_id"`
	Role      domain.Role `json:"role"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
}

func FromAccount(a *domain.Account) Session {
	return Session{AccountID: a.ID, Role: a.Role, Email: a.Email, Name: a.Name}
}

func (s Session) IsAdmin() bool { return s.Role == domain.RoleAdmin }

type ctxKey struct{}

func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok && s.AccountID > 0
}
