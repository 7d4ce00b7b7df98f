package auth

import (
	"context"

	"inkbook/internal/domain"
	"inkbook/internal/mirror"
	"inkbook/internal/session"
)

type AccountReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// AccountWriter is the dual-store write path.
type AccountWriter interface {
	Create(ctx context.Context, a *domain.Account) error
	Write(ctx context.Context, id int64, fields mirror.Fields) error
	WriteRoleSpecific(ctx context.Context, id int64, fields mirror.Fields, role domain.Role) error
}

type TokenEncoder interface {
	Encode(sess session.Session) (string, error)
}
