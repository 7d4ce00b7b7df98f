package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inkbook/internal/domain"
	"inkbook/internal/mirror"
	"inkbook/internal/pkg/imageenc"
	"inkbook/internal/pkg/validator"
	"inkbook/internal/repository"
	"inkbook/internal/session"

	"golang.org/x/crypto/bcrypt"
)

// Service contains account registration, login and self-service profile logic.
type Service struct {
	accounts AccountReader
	writer   AccountWriter
	tokens   TokenEncoder
}

func NewService(accounts AccountReader, writer AccountWriter, tokens TokenEncoder) *Service {
	return &Service{accounts: accounts, writer: writer, tokens: tokens}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if errs := validator.Validate(req); errs != nil {
		return nil, &FieldError{Fields: errs}
	}

	role := domain.RoleCustomer
	if req.Role != "" {
		role = domain.Role(req.Role)
	}

	exists, err := s.accounts.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	a := &domain.Account{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         role,
	}
	if role == domain.RoleArtist {
		a.Profile = &domain.ArtistProfile{
			Specialties: []string{},
			Portfolio:   []string{},
		}
	}

	if err := s.writer.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return s.issue(a)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	a, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(a)
}

func (s *Service) Me(ctx context.Context, actor session.Session) (*domain.Account, error) {
	a, err := s.accounts.GetByID(ctx, actor.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get account %d: %w", actor.AccountID, err)
	}
	return a, nil
}

func (s *Service) UpdateProfile(ctx context.Context, actor session.Session, req UpdateProfileRequest) (*domain.Account, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, &FieldError{Fields: errs}
	}

	fields := mirror.Fields{}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if len(fields) == 0 {
		return s.Me(ctx, actor)
	}

	if err := s.write(ctx, actor, fields); err != nil {
		return nil, err
	}
	return s.Me(ctx, actor)
}

// UpdateAvatar stores an already validated image as the account avatar.
func (s *Service) UpdateAvatar(ctx context.Context, actor session.Session, img *imageenc.Image) (*domain.Account, error) {
	if err := s.write(ctx, actor, mirror.Fields{"avatar": img.DataURL}); err != nil {
		return nil, err
	}
	return s.Me(ctx, actor)
}

// write mirrors artists to both subtrees so listings show the new value.
func (s *Service) write(ctx context.Context, actor session.Session, fields mirror.Fields) error {
	var err error
	if actor.Role == domain.RoleArtist {
		err = s.writer.WriteRoleSpecific(ctx, actor.AccountID, fields, actor.Role)
	} else {
		err = s.writer.Write(ctx, actor.AccountID, fields)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) issue(a *domain.Account) (*AuthResult, error) {
	token, err := s.tokens.Encode(session.FromAccount(a))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Account: a, Token: token}, nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
