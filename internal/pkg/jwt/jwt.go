package jwt

import (
	"errors"
	"time"

	"inkbook/internal/domain"
	"inkbook/internal/session"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

type Service struct {
	secret []byte
	ttl    time.Duration
}

type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	jwtlib.RegisteredClaims
}

func New(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Encode serializes a session into a signed bearer token.
func (s *Service) Encode(sess session.Session) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: sess.AccountID,
		Role:   string(sess.Role),
		Email:  sess.Email,
		Name:   sess.Name,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Decode restores the session stored in a token produced by Encode.
func (s *Service) Decode(tokenStr string) (session.Session, error) {
	claims, err := s.ValidateToken(tokenStr)
	if err != nil {
		return session.Session{}, err
	}
	return session.Session{
		AccountID: claims.UserID,
		Role:      domain.Role(claims.Role),
		Email:     claims.Email,
		Name:      claims.Name,
	}, nil
}

func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID <= 0 {
		return nil, errors.New("invalid claims")
	}

	return claims, nil
}
