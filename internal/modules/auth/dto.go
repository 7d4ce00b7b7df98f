package auth

import "inkbook/internal/domain"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required" validate:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,password"`
	Role     string `json:"role" validate:"omitempty,oneof=customer artist"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
}

type AuthResult struct {
	Account *domain.Account `json:"user"`
	Token   string          `json:"token"`
}
