package dto

import "dormdesk_backend/internal/models"

// ============================================================
// DTO для аутентификации
// ============================================================

type RegisterRequest struct {
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=6"`
	FullName       string  `json:"full_name" validate:"required"`
	Role           string  `json:"role" validate:"required,is-user-role"`
	Floor          *string `json:"floor"`
	Room           *string `json:"room"`
	Specialization *string `json:"specialization"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse - токен плюс профиль пользователя.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}
