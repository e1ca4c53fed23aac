package services

import (
	"errors"

	"dormdesk_backend/internal/auth"
	"dormdesk_backend/internal/config"
	"dormdesk_backend/internal/logger"
	"dormdesk_backend/internal/models"
	"dormdesk_backend/internal/repositories"
	"dormdesk_backend/internal/services/dto"
	"dormdesk_backend/pkg/apperrors"
)

// ============================================================
// Сервис аутентификации
// ============================================================

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(userID string) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) AuthService {
	return &authService{userRepo: userRepo, cfg: cfg}
}

func (s *authService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if !models.ValidRole(models.UserRole(req.Role)) {
		return nil, apperrors.ErrInvalidUserRole
	}

	// Админом может зарегистрироваться только владелец учётки из конфига.
	if req.Role == string(models.UserRoleAdmin) && !s.isConfiguredAdmin(req.Email, req.Password) {
		return nil, apperrors.ErrAdminNotAuthorized
	}

	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:          req.Email,
		PasswordHash:   hash,
		FullName:       req.FullName,
		Role:           models.UserRole(req.Role),
		Floor:          req.Floor,
		Room:           req.Room,
		Specialization: req.Specialization,
		IsActive:       true,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, err
	}

	logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	return s.issueToken(user)
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	// Админская учётка обязана совпадать с конфигом, даже если пароль в базе верный.
	if user.Role == models.UserRoleAdmin && !s.isConfiguredAdmin(req.Email, req.Password) {
		return nil, apperrors.ErrAdminNotAuthorized
	}

	return s.issueToken(user)
}

func (s *authService) Me(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// Токен валидный, но субъекта больше нет.
			return nil, apperrors.ErrUnknownSubject
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) isConfiguredAdmin(email, password string) bool {
	return s.cfg.Admin.Email != "" &&
		email == s.cfg.Admin.Email &&
		password == s.cfg.Admin.Password
}

func (s *authService) issueToken(user *models.User) (*dto.AuthResponse, error) {
	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{Token: token, User: user}, nil
}
