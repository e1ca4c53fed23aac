package services

import (
	"errors"

	"dormdesk_backend/internal/models"
	"dormdesk_backend/internal/repositories"
	"dormdesk_backend/internal/services/dto"
	"dormdesk_backend/pkg/apperrors"
)

// UserService - справочник работников для админа
type UserService interface {
	ListWorkers() ([]dto.WorkerInfo, error)
	UpdateWorker(workerID string, req *dto.UpdateWorkerRequest) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) ListWorkers() ([]dto.WorkerInfo, error) {
	workers, err := s.userRepo.FindByRole(models.UserRoleWorker)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.WorkerInfo, 0, len(workers))
	for _, w := range workers {
		infos = append(infos, dto.WorkerInfo{
			ID:             w.ID,
			FullName:       w.FullName,
			Email:          w.Email,
			Specialization: w.Specialization,
			IsActive:       w.IsActive,
		})
	}
	return infos, nil
}

// UpdateWorker меняет активность и/или специализацию работника
func (s *userService) UpdateWorker(workerID string, req *dto.UpdateWorkerRequest) (*models.User, error) {
	user, err := s.userRepo.FindByID(workerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("Worker not found")
		}
		return nil, err
	}
	if user.Role != models.UserRoleWorker {
		return nil, apperrors.NewNotFoundError("Worker not found")
	}

	if req.IsActive == nil && req.Specialization == nil {
		return nil, apperrors.NewBadRequestError("Nothing to update")
	}

	if req.IsActive != nil {
		if err := s.userRepo.SetActive(workerID, *req.IsActive); err != nil {
			return nil, err
		}
		user.IsActive = *req.IsActive
	}
	if req.Specialization != nil {
		if err := s.userRepo.UpdateSpecialization(workerID, *req.Specialization); err != nil {
			return nil, err
		}
		user.Specialization = req.Specialization
	}

	return user, nil
}
