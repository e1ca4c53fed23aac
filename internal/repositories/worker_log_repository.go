package repositories

import (
	"dormdesk_backend/internal/models"

	"gorm.io/gorm"
)

// WorkerLogRepository - append-only журнал. Методов обновления и удаления
// нет намеренно.
type WorkerLogRepository interface {
	Create(log *models.WorkerLog) error
	FindByComplaintID(complaintID string) ([]models.WorkerLog, error)
}

type WorkerLogRepositoryImpl struct {
	db *gorm.DB
}

func NewWorkerLogRepository(db *gorm.DB) WorkerLogRepository {
	return &WorkerLogRepositoryImpl{db: db}
}

func (r *WorkerLogRepositoryImpl) Create(log *models.WorkerLog) error {
	return r.db.Create(log).Error
}

func (r *WorkerLogRepositoryImpl) FindByComplaintID(complaintID string) ([]models.WorkerLog, error) {
	var logs []models.WorkerLog
	err := r.db.Where("complaint_id = ?", complaintID).
		Order("created_at asc").
		Find(&logs).Error
	return logs, err
}
