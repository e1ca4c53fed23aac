package repositories

import (
	"errors"
	"time"

	"dormdesk_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// Типы уведомлений
const (
	NotificationTypeNewComplaint       = "new_complaint"
	NotificationTypeComplaintApproved  = "complaint_approved"
	NotificationTypeComplaintRejected  = "complaint_rejected"
	NotificationTypeComplaintCompleted = "complaint_completed"
	NotificationTypeTaskAssigned       = "task_assigned"
	NotificationTypeTaskUpdate         = "task_update"
	NotificationTypeChangesRequested   = "changes_requested"
)

type NotificationRepository interface {
	Create(notification *models.Notification) error
	FindByUserID(userID string, limit int) ([]models.Notification, error)
	MarkAsRead(notificationID, userID string) error
	CountUnread(userID string) (int64, error)
	DeleteReadOlderThan(cutoff time.Time) (int64, error)
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// FindByUserID возвращает уведомления пользователя, новые первыми
func (r *NotificationRepositoryImpl) FindByUserID(userID string, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// MarkAsRead помечает уведомление прочитанным. Чужое или несуществующее
// уведомление - ErrNotificationNotFound.
func (r *NotificationRepositoryImpl) MarkAsRead(notificationID, userID string) error {
	now := time.Now()
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": &now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) CountUnread(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// DeleteReadOlderThan удаляет прочитанные уведомления старше cutoff.
// Используется фоновым воркером.
func (r *NotificationRepositoryImpl) DeleteReadOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}
