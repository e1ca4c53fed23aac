package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"dormdesk_backend/internal/email"
	"dormdesk_backend/internal/logger"
	"dormdesk_backend/internal/models"
	"dormdesk_backend/internal/repositories"
	"dormdesk_backend/internal/services/dto"
	"dormdesk_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

const defaultNotificationLimit = 100

// ============================================================
// Сервис уведомлений
// ============================================================

// NotificationService ведет ленту уведомлений и рассылает события
// жизненного цикла жалоб. Notify*-методы вызываются ПОСЛЕ успешной
// основной записи; их ошибки логируются и никогда не всплывают к
// вызывающему (fire-and-forget).
type NotificationService interface {
	ListForUser(userID string) ([]models.Notification, error)
	MarkAsRead(userID, notificationID string) error
	UnreadCount(userID string) (*dto.UnreadCountResponse, error)

	NotifyAdminsNewComplaint(c *models.Complaint)
	NotifyComplaintApproved(c *models.Complaint)
	NotifyTaskAssigned(workerID string, c *models.Complaint)
	NotifyComplaintRejected(c *models.Complaint, reason string)
	NotifyComplaintCompleted(c *models.Complaint)
	NotifyChangesRequested(workerID string, c *models.Complaint)
	NotifyTaskUpdate(c *models.Complaint, status string)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	emailSender      email.Sender // nil, если email выключен в конфиге
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	emailSender email.Sender,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		emailSender:      emailSender,
	}
}

func (s *notificationService) ListForUser(userID string) ([]models.Notification, error) {
	return s.notificationRepo.FindByUserID(userID, defaultNotificationLimit)
}

func (s *notificationService) MarkAsRead(userID, notificationID string) error {
	err := s.notificationRepo.MarkAsRead(notificationID, userID)
	if errors.Is(err, repositories.ErrNotificationNotFound) {
		return apperrors.ErrNotificationNotFound
	}
	return err
}

func (s *notificationService) UnreadCount(userID string) (*dto.UnreadCountResponse, error) {
	count, err := s.notificationRepo.CountUnread(userID)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountResponse{UnreadCount: count}, nil
}

// ============================================================
// Фабрики событий
// ============================================================

func (s *notificationService) NotifyAdminsNewComplaint(c *models.Complaint) {
	admins, err := s.userRepo.FindByRole(models.UserRoleAdmin)
	if err != nil {
		logger.WithError(err).Error("failed to load admins for notification", "complaint_id", c.ID)
		return
	}

	title := "New Complaint"
	message := fmt.Sprintf("New %s complaint: %s / %s on floor %s",
		c.ComplaintType, c.Category, c.Subcategory, c.Floor)

	for _, admin := range admins {
		s.deliver(admin.ID, c, repositories.NotificationTypeNewComplaint, title, message)
	}
}

func (s *notificationService) NotifyComplaintApproved(c *models.Complaint) {
	s.deliver(c.ResidentID, c,
		repositories.NotificationTypeComplaintApproved,
		"Complaint Approved",
		"Your complaint has been approved and assigned to a worker")
}

func (s *notificationService) NotifyTaskAssigned(workerID string, c *models.Complaint) {
	s.deliver(workerID, c,
		repositories.NotificationTypeTaskAssigned,
		"New Task Assigned",
		fmt.Sprintf("You have been assigned: %s / %s on floor %s",
			c.Category, c.Subcategory, c.Floor))
}

func (s *notificationService) NotifyComplaintRejected(c *models.Complaint, reason string) {
	s.deliver(c.ResidentID, c,
		repositories.NotificationTypeComplaintRejected,
		"Complaint Rejected",
		fmt.Sprintf("Your complaint has been rejected. Reason: %s", reason))
}

func (s *notificationService) NotifyComplaintCompleted(c *models.Complaint) {
	s.deliver(c.ResidentID, c,
		repositories.NotificationTypeComplaintCompleted,
		"Complaint Completed",
		"Your complaint has been resolved and closed")
}

func (s *notificationService) NotifyChangesRequested(workerID string, c *models.Complaint) {
	s.deliver(workerID, c,
		repositories.NotificationTypeChangesRequested,
		"Changes Requested",
		"Admin has requested changes on your completed task")
}

// NotifyTaskUpdate уведомляет резидента и всех админов об изменении
// статуса задачи воркером.
func (s *notificationService) NotifyTaskUpdate(c *models.Complaint, status string) {
	s.deliver(c.ResidentID, c,
		repositories.NotificationTypeTaskUpdate,
		"Complaint Update",
		fmt.Sprintf("Your complaint status has been updated to: %s", status))

	admins, err := s.userRepo.FindByRole(models.UserRoleAdmin)
	if err != nil {
		logger.WithError(err).Error("failed to load admins for notification", "complaint_id", c.ID)
		return
	}
	message := fmt.Sprintf("Worker has marked task as: %s", status)
	for _, admin := range admins {
		s.deliver(admin.ID, c, repositories.NotificationTypeTaskUpdate, "Task Update", message)
	}
}

// deliver сохраняет уведомление и, если настроено, дублирует его на email
func (s *notificationService) deliver(userID string, c *models.Complaint, nType, title, message string) {
	data, _ := json.Marshal(map[string]string{
		"category": c.Category,
		"floor":    c.Floor,
	})

	notification := &models.Notification{
		UserID:      userID,
		ComplaintID: c.ID,
		Type:        nType,
		Title:       title,
		Message:     message,
		Data:        datatypes.JSON(data),
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		logger.WithError(err).Error("failed to create notification",
			"user_id", userID, "complaint_id", c.ID, "type", nType)
		return
	}

	s.mirrorToEmail(userID, title, message)
}

func (s *notificationService) mirrorToEmail(userID, subject, body string) {
	if s.emailSender == nil {
		return
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		logger.WithError(err).Warn("email mirror: user lookup failed", "user_id", userID)
		return
	}

	go func() {
		if err := s.emailSender.Send(user.Email, subject, body); err != nil {
			logger.WithError(err).Warn("email mirror: send failed", "user_id", userID)
		}
	}()
}
