package services

import (
	"errors"
	"time"

	"dormdesk_backend/internal/logger"
	"dormdesk_backend/internal/models"
	"dormdesk_backend/internal/repositories"
	"dormdesk_backend/internal/services/dto"
	"dormdesk_backend/pkg/apperrors"
)

// Окно подавления повторных personal_room жалоб
const duplicateWindow = 24 * time.Hour

// ============================================================
// Сервис жалоб: создание, кластеризация, жизненный цикл
// ============================================================

type ComplaintService interface {
	Create(residentID string, req *dto.CreateComplaintRequest) (*models.Complaint, error)

	ListForResident(residentID string) ([]dto.ResidentComplaintView, error)
	ListForAdmin() ([]dto.AdminComplaintView, error)
	ListForWorker(workerID string) ([]dto.WorkerTaskView, error)

	Approve(complaintID, workerID string) (*models.Complaint, error)
	Reject(complaintID, reason string) (*models.Complaint, error)
	Review(complaintID, action string) (*models.Complaint, error)
	UpdateTaskStatus(workerID, complaintID string, req *dto.UpdateTaskStatusRequest) (*models.Complaint, error)

	ListWorkerLogs(complaintID string) ([]models.WorkerLog, error)
}

type complaintService struct {
	complaintRepo repositories.ComplaintRepository
	userRepo      repositories.UserRepository
	workerLogRepo repositories.WorkerLogRepository
	notifications NotificationService
}

func NewComplaintService(
	complaintRepo repositories.ComplaintRepository,
	userRepo repositories.UserRepository,
	workerLogRepo repositories.WorkerLogRepository,
	notifications NotificationService,
) ComplaintService {
	return &complaintService{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
		workerLogRepo: workerLogRepo,
		notifications: notifications,
	}
}

// PriorityForCount вычисляет приоритет представителя по размеру кластера.
// Urgent из счетчика не выводится никогда - он зарезервирован под ручную
// установку.
func PriorityForCount(count int) models.ComplaintPriority {
	switch {
	case count > 5:
		return models.ComplaintPriorityHigh
	case count >= 3:
		return models.ComplaintPriorityMedium
	default:
		return models.ComplaintPriorityLow
	}
}

// Create регистрирует жалобу резидента.
//
// personal_room: если у резидента уже есть открытая жалоба той же категории
// моложе 24 часов - конфликт, новая не создается.
//
// common_area: если существует открытый представитель кластера
// (категория, подкатегория, этаж) - новая жалоба сохраняется как член
// кластера, счетчик представителя растет и его приоритет пересчитывается.
func (s *complaintService) Create(residentID string, req *dto.CreateComplaintRequest) (*models.Complaint, error) {
	complaint := &models.Complaint{
		ResidentID:    residentID,
		ComplaintType: models.ComplaintType(req.ComplaintType),
		Floor:         req.Floor,
		Room:          req.Room,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		Description:   req.Description,
		MediaURL:      req.MediaURL,
		Status:        models.ComplaintStatusPending,
		Priority:      models.ComplaintPriorityLow,
		Count:         1,
	}

	switch complaint.ComplaintType {
	case models.ComplaintTypePersonalRoom:
		recent, err := s.complaintRepo.HasRecentOpenPersonalRoom(
			residentID, req.Category, time.Now().Add(-duplicateWindow))
		if err != nil {
			return nil, err
		}
		if recent {
			return nil, apperrors.ErrDuplicateComplaint
		}

	case models.ComplaintTypeCommonArea:
		rep, err := s.complaintRepo.FindOpenRepresentative(repositories.ClusterKey{
			Category:    req.Category,
			Subcategory: req.Subcategory,
			Floor:       req.Floor,
		})
		switch {
		case err == nil:
			newCount := rep.Count + 1
			if err := s.complaintRepo.UpdateByID(rep.ID, map[string]interface{}{
				"count":    newCount,
				"priority": PriorityForCount(newCount),
			}); err != nil {
				return nil, err
			}
			complaint.RepresentativeID = &rep.ID
			logger.Info("complaint merged into cluster",
				"representative_id", rep.ID, "count", newCount)
		case errors.Is(err, repositories.ErrComplaintNotFound):
			// Открытого представителя нет - жалоба сама становится им
		default:
			return nil, err
		}
	}

	if err := s.complaintRepo.Create(complaint); err != nil {
		return nil, err
	}

	// Уведомления после основной записи; их сбои не откатывают создание
	if complaint.IsRepresentative() {
		s.notifications.NotifyAdminsNewComplaint(complaint)
	}

	return complaint, nil
}

// ============================================================
// Role-scoped выборки
// ============================================================

func (s *complaintService) ListForResident(residentID string) ([]dto.ResidentComplaintView, error) {
	complaints, err := s.complaintRepo.FindByResidentID(residentID)
	if err != nil {
		return nil, err
	}

	views := make([]dto.ResidentComplaintView, 0, len(complaints))
	for _, c := range complaints {
		view := dto.ResidentComplaintView{Complaint: c}
		if c.AssignedTo != nil {
			if worker, err := s.userRepo.FindByID(*c.AssignedTo); err == nil {
				view.AssignedWorkerName = &worker.FullName
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// ListForAdmin возвращает только представителей; члены кластеров
// схлопнуты в поле count.
func (s *complaintService) ListForAdmin() ([]dto.AdminComplaintView, error) {
	complaints, err := s.complaintRepo.FindRepresentatives()
	if err != nil {
		return nil, err
	}

	views := make([]dto.AdminComplaintView, 0, len(complaints))
	for _, c := range complaints {
		view := dto.AdminComplaintView{Complaint: c}
		if resident, err := s.userRepo.FindByID(c.ResidentID); err == nil {
			view.ResidentName = resident.FullName
			view.ResidentEmail = resident.Email
		}
		if c.AssignedTo != nil {
			if worker, err := s.userRepo.FindByID(*c.AssignedTo); err == nil {
				view.AssignedWorkerName = &worker.FullName
				view.AssignedWorkerSpecialization = worker.Specialization
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *complaintService) ListForWorker(workerID string) ([]dto.WorkerTaskView, error) {
	complaints, err := s.complaintRepo.FindAssignedToWorker(workerID)
	if err != nil {
		return nil, err
	}

	views := make([]dto.WorkerTaskView, 0, len(complaints))
	for _, c := range complaints {
		view := dto.WorkerTaskView{Complaint: c}
		if resident, err := s.userRepo.FindByID(c.ResidentID); err == nil {
			view.ResidentName = resident.FullName
			view.ResidentEmail = resident.Email
		}
		views = append(views, view)
	}
	return views, nil
}

// ============================================================
// Переходы состояний
// ============================================================

// Approve: Pending -> Assigned, жалоба закрепляется за воркером.
func (s *complaintService) Approve(complaintID, workerID string) (*models.Complaint, error) {
	complaint, err := s.findComplaint(complaintID)
	if err != nil {
		return nil, err
	}
	if complaint.Status != models.ComplaintStatusPending {
		return nil, apperrors.ErrInvalidTransition(string(complaint.Status), "approve")
	}

	worker, err := s.userRepo.FindByID(workerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("Worker not found")
		}
		return nil, err
	}
	if worker.Role != models.UserRoleWorker {
		return nil, apperrors.NewBadRequestError("Assignee is not a worker")
	}

	if err := s.complaintRepo.UpdateByID(complaintID, map[string]interface{}{
		"status":      models.ComplaintStatusAssigned,
		"assigned_to": workerID,
	}); err != nil {
		return nil, s.mapComplaintErr(err)
	}

	complaint.Status = models.ComplaintStatusAssigned
	complaint.AssignedTo = &workerID

	s.notifications.NotifyComplaintApproved(complaint)
	s.notifications.NotifyTaskAssigned(workerID, complaint)

	logger.Info("complaint approved", "complaint_id", complaintID, "worker_id", workerID)
	return complaint, nil
}

// Reject: Pending -> Rejected с обязательной причиной.
func (s *complaintService) Reject(complaintID, reason string) (*models.Complaint, error) {
	complaint, err := s.findComplaint(complaintID)
	if err != nil {
		return nil, err
	}
	if complaint.Status != models.ComplaintStatusPending {
		return nil, apperrors.ErrInvalidTransition(string(complaint.Status), "reject")
	}

	if err := s.complaintRepo.UpdateByID(complaintID, map[string]interface{}{
		"status":           models.ComplaintStatusRejected,
		"rejection_reason": reason,
	}); err != nil {
		return nil, s.mapComplaintErr(err)
	}

	complaint.Status = models.ComplaintStatusRejected
	complaint.RejectionReason = reason

	s.notifications.NotifyComplaintRejected(complaint, reason)
	return complaint, nil
}

// Review закрывает цикл проверки выполненной задачи.
//
// action "Completed": представитель и все члены его кластера получают
// статус Completed и ОДИН И ТОТ ЖЕ resolved_at - кластер закрывается как
// единое целое.
//
// action "RequestedChanges": задача возвращается воркеру.
func (s *complaintService) Review(complaintID, action string) (*models.Complaint, error) {
	complaint, err := s.findComplaint(complaintID)
	if err != nil {
		return nil, err
	}
	if complaint.Status != models.ComplaintStatusAwaitingReview {
		return nil, apperrors.ErrInvalidTransition(string(complaint.Status), "review")
	}

	switch action {
	case string(models.ComplaintStatusCompleted):
		now := time.Now()
		fields := map[string]interface{}{
			"status":      models.ComplaintStatusCompleted,
			"resolved_at": &now,
		}
		if err := s.complaintRepo.UpdateByID(complaintID, fields); err != nil {
			return nil, s.mapComplaintErr(err)
		}
		if err := s.complaintRepo.UpdateMembers(complaintID, fields); err != nil {
			// Представитель уже закрыт; рассинхрон членов только логируем
			logger.WithError(err).Error("failed to cascade completion to cluster members",
				"complaint_id", complaintID)
		}

		complaint.Status = models.ComplaintStatusCompleted
		complaint.ResolvedAt = &now
		s.notifications.NotifyComplaintCompleted(complaint)

	case string(models.ComplaintStatusRequestedChanges):
		if err := s.complaintRepo.UpdateByID(complaintID, map[string]interface{}{
			"status": models.ComplaintStatusRequestedChanges,
		}); err != nil {
			return nil, s.mapComplaintErr(err)
		}

		complaint.Status = models.ComplaintStatusRequestedChanges
		if complaint.AssignedTo != nil {
			s.notifications.NotifyChangesRequested(*complaint.AssignedTo, complaint)
		}

	default:
		return nil, apperrors.ValidationError(map[string]string{
			"action": "must be 'Completed' or 'RequestedChanges'",
		})
	}

	return complaint, nil
}

// Статусы, из которых воркер может двигать задачу
var workerUpdatableStatuses = map[models.ComplaintStatus]bool{
	models.ComplaintStatusAssigned:         true,
	models.ComplaintStatusInProgress:       true,
	models.ComplaintStatusRequestedChanges: true,
}

// UpdateTaskStatus принимает статус от воркера. Терминальные отчеты
// ("Resolved" / "Cannot be Resolved") переписываются в
// "Completed - Awaiting Admin Review" - закрывает жалобу только админ.
// Остальные значения сохраняются как есть. Каждый вызов оставляет
// запись в журнале воркера.
func (s *complaintService) UpdateTaskStatus(workerID, complaintID string, req *dto.UpdateTaskStatusRequest) (*models.Complaint, error) {
	complaint, err := s.findComplaint(complaintID)
	if err != nil {
		return nil, err
	}
	if !workerUpdatableStatuses[complaint.Status] {
		return nil, apperrors.ErrInvalidTransition(string(complaint.Status), "status_update")
	}

	newStatus := models.ComplaintStatus(req.Status)
	if newStatus == models.WorkerStatusResolved || newStatus == models.WorkerStatusCannotResolve {
		newStatus = models.ComplaintStatusAwaitingReview
	}

	// Resolution перезаписывается целиком: пустой отчет затирает старый текст
	fields := map[string]interface{}{
		"status":     newStatus,
		"resolution": req.Resolution,
	}
	if err := s.complaintRepo.UpdateByID(complaintID, fields); err != nil {
		return nil, s.mapComplaintErr(err)
	}

	workerLog := &models.WorkerLog{
		WorkerID:    workerID,
		ComplaintID: complaintID,
		Action:      req.Status,
	}
	if req.ProofMedia != "" {
		workerLog.ProofMedia = &req.ProofMedia
	}
	if err := s.workerLogRepo.Create(workerLog); err != nil {
		logger.WithError(err).Error("failed to write worker log",
			"complaint_id", complaintID, "worker_id", workerID)
	}

	complaint.Status = newStatus
	complaint.Resolution = req.Resolution

	s.notifications.NotifyTaskUpdate(complaint, req.Status)
	return complaint, nil
}

func (s *complaintService) ListWorkerLogs(complaintID string) ([]models.WorkerLog, error) {
	if _, err := s.findComplaint(complaintID); err != nil {
		return nil, err
	}
	return s.workerLogRepo.FindByComplaintID(complaintID)
}

func (s *complaintService) findComplaint(id string) (*models.Complaint, error) {
	complaint, err := s.complaintRepo.FindByID(id)
	if err != nil {
		return nil, s.mapComplaintErr(err)
	}
	return complaint, nil
}

func (s *complaintService) mapComplaintErr(err error) error {
	if errors.Is(err, repositories.ErrComplaintNotFound) {
		return apperrors.ErrComplaintNotFound
	}
	return err
}
