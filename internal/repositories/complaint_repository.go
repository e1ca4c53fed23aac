package repositories

import (
	"errors"
	"time"

	"dormdesk_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrComplaintNotFound = errors.New("complaint not found")
)

// ClusterKey - ключ слияния дублей common_area жалоб
type ClusterKey struct {
	Category    string
	Subcategory string
	Floor       string
}

type ComplaintRepository interface {
	Create(complaint *models.Complaint) error
	FindByID(id string) (*models.Complaint, error)

	// Role-scoped выборки
	FindByResidentID(residentID string) ([]models.Complaint, error)
	FindRepresentatives() ([]models.Complaint, error)
	FindAssignedToWorker(workerID string) ([]models.Complaint, error)

	// Кластеризация
	FindOpenRepresentative(key ClusterKey) (*models.Complaint, error)
	HasRecentOpenPersonalRoom(residentID, category string, since time.Time) (bool, error)

	// Частичные обновления (last-writer-wins)
	UpdateByID(id string, fields map[string]interface{}) error
	UpdateMembers(representativeID string, fields map[string]interface{}) error
}

type ComplaintRepositoryImpl struct {
	db *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &ComplaintRepositoryImpl{db: db}
}

func (r *ComplaintRepositoryImpl) Create(complaint *models.Complaint) error {
	return r.db.Create(complaint).Error
}

func (r *ComplaintRepositoryImpl) FindByID(id string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := r.db.First(&complaint, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}
	return &complaint, nil
}

// FindByResidentID возвращает все жалобы резидента, включая членов кластеров
func (r *ComplaintRepositoryImpl) FindByResidentID(residentID string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := r.db.Where("resident_id = ?", residentID).
		Order("created_at desc").
		Find(&complaints).Error
	return complaints, err
}

// FindRepresentatives возвращает только представителей (representative_id IS NULL)
func (r *ComplaintRepositoryImpl) FindRepresentatives() ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := r.db.Where("representative_id IS NULL").
		Order("created_at desc").
		Find(&complaints).Error
	return complaints, err
}

// FindAssignedToWorker - задачи воркера; члены кластеров воркерам не видны
func (r *ComplaintRepositoryImpl) FindAssignedToWorker(workerID string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := r.db.Where("assigned_to = ? AND representative_id IS NULL", workerID).
		Order("created_at desc").
		Find(&complaints).Error
	return complaints, err
}

// FindOpenRepresentative ищет открытого представителя кластера.
// Поиск и последующий инкремент счетчика НЕ атомарны: гонка двух
// одновременных созданий может породить двух представителей
// (задокументированное допущение).
func (r *ComplaintRepositoryImpl) FindOpenRepresentative(key ClusterKey) (*models.Complaint, error) {
	var complaint models.Complaint
	err := r.db.
		Where("complaint_type = ?", models.ComplaintTypeCommonArea).
		Where("category = ? AND subcategory = ? AND floor = ?", key.Category, key.Subcategory, key.Floor).
		Where("representative_id IS NULL").
		Where("status NOT IN ?", []models.ComplaintStatus{
			models.ComplaintStatusCompleted,
			models.ComplaintStatusRejected,
		}).
		First(&complaint).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}
	return &complaint, nil
}

// HasRecentOpenPersonalRoom - окно подавления дублей personal_room
func (r *ComplaintRepositoryImpl) HasRecentOpenPersonalRoom(residentID, category string, since time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.Complaint{}).
		Where("resident_id = ?", residentID).
		Where("complaint_type = ?", models.ComplaintTypePersonalRoom).
		Where("category = ?", category).
		Where("created_at >= ?", since).
		Where("status NOT IN ?", []models.ComplaintStatus{
			models.ComplaintStatusCompleted,
			models.ComplaintStatusRejected,
		}).
		Count(&count).Error
	return count > 0, err
}

func (r *ComplaintRepositoryImpl) UpdateByID(id string, fields map[string]interface{}) error {
	result := r.db.Model(&models.Complaint{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrComplaintNotFound
	}
	return nil
}

// UpdateMembers применяет частичное обновление ко всем членам кластера
func (r *ComplaintRepositoryImpl) UpdateMembers(representativeID string, fields map[string]interface{}) error {
	return r.db.Model(&models.Complaint{}).
		Where("representative_id = ?", representativeID).
		Updates(fields).Error
}
