package models

// WorkerLog - append-only журнал действий воркера по задаче.
// Записи никогда не изменяются и не удаляются.
type WorkerLog struct {
	BaseModel
	WorkerID    string  `gorm:"type:uuid;not null;index" json:"worker_id"`
	ComplaintID string  `gorm:"type:uuid;not null;index" json:"complaint_id"`
	Action      string  `gorm:"not null" json:"action"`
	ProofMedia  *string `json:"proof_media,omitempty"`
}
