package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification - персональное уведомление, привязанное к жалобе.
// IsRead меняется только false -> true.
type Notification struct {
	BaseModel
	UserID      string         `gorm:"type:uuid;not null;index" json:"user_id"`
	ComplaintID string         `gorm:"type:uuid;not null;index" json:"complaint_id"`
	Type        string         `gorm:"not null" json:"type"` // "new_complaint", "complaint_approved"...
	Title       string         `gorm:"not null" json:"title"`
	Message     string         `json:"message"`
	Data        datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"` // {"category": "...", "floor": "..."}
	IsRead      bool           `gorm:"default:false" json:"is_read"`
	ReadAt      *time.Time     `json:"read_at,omitempty"`
}
