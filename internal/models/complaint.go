package models

import "time"

// Complaint - жалоба резидента.
//
// Инвариант кластеризации: RepresentativeID == nil означает, что жалоба -
// "представитель" (каноничный тикет своего кластера этаж+категория+
// подкатегория) и поле Count имеет смысл. RepresentativeID != nil означает,
// что жалоба - "член" кластера: она хранится, но ее собственные
// статус/назначение независимо не отслеживаются. В кластеризации участвуют
// только жалобы типа common_area.
type Complaint struct {
	BaseModel
	ResidentID    string        `gorm:"type:uuid;not null;index" json:"resident_id"`
	ComplaintType ComplaintType `gorm:"type:varchar(20);not null" json:"complaint_type"`
	Floor         string        `gorm:"not null" json:"floor"`
	Room          *string       `json:"room,omitempty"`
	Category      string        `gorm:"not null;index" json:"category"`
	Subcategory   string        `gorm:"not null" json:"subcategory"`
	Description   string        `json:"description"`

	Status   ComplaintStatus   `gorm:"type:varchar(50);default:'Pending'" json:"status"`
	Priority ComplaintPriority `gorm:"type:varchar(10);default:'Low'" json:"priority"`

	AssignedTo       *string `gorm:"type:uuid;index" json:"assigned_to,omitempty"`
	RepresentativeID *string `gorm:"type:uuid;index" json:"representative_id,omitempty"`
	Count            int     `gorm:"default:1" json:"count"`

	RejectionReason string `json:"rejection_reason,omitempty"`
	Resolution      string `json:"resolution,omitempty"`
	MediaURL        string `json:"media_url,omitempty"`

	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// IsRepresentative сообщает, является ли жалоба представителем кластера
func (c *Complaint) IsRepresentative() bool {
	return c.RepresentativeID == nil
}

// IsOpen - жалоба еще в работе (не завершена и не отклонена)
func (c *Complaint) IsOpen() bool {
	return c.Status != ComplaintStatusCompleted && c.Status != ComplaintStatusRejected
}
