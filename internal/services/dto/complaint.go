package dto

import "dormdesk_backend/internal/models"

// ============================================================
// DTO для жалоб
// ============================================================

type CreateComplaintRequest struct {
	ComplaintType string  `json:"complaint_type" validate:"required,is-complaint-type"`
	Floor         string  `json:"floor" validate:"required"`
	Room          *string `json:"room"`
	Category      string  `json:"category" validate:"required"`
	Subcategory   string  `json:"subcategory" validate:"required"`
	Description   string  `json:"description"`
	MediaURL      string  `json:"media_url"`
}

// Админские мутации приходят form-encoded.

type ApproveComplaintRequest struct {
	WorkerID string `form:"worker_id" json:"worker_id" validate:"required"`
	// Note принимается, но нигде не сохраняется
	Note string `form:"note" json:"note"`
}

type RejectComplaintRequest struct {
	RejectionReason string `form:"rejection_reason" json:"rejection_reason" validate:"required"`
}

type ReviewComplaintRequest struct {
	Action string `form:"action" json:"action" validate:"required,oneof=Completed RequestedChanges"`
}

type UpdateTaskStatusRequest struct {
	Status     string `form:"status" json:"status" validate:"required"`
	Resolution string `form:"resolution" json:"resolution"`
	ProofMedia string `form:"proof_media" json:"proof_media"`
}

type UpdateWorkerRequest struct {
	IsActive       *bool   `form:"is_active" json:"is_active"`
	Specialization *string `form:"specialization" json:"specialization"`
}

// ============================================================
// Аннотированные представления (обогащаются именами из users)
// ============================================================

// ResidentComplaintView - жалоба глазами резидента.
type ResidentComplaintView struct {
	models.Complaint
	AssignedWorkerName *string `json:"assigned_worker_name,omitempty"`
}

// AdminComplaintView - только представители, с данными резидента и работника.
type AdminComplaintView struct {
	models.Complaint
	ResidentName                 string  `json:"resident_name"`
	ResidentEmail                string  `json:"resident_email"`
	AssignedWorkerName           *string `json:"assigned_worker_name,omitempty"`
	AssignedWorkerSpecialization *string `json:"assigned_worker_specialization,omitempty"`
}

// WorkerTaskView - задача глазами работника.
type WorkerTaskView struct {
	models.Complaint
	ResidentName  string `json:"resident_name"`
	ResidentEmail string `json:"resident_email"`
}

// WorkerInfo - строка справочника работников для админа.
type WorkerInfo struct {
	ID             string  `json:"id"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Specialization *string `json:"specialization,omitempty"`
	IsActive       bool    `json:"is_active"`
}
