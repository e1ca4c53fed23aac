package models

type UserRole string
type ComplaintType string
type ComplaintStatus string
type ComplaintPriority string

const (
	UserRoleResident UserRole = "resident"
	UserRoleAdmin    UserRole = "admin"
	UserRoleWorker   UserRole = "worker"

	ComplaintTypeCommonArea   ComplaintType = "common_area"
	ComplaintTypePersonalRoom ComplaintType = "personal_room"

	// Статусы жизненного цикла. Значения - точные строки, которые видит клиент.
	ComplaintStatusPending          ComplaintStatus = "Pending"
	ComplaintStatusAssigned         ComplaintStatus = "Assigned"
	ComplaintStatusInProgress       ComplaintStatus = "In Progress"
	ComplaintStatusAwaitingReview   ComplaintStatus = "Completed - Awaiting Admin Review"
	ComplaintStatusCompleted        ComplaintStatus = "Completed"
	ComplaintStatusRequestedChanges ComplaintStatus = "RequestedChanges"
	ComplaintStatusRejected         ComplaintStatus = "Rejected"

	// Значения, которые присылает воркер; движок переписывает их
	// в ComplaintStatusAwaitingReview
	WorkerStatusResolved      ComplaintStatus = "Resolved"
	WorkerStatusCannotResolve ComplaintStatus = "Cannot be Resolved"

	ComplaintPriorityLow    ComplaintPriority = "Low"
	ComplaintPriorityMedium ComplaintPriority = "Medium"
	ComplaintPriorityHigh   ComplaintPriority = "High"
	// Urgent зарезервирован под ручную эскалацию; автоматика его не выставляет
	ComplaintPriorityUrgent ComplaintPriority = "Urgent"
)

// ValidRole проверяет, что роль входит в закрытое множество
func ValidRole(r UserRole) bool {
	switch r {
	case UserRoleResident, UserRoleAdmin, UserRoleWorker:
		return true
	}
	return false
}
