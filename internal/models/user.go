package models

// User - учетная запись. Кроме IsActive и Specialization поля после
// создания не меняются.
type User struct {
	BaseModel
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	FullName     string   `gorm:"not null" json:"full_name"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`

	// Для резидентов
	Floor *string `json:"floor,omitempty"`
	Room  *string `json:"room,omitempty"`

	// Для воркеров: electrician, plumber, cleaner, carpenter...
	Specialization *string `json:"specialization,omitempty"`

	IsActive bool `gorm:"default:true" json:"is_active"`
}
