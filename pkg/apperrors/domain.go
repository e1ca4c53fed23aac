package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для ошибок бизнес-логики жизненного цикла жалоб.
*/

// =========================================================================
// Аутентификация
// =========================================================================

// ErrInvalidCredentials - неверная пара email/пароль.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrTokenExpired - срок действия токена истек.
var ErrTokenExpired = New(
	CodeTokenExpired,
	"auth",
	"Token expired",
	http.StatusUnauthorized,
)

// ErrInvalidToken - токен поврежден или подписан неверным ключом.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid token",
	http.StatusUnauthorized,
)

// ErrUnknownSubject - токен валиден, но пользователь не найден.
var ErrUnknownSubject = New(
	CodeUnauthorized,
	"auth",
	"User not found",
	http.StatusUnauthorized,
)

// ErrAdminNotAuthorized - регистрация/вход под админом без сконфигурированных
// админских учетных данных. Это намеренный дополнительный барьер.
var ErrAdminNotAuthorized = New(
	CodeForbidden,
	"auth",
	"You are not authorized to use the admin role",
	http.StatusForbidden,
)

// ErrEmailAlreadyExists - email уже зарегистрирован.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already registered",
	http.StatusConflict,
)

// ErrInvalidUserRole - роль вне множества {resident, admin, worker}.
var ErrInvalidUserRole = New(
	CodeValidationFailed,
	"auth",
	"Invalid user role",
	http.StatusBadRequest,
)

// =========================================================================
// Жалобы
// =========================================================================

// ErrComplaintNotFound - жалоба с таким id не существует.
var ErrComplaintNotFound = New(
	CodeNotFound,
	"complaint",
	"Complaint not found",
	http.StatusNotFound,
)

// ErrDuplicateComplaint - повторная жалоба personal_room в пределах
// 24-часового окна.
var ErrDuplicateComplaint = New(
	CodeConflict,
	"complaint",
	"You already submitted a similar complaint within 24 hours",
	http.StatusConflict,
)

// ErrInvalidTransition - фабрика для недопустимого перехода статуса (409).
func ErrInvalidTransition(from, action string) *AppError {
	return New(
		CodeConflict,
		"complaint",
		"Action '"+action+"' is not allowed for complaint in status '"+from+"'",
		http.StatusConflict,
	)
}

// =========================================================================
// Уведомления
// =========================================================================

// ErrNotificationNotFound - уведомление не найдено или принадлежит другому
// пользователю.
var ErrNotificationNotFound = New(
	CodeNotFound,
	"notification",
	"Notification not found",
	http.StatusNotFound,
)
