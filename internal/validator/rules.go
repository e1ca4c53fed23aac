package validator

import (
	"log"

	"dormdesk_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные правила валидации.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Ошибка регистрации правила - ошибка времени запуска
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-user-role': роль из закрытого множества {resident, admin, worker}
	mustRegister("is-user-role", validateUserRole)

	// 'is-complaint-type': тип жалобы {common_area, personal_room}
	mustRegister("is-complaint-type", validateComplaintType)
}

func validateUserRole(fl validator.FieldLevel) bool {
	return models.ValidRole(models.UserRole(fl.Field().String()))
}

func validateComplaintType(fl validator.FieldLevel) bool {
	switch models.ComplaintType(fl.Field().String()) {
	case models.ComplaintTypeCommonArea, models.ComplaintTypePersonalRoom:
		return true
	}
	return false
}
