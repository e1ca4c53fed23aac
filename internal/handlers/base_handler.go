package handlers

import (
	"errors"

	"dormdesk_backend/internal/middleware"
	"dormdesk_backend/internal/validator"
	"dormdesk_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// ============================================================
// Базовый обработчик
// ============================================================

// BaseHandler содержит общие зависимости и хелперы всех обработчиков
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// BindAndValidateJSON связывает JSON-тело и прогоняет кастомную валидацию.
// При ошибке сам пишет ответ и возвращает false.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError(err.Error()))
		return false
	}
	return h.validate(c, req)
}

// BindAndValidateForm - то же для form-encoded тел
func (h *BaseHandler) BindAndValidateForm(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError(err.Error()))
		return false
	}
	return h.validate(c, req)
}

func (h *BaseHandler) validate(c *gin.Context, req interface{}) bool {
	if err := h.validator.Validate(req); err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// HandleServiceError отправляет ошибку сервиса клиенту
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}

// CurrentUserID возвращает id аутентифицированного пользователя из контекста
func (h *BaseHandler) CurrentUserID(c *gin.Context) string {
	return middleware.GetUserID(c)
}
