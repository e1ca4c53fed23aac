package middleware

import (
	"errors"
	"strings"

	"dormdesk_backend/internal/auth"
	"dormdesk_backend/internal/logger"
	"dormdesk_backend/internal/models"
	"dormdesk_backend/internal/repositories"
	"dormdesk_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware - middleware проверки JWT.
// Причины отказа различимы (expired / malformed / неизвестный subject),
// но все отдаются как 401. Subject резолвится в таблицу пользователей на
// каждый запрос: валидный токен удаленного пользователя не дает доступа.
func AuthMiddleware(userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortWithError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				abortWithError(c, apperrors.ErrTokenExpired)
			} else {
				abortWithError(c, apperrors.ErrInvalidToken)
			}
			return
		}

		if _, err := userRepo.FindByID(claims.UserID); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				abortWithError(c, apperrors.ErrUnknownSubject)
			} else {
				abortWithError(c, apperrors.NewUnauthorizedError("Unable to verify user"))
			}
			return
		}

		// Сохраняем claims в контекст
		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// RoleMiddleware - middleware ограничения по ролям.
// Каждый endpoint объявляет ровно одну разрешенную роль; несовпадение - 403,
// а не молчаливая фильтрация.
func RoleMiddleware(requiredRole models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			abortWithError(c, apperrors.NewForbiddenError("Access denied: no role"))
			return
		}

		roleStr, ok := roleVal.(string)
		if !ok || models.UserRole(roleStr) != requiredRole {
			abortWithError(c, apperrors.NewForbiddenError("Access denied: insufficient permissions"))
			return
		}

		c.Next()
	}
}

func abortWithError(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.HTTPCode, apperrors.ErrorResponse{Error: err})
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}
	return id
}
