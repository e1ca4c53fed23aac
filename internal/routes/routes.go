package routes

import (
	"net/http"

	"dormdesk_backend/internal/handlers"
	"dormdesk_backend/internal/middleware"
	"dormdesk_backend/internal/models"
	"dormdesk_backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

// Handlers - все обработчики, которые регистрируются в роутере
type Handlers struct {
	Auth         *handlers.AuthHandler
	Resident     *handlers.ResidentHandler
	Admin        *handlers.AdminHandler
	Worker       *handlers.WorkerHandler
	Notification *handlers.NotificationHandler
}

// Setup регистрирует все маршруты приложения.
// userRepo нужен AuthMiddleware для проверки subject-а токена.
func Setup(router *gin.Engine, h *Handlers, userRepo repositories.UserRepository) {
	authRequired := middleware.AuthMiddleware(userRepo)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	// Публичные маршруты
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.GET("/me", authRequired, h.Auth.Me)
	}

	// Резидент
	resident := api.Group("/resident",
		authRequired,
		middleware.RoleMiddleware(models.UserRoleResident),
	)
	{
		resident.POST("/complaints", h.Resident.CreateComplaint)
		resident.GET("/complaints", h.Resident.ListComplaints)
	}

	// Админ
	admin := api.Group("/admin",
		authRequired,
		middleware.RoleMiddleware(models.UserRoleAdmin),
	)
	{
		admin.GET("/complaints", h.Admin.ListComplaints)
		admin.GET("/complaints/:complaintId/logs", h.Admin.ListComplaintLogs)
		admin.PUT("/complaints/:complaintId/approve", h.Admin.ApproveComplaint)
		admin.PUT("/complaints/:complaintId/reject", h.Admin.RejectComplaint)
		admin.PUT("/complaints/:complaintId/review", h.Admin.ReviewComplaint)
		admin.GET("/workers", h.Admin.ListWorkers)
		admin.PUT("/workers/:workerId", h.Admin.UpdateWorker)
		admin.GET("/analytics", h.Admin.Analytics)
	}

	// Воркер
	worker := api.Group("/worker",
		authRequired,
		middleware.RoleMiddleware(models.UserRoleWorker),
	)
	{
		worker.GET("/tasks", h.Worker.ListTasks)
		worker.PUT("/tasks/:complaintId/status", h.Worker.UpdateTaskStatus)
	}

	// Уведомления - любая аутентифицированная роль
	notifications := api.Group("/notifications", authRequired)
	{
		notifications.GET("", h.Notification.List)
		notifications.GET("/unread-count", h.Notification.UnreadCount)
		notifications.PUT("/:notificationId/read", h.Notification.MarkAsRead)
	}
}
