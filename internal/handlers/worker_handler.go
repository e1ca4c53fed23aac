package handlers

import (
	"net/http"

	"dormdesk_backend/internal/services"
	"dormdesk_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ============================================================
// Обработчики воркера
// ============================================================

type WorkerHandler struct {
	*BaseHandler
	complaintService services.ComplaintService
}

func NewWorkerHandler(base *BaseHandler, complaintService services.ComplaintService) *WorkerHandler {
	return &WorkerHandler{BaseHandler: base, complaintService: complaintService}
}

// ListTasks - GET /api/v1/worker/tasks
func (h *WorkerHandler) ListTasks(c *gin.Context) {
	views, err := h.complaintService.ListForWorker(h.CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// UpdateTaskStatus - PUT /api/v1/worker/tasks/:complaintId/status
func (h *WorkerHandler) UpdateTaskStatus(c *gin.Context) {
	var req dto.UpdateTaskStatusRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	complaint, err := h.complaintService.UpdateTaskStatus(
		h.CurrentUserID(c), c.Param("complaintId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, complaint)
}
