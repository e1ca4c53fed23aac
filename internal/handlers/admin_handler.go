package handlers

import (
	"net/http"

	"dormdesk_backend/internal/services"
	"dormdesk_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ============================================================
// Обработчики админа
// ============================================================

type AdminHandler struct {
	*BaseHandler
	complaintService services.ComplaintService
	userService      services.UserService
	analyticsService services.AnalyticsService
}

func NewAdminHandler(
	base *BaseHandler,
	complaintService services.ComplaintService,
	userService services.UserService,
	analyticsService services.AnalyticsService,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:      base,
		complaintService: complaintService,
		userService:      userService,
		analyticsService: analyticsService,
	}
}

// ListComplaints - GET /api/v1/admin/complaints
// Возвращает только представителей кластеров
func (h *AdminHandler) ListComplaints(c *gin.Context) {
	views, err := h.complaintService.ListForAdmin()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// ListComplaintLogs - GET /api/v1/admin/complaints/:complaintId/logs
func (h *AdminHandler) ListComplaintLogs(c *gin.Context) {
	logs, err := h.complaintService.ListWorkerLogs(c.Param("complaintId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

// ApproveComplaint - PUT /api/v1/admin/complaints/:complaintId/approve
func (h *AdminHandler) ApproveComplaint(c *gin.Context) {
	var req dto.ApproveComplaintRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	complaint, err := h.complaintService.Approve(c.Param("complaintId"), req.WorkerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, complaint)
}

// RejectComplaint - PUT /api/v1/admin/complaints/:complaintId/reject
func (h *AdminHandler) RejectComplaint(c *gin.Context) {
	var req dto.RejectComplaintRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	complaint, err := h.complaintService.Reject(c.Param("complaintId"), req.RejectionReason)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, complaint)
}

// ReviewComplaint - PUT /api/v1/admin/complaints/:complaintId/review
func (h *AdminHandler) ReviewComplaint(c *gin.Context) {
	var req dto.ReviewComplaintRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	complaint, err := h.complaintService.Review(c.Param("complaintId"), req.Action)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, complaint)
}

// ListWorkers - GET /api/v1/admin/workers
func (h *AdminHandler) ListWorkers(c *gin.Context) {
	workers, err := h.userService.ListWorkers()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, workers)
}

// UpdateWorker - PUT /api/v1/admin/workers/:workerId
func (h *AdminHandler) UpdateWorker(c *gin.Context) {
	var req dto.UpdateWorkerRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	worker, err := h.userService.UpdateWorker(c.Param("workerId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, worker)
}

// Analytics - GET /api/v1/admin/analytics
func (h *AdminHandler) Analytics(c *gin.Context) {
	overview, err := h.analyticsService.GetOverview()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}
