package handlers

import (
	"net/http"

	"dormdesk_backend/internal/services"
	"dormdesk_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ============================================================
// Обработчики резидента
// ============================================================

type ResidentHandler struct {
	*BaseHandler
	complaintService services.ComplaintService
}

func NewResidentHandler(base *BaseHandler, complaintService services.ComplaintService) *ResidentHandler {
	return &ResidentHandler{BaseHandler: base, complaintService: complaintService}
}

// CreateComplaint - POST /api/v1/resident/complaints
func (h *ResidentHandler) CreateComplaint(c *gin.Context) {
	var req dto.CreateComplaintRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	complaint, err := h.complaintService.Create(h.CurrentUserID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, complaint)
}

// ListComplaints - GET /api/v1/resident/complaints
func (h *ResidentHandler) ListComplaints(c *gin.Context) {
	views, err := h.complaintService.ListForResident(h.CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}
