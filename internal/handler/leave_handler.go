package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadhub/faculty-timetable-api/internal/models"
	"github.com/acadhub/faculty-timetable-api/internal/service"
	appErrors "github.com/acadhub/faculty-timetable-api/pkg/errors"
	"github.com/acadhub/faculty-timetable-api/pkg/response"
)

// LeaveHandler wires HTTP endpoints for the leave ledger.
type LeaveHandler struct {
	leaves *service.LeaveService
}

// NewLeaveHandler creates a new handler.
func NewLeaveHandler(leaves *service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaves: leaves}
}

// List godoc
// @Summary List leave requests
// @Description Admins see all requests; faculty only their own.
// @Tags Leave
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Envelope
// @Router /leave [get]
func (h *LeaveHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	filter := models.LeaveFilter{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	if raw := c.Query("status"); raw != "" {
		status := models.LeaveStatus(raw)
		filter.Status = &status
	}
	if claims.Role != models.RoleAdmin {
		filter.FacultyEmail = claims.Email
	}

	requests, pagination, err := h.leaves.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests, pagination)
}

// Create godoc
// @Summary File a leave request
// @Tags Leave
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateLeaveRequest true "Leave payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /leave [post]
func (h *LeaveHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid leave payload"))
		return
	}

	leave, err := h.leaves.Create(c.Request.Context(), claims.Email, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, leave)
}

// Approve godoc
// @Summary Approve a pending leave request
// @Tags Leave
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave request ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /leave/{id}/approve [post]
func (h *LeaveHandler) Approve(c *gin.Context) {
	h.decide(c, h.leaves.Approve)
}

// Reject godoc
// @Summary Reject a pending leave request
// @Tags Leave
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave request ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /leave/{id}/reject [post]
func (h *LeaveHandler) Reject(c *gin.Context) {
	h.decide(c, h.leaves.Reject)
}

func (h *LeaveHandler) decide(c *gin.Context, fn func(ctx context.Context, id, decidedBy string) (*models.LeaveRequest, error)) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	leave, err := fn(c.Request.Context(), c.Param("id"), claims.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, leave, nil)
}
