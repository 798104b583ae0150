package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acadhub/faculty-timetable-api/internal/models"
	"github.com/acadhub/faculty-timetable-api/internal/service"
	appErrors "github.com/acadhub/faculty-timetable-api/pkg/errors"
	"github.com/acadhub/faculty-timetable-api/pkg/response"
)

// InvigilationHandler wires HTTP endpoints for invigilation duties.
type InvigilationHandler struct {
	duties *service.InvigilationService
}

// NewInvigilationHandler creates a new handler.
func NewInvigilationHandler(duties *service.InvigilationService) *InvigilationHandler {
	return &InvigilationHandler{duties: duties}
}

// List godoc
// @Summary List invigilation duties
// @Tags Invigilation
// @Produce json
// @Security BearerAuth
// @Param faculty_email query string false "Filter by faculty email"
// @Param from_date query string false "From date (YYYY-MM-DD)"
// @Param to_date query string false "To date (YYYY-MM-DD)"
// @Param exam query string false "Filter by exam name"
// @Success 200 {object} response.Envelope
// @Router /invigilation [get]
func (h *InvigilationHandler) List(c *gin.Context) {
	filter := models.DutyFilter{
		FacultyEmail: c.Query("faculty_email"),
		FromDate:     c.Query("from_date"),
		ToDate:       c.Query("to_date"),
		Exam:         c.Query("exam"),
		Page:         queryInt(c, "page", 1),
		PageSize:     queryInt(c, "page_size", 50),
	}

	duties, pagination, err := h.duties.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, duties, pagination)
}

// Mine godoc
// @Summary Authenticated faculty member's upcoming duties
// @Tags Invigilation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /invigilation/mine [get]
func (h *InvigilationHandler) Mine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	duties, err := h.duties.Upcoming(c.Request.Context(), claims.Email, time.Now(), queryInt(c, "limit", 10))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, duties, nil)
}

// Create godoc
// @Summary Create an invigilation duty
// @Tags Invigilation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateDutyRequest true "Duty payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /invigilation [post]
func (h *InvigilationHandler) Create(c *gin.Context) {
	var req service.CreateDutyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid duty payload"))
		return
	}

	duty, err := h.duties.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, duty)
}

// Update godoc
// @Summary Update an invigilation duty
// @Tags Invigilation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Duty ID"
// @Param payload body service.CreateDutyRequest true "Duty payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /invigilation/{id} [put]
func (h *InvigilationHandler) Update(c *gin.Context) {
	var req service.CreateDutyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid duty payload"))
		return
	}

	duty, err := h.duties.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, duty, nil)
}

// Delete godoc
// @Summary Delete an invigilation duty
// @Tags Invigilation
// @Security BearerAuth
// @Param id path string true "Duty ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /invigilation/{id} [delete]
func (h *InvigilationHandler) Delete(c *gin.Context) {
	if err := h.duties.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
