package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/acadhub/faculty-timetable-api/internal/models"
	"github.com/acadhub/faculty-timetable-api/internal/service"
	appErrors "github.com/acadhub/faculty-timetable-api/pkg/errors"
	"github.com/acadhub/faculty-timetable-api/pkg/response"
)

type dashboardInvalidator interface {
	InvalidateAdmin(ctx context.Context)
}

// TemplateHandler wires HTTP endpoints for lecture template management.
// Template mutations feed the cached admin dashboard, so every successful
// write drops those cache entries through the invalidator.
type TemplateHandler struct {
	templates  *service.TemplateService
	importer   *service.ImportService
	dashboards dashboardInvalidator
}

// NewTemplateHandler creates a new handler. dashboards may be nil when
// dashboard caching is not wired.
func NewTemplateHandler(templates *service.TemplateService, importer *service.ImportService, dashboards dashboardInvalidator) *TemplateHandler {
	return &TemplateHandler{templates: templates, importer: importer, dashboards: dashboards}
}

func (h *TemplateHandler) invalidateDashboards(c *gin.Context) {
	if h.dashboards != nil {
		h.dashboards.InvalidateAdmin(c.Request.Context())
	}
}

// List godoc
// @Summary List lecture templates
// @Tags Templates
// @Produce json
// @Security BearerAuth
// @Param day_of_week query string false "Filter by day"
// @Param faculty_email query string false "Filter by faculty email"
// @Param room query string false "Filter by room"
// @Param subject query string false "Filter by subject"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	filter := models.TemplateFilter{
		DayOfWeek:    c.Query("day_of_week"),
		TimeSlot:     c.Query("time_slot"),
		FacultyEmail: c.Query("faculty_email"),
		Room:         c.Query("room"),
		Subject:      c.Query("subject"),
		Page:         queryInt(c, "page", 1),
		PageSize:     queryInt(c, "page_size", 50),
	}

	templates, pagination, err := h.templates.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, templates, pagination)
}

// Get godoc
// @Summary Get one lecture template
// @Tags Templates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /templates/{id} [get]
func (h *TemplateHandler) Get(c *gin.Context) {
	tpl, err := h.templates.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tpl, nil)
}

// Create godoc
// @Summary Create a lecture template
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateTemplateRequest true "Template payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	var req service.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid template payload"))
		return
	}

	tpl, err := h.templates.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidateDashboards(c)
	response.Created(c, tpl)
}

// Update godoc
// @Summary Update a lecture template
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Param payload body service.UpdateTemplateRequest true "Template payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /templates/{id} [put]
func (h *TemplateHandler) Update(c *gin.Context) {
	var req service.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid template payload"))
		return
	}

	tpl, err := h.templates.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidateDashboards(c)
	response.JSON(c, http.StatusOK, tpl, nil)
}

// Delete godoc
// @Summary Delete a lecture template
// @Tags Templates
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /templates/{id} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	if err := h.templates.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	h.invalidateDashboards(c)
	response.NoContent(c)
}

// BulkCreate godoc
// @Summary Create multiple lecture templates
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.BulkCreateTemplatesRequest true "Bulk payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /templates/bulk [post]
func (h *TemplateHandler) BulkCreate(c *gin.Context) {
	var req service.BulkCreateTemplatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid bulk payload"))
		return
	}

	result, err := h.templates.BulkCreate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidateDashboards(c)
	response.Created(c, result)
}

// ImportCSV godoc
// @Summary Import lecture templates from a CSV upload
// @Tags Templates
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Param partial query bool false "Skip conflicting rows instead of failing"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /templates/import [post]
func (h *TemplateHandler) ImportCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "csv file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "cannot read uploaded file"))
		return
	}
	defer file.Close()

	partial, _ := strconv.ParseBool(c.Query("partial"))
	result, err := h.importer.ImportTemplatesCSV(c.Request.Context(), file, partial)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidateDashboards(c)
	response.Created(c, result)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	value := c.Query(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
