package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadhub/faculty-timetable-api/internal/service"
	"github.com/acadhub/faculty-timetable-api/pkg/response"
)

// ExportHandler wires HTTP endpoints for roster downloads.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler creates a new handler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// RosterCSV godoc
// @Summary Download the expanded roster as CSV
// @Tags Exports
// @Produce text/csv
// @Security BearerAuth
// @Param window_days query int false "Days past today to expand"
// @Success 200 {file} file
// @Router /exports/roster.csv [get]
func (h *ExportHandler) RosterCSV(c *gin.Context) {
	data, filename, err := h.exports.RosterCSV(c.Request.Context(), queryInt(c, "window_days", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveFile(c, data, filename, "text/csv")
}

// RosterPDF godoc
// @Summary Download the expanded roster as PDF
// @Tags Exports
// @Produce application/pdf
// @Security BearerAuth
// @Param window_days query int false "Days past today to expand"
// @Success 200 {file} file
// @Router /exports/roster.pdf [get]
func (h *ExportHandler) RosterPDF(c *gin.Context) {
	data, filename, err := h.exports.RosterPDF(c.Request.Context(), queryInt(c, "window_days", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveFile(c, data, filename, "application/pdf")
}

// FacultyRosterCSV godoc
// @Summary Download one faculty member's roster as CSV
// @Tags Exports
// @Produce text/csv
// @Security BearerAuth
// @Param email path string true "Faculty email"
// @Param window_days query int false "Days past today to expand"
// @Success 200 {file} file
// @Router /exports/roster/faculty/{email} [get]
func (h *ExportHandler) FacultyRosterCSV(c *gin.Context) {
	data, filename, err := h.exports.FacultyRosterCSV(c.Request.Context(), c.Param("email"), queryInt(c, "window_days", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveFile(c, data, filename, "text/csv")
}

// ConflictsCSV godoc
// @Summary Download the conflict report as CSV
// @Tags Exports
// @Produce text/csv
// @Security BearerAuth
// @Param window_days query int false "Days past today to expand"
// @Success 200 {file} file
// @Router /exports/conflicts.csv [get]
func (h *ExportHandler) ConflictsCSV(c *gin.Context) {
	data, filename, err := h.exports.ConflictReportCSV(c.Request.Context(), queryInt(c, "window_days", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveFile(c, data, filename, "text/csv")
}

func serveFile(c *gin.Context, data []byte, filename, mimeType string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, mimeType, data)
}
