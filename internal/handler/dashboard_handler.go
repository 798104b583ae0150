package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadhub/faculty-timetable-api/internal/service"
	appErrors "github.com/acadhub/faculty-timetable-api/pkg/errors"
	"github.com/acadhub/faculty-timetable-api/pkg/response"
)

// DashboardHandler wires HTTP endpoints for landing-page summaries.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Admin godoc
// @Summary Admin dashboard summary
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param window_days query int false "Days past today to summarise"
// @Success 200 {object} response.Envelope
// @Router /dashboard/admin [get]
func (h *DashboardHandler) Admin(c *gin.Context) {
	dash, err := h.dashboard.AdminDashboard(c.Request.Context(), queryInt(c, "window_days", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dash, nil)
}

// Faculty godoc
// @Summary Faculty dashboard summary for the authenticated user
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /dashboard/faculty [get]
func (h *DashboardHandler) Faculty(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	dash, err := h.dashboard.FacultyDashboard(c.Request.Context(), claims.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dash, nil)
}
