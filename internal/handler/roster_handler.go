package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadhub/faculty-timetable-api/internal/service"
	"github.com/acadhub/faculty-timetable-api/pkg/response"
)

// RosterHandler wires HTTP endpoints for occurrence views.
type RosterHandler struct {
	roster *service.RosterService
}

// NewRosterHandler creates a new handler.
func NewRosterHandler(roster *service.RosterService) *RosterHandler {
	return &RosterHandler{roster: roster}
}

// AdminRoster godoc
// @Summary Expanded roster with conflicts and utilization
// @Tags Roster
// @Produce json
// @Security BearerAuth
// @Param window_days query int false "Days past today to expand (default 14)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /roster [get]
func (h *RosterHandler) AdminRoster(c *gin.Context) {
	roster, err := h.roster.AdminRoster(c.Request.Context(), queryInt(c, "window_days", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roster, nil)
}

// FacultyRoster godoc
// @Summary One faculty member's expanded roster
// @Tags Roster
// @Produce json
// @Security BearerAuth
// @Param email path string true "Faculty email"
// @Param window_days query int false "Days past today to expand (default 30)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /roster/faculty/{email} [get]
func (h *RosterHandler) FacultyRoster(c *gin.Context) {
	roster, err := h.roster.FacultyRoster(c.Request.Context(), c.Param("email"), queryInt(c, "window_days", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roster, nil)
}

// Conflicts godoc
// @Summary Detected room and faculty conflicts over the roster window
// @Tags Roster
// @Produce json
// @Security BearerAuth
// @Param window_days query int false "Days past today to expand (default 14)"
// @Success 200 {object} response.Envelope
// @Router /roster/conflicts [get]
func (h *RosterHandler) Conflicts(c *gin.Context) {
	conflicts, err := h.roster.Conflicts(c.Request.Context(), queryInt(c, "window_days", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conflicts, nil)
}
