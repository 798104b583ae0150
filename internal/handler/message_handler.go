package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/acadhub/faculty-timetable-api/internal/models"
	"github.com/acadhub/faculty-timetable-api/internal/service"
	appErrors "github.com/acadhub/faculty-timetable-api/pkg/errors"
	"github.com/acadhub/faculty-timetable-api/pkg/response"
)

// MessageHandler wires HTTP endpoints for the inbox.
type MessageHandler struct {
	messages *service.MessageService
}

// NewMessageHandler creates a new handler.
func NewMessageHandler(messages *service.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// Send godoc
// @Summary Send a message or broadcast
// @Description An empty recipient_email broadcasts to every active faculty account.
// @Tags Messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.SendMessageRequest true "Message payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid message payload"))
		return
	}

	sent, err := h.messages.Send(c.Request.Context(), claims.Email, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sent)
}

// Inbox godoc
// @Summary List the authenticated user's messages
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param unread query bool false "Only unread messages"
// @Success 200 {object} response.Envelope
// @Router /messages [get]
func (h *MessageHandler) Inbox(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	unreadOnly, _ := strconv.ParseBool(c.Query("unread"))
	messages, pagination, err := h.messages.Inbox(c.Request.Context(), claims.Email, models.MessageFilter{
		UnreadOnly: unreadOnly,
		Page:       queryInt(c, "page", 1),
		PageSize:   queryInt(c, "page_size", 20),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, messages, pagination)
}

// MarkRead godoc
// @Summary Mark one of the authenticated user's messages as read
// @Tags Messages
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 204 {object} response.Envelope
// @Router /messages/{id}/read [post]
func (h *MessageHandler) MarkRead(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.messages.MarkRead(c.Request.Context(), c.Param("id"), claims.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UnreadCount godoc
// @Summary Number of unread messages for the authenticated user
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /messages/unread [get]
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	count, err := h.messages.UnreadCount(c.Request.Context(), claims.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"unread": count}, nil)
}
