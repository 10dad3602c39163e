package handlers

import (
	"net/http"
	"strconv"

	"github.com/careerlink/jobboard/internal/models"
	"github.com/careerlink/jobboard/internal/services"
	"github.com/careerlink/jobboard/internal/utils"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc services.NotificationService
}

func NewNotificationHandler(svc services.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// List accepts ?type=...&read=true|false&page=N&limit=N.
func (h *NotificationHandler) List(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var f services.NotificationFilter

	if raw := c.Query("type"); raw != "" {
		typ := models.NotificationType(raw)
		if !typ.Valid() {
			writeError(c, utils.E(utils.CodeInvalidArgument, "NotificationHandler.List", "unknown notification type", nil))
			return
		}
		f.Type = &typ
	}
	if raw := c.Query("read"); raw != "" {
		read, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, "NotificationHandler.List", "read must be true or false", err))
			return
		}
		f.Read = &read
	}
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.PageSize, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	page, err := h.svc.List(c.Request.Context(), p, f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type MarkReadRequest struct {
	ApplicationID   string   `json:"application_id" binding:"required"`
	NotificationIDs []string `json:"notification_ids" binding:"required"`
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "NotificationHandler.MarkRead", "invalid request body", err))
		return
	}

	if err := h.svc.MarkRead(c.Request.Context(), p, req.ApplicationID, req.NotificationIDs); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notifications marked as read"})
}
