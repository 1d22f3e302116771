package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/huynhhaigiang/cadico-api/internal/plan/service"
)

// NotificationHandler thông báo trong ứng dụng
type NotificationHandler struct {
	notifySvc *service.NotificationService
}

func NewNotificationHandler(notifySvc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifySvc: notifySvc}
}

// List GET /notifications?limit=
func (h *NotificationHandler) List(c *gin.Context) {
	limit := 50
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil {
			limit = v
		}
	}

	items, unread, err := h.notifySvc.List(c.Request.Context(), GetUserID(c), limit)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{
		"items":        items,
		"unread_count": unread,
	})
}

// MarkRead PUT /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.notifySvc.MarkRead(c.Request.Context(), GetUserID(c), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, nil)
}

// MarkAllRead PUT /notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notifySvc.MarkAllRead(c.Request.Context(), GetUserID(c)); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}
