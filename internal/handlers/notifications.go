package handlers

import (
	"net/http"
	"strconv"

	"energy_tracker/internal/models"

	"github.com/gin-gonic/gin"
)

// NotificationRequest creates a notification in the caller's inbox.
type NotificationRequest struct {
	// info, warning, success or error; empty means info
	Type    string `json:"type" example:"info"`
	Title   string `json:"title" binding:"required" example:"Welcome"`
	Message string `json:"message" example:"Thanks for signing up."`
}

// @Summary      Inbox
// @Description  Notifications newest first with the unread badge count.
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  inbox.Summary
// @Router       /api/v1/notifications [get]
// @Security     BearerAuth
func (h *Handler) listNotifications(c *gin.Context) {
	userID, ok := getUserId(c)
	if !ok {
		return
	}
	sum, err := h.services.Summary(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, "notifications_list_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// @Summary      Create notification
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        body  body      NotificationRequest  true  "Notification"
// @Success      201   {object}  models.Notification
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/notifications [post]
// @Security     BearerAuth
func (h *Handler) createNotification(c *gin.Context) {
	userID, ok := getUserId(c)
	if !ok {
		return
	}
	var in NotificationRequest
	if !h.bindJSONOrBadRequest(c, &in) {
		return
	}
	typ, err := models.ParseNotificationType(in.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n, err := h.services.Create(c.Request.Context(), userID, typ, in.Title, in.Message)
	if err != nil {
		h.respondError(c, "notification_create_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusCreated, n)
}

// @Summary      Mark notification read
// @Tags         notifications
// @Produce      json
// @Param        id   path      string  true  "Notification id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/notifications/{id}/read [post]
// @Security     BearerAuth
func (h *Handler) markNotificationRead(c *gin.Context) {
	userID, ok := getUserId(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if err := h.services.MarkRead(c.Request.Context(), userID, id); err != nil {
		h.respondError(c, "notification_mark_read_failed", err, "user_id", userID, "notification_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}

// @Summary      Mark all notifications read
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/v1/notifications/read-all [post]
// @Security     BearerAuth
func (h *Handler) markAllNotificationsRead(c *gin.Context) {
	userID, ok := getUserId(c)
	if !ok {
		return
	}
	n, err := h.services.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, "notification_mark_all_read_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

// @Summary      Delete notification
// @Tags         notifications
// @Produce      json
// @Param        id   path      string  true  "Notification id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/notifications/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteNotification(c *gin.Context) {
	userID, ok := getUserId(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if err := h.services.Delete(c.Request.Context(), userID, id); err != nil {
		h.respondError(c, "notification_delete_failed", err, "user_id", userID, "notification_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// @Summary      Clear inbox
// @Description  Deletes every notification. Requires confirm=true unless the inbox is already empty.
// @Tags         notifications
// @Produce      json
// @Param        confirm  query     bool  false  "Confirm deletion"
// @Success      200      {object}  inbox.ClearResult
// @Failure      400      {object}  map[string]string
// @Router       /api/v1/notifications [delete]
// @Security     BearerAuth
func (h *Handler) clearNotifications(c *gin.Context) {
	userID, ok := getUserId(c)
	if !ok {
		return
	}
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	res, err := h.services.ClearAll(c.Request.Context(), userID, confirmed)
	if err != nil {
		h.respondError(c, "notifications_clear_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, res)
}
