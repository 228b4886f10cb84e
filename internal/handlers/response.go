package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"energy_tracker/internal/inbox"
	"energy_tracker/internal/models"
	"energy_tracker/internal/progress"
	"energy_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errInvalidBodyPref = "invalid body: "
	errInvalidID       = "invalid id"
	errInternal        = "internal error"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondError maps domain errors to 4xx replies; anything else is logged and
// reported as a 500.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	switch {
	case errors.Is(err, service.ErrApplianceNotFound),
		errors.Is(err, service.ErrGoalNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, inbox.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidGoalType),
		errors.Is(err, progress.ErrZeroTarget),
		errors.Is(err, service.ErrInvalidAppliance),
		errors.Is(err, service.ErrEmptyUsername),
		errors.Is(err, inbox.ErrEmptyTitle),
		errors.Is(err, inbox.ErrNotConfirmed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, logKey, err, kv...)
	}
}

// pathID parses the :id parameter, writing a 400 when it is not a positive integer.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return 0, false
	}
	return id, true
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
