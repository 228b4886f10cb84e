package handlers

import (
	"net/http"

	"energy_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// GoalRequest is the payload for setting a goal.
type GoalRequest struct {
	// consumption, cost or carbon
	Type   string  `json:"type" binding:"required" example:"cost"`
	Target float64 `json:"target" example:"3000"`
}

// @Summary      List goals with progress
// @Tags         goals
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, goals"
// @Router       /api/v1/goals [get]
// @Security     BearerAuth
func (h *Handler) listGoals(c *gin.Context) {
	userID, ok := getUserId(c)
	if !ok {
		return
	}
	goals, err := h.services.ListGoals(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, "goals_list_failed", err, "user_id", userID)
		return
	}
	if goals == nil {
		goals = []service.GoalView{}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(goals), "goals": goals})
}

// @Summary      Set goal
// @Tags         goals
// @Accept       json
// @Produce      json
// @Param        body  body      GoalRequest  true  "Goal"
// @Success      201   {object}  models.Goal
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/goals [post]
// @Security     BearerAuth
func (h *Handler) addGoal(c *gin.Context) {
	userID, ok := getUserId(c)
	if !ok {
		return
	}
	var in GoalRequest
	if !h.bindJSONOrBadRequest(c, &in) {
		return
	}
	g, err := h.services.AddGoal(c.Request.Context(), userID, in.Type, in.Target)
	if err != nil {
		h.respondError(c, "goal_add_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusCreated, g)
}

// @Summary      Delete goal
// @Tags         goals
// @Produce      json
// @Param        id   path      int  true  "Goal id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/goals/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteGoal(c *gin.Context) {
	userID, ok := getUserId(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.services.DeleteGoal(c.Request.Context(), userID, id); err != nil {
		h.respondError(c, "goal_delete_failed", err, "user_id", userID, "goal_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// @Summary      Check goal milestones now
// @Description  Runs milestone detection for the caller without waiting for the scheduler.
// @Tags         goals
// @Produce      json
// @Success      200  {object}  monitor.CheckResult
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/goals/check [post]
// @Security     BearerAuth
func (h *Handler) checkGoals(c *gin.Context) {
	userID, ok := getUserId(c)
	if !ok {
		return
	}
	res, err := h.services.CheckGoals(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, "goals_check_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, res)
}
