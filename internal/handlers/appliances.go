package handlers

import (
	"net/http"

	"energy_tracker/internal/models"

	"github.com/gin-gonic/gin"
)

// ApplianceRequest is the payload for registering an appliance.
type ApplianceRequest struct {
	Name       string  `json:"name" binding:"required" example:"Aircon"`
	Wattage    int     `json:"wattage" binding:"required" example:"1200"`
	UsageHours float64 `json:"usage_hours" example:"8"`
	Category   string  `json:"category" example:"cooling"`
}

// @Summary      List appliances
// @Tags         appliances
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, appliances"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/appliances [get]
// @Security     BearerAuth
func (h *Handler) listAppliances(c *gin.Context) {
	userID, ok := getUserId(c)
	if !ok {
		return
	}
	list, err := h.services.ListAppliances(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, "appliances_list_failed", err, "user_id", userID)
		return
	}
	if list == nil {
		list = []models.Appliance{}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "appliances": list})
}

// @Summary      Add appliance
// @Tags         appliances
// @Accept       json
// @Produce      json
// @Param        body  body      ApplianceRequest  true  "Appliance"
// @Success      201   {object}  models.Appliance
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/appliances [post]
// @Security     BearerAuth
func (h *Handler) addAppliance(c *gin.Context) {
	userID, ok := getUserId(c)
	if !ok {
		return
	}
	var in ApplianceRequest
	if !h.bindJSONOrBadRequest(c, &in) {
		return
	}
	a, err := h.services.AddAppliance(c.Request.Context(), userID, models.Appliance{
		Name:       in.Name,
		Wattage:    in.Wattage,
		UsageHours: in.UsageHours,
		Category:   in.Category,
	})
	if err != nil {
		h.respondError(c, "appliance_add_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// @Summary      Delete appliance
// @Tags         appliances
// @Produce      json
// @Param        id   path      int  true  "Appliance id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/appliances/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteAppliance(c *gin.Context) {
	userID, ok := getUserId(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.services.DeleteAppliance(c.Request.Context(), userID, id); err != nil {
		h.respondError(c, "appliance_delete_failed", err, "user_id", userID, "appliance_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// @Summary      Appliance usage breakdown
// @Description  Daily kWh per appliance, largest first; more than seven appliances are folded into the top six plus "Others".
// @Tags         appliances
// @Produce      json
// @Success      200  {array}   progress.BreakdownEntry
// @Router       /api/v1/appliances/breakdown [get]
// @Security     BearerAuth
func (h *Handler) applianceBreakdown(c *gin.Context) {
	userID, ok := getUserId(c)
	if !ok {
		return
	}
	entries, err := h.services.Breakdown(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, "appliance_breakdown_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, entries)
}
