package handlers

import (
	"net/http"

	"energy_tracker/internal/calculator"
	"energy_tracker/internal/models"

	"github.com/gin-gonic/gin"
)

// LocationRequest is the location/tariff payload. The tariff may be sent as a
// number or a string; anything unreadable falls back to the default rate.
type LocationRequest struct {
	Region              string `json:"region" example:"NCR"`
	Province            string `json:"province" example:"Metro Manila"`
	City                string `json:"city" example:"Pasig"`
	ZipCode             string `json:"zip_code" example:"1600"`
	ElectricityProvider string `json:"electricity_provider" example:"Meralco"`
	ElectricityTariff   any    `json:"electricity_tariff" swaggertype:"number" example:"11.5"`
}

// ProfileResponse is the merged profile plus the derived display fields.
type ProfileResponse struct {
	Profile      models.Profile `json:"profile"`
	DisplayName  string         `json:"display_name"`
	LocationText string         `json:"location_text"`
	Tariff       float64        `json:"tariff"`
}

// @Summary      Get profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  ProfileResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/profile [get]
// @Security     BearerAuth
func (h *Handler) getProfile(c *gin.Context) {
	userID, ok := getUserId(c)
	if !ok {
		return
	}
	p, err := h.services.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, "profile_load_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, ProfileResponse{
		Profile:      p,
		DisplayName:  p.DisplayName(),
		LocationText: p.LocationText(),
		Tariff:       p.Tariff(),
	})
}

// @Summary      Save personal information
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      models.UserProfile  true  "Personal section"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/profile/personal [put]
// @Security     BearerAuth
func (h *Handler) savePersonal(c *gin.Context) {
	userID, ok := getUserId(c)
	if !ok {
		return
	}
	var in models.UserProfile
	if !h.bindJSONOrBadRequest(c, &in) {
		return
	}
	if err := h.services.SavePersonal(c.Request.Context(), userID, in); err != nil {
		h.respondError(c, "profile_save_personal_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// @Summary      Save location and tariff
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      LocationRequest  true  "Location section"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/profile/location [put]
// @Security     BearerAuth
func (h *Handler) saveLocation(c *gin.Context) {
	userID, ok := getUserId(c)
	if !ok {
		return
	}
	var in LocationRequest
	if !h.bindJSONOrBadRequest(c, &in) {
		return
	}
	loc := models.LocationTariff{
		Region:              in.Region,
		Province:            in.Province,
		City:                in.City,
		ZipCode:             in.ZipCode,
		ElectricityProvider: in.ElectricityProvider,
		ElectricityTariff:   calculator.Coerce(in.ElectricityTariff),
	}
	if err := h.services.SaveLocation(c.Request.Context(), userID, loc); err != nil {
		h.respondError(c, "profile_save_location_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// @Summary      Save preferences
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      models.Preferences  true  "Preferences section"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/profile/preferences [put]
// @Security     BearerAuth
func (h *Handler) savePreferences(c *gin.Context) {
	userID, ok := getUserId(c)
	if !ok {
		return
	}
	in := models.DefaultPreferences()
	if !h.bindJSONOrBadRequest(c, &in) {
		return
	}
	if err := h.services.SavePreferences(c.Request.Context(), userID, in); err != nil {
		h.respondError(c, "profile_save_preferences_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// @Summary      Dashboard stats
// @Tags         goals
// @Produce      json
// @Success      200  {object}  service.Stats
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/stats [get]
// @Security     BearerAuth
func (h *Handler) getStats(c *gin.Context) {
	userID, ok := getUserId(c)
	if !ok {
		return
	}
	st, err := h.services.Stats(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, "stats_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, st)
}
