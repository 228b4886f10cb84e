package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Calculator payloads accept numbers or numeric strings; unreadable input counts as zero.
type (
	CarbonRequest struct {
		Consumption any `json:"consumption" swaggertype:"number" example:"100"`
	}
	BillRequest struct {
		Reading any `json:"reading" swaggertype:"number" example:"250"`
		Tariff  any `json:"tariff" swaggertype:"number" example:"11"`
	}
	ScenarioRequest struct {
		ApplianceID int `json:"appliance_id" binding:"required" example:"1"`
		Hours       any `json:"hours" swaggertype:"number" example:"5"`
		Tariff      any `json:"tariff" swaggertype:"number" example:"11"`
	}
)

// @Summary      Carbon footprint
// @Tags         calculators
// @Accept       json
// @Produce      json
// @Param        body  body      CarbonRequest  true  "Consumption in kWh"
// @Success      200   {object}  calculator.CarbonResult
// @Router       /api/v1/calc/carbon [post]
// @Security     BearerAuth
func (h *Handler) calcCarbon(c *gin.Context) {
	var in CarbonRequest
	if !h.bindJSONOrBadRequest(c, &in) {
		return
	}
	c.JSON(http.StatusOK, h.services.CalcCarbon(in.Consumption))
}

// @Summary      Bill estimate
// @Tags         calculators
// @Accept       json
// @Produce      json
// @Param        body  body      BillRequest  true  "Meter reading and optional tariff"
// @Success      200   {object}  calculator.BillResult
// @Router       /api/v1/calc/bill [post]
// @Security     BearerAuth
func (h *Handler) calcBill(c *gin.Context) {
	userID, ok := getUserId(c)
	if !ok {
		return
	}
	var in BillRequest
	if !h.bindJSONOrBadRequest(c, &in) {
		return
	}
	res, err := h.services.CalcBill(c.Request.Context(), userID, in.Reading, in.Tariff)
	if err != nil {
		h.respondError(c, "calc_bill_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Appliance scenario
// @Tags         calculators
// @Accept       json
// @Produce      json
// @Param        body  body      ScenarioRequest  true  "Appliance, hours per day and optional tariff"
// @Success      200   {object}  calculator.ScenarioResult
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/calc/scenario [post]
// @Security     BearerAuth
func (h *Handler) calcScenario(c *gin.Context) {
	userID, ok := getUserId(c)
	if !ok {
		return
	}
	var in ScenarioRequest
	if !h.bindJSONOrBadRequest(c, &in) {
		return
	}
	res, err := h.services.CalcScenario(c.Request.Context(), userID, in.ApplianceID, in.Hours, in.Tariff)
	if err != nil {
		h.respondError(c, "calc_scenario_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, res)
}
