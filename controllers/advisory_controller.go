// controllers/advisory_controller.go
package controllers

import (
	"log"
	"net/http"
	"strings"

	"flexitrip-backend/services"
	"flexitrip-backend/utils"

	"github.com/gin-gonic/gin"
)

type OptimizeRoutePayload struct {
	Stops []services.RouteStop `json:"stops" binding:"required"`
}

// AdvisoryController exposes the external data sources directly so the
// frontend can enrich a plan on demand. Missing API keys surface as
// 503, not 500: the deployment simply doesn't have that source.
type AdvisoryController struct {
	Advisory *services.AdvisoryService
}

func NewAdvisoryController(advisory *services.AdvisoryService) *AdvisoryController {
	return &AdvisoryController{Advisory: advisory}
}

func advisoryStatus(err error) int {
	if strings.Contains(err.Error(), "not configured") {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}

// GetWeather returns current conditions for a destination.
func (ctrl *AdvisoryController) GetWeather(c *gin.Context) {
	destination := strings.TrimSpace(c.Query("destination"))
	if destination == "" {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidQuery", "destination is required")
		return
	}

	report, err := ctrl.Advisory.Weather(c.Request.Context(), destination)
	if err != nil {
		log.Printf("GetWeather error for %s: %v", destination, err)
		utils.JSONErrorCode(c, advisoryStatus(err), "error.weatherUnavailable", "weather data unavailable")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, report)
}

// GetEvents searches local events near a destination.
func (ctrl *AdvisoryController) GetEvents(c *gin.Context) {
	location := strings.TrimSpace(c.Query("location"))
	if location == "" {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidQuery", "location is required")
		return
	}
	query := strings.TrimSpace(c.DefaultQuery("q", "festival"))

	events, err := ctrl.Advisory.Events(c.Request.Context(), query, location)
	if err != nil {
		log.Printf("GetEvents error for %s: %v", location, err)
		utils.JSONErrorCode(c, advisoryStatus(err), "error.eventsUnavailable", "event data unavailable")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, events)
}

// OptimizeRoute returns an optimized visiting order for the stops.
func (ctrl *AdvisoryController) OptimizeRoute(c *gin.Context) {
	var payload OptimizeRoutePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	if len(payload.Stops) < 2 {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.notEnoughStops", "at least two stops are required")
		return
	}

	result, err := ctrl.Advisory.OptimizeRoute(c.Request.Context(), payload.Stops)
	if err != nil {
		log.Printf("OptimizeRoute error: %v", err)
		utils.JSONErrorCode(c, advisoryStatus(err), "error.routeUnavailable", "route optimization unavailable")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}
