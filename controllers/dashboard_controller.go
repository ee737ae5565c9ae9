// controllers/dashboard_controller.go
package controllers

import (
	"log"
	"net/http"

	"flexitrip-backend/services"
	"flexitrip-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Analytics *services.AnalyticsService
	MapsSvc   *services.MapsService
}

func NewDashboardController(analytics *services.AnalyticsService, maps *services.MapsService) *DashboardController {
	return &DashboardController{Analytics: analytics, MapsSvc: maps}
}

// GetDashboard returns the aggregated analytics view.
func (ctrl *DashboardController) GetDashboard(c *gin.Context) {
	data, err := ctrl.Analytics.Dashboard()
	if err != nil {
		log.Printf("GetDashboard error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute dashboard")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, data)
}

// GetDestinations lists the supported destinations with coordinates.
func (ctrl *DashboardController) GetDestinations(c *gin.Context) {
	destinations, err := ctrl.MapsSvc.Destinations()
	if err != nil {
		log.Printf("GetDestinations error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve destinations")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, destinations)
}
