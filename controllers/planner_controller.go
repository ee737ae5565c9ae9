// controllers/planner_controller.go
package controllers

import (
	"log"
	"net/http"
	"strings"

	"flexitrip-backend/services"
	"flexitrip-backend/utils"

	"github.com/gin-gonic/gin"
)

type PlanTripPayload struct {
	Destination string   `json:"destination" binding:"required"`
	Duration    int      `json:"duration" binding:"required,gt=0"`
	Budget      float64  `json:"budget" binding:"required,gt=0"`
	Interests   []string `json:"interests"`
	TravelStyle string   `json:"travel_style"`
	GroupSize   int      `json:"group_size"`
}

type PlannerController struct {
	Planner *services.PlannerService
}

func NewPlannerController(planner *services.PlannerService) *PlannerController {
	return &PlannerController{Planner: planner}
}

// PlanTrip generates an itinerary, persists the trip and returns the
// plan with its map payload and bookable items.
func (ctrl *PlannerController) PlanTrip(c *gin.Context) {
	var payload PlanTripPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	planned, err := ctrl.Planner.PlanTrip(c.Request.Context(), services.TripPlanRequest{
		Destination: payload.Destination,
		Duration:    payload.Duration,
		Budget:      payload.Budget,
		Interests:   payload.Interests,
		TravelStyle: payload.TravelStyle,
		GroupSize:   payload.GroupSize,
	})
	if err != nil {
		log.Printf("PlanTrip error for %s: %v", payload.Destination, err)
		if strings.Contains(err.Error(), "validation") {
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to plan trip")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, planned)
}
