// controllers/trip_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"flexitrip-backend/services"
	"flexitrip-backend/utils"

	"github.com/gin-gonic/gin"
)

type TripController struct {
	TripSvc *services.TripService
}

func NewTripController(svc *services.TripService) *TripController {
	return &TripController{TripSvc: svc}
}

func (ctrl *TripController) GetTrips(c *gin.Context) {
	trips, err := ctrl.TripSvc.GetAllTrips()
	if err != nil {
		log.Printf("GetTrips error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve trips")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, trips)
}

// GetTrip returns one trip joined with its booking, if any.
func (ctrl *TripController) GetTrip(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidTripId", "trip id must be numeric")
		return
	}

	view, err := ctrl.TripSvc.GetTripWithBooking(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrTripNotFound) {
			utils.JSONErrorCode(c, http.StatusNotFound, "error.tripNotFound", "trip not found")
			return
		}
		log.Printf("GetTrip error for trip %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve trip")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, view)
}
