// controllers/booking_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"flexitrip-backend/models"
	"flexitrip-backend/services"
	"flexitrip-backend/utils"

	"github.com/gin-gonic/gin"
)

// InitiateBookingPayload accepts either a saved trip id or an inline
// trip snapshot with items, so the frontend can book straight from a
// fresh plan without persisting it first.
type InitiateBookingPayload struct {
	TripID uint `json:"trip_id"`

	Trip  *models.TripSummary   `json:"trip_data,omitempty"`
	Items []models.BookableItem `json:"items,omitempty"`
}

type PaymentPayload struct {
	PaymentMethod string            `json:"payment_method" binding:"required"`
	PaymentData   map[string]string `json:"payment_data"`
}

type BookingController struct {
	BookingSvc *services.BookingService
	Planner    *services.PlannerService
}

func NewBookingController(svc *services.BookingService, planner *services.PlannerService) *BookingController {
	return &BookingController{BookingSvc: svc, Planner: planner}
}

// InitiateBooking opens a new in-memory booking session.
func (ctrl *BookingController) InitiateBooking(c *gin.Context) {
	var payload InitiateBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	var (
		session models.BookingSession
		err     error
	)
	switch {
	case payload.TripID != 0:
		session, err = ctrl.Planner.StartBooking(payload.TripID)
	case payload.Trip != nil:
		session, err = ctrl.BookingSvc.InitiateBooking(*payload.Trip, payload.Items)
	default:
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "trip_id or trip_data is required")
		return
	}

	if err != nil {
		if errors.Is(err, services.ErrTripNotFound) {
			utils.JSONErrorCode(c, http.StatusNotFound, "error.tripNotFound", "trip not found")
			return
		}
		log.Printf("InitiateBooking error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to initiate booking")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, session)
}

// GetBooking returns the live session for a booking id.
func (ctrl *BookingController) GetBooking(c *gin.Context) {
	bookingID := strings.TrimSpace(c.Param("id"))
	session, ok := ctrl.BookingSvc.GetSession(bookingID)
	if !ok {
		utils.JSONErrorCode(c, http.StatusNotFound, "error.bookingNotFound", "booking not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, session)
}

// GetBreakdown returns per-category costs for a session's items.
func (ctrl *BookingController) GetBreakdown(c *gin.Context) {
	bookingID := strings.TrimSpace(c.Param("id"))
	session, ok := ctrl.BookingSvc.GetSession(bookingID)
	if !ok {
		utils.JSONErrorCode(c, http.StatusNotFound, "error.bookingNotFound", "booking not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, ctrl.BookingSvc.CostBreakdown(session.Items))
}

// ProcessPayment confirms payment on a session and persists the
// resulting booking.
func (ctrl *BookingController) ProcessPayment(c *gin.Context) {
	bookingID := strings.TrimSpace(c.Param("id"))

	var payload PaymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	result, err := ctrl.Planner.CompletePayment(bookingID, payload.PaymentMethod, payload.PaymentData)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			utils.JSONErrorCode(c, http.StatusNotFound, "error.bookingNotFound", "booking not found")
		case errors.Is(err, services.ErrAlreadyConfirmed):
			utils.JSONErrorCode(c, http.StatusConflict, "error.alreadyConfirmed", "payment already completed for this booking")
		case errors.Is(err, services.ErrInvalidMethod):
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidMethod", err.Error())
		case strings.Contains(err.Error(), "required"):
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPaymentData", err.Error())
		default:
			log.Printf("ProcessPayment error for booking %s: %v", bookingID, err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to process payment")
		}
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"confirmation_number": result.ConfirmationNumber,
		"booking":             ctrl.BookingSvc.Summary(result.Session),
	})
}

// GetItemDetails enriches one bookable item with advisory data.
func (ctrl *BookingController) GetItemDetails(c *gin.Context) {
	var payload struct {
		Item     models.BookableItem `json:"item" binding:"required"`
		Location string              `json:"location"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	details := ctrl.BookingSvc.GetItemDetails(c.Request.Context(), payload.Item, payload.Location)
	utils.JSONSuccess(c, http.StatusOK, details)
}
