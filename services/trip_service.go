// services/trip_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"flexitrip-backend/models"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrTripNotFound is returned when a trip id is unknown.
var ErrTripNotFound = errors.New("trip_not_found")

// TripService is the durable store for trips and bookings, wrapping
// *gorm.DB the same way the rest of the services do. Every write is a
// single synchronous statement; there is no batching.
type TripService struct {
	DB        *gorm.DB
	Analytics *AnalyticsService
}

func NewTripService(db *gorm.DB, analytics *AnalyticsService) *TripService {
	return &TripService{DB: db, Analytics: analytics}
}

// TripInput carries the fields of a new trip row.
type TripInput struct {
	Title         string
	Destination   string
	Duration      int
	Budget        float64
	Interests     []string
	TravelStyle   string
	GroupSize     int
	TripPlan      string
	EstimatedCost float64
}

func isConstraintViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		// 1062 duplicate entry, 1048 column cannot be null
		return mysqlErr.Number == 1062 || mysqlErr.Number == 1048
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "unique") || strings.Contains(lc, "constraint") || strings.Contains(lc, "not null")
}

// SaveTrip inserts a basic trip row and returns its id.
func (s *TripService) SaveTrip(in TripInput) (uint, error) {
	if in.Destination == "" || in.Duration <= 0 {
		return 0, fmt.Errorf("validation: destination and duration are required")
	}
	if in.GroupSize <= 0 {
		in.GroupSize = 2
	}
	if in.Title == "" {
		in.Title = fmt.Sprintf("%s Adventure", in.Destination)
	}

	trip := models.Trip{
		Title:         in.Title,
		Destination:   in.Destination,
		Duration:      in.Duration,
		Budget:        in.Budget,
		TravelStyle:   in.TravelStyle,
		GroupSize:     in.GroupSize,
		TripPlan:      in.TripPlan,
		EstimatedCost: in.EstimatedCost,
		BookingStatus: models.TripStatusPlanned,
	}
	if err := trip.SetInterests(in.Interests); err != nil {
		return 0, fmt.Errorf("failed to encode interests: %w", err)
	}

	if err := s.DB.Create(&trip).Error; err != nil {
		if isConstraintViolation(err) {
			return 0, fmt.Errorf("validation: %w", err)
		}
		return 0, fmt.Errorf("failed to save trip: %w", err)
	}
	return trip.ID, nil
}

// SaveEnhancedTrip inserts a trip row enriched with the AI plan, map
// locations and bookable items, and logs a trip_created event.
func (s *TripService) SaveEnhancedTrip(in TripInput, locations []models.MapLocation, items []models.BookableItem) (uint, error) {
	if in.GroupSize <= 0 {
		in.GroupSize = 2
	}
	if in.Title == "" {
		in.Title = fmt.Sprintf("%s Adventure", in.Destination)
	}

	trip := models.Trip{
		Title:         in.Title,
		Destination:   in.Destination,
		Duration:      in.Duration,
		Budget:        in.Budget,
		TravelStyle:   in.TravelStyle,
		GroupSize:     in.GroupSize,
		TripPlan:      in.TripPlan,
		EstimatedCost: in.EstimatedCost,
		TotalCost:     in.EstimatedCost,
		BookingStatus: models.TripStatusPlanned,
	}
	if err := trip.SetInterests(in.Interests); err != nil {
		return 0, fmt.Errorf("failed to encode interests: %w", err)
	}
	if err := trip.SetMapLocations(locations); err != nil {
		return 0, fmt.Errorf("failed to encode map locations: %w", err)
	}
	if err := trip.SetItems(items); err != nil {
		return 0, fmt.Errorf("failed to encode bookable items: %w", err)
	}

	if err := s.DB.Create(&trip).Error; err != nil {
		if isConstraintViolation(err) {
			return 0, fmt.Errorf("validation: %w", err)
		}
		return 0, fmt.Errorf("failed to save trip: %w", err)
	}

	if s.Analytics != nil {
		if err := s.Analytics.LogEvent("trip_created", in.Destination, map[string]interface{}{
			"duration": in.Duration,
			"budget":   in.Budget,
		}); err != nil {
			log.Printf("warning: analytics log failed for trip %d: %v", trip.ID, err)
		}
	}

	return trip.ID, nil
}

// GetAllTrips returns every trip, most recent first. No pagination;
// fine at this tool's scale.
func (s *TripService) GetAllTrips() ([]models.Trip, error) {
	var trips []models.Trip
	if err := s.DB.Order("created_at DESC, id DESC").Find(&trips).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve trips: %w", err)
	}
	return trips, nil
}

// GetTripWithBooking returns the trip joined with its booking row.
// Left-join semantics: a trip without a booking still returns, with
// the booking fields nil.
func (s *TripService) GetTripWithBooking(tripID uint) (*models.TripWithBooking, error) {
	var trip models.Trip
	if err := s.DB.First(&trip, tripID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, fmt.Errorf("failed to retrieve trip: %w", err)
	}

	view := &models.TripWithBooking{Trip: trip}

	var booking models.Booking
	err := s.DB.Where("trip_id = ?", tripID).Order("id DESC").First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return view, nil
		}
		return nil, fmt.Errorf("failed to retrieve booking: %w", err)
	}

	view.BookingConfirmation = &booking.ConfirmationNumber
	view.PaymentStatus = &booking.PaymentStatus
	view.PaidAmount = &booking.TotalAmount
	return view, nil
}

// SaveBooking denormalizes a booking session snapshot into a durable
// row, optionally linked to a trip. A confirmed session also flips the
// trip's booking status.
func (s *TripService) SaveBooking(session models.BookingSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode booking session: %w", err)
	}

	var tripID *uint
	if session.Trip.TripID != 0 {
		id := session.Trip.TripID
		tripID = &id
	}

	booking := models.Booking{
		TripID:             tripID,
		BookingID:          session.BookingID,
		ConfirmationNumber: session.ConfirmationNumber,
		TotalAmount:        session.TotalCost,
		PaymentStatus:      session.PaymentStatus,
		PaymentMethod:      session.PaymentMethod,
		BookingData:        datatypes.JSON(payload),
		CompletedAt:        session.CompletedAt,
	}

	if err := s.DB.Create(&booking).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}

	if tripID != nil && session.Status == models.BookingStatusConfirmed {
		if err := s.DB.Model(&models.Trip{}).Where("id = ?", *tripID).
			Updates(map[string]interface{}{
				"booking_status":      models.TripStatusConfirmed,
				"confirmation_number": session.ConfirmationNumber,
			}).Error; err != nil {
			return fmt.Errorf("failed to update trip booking status: %w", err)
		}
	}

	return nil
}
