// services/planner_service.go
package services

import (
	"context"
	"fmt"
	"log"

	"flexitrip-backend/models"
)

// Budget shares for the generated bookable items.
const (
	hotelShare      = 0.40
	activityShare   = 0.30
	restaurantShare = 0.20
	transportShare  = 0.10
)

// PlannerService orchestrates the planning and booking flow across the
// AI agent, the durable trip store, the in-memory booking registry and
// the map builder. Controllers call it instead of stitching the
// services together themselves.
type PlannerService struct {
	AI        *AIService
	Trips     *TripService
	Bookings  *BookingService
	Maps      *MapsService
	Analytics *AnalyticsService
}

func NewPlannerService(ai *AIService, trips *TripService, bookings *BookingService, maps *MapsService, analytics *AnalyticsService) *PlannerService {
	return &PlannerService{
		AI:        ai,
		Trips:     trips,
		Bookings:  bookings,
		Maps:      maps,
		Analytics: analytics,
	}
}

// PlannedTrip is the full planning result returned to the client.
type PlannedTrip struct {
	TripID        uint                  `json:"trip_id"`
	Plan          *TripPlanResponse     `json:"plan"`
	Map           *TripMap              `json:"map"`
	BookableItems []models.BookableItem `json:"bookable_items"`
}

// BuildBookableItems splits the estimated cost across the standard
// item categories: 40% hotel, 30% activities, 20% dining, 10%
// transport.
func (p *PlannerService) BuildBookableItems(destination string, duration int, estimatedCost float64) []models.BookableItem {
	if duration <= 0 {
		duration = 1
	}
	return []models.BookableItem{
		{
			Type:   models.ItemTypeHotel,
			Name:   fmt.Sprintf("%s Heritage Hotel", destination),
			Cost:   estimatedCost * hotelShare,
			Nights: duration,
		},
		{
			Type:     models.ItemTypeActivity,
			Name:     "Cultural Experience Package",
			Cost:     estimatedCost * activityShare,
			Duration: fmt.Sprintf("%d days", duration),
		},
		{
			Type: models.ItemTypeRestaurant,
			Name: "Local Cuisine Tour",
			Cost: estimatedCost * restaurantShare,
			Meal: "multiple",
		},
		{
			Type:    models.ItemTypeTransport,
			Name:    "Complete Transport Package",
			Cost:    estimatedCost * transportShare,
			Service: "door-to-door",
		},
	}
}

// PlanTrip runs the full pipeline: generate the itinerary, derive
// bookable items, persist the trip and build the map payload. The AI
// step never fails the request; its fallback plan flows through like a
// real one.
func (p *PlannerService) PlanTrip(ctx context.Context, req TripPlanRequest) (*PlannedTrip, error) {
	if req.Destination == "" || req.Duration <= 0 {
		return nil, fmt.Errorf("validation: destination and duration are required")
	}
	if req.GroupSize <= 0 {
		req.GroupSize = 2
	}

	plan := p.AI.GenerateTripPlan(ctx, req)
	items := p.BuildBookableItems(req.Destination, req.Duration, plan.EstimatedCost)

	center := p.Maps.DestinationCenter(req.Destination)
	locations := []models.MapLocation{
		{
			Name:   fmt.Sprintf("%s Heritage Hotel", req.Destination),
			Lat:    center[0] + 0.01,
			Lng:    center[1] + 0.01,
			Type:   models.ItemTypeHotel,
			Cost:   items[0].Cost,
			Timing: "Check-in 2 PM",
		},
		{
			Name:   fmt.Sprintf("%s City Center", req.Destination),
			Lat:    center[0],
			Lng:    center[1],
			Type:   "attraction",
			Timing: "Open all day",
		},
		{
			Name:   "Local Cuisine Tour",
			Lat:    center[0] - 0.01,
			Lng:    center[1] + 0.005,
			Type:   models.ItemTypeRestaurant,
			Cost:   items[2].Cost,
			Timing: "Lunch and dinner",
		},
	}

	tripID, err := p.Trips.SaveEnhancedTrip(TripInput{
		Destination:   req.Destination,
		Duration:      req.Duration,
		Budget:        req.Budget,
		Interests:     req.Interests,
		TravelStyle:   req.TravelStyle,
		GroupSize:     req.GroupSize,
		TripPlan:      plan.TripPlan,
		EstimatedCost: plan.EstimatedCost,
	}, locations, items)
	if err != nil {
		return nil, err
	}

	return &PlannedTrip{
		TripID:        tripID,
		Plan:          plan,
		Map:           p.Maps.BuildTripMap(req.Destination, locations),
		BookableItems: items,
	}, nil
}

// StartBooking loads a planned trip and opens an in-memory booking
// session over its stored bookable items.
func (p *PlannerService) StartBooking(tripID uint) (models.BookingSession, error) {
	view, err := p.Trips.GetTripWithBooking(tripID)
	if err != nil {
		return models.BookingSession{}, err
	}

	items := view.ItemList()
	if len(items) == 0 {
		items = p.BuildBookableItems(view.Destination, view.Duration, view.EstimatedCost)
	}

	session, err := p.Bookings.InitiateBooking(view.Summary(), items)
	if err != nil {
		return models.BookingSession{}, err
	}

	if p.Analytics != nil {
		if err := p.Analytics.LogEvent("booking_initiated", view.Destination, map[string]interface{}{
			"booking_id": session.BookingID,
			"trip_id":    tripID,
		}); err != nil {
			log.Printf("warning: analytics log failed for booking %s: %v", session.BookingID, err)
		}
	}

	return session, nil
}

// CompletePayment confirms the session, persists the booking row and
// logs the completion event. Analytics failures are logged, never
// surfaced.
func (p *PlannerService) CompletePayment(bookingID, method string, data map[string]string) (*PaymentResult, error) {
	result, err := p.Bookings.ProcessPayment(bookingID, method, data)
	if err != nil {
		return nil, err
	}

	if err := p.Trips.SaveBooking(result.Session); err != nil {
		return nil, err
	}

	if p.Analytics != nil {
		if err := p.Analytics.LogEvent("booking_completed", result.Session.Trip.Destination, map[string]interface{}{
			"booking_id":   result.Session.BookingID,
			"total_amount": result.Session.TotalCost,
			"method":       method,
		}); err != nil {
			log.Printf("warning: analytics log failed for booking %s: %v", result.Session.BookingID, err)
		}
	}

	return result, nil
}
