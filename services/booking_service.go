// services/booking_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"flexitrip-backend/models"
	"flexitrip-backend/utils"
)

// Payment methods accepted by the simulated gateway.
const (
	PaymentMethodCard       = "Credit/Debit Card"
	PaymentMethodUPI        = "UPI"
	PaymentMethodNetBanking = "Net Banking"
	PaymentMethodWallet     = "Digital Wallet"
)

// Sentinel errors surfaced to controllers.
var (
	ErrBookingNotFound  = errors.New("booking_not_found")
	ErrAlreadyConfirmed = errors.New("already_confirmed")
	ErrInvalidMethod    = errors.New("unsupported payment method")
)

// BookingService keeps all active booking sessions in memory, keyed by
// booking id. Sessions survive until process restart; persistence is
// the caller's job (TripService.SaveBooking). The registry is shared
// mutable state, so every access goes through the mutex and a payment
// confirm is a single compare-and-swap on payment status. The stored
// record never leaves the registry: lookups and results hand out value
// snapshots taken under the lock, so callers can marshal them without
// racing an in-flight confirm.
type BookingService struct {
	mu       sync.Mutex
	sessions map[string]*models.BookingSession

	advisory *AdvisoryService
}

// NewBookingService creates an empty booking registry. The advisory
// client is optional; without it item details always use the static
// fallback.
func NewBookingService(advisory *AdvisoryService) *BookingService {
	return &BookingService{
		sessions: make(map[string]*models.BookingSession),
		advisory: advisory,
	}
}

// InitiateBooking starts a new booking session with trip details and
// items. An empty items list is fine (total cost 0).
func (s *BookingService) InitiateBooking(trip models.TripSummary, items []models.BookableItem) (models.BookingSession, error) {
	if items == nil {
		items = []models.BookableItem{}
	}

	var total float64
	for _, item := range items {
		total += item.Cost
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Collisions are practically impossible at this scale; regenerate
	// just in case.
	var bookingID string
	for attempt := 0; attempt < 5; attempt++ {
		id, err := utils.GenerateBookingID()
		if err != nil {
			return models.BookingSession{}, fmt.Errorf("failed to generate booking id: %w", err)
		}
		if _, taken := s.sessions[id]; !taken {
			bookingID = id
			break
		}
	}
	if bookingID == "" {
		return models.BookingSession{}, errors.New("failed to allocate booking id")
	}

	session := models.BookingSession{
		BookingID:     bookingID,
		Trip:          trip,
		Items:         items,
		TotalCost:     total,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		CreatedAt:     time.Now(),
	}
	s.sessions[bookingID] = &session

	return session, nil
}

// GetSession retrieves a snapshot of a session by booking id. The
// second return value is false for unknown ids; lookups never fail any
// other way. A snapshot taken before a payment confirm stays pending;
// the next lookup observes the update.
func (s *BookingService) GetSession(bookingID string) (models.BookingSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[bookingID]
	if !ok {
		return models.BookingSession{}, false
	}
	return *session, true
}

// CostBreakdown sums item costs per category. Items of an unknown type
// land in "other" so that "total" always equals the sum of every item,
// category entries included.
func (s *BookingService) CostBreakdown(items []models.BookableItem) map[string]float64 {
	breakdown := map[string]float64{
		models.ItemTypeHotel:      0,
		models.ItemTypeActivity:   0,
		models.ItemTypeRestaurant: 0,
		models.ItemTypeTransport:  0,
	}

	var other float64
	for _, item := range items {
		if _, known := breakdown[item.Type]; known {
			breakdown[item.Type] += item.Cost
		} else {
			other += item.Cost
		}
	}
	if other > 0 {
		breakdown["other"] = other
	}

	var total float64
	for _, cost := range breakdown {
		total += cost
	}
	breakdown["total"] = total

	return breakdown
}

// ValidatePayment checks payment details for the chosen method.
// Presence-only by design: this is a simulated gateway, so no Luhn or
// format checks.
func (s *BookingService) ValidatePayment(method string, data map[string]string) error {
	switch method {
	case PaymentMethodCard:
		for _, field := range []string{"card_number", "expiry", "cvv"} {
			if strings.TrimSpace(data[field]) == "" {
				return fmt.Errorf("%s required", field)
			}
		}
	case PaymentMethodUPI:
		if strings.TrimSpace(data["upi_id"]) == "" {
			return errors.New("UPI ID required")
		}
	case PaymentMethodNetBanking:
		if strings.TrimSpace(data["bank"]) == "" {
			return errors.New("bank required")
		}
	case PaymentMethodWallet:
		if strings.TrimSpace(data["wallet"]) == "" {
			return errors.New("wallet required")
		}
	default:
		return ErrInvalidMethod
	}
	return nil
}

// PaymentResult is returned on a successful payment confirm. Session
// is a snapshot of the confirmed record.
type PaymentResult struct {
	ConfirmationNumber string                `json:"confirmation_number"`
	Session            models.BookingSession `json:"booking_session"`
}

// ProcessPayment validates payment details and confirms the booking.
// The whole check-and-confirm runs under the registry lock, so a
// second concurrent confirm on the same session is rejected with
// ErrAlreadyConfirmed rather than double-charging. The mutation is
// applied to the stored session in place; the result carries a
// snapshot of the confirmed record.
func (s *BookingService) ProcessPayment(bookingID, method string, data map[string]string) (*PaymentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[bookingID]
	if !ok {
		return nil, ErrBookingNotFound
	}
	if session.PaymentStatus == models.PaymentStatusCompleted {
		return nil, ErrAlreadyConfirmed
	}
	if err := s.ValidatePayment(method, data); err != nil {
		return nil, err
	}

	now := time.Now()
	session.PaymentStatus = models.PaymentStatusCompleted
	session.Status = models.BookingStatusConfirmed
	session.PaymentMethod = method
	session.ConfirmationNumber = utils.ConfirmationNumber(session.BookingID)
	session.CompletedAt = &now

	if method == PaymentMethodCard {
		log.Printf("💳 Payment confirmed for %s (card %s)", bookingID, utils.MaskCardNumber(data["card_number"]))
	} else {
		log.Printf("💳 Payment confirmed for %s via %s", bookingID, method)
	}

	return &PaymentResult{
		ConfirmationNumber: session.ConfirmationNumber,
		Session:            *session,
	}, nil
}

// Summary returns the simplified receipt view of a session.
func (s *BookingService) Summary(session models.BookingSession) models.BookingSummary {
	return models.BookingSummary{
		BookingID:          session.BookingID,
		Destination:        session.Trip.Destination,
		TotalCost:          session.TotalCost,
		ItemsCount:         len(session.Items),
		Status:             session.Status,
		ConfirmationNumber: session.ConfirmationNumber,
	}
}

// ItemDetails holds the enriched description of a bookable item.
type ItemDetails struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// GetItemDetails enriches an item with live advisory data when a
// location is given: hotel items consult hotel pricing, activity items
// the weather. Any advisory failure falls back to the static details.
func (s *BookingService) GetItemDetails(ctx context.Context, item models.BookableItem, location string) ItemDetails {
	if location != "" && s.advisory != nil {
		switch item.Type {
		case models.ItemTypeHotel:
			hotels, err := s.advisory.Hotels(ctx, location)
			if err == nil && len(hotels) > 0 {
				hotel := hotels[0]
				return ItemDetails{
					Name:        hotel.Name,
					Description: fmt.Sprintf("Real hotel with coordinates: %.4f, %.4f", hotel.Lat, hotel.Lon),
					Features:    []string{"Live availability", "Real location data"},
				}
			}
			if err != nil {
				log.Printf("warning: hotel lookup failed for %s: %v", location, err)
			}
		case models.ItemTypeActivity:
			weather, err := s.advisory.Weather(ctx, location)
			if err == nil {
				return ItemDetails{
					Name:        item.Name,
					Description: fmt.Sprintf("Weather-optimized for %s", weather.Conditions),
					Features:    []string{fmt.Sprintf("Current temp: %.1f°C", weather.Temperature)},
				}
			}
			log.Printf("warning: weather lookup failed for %s: %v", location, err)
		}
	}

	name := item.Name
	if name == "" {
		name = "Service"
	}
	return ItemDetails{
		Name:        name,
		Description: fmt.Sprintf("%s service included", titleCase(item.Type)),
		Features:    []string{"Standard service", "Customer support"},
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
