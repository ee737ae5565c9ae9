package models

import (
	"time"

	"gorm.io/datatypes"
)

// Bookable item categories.
const (
	ItemTypeHotel      = "hotel"
	ItemTypeActivity   = "activity"
	ItemTypeRestaurant = "restaurant"
	ItemTypeTransport  = "transport"
)

// BookableItem is one priced line item inside a booking session.
// The metadata fields are free-form and depend on the item type.
type BookableItem struct {
	Type string  `json:"type"`
	Name string  `json:"name"`
	Cost float64 `json:"cost"`

	Nights   int    `json:"nights,omitempty"`
	Duration string `json:"duration,omitempty"`
	Meal     string `json:"meal,omitempty"`
	Service  string `json:"service,omitempty"`
}

// Booking session lifecycle statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

// BookingSession is the in-memory cart-like aggregate grouping a
// trip's bookable items until payment completes. It lives in the
// booking registry only; SaveBooking denormalizes it into a Booking
// row once the caller wants durability.
type BookingSession struct {
	BookingID string         `json:"booking_id"`
	Trip      TripSummary    `json:"trip_data"`
	Items     []BookableItem `json:"items"`
	TotalCost float64        `json:"total_cost"`

	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	PaymentMethod string `json:"payment_method,omitempty"`

	ConfirmationNumber string     `json:"confirmation_number,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
}

// BookingSummary is the simplified receipt view of a session.
type BookingSummary struct {
	BookingID          string  `json:"booking_id"`
	Destination        string  `json:"destination"`
	TotalCost          float64 `json:"total_cost"`
	ItemsCount         int     `json:"items_count"`
	Status             string  `json:"status"`
	ConfirmationNumber string  `json:"confirmation_number,omitempty"`
}

// Booking is the durable, denormalized copy of a completed (or at
// least persisted) booking session, optionally linked to a trip.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`

	TripID    *uint  `gorm:"column:trip_id;index" json:"trip_id,omitempty"`
	BookingID string `gorm:"column:booking_id;size:16;uniqueIndex" json:"booking_id"`

	ConfirmationNumber string  `gorm:"column:confirmation_number;size:32" json:"confirmation_number,omitempty"`
	TotalAmount        float64 `gorm:"column:total_amount" json:"total_amount"`
	PaymentStatus      string  `gorm:"column:payment_status;size:32;default:pending" json:"payment_status"`
	PaymentMethod      string  `gorm:"column:payment_method;size:64" json:"payment_method,omitempty"`

	// BookingData holds the full session payload as JSON.
	BookingData datatypes.JSON `gorm:"column:booking_data" json:"booking_data,omitempty"`

	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
}

// TripWithBooking is the left-join view of a trip and its booking.
// Booking fields stay nil when the trip was never booked.
type TripWithBooking struct {
	Trip

	BookingConfirmation *string  `json:"booking_confirmation,omitempty"`
	PaymentStatus       *string  `json:"payment_status,omitempty"`
	PaidAmount          *float64 `json:"paid_amount,omitempty"`
}
