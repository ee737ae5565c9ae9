package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Trip is the durable record of a planned trip. List/mapping valued
// fields (interests, map locations, bookable items) are stored as JSON
// columns; use the typed accessors below instead of touching the raw
// bytes.
type Trip struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title       string `gorm:"size:255;not null" json:"title"`
	Destination string `gorm:"size:128;not null;index" json:"destination"`
	Duration    int    `gorm:"not null" json:"duration"`

	Budget      float64 `gorm:"not null" json:"budget"`
	TravelStyle string  `gorm:"column:travel_style;size:64" json:"travel_style"`
	GroupSize   int     `gorm:"column:group_size;default:2" json:"group_size"`

	Interests datatypes.JSON `gorm:"column:interests" json:"interests"`

	// TripPlan is the opaque itinerary text from the AI agent.
	TripPlan      string  `gorm:"column:trip_plan;type:text" json:"trip_plan"`
	EstimatedCost float64 `gorm:"column:estimated_cost" json:"estimated_cost"`
	TotalCost     float64 `gorm:"column:total_cost" json:"total_cost"`

	MapLocations  datatypes.JSON `gorm:"column:map_locations" json:"map_locations,omitempty"`
	BookableItems datatypes.JSON `gorm:"column:bookable_items" json:"bookable_items,omitempty"`

	BookingStatus      string `gorm:"column:booking_status;size:32;default:planned" json:"booking_status"`
	ConfirmationNumber string `gorm:"column:confirmation_number;size:32" json:"confirmation_number,omitempty"`
}

// Trip booking statuses.
const (
	TripStatusPlanned   = "planned"
	TripStatusConfirmed = "confirmed"
)

// InterestList decodes the interests column, preserving order.
func (t *Trip) InterestList() []string {
	var out []string
	if len(t.Interests) == 0 {
		return out
	}
	if err := json.Unmarshal(t.Interests, &out); err != nil {
		return nil
	}
	return out
}

// SetInterests encodes interests into the JSON column.
func (t *Trip) SetInterests(interests []string) error {
	if interests == nil {
		interests = []string{}
	}
	raw, err := json.Marshal(interests)
	if err != nil {
		return err
	}
	t.Interests = datatypes.JSON(raw)
	return nil
}

// ItemList decodes the bookable_items column.
func (t *Trip) ItemList() []BookableItem {
	var out []BookableItem
	if len(t.BookableItems) == 0 {
		return out
	}
	if err := json.Unmarshal(t.BookableItems, &out); err != nil {
		return nil
	}
	return out
}

// SetItems encodes bookable items into the JSON column.
func (t *Trip) SetItems(items []BookableItem) error {
	if items == nil {
		items = []BookableItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	t.BookableItems = datatypes.JSON(raw)
	return nil
}

// SetMapLocations encodes map locations into the JSON column.
func (t *Trip) SetMapLocations(locations []MapLocation) error {
	if locations == nil {
		locations = []MapLocation{}
	}
	raw, err := json.Marshal(locations)
	if err != nil {
		return err
	}
	t.MapLocations = datatypes.JSON(raw)
	return nil
}

// MapLocationList decodes the map_locations column.
func (t *Trip) MapLocationList() []MapLocation {
	var out []MapLocation
	if len(t.MapLocations) == 0 {
		return out
	}
	if err := json.Unmarshal(t.MapLocations, &out); err != nil {
		return nil
	}
	return out
}

// Summary produces the snapshot carried inside a booking session.
func (t *Trip) Summary() TripSummary {
	return TripSummary{
		TripID:      t.ID,
		Destination: t.Destination,
		Duration:    t.Duration,
		Budget:      t.Budget,
		Interests:   t.InterestList(),
		TravelStyle: t.TravelStyle,
		GroupSize:   t.GroupSize,
	}
}

// TripSummary is the immutable trip snapshot a booking session keeps.
type TripSummary struct {
	TripID      uint     `json:"trip_id,omitempty"`
	Destination string   `json:"destination"`
	Duration    int      `json:"duration"`
	Budget      float64  `json:"budget"`
	Interests   []string `json:"interests,omitempty"`
	TravelStyle string   `json:"travel_style,omitempty"`
	GroupSize   int      `json:"group_size,omitempty"`
}

// MapLocation is one marker on the trip map payload.
type MapLocation struct {
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Type   string  `json:"type"`
	Cost   float64 `json:"cost"`
	Timing string  `json:"timing,omitempty"`
}
