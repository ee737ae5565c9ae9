package models

import (
	"time"

	"gorm.io/datatypes"
)

// AnalyticsEvent is an append-only log row used only for read-side
// aggregation. Never mutated or deleted.
type AnalyticsEvent struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`

	EventType   string `gorm:"column:event_type;size:64;not null;index" json:"event_type"`
	Destination string `gorm:"size:128" json:"destination,omitempty"`

	Data datatypes.JSON `gorm:"column:data" json:"data,omitempty"`
}

func (AnalyticsEvent) TableName() string { return "analytics" }

// DestinationCount is one row of the top-destinations aggregate.
type DestinationCount struct {
	Destination string `json:"destination"`
	Count       int64  `json:"count"`
}

// RecentEvent is the trimmed view of an analytics row on the dashboard.
type RecentEvent struct {
	EventType   string    `json:"event_type"`
	Destination string    `json:"destination,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DashboardData aggregates trips and analytics for the dashboard.
type DashboardData struct {
	PopularDestinations []DestinationCount `json:"popular_destinations"`
	AverageBudget       float64            `json:"average_budget"`
	AverageActualCost   float64            `json:"average_actual_cost"`
	TotalTrips          int64              `json:"total_trips"`
	RecentActivity      []RecentEvent      `json:"recent_activity"`
}
