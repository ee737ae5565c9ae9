// services/analytics_service.go
package services

import (
	"encoding/json"
	"fmt"

	"flexitrip-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnalyticsService appends events and aggregates them for the
// dashboard. Logging is best-effort from the product's point of view:
// callers get the error back and decide to log-and-continue, the
// service itself never swallows it.
type AnalyticsService struct {
	DB *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{DB: db}
}

// LogEvent appends one analytics row.
func (s *AnalyticsService) LogEvent(eventType, destination string, payload map[string]interface{}) error {
	if eventType == "" {
		return fmt.Errorf("validation: event type is required")
	}

	var data datatypes.JSON
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode event payload: %w", err)
		}
		data = datatypes.JSON(raw)
	}

	event := models.AnalyticsEvent{
		EventType:   eventType,
		Destination: destination,
		Data:        data,
	}
	if err := s.DB.Create(&event).Error; err != nil {
		return fmt.Errorf("failed to log event: %w", err)
	}
	return nil
}

// Dashboard aggregates trips and recent events.
func (s *AnalyticsService) Dashboard() (*models.DashboardData, error) {
	out := &models.DashboardData{
		PopularDestinations: []models.DestinationCount{},
		RecentActivity:      []models.RecentEvent{},
	}

	if err := s.DB.Model(&models.Trip{}).
		Select("destination, COUNT(*) as count").
		Group("destination").
		Order("count DESC").
		Limit(10).
		Scan(&out.PopularDestinations).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate destinations: %w", err)
	}

	var stats struct {
		AvgBudget  *float64
		AvgCost    *float64
		TotalTrips int64
	}
	if err := s.DB.Model(&models.Trip{}).
		Select("AVG(budget) as avg_budget, AVG(total_cost) as avg_cost, COUNT(*) as total_trips").
		Scan(&stats).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate budgets: %w", err)
	}
	if stats.AvgBudget != nil {
		out.AverageBudget = *stats.AvgBudget
	}
	if stats.AvgCost != nil {
		out.AverageActualCost = *stats.AvgCost
	}
	out.TotalTrips = stats.TotalTrips

	if err := s.DB.Model(&models.AnalyticsEvent{}).
		Select("event_type, destination, created_at").
		Order("created_at DESC, id DESC").
		Limit(10).
		Scan(&out.RecentActivity).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent activity: %w", err)
	}

	return out, nil
}
