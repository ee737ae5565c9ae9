// services/maps_service.go
package services

import (
	"errors"
	"fmt"
	"log"

	"flexitrip-backend/models"

	"gorm.io/gorm"
)

// Marker icon / color per location type, consumed by the frontend map
// widget. Unknown types get the attraction defaults.
var (
	markerIcons = map[string]string{
		models.ItemTypeHotel:      "bed",
		models.ItemTypeRestaurant: "cutlery",
		"attraction":              "star",
		models.ItemTypeActivity:   "play",
		models.ItemTypeTransport:  "bus",
	}
	markerColors = map[string]string{
		models.ItemTypeHotel:      "blue",
		models.ItemTypeRestaurant: "green",
		"attraction":              "red",
		models.ItemTypeActivity:   "orange",
		models.ItemTypeTransport:  "purple",
	}
)

// indiaCenter is the fallback map center for unknown destinations.
var indiaCenter = [2]float64{20.5937, 78.9629}

// MapMarker is one renderable marker.
type MapMarker struct {
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Type   string  `json:"type"`
	Cost   float64 `json:"cost"`
	Timing string  `json:"timing,omitempty"`
	Icon   string  `json:"icon"`
	Color  string  `json:"color"`
}

// MapOverview summarizes the trip for the map popup.
type MapOverview struct {
	Destination   string         `json:"destination"`
	LocationCount int            `json:"location_count"`
	TypeCounts    map[string]int `json:"type_counts"`
	EstimatedCost float64        `json:"estimated_cost"`
}

// TripMap is the full structured payload a frontend renders; the
// rendering itself happens client-side.
type TripMap struct {
	Center   [2]float64   `json:"center"`
	Zoom     int          `json:"zoom"`
	Markers  []MapMarker  `json:"markers"`
	Route    [][2]float64 `json:"route"`
	Overview MapOverview  `json:"overview"`
}

// MapsService builds trip map payloads from the seeded destination
// coordinate table.
type MapsService struct {
	DB *gorm.DB
}

func NewMapsService(db *gorm.DB) *MapsService {
	return &MapsService{DB: db}
}

// DestinationCenter looks up the center coordinates for a destination,
// falling back to the India center.
func (s *MapsService) DestinationCenter(destination string) [2]float64 {
	var dest models.Destination
	err := s.DB.Where("name = ?", destination).First(&dest).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("warning: destination lookup failed for %s: %v", destination, err)
		}
		return indiaCenter
	}
	return [2]float64{dest.Lat, dest.Lng}
}

// Destinations lists the seeded destinations for the selector map.
func (s *MapsService) Destinations() ([]models.Destination, error) {
	var out []models.Destination
	if err := s.DB.Order("name ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}
	return out, nil
}

// BuildTripMap assembles markers, a connecting route line and an
// overview for the given locations. When the AI produced no locations
// a single marker at the destination center is used.
func (s *MapsService) BuildTripMap(destination string, locations []models.MapLocation) *TripMap {
	center := s.DestinationCenter(destination)

	if len(locations) == 0 {
		locations = []models.MapLocation{{
			Name:   destination,
			Lat:    center[0],
			Lng:    center[1],
			Type:   "attraction",
			Timing: "Flexible",
		}}
	}

	markers := make([]MapMarker, 0, len(locations))
	route := make([][2]float64, 0, len(locations))
	typeCounts := map[string]int{}
	var totalCost float64

	for _, loc := range locations {
		locType := loc.Type
		if locType == "" {
			locType = "attraction"
		}
		icon, ok := markerIcons[locType]
		if !ok {
			icon = "info-sign"
		}
		color, ok := markerColors[locType]
		if !ok {
			color = "blue"
		}

		markers = append(markers, MapMarker{
			Name:   loc.Name,
			Lat:    loc.Lat,
			Lng:    loc.Lng,
			Type:   locType,
			Cost:   loc.Cost,
			Timing: loc.Timing,
			Icon:   icon,
			Color:  color,
		})
		route = append(route, [2]float64{loc.Lat, loc.Lng})
		typeCounts[locType]++
		totalCost += loc.Cost
	}

	return &TripMap{
		Center:  center,
		Zoom:    12,
		Markers: markers,
		Route:   route,
		Overview: MapOverview{
			Destination:   destination,
			LocationCount: len(locations),
			TypeCounts:    typeCounts,
			EstimatedCost: totalCost,
		},
	}
}
