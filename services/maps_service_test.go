package services

import (
	"testing"

	"flexitrip-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDestination(t *testing.T, svc *MapsService) {
	t.Helper()
	require.NoError(t, svc.DB.Create(&models.Destination{
		Name: "Goa", Lat: 15.2993, Lng: 74.1240, Description: "Beaches and Portuguese heritage",
	}).Error)
}

func TestDestinationCenter(t *testing.T) {
	svc := NewMapsService(newTestDB(t))
	seedDestination(t, svc)

	assert.Equal(t, [2]float64{15.2993, 74.1240}, svc.DestinationCenter("Goa"))

	// unknown destination falls back to the India center
	assert.Equal(t, [2]float64{20.5937, 78.9629}, svc.DestinationCenter("Atlantis"))
}

func TestBuildTripMap(t *testing.T) {
	svc := NewMapsService(newTestDB(t))
	seedDestination(t, svc)

	locations := []models.MapLocation{
		{Name: "Goa Heritage Hotel", Lat: 15.31, Lng: 74.13, Type: models.ItemTypeHotel, Cost: 8000, Timing: "Check-in 2 PM"},
		{Name: "Old Goa Churches", Lat: 15.50, Lng: 73.91, Type: "attraction"},
		{Name: "Beach Shack Crawl", Lat: 15.28, Lng: 73.92, Type: models.ItemTypeRestaurant, Cost: 4000},
	}

	m := svc.BuildTripMap("Goa", locations)
	assert.Equal(t, [2]float64{15.2993, 74.1240}, m.Center)
	assert.Equal(t, 12, m.Zoom)
	require.Len(t, m.Markers, 3)
	require.Len(t, m.Route, 3)

	hotel := m.Markers[0]
	assert.Equal(t, "bed", hotel.Icon)
	assert.Equal(t, "blue", hotel.Color)
	assert.Equal(t, [2]float64{15.31, 74.13}, m.Route[0])

	assert.Equal(t, "star", m.Markers[1].Icon)
	assert.Equal(t, "red", m.Markers[1].Color)

	overview := m.Overview
	assert.Equal(t, "Goa", overview.Destination)
	assert.Equal(t, 3, overview.LocationCount)
	assert.Equal(t, map[string]int{"hotel": 1, "attraction": 1, "restaurant": 1}, overview.TypeCounts)
	assert.Equal(t, 12000.0, overview.EstimatedCost)
}

func TestBuildTripMapNoLocations(t *testing.T) {
	svc := NewMapsService(newTestDB(t))
	seedDestination(t, svc)

	m := svc.BuildTripMap("Goa", nil)
	require.Len(t, m.Markers, 1)
	assert.Equal(t, "Goa", m.Markers[0].Name)
	assert.Equal(t, "star", m.Markers[0].Icon)
	assert.Equal(t, m.Center[0], m.Markers[0].Lat)
}

func TestBuildTripMapUnknownType(t *testing.T) {
	svc := NewMapsService(newTestDB(t))

	m := svc.BuildTripMap("Atlantis", []models.MapLocation{
		{Name: "Mystery Spot", Lat: 1, Lng: 2, Type: "spa"},
	})
	require.Len(t, m.Markers, 1)
	assert.Equal(t, "info-sign", m.Markers[0].Icon)
	assert.Equal(t, "blue", m.Markers[0].Color)
}

func TestDestinationsSorted(t *testing.T) {
	svc := NewMapsService(newTestDB(t))
	require.NoError(t, svc.DB.Create(&[]models.Destination{
		{Name: "Kerala", Lat: 9.9312, Lng: 76.2673},
		{Name: "Goa", Lat: 15.2993, Lng: 74.1240},
	}).Error)

	out, err := svc.Destinations()
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Goa", out[0].Name)
	assert.Equal(t, "Kerala", out[1].Name)
}
